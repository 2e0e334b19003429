package security

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

const defaultHSTSMaxAge = 365 * 24 * time.Hour

// apiHeaders suit a JSON-only API: nothing is rendered or framed, and quote
// and order state is per-session so no intermediary may cache it.
var apiHeaders = [][2]string{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"Referrer-Policy", "no-referrer"},
	{"Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'"},
	{"Cache-Control", "no-store"},
}

// Headers attaches security headers to every response.
type Headers struct {
	// HSTS adds Strict-Transport-Security to requests that arrived over TLS.
	HSTS              bool
	HSTSMaxAge        time.Duration
	IncludeSubdomains bool
}

// HeadersFor returns the header policy for an APP_ENV value. HSTS is only
// promised in production, where the API sits behind a stable TLS name.
func HeadersFor(appEnv string) Headers {
	return Headers{HSTS: strings.EqualFold(appEnv, "production")}
}

// Middleware implements the http.Handler middleware interface.
func (h Headers) Middleware(next http.Handler) http.Handler {
	hsts := h.hstsValue()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers := w.Header()
		for _, kv := range apiHeaders {
			headers.Set(kv[0], kv[1])
		}
		if hsts != "" && r.TLS != nil {
			headers.Set("Strict-Transport-Security", hsts)
		}
		next.ServeHTTP(w, r)
	})
}

func (h Headers) hstsValue() string {
	if !h.HSTS {
		return ""
	}
	maxAge := h.HSTSMaxAge
	if maxAge <= 0 {
		maxAge = defaultHSTSMaxAge
	}
	value := "max-age=" + strconv.FormatInt(int64(maxAge/time.Second), 10)
	if h.IncludeSubdomains {
		value += "; includeSubDomains"
	}
	return value
}
