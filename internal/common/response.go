package common

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// ErrorBody represents a consistent error payload returned by the API.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Envelope wraps every API response body. Exactly one of Data or Error is set.
type Envelope struct {
	Data  any        `json:"data,omitempty"`
	Error *ErrorBody `json:"error,omitempty"`
}

// Data renders v as {"data": v}.
func Data(w http.ResponseWriter, status int, v any) {
	write(w, status, Envelope{Data: v})
}

// Fail renders an error envelope.
func Fail(w http.ResponseWriter, status int, code, message string, details any) {
	write(w, status, Envelope{Error: &ErrorBody{Code: code, Message: message, Details: details}})
}

// write encodes before touching the header so an unencodable payload still
// yields a well-formed 500. Display strings carry "£" and quotes, so HTML
// escaping is off.
func write(w http.ResponseWriter, status int, env Envelope) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(env); err != nil {
		buf.Reset()
		status = http.StatusInternalServerError
		_ = enc.Encode(Envelope{Error: &ErrorBody{Code: "INTERNAL", Message: "internal error"}})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
