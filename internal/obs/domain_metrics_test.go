package obs_test

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/wrapping-quotes/internal/obs"
)

func TestDomainMetricsRecord(t *testing.T) {
	obs.MustRegisterDomainMetrics("quotes_test", prometheus.NewRegistry())

	before := testutil.ToFloat64(obs.QuotesSavedTotal.WithLabelValues("cube", "cheap", "add"))
	obs.RecordQuoteSaved("cube", "cheap", "add")
	require.Equal(t, before+1, testutil.ToFloat64(obs.QuotesSavedTotal.WithLabelValues("cube", "cheap", "add")))

	unknown := testutil.ToFloat64(obs.QuotesSavedTotal.WithLabelValues("unknown", "unknown", "edit"))
	obs.RecordQuoteSaved("", "", "edit")
	require.Equal(t, unknown+1, testutil.ToFloat64(obs.QuotesSavedTotal.WithLabelValues("unknown", "unknown", "edit")))

	exports := testutil.ToFloat64(obs.OrderExportsTotal.WithLabelValues("ok"))
	obs.RecordExport("ok")
	require.Equal(t, exports+1, testutil.ToFloat64(obs.OrderExportsTotal.WithLabelValues("ok")))

	started := testutil.ToFloat64(obs.OrdersStartedTotal)
	obs.RecordOrderStarted()
	require.Equal(t, started+1, testutil.ToFloat64(obs.OrdersStartedTotal))
}

func TestSessionsGaugeReadsCount(t *testing.T) {
	registry := prometheus.NewRegistry()
	open := 3
	obs.RegisterSessionsGauge("quotes", registry, func() int { return open })

	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(`
# HELP quotes_sessions_open Quoting sessions currently held in memory.
# TYPE quotes_sessions_open gauge
quotes_sessions_open 3
`), "quotes_sessions_open"))
}
