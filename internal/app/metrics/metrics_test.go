package metrics_test

import (
	"testing"

	"educa-app/internal/app/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() { metrics.RegisterCollectors(reg) })

	before := testutil.ToFloat64(metrics.ContentSaved.WithLabelValues("text", "created"))
	metrics.ContentSaved.WithLabelValues("text", "created").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ContentSaved.WithLabelValues("text", "created")))

	assert.Panics(t, func() { metrics.RegisterCollectors(reg) })
}
