package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Commit("create_trip")
	m.Commit("create_trip")
	m.PersistFailure()
	m.Entities(2, 5, 1)
	m.MediaLoad("hit")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.commits.WithLabelValues("create_trip")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.persistFailures))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.entities.WithLabelValues("card")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.mediaLoads.WithLabelValues("hit")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Commit("x")
		m.PersistFailure()
		m.Entities(1, 1, 1)
		m.MediaLoad("miss")
	})
}
