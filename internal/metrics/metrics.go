// Package metrics holds the prometheus collectors of the trip store.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "tripkeeper"

// Metrics groups store and media collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	commits         *prometheus.CounterVec
	persistFailures prometheus.Counter
	entities        *prometheus.GaugeVec
	mediaLoads      *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		commits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_commits_total",
			Help:      "Committed store transactions by operation.",
		}, []string{"op"}),
		persistFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_persist_failures_total",
			Help:      "Durable writes that failed after an in-memory commit.",
		}),
		entities: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_entities",
			Help:      "Entities in the committed snapshot.",
		}, []string{"kind"}),
		mediaLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "media_loads_total",
			Help:      "Media image loads by result (hit, miss, absent).",
		}, []string{"result"}),
	}
	if reg != nil {
		reg.MustRegister(m.commits, m.persistFailures, m.entities, m.mediaLoads)
	}
	return m
}

// Commit records a committed transaction.
func (m *Metrics) Commit(op string) {
	if m == nil {
		return
	}
	m.commits.WithLabelValues(op).Inc()
}

// PersistFailure records a failed durable write.
func (m *Metrics) PersistFailure() {
	if m == nil {
		return
	}
	m.persistFailures.Inc()
}

// Entities sets the entity gauges.
func (m *Metrics) Entities(trips, cards, reservations int) {
	if m == nil {
		return
	}
	m.entities.WithLabelValues("trip").Set(float64(trips))
	m.entities.WithLabelValues("card").Set(float64(cards))
	m.entities.WithLabelValues("reservation").Set(float64(reservations))
}

// MediaLoad records a media image load result.
func (m *Metrics) MediaLoad(result string) {
	if m == nil {
		return
	}
	m.mediaLoads.WithLabelValues(result).Inc()
}
