package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ReorderApplied = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "educa", Name: "reorder_applied_total", Help: "Rows moved by bulk reorder requests."},
		[]string{"collection"},
	)
	ReorderSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "educa", Name: "reorder_skipped_total", Help: "Reorder pairs that matched no owned row."},
		[]string{"collection"},
	)
	ContentSaved = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "educa", Name: "content_saved_total", Help: "Content payloads saved by kind and outcome."},
		[]string{"kind", "state"},
	)
	DanglingReferences = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "educa", Name: "dangling_references_total", Help: "Content references whose payload row was missing."},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(ReorderApplied)
	reg.MustRegister(ReorderSkipped)
	reg.MustRegister(ContentSaved)
	reg.MustRegister(DanglingReferences)
}
