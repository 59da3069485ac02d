// v1
// internal/ingest/metrics.go

package ingest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MessagesProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "twin_ingest_messages_total",
		Help: "Telemetry messages consumed from the broker.",
	})
	MessagesSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "twin_ingest_messages_skipped_total",
		Help: "Messages dropped before inference, by reason.",
	}, []string{"reason"})
	InferenceFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "twin_ingest_inference_fallbacks_total",
		Help: "Inference calls that fell back to the stored control action.",
	})
	TwinUpdates = promauto.NewCounter(prometheus.CounterOpts{
		Name: "twin_ingest_twin_updates_total",
		Help: "Successful twin patch operations.",
	})
	TwinUpdateFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "twin_ingest_twin_update_failures_total",
		Help: "Failed twin patch operations.",
	})
)
