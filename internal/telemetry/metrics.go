// v1
// internal/telemetry/metrics.go

package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Published = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hvacsim_records_published_total",
		Help: "Telemetry records successfully handed to the sink.",
	}, []string{"event_type"})

	PublishFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hvacsim_publish_failures_total",
		Help: "Telemetry records the sink failed to accept.",
	}, []string{"event_type"})

	Ticks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hvacsim_ticks_total",
		Help: "Completed simulation ticks.",
	})

	TickErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hvacsim_tick_errors_total",
		Help: "Ticks aborted by an unexpected error.",
	})
)
