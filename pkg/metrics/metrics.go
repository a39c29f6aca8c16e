// Package metrics exports view helper invocation metrics to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goliatone/go-viewhelper/pkg/viewhelper"
)

// Observer records every helper invocation. It implements viewhelper.Observer.
type Observer struct {
	renders  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ viewhelper.Observer = (*Observer)(nil)

// NewObserver registers the collectors with registerer. A nil registerer
// uses the default Prometheus registry.
func NewObserver(registerer prometheus.Registerer) *Observer {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)
	return &Observer{
		renders: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "viewhelper_renders_total",
				Help: "Total number of view helper invocations",
			},
			[]string{"helper", "outcome"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "viewhelper_render_duration_seconds",
				Help:    "View helper invocation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"helper"},
		),
	}
}

// ObserveRender records one invocation.
func (o *Observer) ObserveRender(helper string, elapsed time.Duration, outcome viewhelper.Outcome) {
	o.renders.WithLabelValues(helper, string(outcome)).Inc()
	o.duration.WithLabelValues(helper).Observe(elapsed.Seconds())
}
