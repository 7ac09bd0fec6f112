package entropic

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

/*
Metrics holds the prometheus collectors updated by the estimators. A nil
*Metrics records nothing.
*/
type Metrics struct {
	NodesGrown  *prometheus.CounterVec
	FitDuration prometheus.Histogram
	Predictions *prometheus.CounterVec
}

/*
NewMetrics takes a prometheus.Registerer and returns Metrics whose
collectors are registered on it.
*/
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		NodesGrown: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "entropic",
			Name:      "nodes_grown_total",
			Help:      "Number of tree nodes grown, by leaf rule or split kind",
		}, []string{"reason"}),
		FitDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "entropic",
			Name:      "fit_duration_seconds",
			Help:      "Time taken to fit a tree",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		Predictions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "entropic",
			Name:      "predictions_total",
			Help:      "Number of rows routed through a tree, by outcome",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) nodeGrown(reason string) {
	if m == nil {
		return
	}
	m.NodesGrown.WithLabelValues(reason).Inc()
}

func (m *Metrics) fitted(d time.Duration) {
	if m == nil {
		return
	}
	m.FitDuration.Observe(d.Seconds())
}

func (m *Metrics) predicted(err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.Predictions.WithLabelValues(outcome).Inc()
}
