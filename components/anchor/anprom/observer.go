package anprom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/open-control-systems/time-anchor/components/anchor/ancore"
)

const namespace = "time_anchor"

// Observer exports the time source events as prometheus metrics.
//
// References:
//   - https://github.com/prometheus/client_golang
type Observer struct {
	deliveries  prometheus.Counter
	estimates   *prometheus.CounterVec
	unavailable prometheus.Counter
	restores    prometheus.Counter
	stale       prometheus.Counter
	persists    *prometheus.CounterVec
}

// NewObserver creates metrics and registers them in the registerer.
func NewObserver(registerer prometheus.Registerer) (*Observer, error) {
	o := &Observer{
		deliveries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deliveries_total",
			Help:      "Number of anchors delivered by the external time source.",
		}),
		estimates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "now_total",
			Help:      "Number of produced wall clock estimates by anchor origin.",
		}, []string{"origin"}),
		unavailable: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unavailable_total",
			Help:      "Number of wall clock estimates failed due to missing anchor.",
		}),
		restores: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "restores_total",
			Help:      "Number of persisted anchors installed as the live one.",
		}),
		stale: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_records_total",
			Help:      "Number of persisted anchors discarded after reboot.",
		}),
		persists: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persist_total",
			Help:      "Number of anchor saves by result.",
		}, []string{"result"}),
	}

	for _, c := range []prometheus.Collector{
		o.deliveries, o.estimates, o.unavailable, o.restores, o.stale, o.persists,
	} {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// ObserveDeliver counts delivered anchors.
func (o *Observer) ObserveDeliver() {
	o.deliveries.Inc()
}

// ObserveNow counts produced estimates.
func (o *Observer) ObserveNow(origin ancore.Origin) {
	o.estimates.WithLabelValues(string(origin)).Inc()
}

// ObserveNoAnchor counts failed estimates.
func (o *Observer) ObserveNoAnchor() {
	o.unavailable.Inc()
}

// ObserveRestore counts restored anchors.
func (o *Observer) ObserveRestore() {
	o.restores.Inc()
}

// ObserveStale counts discarded records.
func (o *Observer) ObserveStale() {
	o.stale.Inc()
}

// ObservePersist counts anchor saves.
func (o *Observer) ObservePersist(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}

	o.persists.WithLabelValues(result).Inc()
}
