package evbus

import "github.com/prometheus/client_golang/prometheus"

const metricsNamespace = "evbus"

type metrics struct {
	fires         *prometheus.CounterVec
	handlerCalls  *prometheus.CounterVec
	handlerErrors *prometheus.CounterVec
	subscriptions *prometheus.GaugeVec
}

func newMetrics() *metrics {
	return &metrics{
		fires: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "fires_total",
			Help:      "Number of Fire calls per event name.",
		}, []string{"event"}),
		handlerCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "handler_calls_total",
			Help:      "Number of handler invocations per event name.",
		}, []string{"event"}),
		handlerErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "handler_errors_total",
			Help:      "Number of handler invocations that returned an error.",
		}, []string{"event"}),
		subscriptions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "subscriptions",
			Help:      "Current number of subscriptions per event name.",
		}, []string{"event"}),
	}
}

func (m *metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.fires, m.handlerCalls, m.handlerErrors, m.subscriptions}
}

// The methods below are safe on a nil receiver so the bus can call them
// unconditionally.

func (m *metrics) fired(name string) {
	if m != nil {
		m.fires.WithLabelValues(name).Inc()
	}
}

func (m *metrics) called(name string, err error) {
	if m == nil {
		return
	}
	m.handlerCalls.WithLabelValues(name).Inc()
	if err != nil {
		m.handlerErrors.WithLabelValues(name).Inc()
	}
}

func (m *metrics) setSubscriptions(name string, n int) {
	if m == nil {
		return
	}
	if n == 0 {
		m.subscriptions.DeleteLabelValues(name)
		return
	}
	m.subscriptions.WithLabelValues(name).Set(float64(n))
}
