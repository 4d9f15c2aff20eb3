package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// ClientMetrics counts calls the sign-up page makes to the users API.
type ClientMetrics struct {
	Requests  prometheus.Counter
	Errors    prometheus.Counter
	Responses *prometheus.CounterVec
}

// NewClientMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered, which is convenient in tests.
func NewClientMetrics(serviceName string, reg prometheus.Registerer) *ClientMetrics {
	requests := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "users_api",
			Name:      "requests_total",
			Help:      "Total number of requests sent to the users API",
		},
	)

	errors := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "users_api",
			Name:      "transport_errors_total",
			Help:      "Total number of users API requests that got no HTTP response",
		},
	)

	responses := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "users_api",
			Name:      "responses_total",
			Help:      "Total number of users API responses by status code",
		},
		[]string{"code"},
	)

	if reg != nil {
		reg.MustRegister(requests, errors, responses)
	}

	return &ClientMetrics{
		Requests:  requests,
		Errors:    errors,
		Responses: responses,
	}
}

// ObserveRequest records that a request was sent.
func (m *ClientMetrics) ObserveRequest() {
	if m == nil {
		return
	}
	m.Requests.Inc()
}

// ObserveResponse records the status code of a received response.
func (m *ClientMetrics) ObserveResponse(statusCode int) {
	if m == nil {
		return
	}
	m.Responses.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// ObserveTransportError records a request that failed before any response arrived.
func (m *ClientMetrics) ObserveTransportError() {
	if m == nil {
		return
	}
	m.Errors.Inc()
}
