package metrics

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// apiOperations maps the measured menu routes to their operation label.
// Health probes, /metrics and unmatched paths are not recorded, which keeps
// the label set fixed no matter what clients request.
var apiOperations = map[string]string{
	"GET /api/menu":          "list",
	"POST /api/menu":         "add",
	"DELETE /api/menu/:name": "remove",
	"PUT /api/menu/:name":    "rename",
	"POST /api/random":       "sample",
}

// Operation returns the operation label for a matched echo route.
func Operation(method, route string) (string, bool) {
	op, ok := apiOperations[method+" "+route]
	return op, ok
}

// HTTPMetrics records menu API traffic.
type HTTPMetrics struct {
	RequestDuration *prometheus.HistogramVec
	RequestsTotal   *prometheus.CounterVec
	InFlight        prometheus.Gauge
}

// NewHTTPMetrics creates the HTTP metrics and registers them on reg.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	labels := []string{"operation", "code"}
	m := &HTTPMetrics{
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of menu API requests by operation and status code.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, labels),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Menu API requests by operation and status code.",
		}, labels),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Menu API requests currently being served.",
		}),
	}
	reg.MustRegister(m.RequestDuration, m.RequestsTotal, m.InFlight)
	return m
}

// Middleware records requests to the routes in apiOperations. It must run
// outside the error middleware so the final status code is observed.
func (m *HTTPMetrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			op, ok := Operation(c.Request().Method, c.Path())
			if !ok {
				return next(c)
			}

			m.InFlight.Inc()
			timer := prometheus.NewTimer(prometheus.ObserverFunc(func(seconds float64) {
				code := strconv.Itoa(c.Response().Status)
				m.RequestDuration.WithLabelValues(op, code).Observe(seconds)
				m.RequestsTotal.WithLabelValues(op, code).Inc()
			}))
			defer func() {
				timer.ObserveDuration()
				m.InFlight.Dec()
			}()

			return next(c)
		}
	}
}
