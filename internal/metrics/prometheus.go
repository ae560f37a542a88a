// AngelaMos | 2026
// prometheus.go

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "apartment_api"

// Metrics is nil-safe: every recording method is a no-op on a nil receiver,
// so services can be built without metrics in tests.
type Metrics struct {
	gatherer prometheus.Gatherer

	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight prometheus.Gauge
	paymentsRecorded *prometheus.CounterVec
	paymentAmount    *prometheus.CounterVec
	mpesaCallbacks   *prometheus.CounterVec
	mpesaPushes      *prometheus.CounterVec
	roomsReleased    prometheus.Counter
	rateLimited      *prometheus.CounterVec
}

func New(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		gatherer: gatherer,
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "route"},
		),
		requestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "Number of HTTP requests currently being processed",
			},
		),
		paymentsRecorded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "payments_recorded_total",
				Help:      "Payments written, by origin",
			},
			[]string{"source"},
		),
		paymentAmount: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "payments_amount_total",
				Help:      "Sum of recorded payment amounts, by origin",
			},
			[]string{"source"},
		),
		mpesaCallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "mpesa_callbacks_total",
				Help:      "Mobile-money callbacks received, by outcome",
			},
			[]string{"outcome"},
		),
		mpesaPushes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "mpesa_push_requests_total",
				Help:      "Push payment requests initiated, by result",
			},
			[]string{"result"},
		),
		roomsReleased: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rooms_released_total",
				Help:      "Rooms set vacant because their tenant was deleted",
			},
		),
		rateLimited: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limited_total",
				Help:      "Requests rejected by a rate limiter",
			},
			[]string{"limiter"},
		),
	}
}

func NewDefault() *Metrics {
	return New(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
}

func (m *Metrics) PaymentRecorded(source string, amount float64) {
	if m == nil {
		return
	}
	m.paymentsRecorded.WithLabelValues(source).Inc()
	m.paymentAmount.WithLabelValues(source).Add(amount)
}

func (m *Metrics) MpesaCallback(outcome string) {
	if m == nil {
		return
	}
	m.mpesaCallbacks.WithLabelValues(outcome).Inc()
}

func (m *Metrics) MpesaPush(result string) {
	if m == nil {
		return
	}
	m.mpesaPushes.WithLabelValues(result).Inc()
}

func (m *Metrics) RoomsReleased(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.roomsReleased.Add(float64(n))
}

func (m *Metrics) RateLimited(limiter string) {
	if m == nil {
		return
	}
	m.rateLimited.WithLabelValues(limiter).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Middleware labels requests by chi route pattern rather than raw path so
// entity ids do not explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.requestsInFlight.Inc()
		defer m.requestsInFlight.Dec()

		start := time.Now()
		rw := &metricsResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		m.requestsTotal.WithLabelValues(
			r.Method,
			route,
			strconv.Itoa(rw.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(r.Method, route).
			Observe(time.Since(start).Seconds())
	})
}

type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (rw *metricsResponseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *metricsResponseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}
