package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes recorded for upstream calls and contact relays.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

type Collector struct {
	httpRequests        *prometheus.CounterVec
	httpDuration        *prometheus.HistogramVec
	testimonialsCreated prometheus.Counter
	providerRequests    *prometheus.CounterVec
	contactMessages     *prometheus.CounterVec
}

// NewCollector registers every moviedex metric on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "moviedex_http_requests_total",
			Help: "HTTP requests served, by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "moviedex_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		testimonialsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "moviedex_testimonials_created_total",
			Help: "Testimonials stored.",
		}),
		providerRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "moviedex_provider_requests_total",
			Help: "Calls to the movie metadata provider, by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		contactMessages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "moviedex_contact_messages_total",
			Help: "Contact messages relayed, by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.testimonialsCreated,
		c.providerRequests,
		c.contactMessages,
	)

	return c
}

func (c *Collector) RecordHTTPRequest(method, route string, status int, d time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (c *Collector) RecordTestimonialCreated() {
	c.testimonialsCreated.Inc()
}

func (c *Collector) RecordProviderRequest(endpoint string, err error) {
	c.providerRequests.WithLabelValues(endpoint, outcome(err)).Inc()
}

func (c *Collector) RecordContactMessage(err error) {
	c.contactMessages.WithLabelValues(outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
