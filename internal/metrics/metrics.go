package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lmsdash", Name: "http_requests_total", Help: "Served API requests",
	}, []string{"route", "status"})
	HandlerErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lmsdash", Name: "handler_errors_total", Help: "API handler failures",
	}, []string{"route"})
	UpstreamCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lmsdash", Name: "upstream_calls_total", Help: "Calls to the LMS web service",
	}, []string{"function", "outcome"})
	UpstreamLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "lmsdash", Name: "upstream_call_seconds", Help: "LMS web service call latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"function"})
	ResolverMode = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lmsdash", Name: "resolver_mode_total", Help: "Source resolutions by mode",
	}, []string{"mode"})
	SkippedCourses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lmsdash", Name: "aggregate_skipped_courses_total", Help: "Courses skipped by best-effort aggregations",
	}, []string{"aggregate"})
	UpstreamUp = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "lmsdash", Name: "upstream_up", Help: "1 if the last LMS probe succeeded",
	})
)

func init() {
	prometheus.MustRegister(HTTPRequests, HandlerErrors, UpstreamCalls, UpstreamLatency, ResolverMode, SkippedCourses, UpstreamUp)
}

func Handler() http.Handler { return promhttp.Handler() }

// ObserveUpstream records one upstream round trip.
func ObserveUpstream(function, outcome string, d time.Duration) {
	UpstreamCalls.WithLabelValues(function, outcome).Inc()
	UpstreamLatency.WithLabelValues(function).Observe(d.Seconds())
}
