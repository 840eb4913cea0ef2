package v1

import (
	"net/http"
	"strconv"
	"time"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "daftar",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "daftar",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
	reportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "daftar",
			Name:      "reports_computed_total",
			Help:      "Monthly reports computed, by outcome",
		},
		[]string{"outcome"},
	)
	reportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "daftar",
			Name:      "report_duration_seconds",
			Help:      "Time to compute a monthly report, including its three aggregate queries",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

func metricsHandler() http.Handler {
	return promhttp.Handler()
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		// route pattern keeps label cardinality bounded; unmatched paths share one label
		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := strconv.Itoa(ww.Status())
		httpRequestsTotal.WithLabelValues(r.Method, route, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
	})
}

func observeReport(start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	reportsTotal.WithLabelValues(outcome).Inc()
	reportDuration.Observe(time.Since(start).Seconds())
}
