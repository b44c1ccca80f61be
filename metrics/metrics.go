package metrics

import (
	"errors"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestTotal counts HTTP requests by method, route and status.
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "restdb_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	// RequestDuration is the latency of HTTP requests.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "restdb_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	// OperationsTotal counts store operations (list, get, create, replace...).
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "restdb_operations_total",
			Help: "Total number of store operations",
		},
		[]string{"collection", "operation", "status"},
	)
)

// Operation records the outcome of a store operation. Errors listed in
// expected count as "miss" instead of "error".
func Operation(collection, operation string, err error, expected ...error) {
	status := "ok"
	if err != nil {
		status = "error"
		for _, e := range expected {
			if errors.Is(err, e) {
				status = "miss"
				break
			}
		}
	}
	OperationsTotal.WithLabelValues(collection, operation, status).Inc()
}

// reservedRoutes are the only paths labelled by name.
var reservedRoutes = map[string]bool{
	"_db":           true,
	"_release":      true,
	"_metrics":      true,
	"_openapi.json": true,
}

// Route collapses a request path into a bounded label. Collection names and
// ids come from clients, so /posts/1/comments becomes
// {collection}/{id}/{child}.
func Route(p string) string {
	p = strings.Trim(p, "/")
	if p == "" {
		return "root"
	}
	parts := strings.Split(p, "/")
	if reservedRoutes[parts[0]] {
		if len(parts) == 1 {
			return parts[0]
		}
		return "unknown"
	}
	switch len(parts) {
	case 1:
		return "{collection}"
	case 2:
		return "{collection}/{id}"
	case 3:
		return "{collection}/{id}/{child}"
	}
	return "unknown"
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
