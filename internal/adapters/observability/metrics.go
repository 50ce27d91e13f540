package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "travelrec", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "travelrec", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	ExternalRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "travelrec", Name: "external_requests_total", Help: "Outbound requests."},
		[]string{"service", "endpoint", "status"},
	)
	ExternalLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "travelrec", Name: "external_request_duration_seconds",
			Help:    "Outbound request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "endpoint"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "travelrec", Name: "cache_events_total", Help: "Cache events by kind."},
		[]string{"cache", "event"}, // event: hit|miss|set|del|error|corrupt
	)
	Searches = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "travelrec", Name: "searches_total", Help: "Searches by matching rule."},
		[]string{"rule", "empty"},
	)
	SearchLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "travelrec", Name: "search_duration_seconds",
			Help:    "Matcher duration seconds.",
			Buckets: []float64{.00001, .0001, .001, .01, .1},
		},
	)
	CatalogLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "travelrec", Name: "catalog_loads_total", Help: "Catalog loads by source and outcome."},
		[]string{"source", "status"}, // status: ok|failed
	)
	ClockTicks = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "travelrec", Name: "clock_ticks_total", Help: "Clock label refreshes."},
	)
	ClockLabels = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "travelrec", Name: "clock_labels_total", Help: "Clock label outcomes per refresh."},
		[]string{"outcome"}, // outcome: updated|format_failed|detached
	)
)

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, ExternalRequests, ExternalLatency, CacheEvents,
		Searches, SearchLatency, CatalogLoads, ClockTicks, ClockLabels)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveExternal(service, endpoint string, status int, dur time.Duration) {
	ExternalRequests.WithLabelValues(service, endpoint, strconv.Itoa(status)).Inc()
	ExternalLatency.WithLabelValues(service, endpoint).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del|error|corrupt
	CacheEvents.WithLabelValues(cache, event).Inc()
}

func ObserveSearch(rule string, results int, dur time.Duration) {
	Searches.WithLabelValues(rule, strconv.FormatBool(results == 0)).Inc()
	SearchLatency.Observe(dur.Seconds())
}

func ObserveCatalogLoad(source string, err error) {
	status := "ok"
	if err != nil {
		status = "failed"
	}
	CatalogLoads.WithLabelValues(source, status).Inc()
}

func ObserveClockTick(updated, failed, detached int) {
	ClockTicks.Inc()
	ClockLabels.WithLabelValues("updated").Add(float64(updated))
	ClockLabels.WithLabelValues("format_failed").Add(float64(failed))
	ClockLabels.WithLabelValues("detached").Add(float64(detached))
}

