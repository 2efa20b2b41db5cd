package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	APIRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "instalens_api_requests_total",
		Help: "Total API requests by endpoint",
	}, []string{"endpoint"})
	APIFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "instalens_api_failures_total",
		Help: "Total failed API requests by endpoint",
	}, []string{"endpoint"})
	StreamChunks = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "instalens_stream_chunks_total",
		Help: "Total streaming chunks received",
	})
	CacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "instalens_cache_hits_total",
		Help: "Query cache hits by resource",
	}, []string{"resource"})
	CacheMisses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "instalens_cache_misses_total",
		Help: "Query cache misses by resource",
	}, []string{"resource"})
	FeedReconnects = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "instalens_feed_reconnects_total",
		Help: "Live feed reconnect attempts",
	})
)

func init() {
	prometheus.MustRegister(APIRequests, APIFailures, StreamChunks, CacheHits, CacheMisses, FeedReconnects)
}

// StartServer exposes /metrics and /health on addr. Empty addr disables it.
func StartServer(addr string) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	go func() { _ = http.ListenAndServe(addr, mux) }()
}
