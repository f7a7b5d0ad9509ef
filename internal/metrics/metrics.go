package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EvaluationsProcessed evaluaciones procesadas y guardadas con éxito
	EvaluationsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cix_evaluations_processed_total",
		Help: "Evaluaciones procesadas y guardadas con éxito.",
	})

	// ExtractionFailures fallos de extracción por motivo
	ExtractionFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cix_extraction_failures_total",
		Help: "Fallos de extracción por motivo.",
	}, []string{"reason"})

	// BackendRequests duración de las llamadas al backend alojado
	BackendRequests = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cix_backend_request_duration_seconds",
		Help:    "Duración de las llamadas al backend por operación y código de estado.",
		Buckets: prometheus.DefBuckets,
	}, []string{"op", "status"})

	// CacheHits aciertos de caché por caché (listing, extraction)
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cix_cache_hits_total",
		Help: "Aciertos de caché.",
	}, []string{"cache"})

	// CacheMisses fallos de caché por caché
	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cix_cache_misses_total",
		Help: "Fallos de caché.",
	}, []string{"cache"})
)

// ObserveBackend registra una llamada al backend; status 0 = la llamada no se completó
func ObserveBackend(op string, status int, d time.Duration) {
	BackendRequests.WithLabelValues(op, strconv.Itoa(status)).Observe(d.Seconds())
}
