package boss

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("loopminer.boss")

var (
	// batchTotal counts executed batches by outcome.
	batchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "loopminer_boss_batch_total",
		Help: "Total executed batches by result",
	}, []string{"result"})

	// executeDuration tracks Execute latency per mode.
	executeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "loopminer_boss_execute_duration_seconds",
		Help:    "Execute duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 16), // 1ms to ~30s
	}, []string{"mode"})

	// executeBatches tracks how many batches one run holds.
	executeBatches = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "loopminer_boss_execute_batches",
		Help:    "Number of batches per Execute",
		Buckets: []float64{1, 2, 4, 8, 32, 128, 1024, 8192},
	})
)
