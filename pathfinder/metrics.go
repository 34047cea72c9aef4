package pathfinder

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	tracer = otel.Tracer("loopminer.pathfinder")
	meter  = otel.Meter("loopminer.pathfinder")
)

var (
	findTotal    metric.Int64Counter
	findLatency  metric.Float64Histogram
	findExplored metric.Int64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics creates the instruments once.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		findTotal, err = meter.Int64Counter(
			"pathfinder_find_total",
			metric.WithDescription("Total number of path searches"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		findLatency, err = meter.Float64Histogram(
			"pathfinder_find_duration_seconds",
			metric.WithDescription("Duration of path searches"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		findExplored, err = meter.Int64Histogram(
			"pathfinder_explored_states",
			metric.WithDescription("States expanded per path search"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// recordFind records one search.
func recordFind(ctx context.Context, strategy string, d time.Duration, explored int, success bool) {
	if err := initMetrics(); err != nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("strategy", strategy),
		attribute.Bool("success", success),
	)
	findTotal.Add(ctx, 1, attrs)
	findLatency.Record(ctx, d.Seconds(), attrs)
	findExplored.Record(ctx, int64(explored), attrs)
}
