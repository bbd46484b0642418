// Package telemetry holds the Prometheus metrics and OpenTelemetry spans
// emitted around flowchart generation.
package telemetry

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// GenerationsTotal counts generation attempts by grammar and outcome.
	GenerationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "flowgen",
		Name:      "generations_total",
		Help:      "Total number of flowchart generations, labeled by grammar and result.",
	}, []string{"grammar", "result"})

	// CompletionDurationSeconds is the wall time of the single LLM call.
	CompletionDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "flowgen",
		Name:      "completion_duration_seconds",
		Help:      "Time spent waiting on the LLM completion call.",
		Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60, 120},
	}, []string{"grammar", "provider"})

	// ValidationFailuresTotal counts outputs rejected by the structural check.
	ValidationFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "flowgen",
		Name:      "validation_failures_total",
		Help:      "Total number of generated flowcharts rejected by validation.",
	}, []string{"grammar"})

	// CompletionTokensTotal counts tokens reported by the provider.
	CompletionTokensTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "flowgen",
		Name:      "completion_tokens_total",
		Help:      "Total number of LLM tokens consumed, labeled by direction.",
	}, []string{"direction"})
)

// Generation outcomes used as the result label.
const (
	ResultOK             = "ok"
	ResultInvalid        = "invalid"
	ResultProviderError  = "provider_error"
	ResultTimeout        = "timeout"
	ResultInvalidRequest = "invalid_request"
)

// Register registers flowgen metrics with the default Prometheus registry.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			GenerationsTotal,
			CompletionDurationSeconds,
			ValidationFailuresTotal,
			CompletionTokensTotal,
		)
	})
}

// ObserveCompletion records latency and token usage for one completion call.
func ObserveCompletion(grammar, provider string, d time.Duration, inputTokens, outputTokens int) {
	CompletionDurationSeconds.WithLabelValues(grammar, provider).Observe(d.Seconds())
	if inputTokens > 0 {
		CompletionTokensTotal.WithLabelValues("input").Add(float64(inputTokens))
	}
	if outputTokens > 0 {
		CompletionTokensTotal.WithLabelValues("output").Add(float64(outputTokens))
	}
}

// ObserveResult records the outcome of a generation.
func ObserveResult(grammar, result string) {
	GenerationsTotal.WithLabelValues(grammar, result).Inc()
	if result == ResultInvalid {
		ValidationFailuresTotal.WithLabelValues(grammar).Inc()
	}
}
