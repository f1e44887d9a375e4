// Package metrics exposes Prometheus instrumentation for the pool
// processor: how many instructions ran, with what result, and how much
// volume moved through swaps. None of this feeds back into control flow —
// a metrics call can't fail the instruction it's describing.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registerOnce sync.Once

var (
	instructionsTotal *prometheus.CounterVec
	swapVolume        *prometheus.CounterVec
	swapLatency       *prometheus.HistogramVec
)

func init() {
	registerOnce.Do(func() {
		instructionsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "poolsim_instructions_total",
				Help: "Instructions processed by the pool core, by instruction name and outcome.",
			},
			[]string{"instruction", "result"},
		)
		swapVolume = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "poolsim_swap_volume_total",
				Help: "Cumulative swap input volume, by asset code.",
			},
			[]string{"asset"},
		)
		swapLatency = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "poolsim_swap_latency_seconds",
				Help:    "Wall-clock time spent inside Processor.Swap.",
				Buckets: prometheus.ExponentialBuckets(0.00005, 2, 12),
			},
			[]string{"pool"},
		)
	})
}

// ObserveInstruction records that instruction finished with result ("ok"
// or an ammerr.Code name).
func ObserveInstruction(instruction, result string) {
	instructionsTotal.WithLabelValues(instruction, result).Inc()
}

// ObserveSwapVolume adds amount to the running total moved through the
// given asset code ("s", "a", or "b").
func ObserveSwapVolume(asset string, amount uint64) {
	swapVolume.WithLabelValues(asset).Add(float64(amount))
}

// ObserveSwapLatency records the duration, in seconds, a swap against
// pool took.
func ObserveSwapLatency(pool string, seconds float64) {
	swapLatency.WithLabelValues(pool).Observe(seconds)
}
