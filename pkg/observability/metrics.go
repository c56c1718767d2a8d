package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for automaton operations.
type Metrics struct {
	Simulations        *prometheus.CounterVec
	SimulationSymbols  prometheus.Histogram
	SimulationDuration prometheus.Histogram
	Generations        *prometheus.CounterVec
	GeneratedStrings   prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Simulations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dfa_simulations_total",
				Help: "Total number of simulations by outcome",
			},
			[]string{"result"},
		),
		SimulationSymbols: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "dfa_simulation_symbols",
				Help:    "Number of symbols read per simulation",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
		SimulationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name: "dfa_simulation_duration_seconds",
				Help: "Duration of simulations",
			},
		),
		Generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dfa_generations_total",
				Help: "Total number of string generations by outcome",
			},
			[]string{"result"},
		),
		GeneratedStrings: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "dfa_generated_strings_total",
				Help: "Total number of accepted strings produced by generation",
			},
		),
	}
	if reg != nil {
		reg.MustRegister(
			m.Simulations,
			m.SimulationSymbols,
			m.SimulationDuration,
			m.Generations,
			m.GeneratedStrings,
		)
	}
	return m
}

// Hooks returns hooks that record events into m.
func (m *Metrics) Hooks() Hooks {
	return Hooks{
		OnSimulate: func(_ context.Context, e *SimulateEvent) {
			switch {
			case e.Err != nil:
				m.Simulations.WithLabelValues("error").Inc()
				return
			case e.Accepted:
				m.Simulations.WithLabelValues("accepted").Inc()
			default:
				m.Simulations.WithLabelValues("rejected").Inc()
			}
			m.SimulationSymbols.Observe(float64(e.Symbols))
			m.SimulationDuration.Observe(e.Duration.Seconds())
		},
		OnGenerate: func(_ context.Context, e *GenerateEvent) {
			if e.Err != nil {
				m.Generations.WithLabelValues("error").Inc()
				return
			}
			m.Generations.WithLabelValues("ok").Inc()
			m.GeneratedStrings.Add(float64(e.Count))
		},
	}
}
