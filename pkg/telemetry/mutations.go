package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// InstrumentationName scopes the meters and tracers owned by this module.
const InstrumentationName = "github.com/ghuser/grocerylists"

// Mutation outcomes recorded on grocery.mutations.
const (
	OutcomeOK        = "ok"
	OutcomeRejected  = "rejected"
	OutcomeDivergent = "divergent"
)

// MutationMetrics counts grocery list mutations and the ones whose in-memory
// result could not be persisted.
type MutationMetrics struct {
	mutations metric.Int64Counter
	divergent metric.Int64Counter
}

// NewMutationMetrics registers the mutation counters on mp.
func NewMutationMetrics(mp metric.MeterProvider) (*MutationMetrics, error) {
	meter := mp.Meter(InstrumentationName)

	mutations, err := meter.Int64Counter("grocery.mutations",
		metric.WithDescription("Grocery list mutations by operation and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("mutations counter: %w", err)
	}
	divergent, err := meter.Int64Counter("grocery.state_divergent",
		metric.WithDescription("Mutations applied in memory but not persisted"),
	)
	if err != nil {
		return nil, fmt.Errorf("state divergent counter: %w", err)
	}
	return &MutationMetrics{mutations: mutations, divergent: divergent}, nil
}

// Record counts one mutation attempt of op with the given outcome.
// A nil receiver records nothing.
func (m *MutationMetrics) Record(ctx context.Context, op, outcome string) {
	if m == nil {
		return
	}
	m.mutations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("outcome", outcome),
	))
	if outcome == OutcomeDivergent {
		m.divergent.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
	}
}
