package gateway

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const meterName = "github.com/mesh-intelligence/recipebox/gateway"

// Metric names recorded by the gateway.
const (
	MetricOperations    = "recipebox.gateway.operations"
	MetricNotifications = "recipebox.gateway.notifications"
)

// Operation and outcome attribute values.
const (
	opList   = "list"
	opGet    = "get"
	opQuery  = "query" // read on an address that is neither list nor get
	opInsert = "insert"
	opUpdate = "update"
	opDelete = "delete"

	outcomeOK          = "ok"
	outcomeUnsupported = "unsupported"
	outcomeFailed      = "failed"
	outcomeNoop        = "noop"
)

type instruments struct {
	ops           metric.Int64Counter
	notifications metric.Int64Counter
}

func newInstruments(mp metric.MeterProvider) *instruments {
	m := mp.Meter(meterName)

	ops, err := m.Int64Counter(MetricOperations,
		metric.WithDescription("Gateway operations by op and outcome"),
	)
	if err != nil {
		ops = noop.Int64Counter{}
	}
	notifications, err := m.Int64Counter(MetricNotifications,
		metric.WithDescription("Change events published after successful mutations"),
	)
	if err != nil {
		notifications = noop.Int64Counter{}
	}
	return &instruments{ops: ops, notifications: notifications}
}

func (in *instruments) operation(ctx context.Context, op, outcome string) {
	in.ops.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("outcome", outcome),
	))
}

func (in *instruments) notified(ctx context.Context, op string) {
	in.notifications.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
}
