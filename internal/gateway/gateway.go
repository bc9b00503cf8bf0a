// Package gateway implements the record access gateway: the one entry point
// that routes recipe operations to the storage engine by address shape and
// publishes change events after successful mutations.
package gateway

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/mesh-intelligence/recipebox/pkg/types"
)

// Compile-time interface check: Gateway must implement types.Gateway.
var _ types.Gateway = (*Gateway)(nil)

// Store is the storage primitive set the gateway delegates to.
// *sqlite.Backend satisfies it.
type Store interface {
	ExecuteInsert(ctx context.Context, f types.Fields) (int64, error)
	ExecuteUpdate(ctx context.Context, id int64, f types.Fields) (int64, error)
	ExecuteDelete(ctx context.Context, id int64) (int64, error)
	ExecuteQuery(ctx context.Context, id int64, order types.SortOrder) types.Recipes
}

// Option configures New.
type Option func(*Gateway)

// WithLogger sets the logger mutations are reported to at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gateway) { g.logger = l }
}

// WithMeterProvider sets the meter provider for gateway metrics. The
// default is the global OpenTelemetry provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(g *Gateway) { g.meterProvider = mp }
}

// WithTracerProvider sets the tracer provider for gateway spans. The
// default is the global OpenTelemetry provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(g *Gateway) { g.tracerProvider = tp }
}

// WithNotifier shares an existing notifier instead of creating one.
func WithNotifier(n *Notifier) Option {
	return func(g *Gateway) { g.notifier = n }
}

// Gateway routes operations to a Store. It holds no row state; every read
// goes to the store.
type Gateway struct {
	store         Store
	notifier      *Notifier
	logger        *slog.Logger
	meterProvider metric.MeterProvider
	metrics       *instruments

	tracerProvider trace.TracerProvider
	tracer         trace.Tracer
}

// New returns a Gateway over store.
func New(store Store, opts ...Option) *Gateway {
	g := &Gateway{store: store}
	for _, opt := range opts {
		opt(g)
	}
	if g.notifier == nil {
		g.notifier = NewNotifier()
	}
	if g.logger == nil {
		g.logger = slog.New(slog.DiscardHandler)
	}
	if g.meterProvider == nil {
		g.meterProvider = otel.GetMeterProvider()
	}
	g.metrics = newInstruments(g.meterProvider)
	if g.tracerProvider == nil {
		g.tracerProvider = otel.GetTracerProvider()
	}
	g.tracer = g.tracerProvider.Tracer(meterName)
	return g
}

// Query returns every recipe ordered by name for the collection, or the
// zero-or-one matching recipe for a valid record address.
//
// The result is lazy. The operation is counted when the sequence is
// returned, so storage errors met while ranging reach the caller through
// the sequence but never show up as a failed outcome. An address that is
// neither form is counted under op "query".
func (g *Gateway) Query(ctx context.Context, addr types.Address) (types.Recipes, error) {
	ctx, span := g.start(ctx, opQuery, addr)
	defer span.End()

	switch a := addr.(type) {
	case types.Collection:
		g.metrics.operation(ctx, opList, outcomeOK)
		return g.store.ExecuteQuery(ctx, 0, types.SortByName), nil
	case types.Record:
		if a.Valid() {
			g.metrics.operation(ctx, opGet, outcomeOK)
			return g.store.ExecuteQuery(ctx, a.ID, types.SortUnordered), nil
		}
	}
	g.metrics.operation(ctx, opQuery, outcomeUnsupported)
	return nil, fail(span, unsupported(opQuery, addr))
}

// List returns every recipe ordered by name, case-insensitive.
func (g *Gateway) List(ctx context.Context) (types.Recipes, error) {
	return g.Query(ctx, types.Collection{})
}

// GetOne returns the recipe with the given id, if any.
func (g *Gateway) GetOne(ctx context.Context, id int64) (types.Recipe, bool, error) {
	seq, err := g.Query(ctx, types.Record{ID: id})
	if err != nil {
		return types.Recipe{}, false, err
	}
	for r, err := range seq {
		if err != nil {
			return types.Recipe{}, false, err
		}
		return r, true, nil
	}
	return types.Recipe{}, false, nil
}

// Insert stores f as a new recipe. Legal only on the collection.
func (g *Gateway) Insert(ctx context.Context, addr types.Address, f types.Fields) (types.Address, error) {
	ctx, span := g.start(ctx, opInsert, addr)
	defer span.End()

	if _, ok := addr.(types.Collection); !ok {
		g.metrics.operation(ctx, opInsert, outcomeUnsupported)
		return nil, fail(span, unsupported(opInsert, addr))
	}

	id, err := g.store.ExecuteInsert(ctx, f)
	if err != nil {
		g.metrics.operation(ctx, opInsert, outcomeFailed)
		return nil, fail(span, err)
	}
	if id <= 0 {
		g.metrics.operation(ctx, opInsert, outcomeFailed)
		return nil, fail(span, fmt.Errorf("%w: store assigned row id %d", types.ErrInsertFailed, id))
	}

	g.metrics.operation(ctx, opInsert, outcomeOK)
	rec := types.Record{ID: id}
	g.logger.DebugContext(ctx, "recipe inserted", "address", rec.String())
	g.publish(ctx, types.ChangeEvent{Op: types.OpInsert, Address: rec})
	return rec, nil
}

// Update replaces all fields of the addressed recipe. Legal only on a
// record. A zero count is a valid outcome and publishes nothing.
func (g *Gateway) Update(ctx context.Context, addr types.Address, f types.Fields) (int64, error) {
	ctx, span := g.start(ctx, opUpdate, addr)
	defer span.End()

	rec, ok := addr.(types.Record)
	if !ok || !rec.Valid() {
		g.metrics.operation(ctx, opUpdate, outcomeUnsupported)
		return 0, fail(span, unsupported(opUpdate, addr))
	}

	n, err := g.store.ExecuteUpdate(ctx, rec.ID, f)
	if err != nil {
		g.metrics.operation(ctx, opUpdate, outcomeFailed)
		return 0, fail(span, err)
	}
	if n == 0 {
		g.metrics.operation(ctx, opUpdate, outcomeNoop)
		return 0, nil
	}

	g.metrics.operation(ctx, opUpdate, outcomeOK)
	g.logger.DebugContext(ctx, "recipe updated", "address", rec.String())
	g.publish(ctx, types.ChangeEvent{Op: types.OpUpdate, Address: rec})
	return n, nil
}

// Delete removes the addressed recipe. Legal only on a record. A zero
// count is a valid outcome and publishes nothing.
func (g *Gateway) Delete(ctx context.Context, addr types.Address) (int64, error) {
	ctx, span := g.start(ctx, opDelete, addr)
	defer span.End()

	rec, ok := addr.(types.Record)
	if !ok || !rec.Valid() {
		g.metrics.operation(ctx, opDelete, outcomeUnsupported)
		return 0, fail(span, unsupported(opDelete, addr))
	}

	n, err := g.store.ExecuteDelete(ctx, rec.ID)
	if err != nil {
		g.metrics.operation(ctx, opDelete, outcomeFailed)
		return 0, fail(span, err)
	}
	if n == 0 {
		g.metrics.operation(ctx, opDelete, outcomeNoop)
		return 0, nil
	}

	g.metrics.operation(ctx, opDelete, outcomeOK)
	g.logger.DebugContext(ctx, "recipe deleted", "address", rec.String())
	g.publish(ctx, types.ChangeEvent{Op: types.OpDelete, Address: rec})
	return n, nil
}

// Subscribe registers o for change events.
func (g *Gateway) Subscribe(o types.Observer) string {
	return g.notifier.Subscribe(o)
}

// Unsubscribe removes a subscription.
func (g *Gateway) Unsubscribe(id string) bool {
	return g.notifier.Unsubscribe(id)
}

func (g *Gateway) publish(ctx context.Context, ev types.ChangeEvent) {
	g.metrics.notified(ctx, ev.Op)
	g.notifier.Publish(ev)
}

func (g *Gateway) start(ctx context.Context, op string, addr types.Address) (context.Context, trace.Span) {
	target := "<nil>"
	if addr != nil {
		target = addr.String()
	}
	return g.tracer.Start(ctx, "gateway."+op,
		trace.WithAttributes(attribute.String("recipebox.address", target)))
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func unsupported(op string, addr types.Address) error {
	return fmt.Errorf("%w: %s on %v", types.ErrUnsupportedAddress, op, addr)
}
