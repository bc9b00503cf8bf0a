// Package recipebox is the public entry point to a recipe store. Open wires
// the SQLite storage engine to the record access gateway and returns a Box
// that implements types.Gateway.
//
// Example:
//
//	box, err := recipebox.Open(ctx, types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".recipebox-db",
//	})
//	if err != nil {
//	    return err
//	}
//	defer box.Close()
//
//	addr, err := box.Insert(ctx, types.Collection{}, types.Fields{Name: "Pancakes"})
package recipebox

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/mesh-intelligence/recipebox/internal/gateway"
	"github.com/mesh-intelligence/recipebox/internal/sqlite"
	"github.com/mesh-intelligence/recipebox/pkg/types"
)

// Version is the release version of recipebox.
const Version = "0.1.0"

// Option configures Open.
type Option func(*options)

type options struct {
	logger         *slog.Logger
	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider
	upgrade        sqlite.UpgradeFunc
}

// WithLogger sets the logger for the storage engine and the gateway.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMeterProvider sets the provider for gateway counters.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.meterProvider = mp }
}

// WithTracerProvider sets the provider for gateway spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracerProvider = tp }
}

// WithUpgradeHook sets the schema upgrade hook run when an older store is
// opened.
func WithUpgradeHook(fn sqlite.UpgradeFunc) Option {
	return func(o *options) { o.upgrade = fn }
}

// Box is an open recipe store. Close releases the database handles.
type Box struct {
	*gateway.Gateway
	backend *sqlite.Backend
}

var _ types.Gateway = (*Box)(nil)

// Open opens the store described by cfg.
func Open(ctx context.Context, cfg types.Config, opts ...Option) (*Box, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var storeOpts []sqlite.Option
	var gwOpts []gateway.Option
	if o.logger != nil {
		storeOpts = append(storeOpts, sqlite.WithLogger(o.logger))
		gwOpts = append(gwOpts, gateway.WithLogger(o.logger))
	}
	if o.upgrade != nil {
		storeOpts = append(storeOpts, sqlite.WithUpgradeHook(o.upgrade))
	}
	if o.meterProvider != nil {
		gwOpts = append(gwOpts, gateway.WithMeterProvider(o.meterProvider))
	}
	if o.tracerProvider != nil {
		gwOpts = append(gwOpts, gateway.WithTracerProvider(o.tracerProvider))
	}

	backend, err := sqlite.Open(ctx, cfg, storeOpts...)
	if err != nil {
		return nil, err
	}
	return &Box{Gateway: gateway.New(backend, gwOpts...), backend: backend}, nil
}

// Path returns the database file path.
func (b *Box) Path() string {
	return b.backend.Path()
}

// Close closes the store. It is safe to call more than once.
func (b *Box) Close() error {
	return b.backend.Close()
}
