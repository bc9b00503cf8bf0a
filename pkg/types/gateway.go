package types

import (
	"context"
	"errors"
)

// Gateway is the single entry point for reading and changing recipes.
// Which operations are legal depends on the shape of the address:
// the collection accepts Query and Insert, a record accepts Query, Update
// and Delete. Anything else returns ErrUnsupportedAddress without touching
// storage.
type Gateway interface {
	// Query returns every recipe sorted by name (case-insensitive) for the
	// collection, or zero or one recipe for a record.
	Query(ctx context.Context, addr Address) (Recipes, error)

	// List is Query on the collection.
	List(ctx context.Context) (Recipes, error)

	// GetOne returns the recipe with the given id. The bool is false when no
	// such recipe exists.
	GetOne(ctx context.Context, id int64) (Recipe, bool, error)

	// Insert stores a new recipe and returns its record address.
	// Legal only on the collection. Publishes one change event on success.
	Insert(ctx context.Context, addr Address, f Fields) (Address, error)

	// Update replaces all fields of the addressed recipe and returns the
	// number of rows changed (0 or 1). Publishes only when a row changed.
	Update(ctx context.Context, addr Address, f Fields) (int64, error)

	// Delete removes the addressed recipe and returns the number of rows
	// removed (0 or 1). Publishes only when a row was removed.
	Delete(ctx context.Context, addr Address) (int64, error)

	// Subscribe registers o for change events and returns a subscription id.
	Subscribe(o Observer) string

	// Unsubscribe removes the subscription. It reports whether the id was
	// registered.
	Unsubscribe(id string) bool
}

// Change operations carried by ChangeEvent.
const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
)

// ChangeEvent is published after a successful mutation. Address is the
// record that was inserted, updated or deleted.
type ChangeEvent struct {
	Op      string
	Address Address
}

// Observer receives change events.
type Observer interface {
	OnChange(ev ChangeEvent)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ev ChangeEvent)

// OnChange calls f(ev).
func (f ObserverFunc) OnChange(ev ChangeEvent) { f(ev) }

// Gateway and storage errors.
var (
	ErrUnsupportedAddress = errors.New("unsupported address")
	ErrInsertFailed       = errors.New("insert failed")
	ErrStorageUnavailable = errors.New("storage unavailable")
)
