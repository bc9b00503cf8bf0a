package gateway

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/recipebox/pkg/types"
)

func TestNotifier_SubscribeReturnsUUIDv7(t *testing.T) {
	n := NewNotifier()
	id := n.Subscribe(types.ObserverFunc(func(types.ChangeEvent) {}))

	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
	assert.Equal(t, 1, n.Len())
}

func TestNotifier_SubscribeNil(t *testing.T) {
	n := NewNotifier()
	assert.Empty(t, n.Subscribe(nil))
	assert.Zero(t, n.Len())
}

func TestNotifier_PublishInOrder(t *testing.T) {
	n := NewNotifier()
	var order []string
	n.Subscribe(types.ObserverFunc(func(types.ChangeEvent) { order = append(order, "a") }))
	n.Subscribe(types.ObserverFunc(func(types.ChangeEvent) { order = append(order, "b") }))

	delivered := n.Publish(types.ChangeEvent{Op: types.OpInsert, Address: types.Record{ID: 1}})
	assert.Equal(t, 2, delivered)
	assert.Equal(t, []string{"a", "b"}, order)
}

func TestNotifier_PublishWithoutObservers(t *testing.T) {
	assert.Zero(t, NewNotifier().Publish(types.ChangeEvent{Op: types.OpDelete}))
}

func TestNotifier_Unsubscribe(t *testing.T) {
	n := NewNotifier()
	calls := 0
	keep := n.Subscribe(types.ObserverFunc(func(types.ChangeEvent) { calls++ }))
	drop := n.Subscribe(types.ObserverFunc(func(types.ChangeEvent) { t.Error("unsubscribed observer called") }))

	assert.True(t, n.Unsubscribe(drop))
	assert.False(t, n.Unsubscribe(drop))
	assert.False(t, n.Unsubscribe("never-issued"))

	n.Publish(types.ChangeEvent{Op: types.OpUpdate})
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, n.Len())
	assert.NotEqual(t, keep, drop)
}

func TestNotifier_ObserverMayUnsubscribeDuringPublish(t *testing.T) {
	n := NewNotifier()
	var id string
	calls := 0
	id = n.Subscribe(types.ObserverFunc(func(types.ChangeEvent) {
		calls++
		n.Unsubscribe(id)
	}))

	n.Publish(types.ChangeEvent{Op: types.OpInsert})
	n.Publish(types.ChangeEvent{Op: types.OpInsert})
	assert.Equal(t, 1, calls)
	assert.Zero(t, n.Len())
}
