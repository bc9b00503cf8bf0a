package gateway

import (
	"sync"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/recipebox/pkg/types"
)

// Notifier is a registry of change observers. Publish delivers an event
// synchronously, in subscription order, on the caller's goroutine.
type Notifier struct {
	mu   sync.RWMutex
	subs []subscription
}

type subscription struct {
	id       string
	observer types.Observer
}

// NewNotifier returns an empty registry.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Subscribe registers o and returns its subscription id (a UUID v7).
// A nil observer is not registered and yields "".
func (n *Notifier) Subscribe(o types.Observer) string {
	if o == nil {
		return ""
	}
	id := uuid.Must(uuid.NewV7()).String()

	n.mu.Lock()
	defer n.mu.Unlock()
	n.subs = append(n.subs, subscription{id: id, observer: o})
	return id
}

// Unsubscribe removes the subscription with the given id and reports
// whether it existed.
func (n *Notifier) Unsubscribe(id string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, s := range n.subs {
		if s.id == id {
			n.subs = append(n.subs[:i:i], n.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of registered observers.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subs)
}

// Publish delivers ev to every observer registered when Publish was called
// and returns how many were notified. Observers may subscribe or unsubscribe
// from inside OnChange; the change applies to the next Publish.
func (n *Notifier) Publish(ev types.ChangeEvent) int {
	n.mu.RLock()
	snapshot := make([]types.Observer, len(n.subs))
	for i, s := range n.subs {
		snapshot[i] = s.observer
	}
	n.mu.RUnlock()

	for _, o := range snapshot {
		o.OnChange(ev)
	}
	return len(snapshot)
}
