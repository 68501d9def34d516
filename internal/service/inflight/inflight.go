// Package inflight tracks which entities have an edit in progress.
package inflight

import (
	"fmt"
	"sync"

	"github.com/you-humble/workshop/internal/model"
)

type Registry struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{active: make(map[string]struct{})}
}

// TryAcquire marks key as busy. ok is false when key is already held. The
// returned release is idempotent.
func (r *Registry) TryAcquire(key string) (release func(), ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, busy := r.active[key]; busy {
		return func() {}, false
	}
	r.active[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.active, key)
			r.mu.Unlock()
		})
	}, true
}

// Key scopes an entity to a session.
func Key(sessionID string, parent model.Parent) string {
	return fmt.Sprintf("%s/%s/%d", sessionID, parent.Kind, parent.ID)
}
