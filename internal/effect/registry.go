package effect

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/ivlev/motionclip/internal/errdefs"
)

// Kind describes a registered effect type.
type Kind struct {
	ID   KindID
	Name string

	// NewBackend constructs the kind's backend.
	NewBackend func(rc *RenderContext) (Backend, error)
}

// Registry maps effect types to kind ids. Kinds are added while a timeline
// is authored; after Freeze the registry is read-only and may be shared.
type Registry struct {
	mu     sync.RWMutex
	ids    map[reflect.Type]KindID
	kinds  []Kind
	frozen bool
}

func NewRegistry() *Registry {
	return &Registry{ids: make(map[reflect.Type]KindID)}
}

// KindOf returns the kind id of e's concrete type, registering the type on
// first sight.
func (r *Registry) KindOf(e Effect) (KindID, error) {
	if e == nil {
		return 0, fmt.Errorf("%w: nil effect", errdefs.ErrAuthoring)
	}
	typ := reflect.TypeOf(e)

	r.mu.RLock()
	id, ok := r.ids[typ]
	r.mu.RUnlock()
	if ok {
		return id, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.ids[typ]; ok {
		return id, nil
	}
	if r.frozen {
		return 0, fmt.Errorf("%w: effect type %s seen after the registry was frozen",
			errdefs.ErrInternalConsistency, typ)
	}
	id = KindID(len(r.kinds))
	r.ids[typ] = id
	r.kinds = append(r.kinds, Kind{
		ID:         id,
		Name:       typ.String(),
		NewBackend: e.NewBackend,
	})
	return id, nil
}

// Kind returns the descriptor for id.
func (r *Registry) Kind(id KindID) (Kind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id < 0 || int(id) >= len(r.kinds) {
		return Kind{}, false
	}
	return r.kinds[id], true
}

// Kinds returns all registered kinds ordered by id.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Kind(nil), r.kinds...)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.kinds)
}

// Freeze stops the registry from accepting new types.
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}
