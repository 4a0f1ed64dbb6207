package ecs

import "github.com/milk9111/ldtkdrop/ecs/component"

// System updates a world each frame.
type System interface {
	Update(w *World)
}

// World owns entities, their component stores and the parent/child links
// between them.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	hier     hierarchy
	delta    float64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes e and all of its components. Children are detached,
// not destroyed; see DestroyRecursive.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, store := range w.stores {
		store.Remove(e)
	}
	w.hier.detach(e)
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// First returns an arbitrary live entity holding kind.
func (w *World) First(kind component.Kind) (Entity, bool) {
	store := w.store(kind, false)
	if store == nil || store.Len() == 0 {
		return 0, false
	}
	return store.denseEntities[0], true
}

// Query returns the entities holding every one of kinds.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, kind := range kinds {
		store := w.store(kind, false)
		if store == nil {
			return nil
		}
		sets = append(sets, store)
	}
	out := sets[0].Entities()
	for _, set := range sets[1:] {
		out = IntersectEntities(out, set)
	}
	return out
}

// Count returns how many entities hold kind.
func (w *World) Count(kind component.Kind) int {
	return w.store(kind, false).Len()
}

func (w *World) store(kind component.Kind, create bool) *SparseSet {
	if w == nil || kind == nil || kind.ID() == 0 {
		return nil
	}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]*SparseSet)
	}
	store, ok := w.stores[kind.ID()]
	if !ok && create {
		store = &SparseSet{}
		w.stores[kind.ID()] = store
	}
	return store
}
