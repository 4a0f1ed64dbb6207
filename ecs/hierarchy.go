package ecs

type hierarchy struct {
	parent   map[Entity]Entity
	children map[Entity][]Entity
}

func (h *hierarchy) link(child, parent Entity) {
	if h.parent == nil {
		h.parent = make(map[Entity]Entity)
		h.children = make(map[Entity][]Entity)
	}
	h.unlinkParent(child)
	h.parent[child] = parent
	h.children[parent] = append(h.children[parent], child)
}

func (h *hierarchy) unlinkParent(child Entity) {
	p, ok := h.parent[child]
	if !ok {
		return
	}
	delete(h.parent, child)
	siblings := h.children[p]
	for i, s := range siblings {
		if s == child {
			siblings = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	if len(siblings) == 0 {
		delete(h.children, p)
	} else {
		h.children[p] = siblings
	}
}

// detach drops every link that mentions e. Orphaned children become roots.
func (h *hierarchy) detach(e Entity) {
	h.unlinkParent(e)
	for _, c := range h.children[e] {
		delete(h.parent, c)
	}
	delete(h.children, e)
}

// SetParent attaches child under parent. Both must be alive.
func SetParent(w *World, child, parent Entity) error {
	if !w.IsAlive(child) || !w.IsAlive(parent) {
		return errEntityNotAlive
	}
	w.hier.link(child, parent)
	return nil
}

// Parent returns the parent of e, if it has one.
func Parent(w *World, e Entity) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	p, ok := w.hier.parent[e]
	return p, ok
}

// Children returns a copy of the direct children of e.
func Children(w *World, e Entity) []Entity {
	if w == nil {
		return nil
	}
	return append([]Entity(nil), w.hier.children[e]...)
}

// DestroyRecursive destroys e and every descendant, deepest first, and
// returns how many entities were removed.
func DestroyRecursive(w *World, e Entity) int {
	if !w.IsAlive(e) {
		return 0
	}
	n := 0
	for _, c := range Children(w, e) {
		n += DestroyRecursive(w, c)
	}
	if w.DestroyEntity(e) {
		n++
	}
	return n
}
