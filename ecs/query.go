package ecs

// IntersectEntities returns the entities of ents that set also holds.
func IntersectEntities(ents []Entity, set *SparseSet) []Entity {
	if set == nil {
		return nil
	}
	out := ents[:0]
	for _, e := range ents {
		if set.Has(e) {
			out = append(out, e)
		}
	}
	return out
}
