package entity

import (
	"fmt"

	"github.com/milk9111/ldtkdrop/ecs"
)

func NewPlayerAt(w *ecs.World, prefab string, x, y float64) (ecs.Entity, error) {
	entity, err := BuildEntity(w, prefab)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, entity, x, y); err != nil {
		return 0, fmt.Errorf("player: override transform: %w", err)
	}
	return entity, nil
}
