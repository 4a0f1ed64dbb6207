package entity

import (
	"fmt"

	"github.com/milk9111/ldtkdrop/asset"
	"github.com/milk9111/ldtkdrop/ecs"
	"github.com/milk9111/ldtkdrop/ecs/component"
)

// NewLevel spawns a current-level entity for an asset handle.
func NewLevel(w *ecs.World, h *asset.Handle) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.LevelComponent.Kind(), &component.Level{
		Handle: h,
		Role:   component.LevelCurrent,
	}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("level: add level component: %w", err)
	}
	return e, nil
}
