package entity

import (
	"fmt"

	"github.com/milk9111/ldtkdrop/ecs"
)

func NewCameraAt(w *ecs.World, prefab string, x, y float64) (ecs.Entity, error) {
	camera, err := BuildEntity(w, prefab)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, camera, x, y); err != nil {
		return 0, fmt.Errorf("camera: override transform: %w", err)
	}
	return camera, nil
}
