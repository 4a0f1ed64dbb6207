package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/ldtkdrop/ecs"
	"github.com/milk9111/ldtkdrop/ecs/component"
)

// DefaultCameraLerpFactor is used when a camera carries no factor.
const DefaultCameraLerpFactor = 2.0

// CameraSystem eases the camera toward the player. The camera's Z is its
// own and never follows the target.
type CameraSystem struct{}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	camEntity, _, ok := ecs.Single(w, component.CameraTagComponent.Kind())
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	_, playerTransform, ok := singlePlayer(w)
	if !ok {
		return
	}

	factor := DefaultCameraLerpFactor
	if cam, ok := ecs.Get(w, camEntity, component.CameraComponent.Kind()); ok && cam.LerpFactor > 0 {
		factor = cam.LerpFactor
	}
	t := cp.Clamp(ecs.Delta(w)*factor, 0, 1)

	// Z is its own target, so it stays put.
	pos := cp.Vector{X: camTransform.X, Y: camTransform.Y}
	target := cp.Vector{X: playerTransform.X, Y: playerTransform.Y}
	next := pos.Lerp(target, t)
	camTransform.X = next.X
	camTransform.Y = next.Y
}
