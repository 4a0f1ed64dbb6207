package system

import (
	"sync"
	"testing"

	"github.com/milk9111/ldtkdrop/asset"
	"github.com/milk9111/ldtkdrop/ecs"
	"github.com/milk9111/ldtkdrop/ecs/component"
	"github.com/milk9111/ldtkdrop/ecs/entity"
)

// recordingLoader forwards to a real asset server and remembers every
// locator it was asked for.
type recordingLoader struct {
	server *asset.Server

	mu       sync.Mutex
	loaded   []asset.Locator
	released []*asset.Handle
}

func newRecordingLoader(t *testing.T) *recordingLoader {
	t.Helper()
	s := asset.NewServer()
	t.Cleanup(func() { _ = s.Close() })
	return &recordingLoader{server: s}
}

func (r *recordingLoader) Load(loc asset.Locator) *asset.Handle {
	r.mu.Lock()
	r.loaded = append(r.loaded, loc)
	r.mu.Unlock()
	return r.server.Load(loc)
}

func (r *recordingLoader) Release(h *asset.Handle) {
	r.mu.Lock()
	r.released = append(r.released, h)
	r.mu.Unlock()
	r.server.Release(h)
}

func newPlayer(t *testing.T, w *ecs.World, x, y, z, speed float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	mustAdd(t, ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{MoveSpeed: speed}))
	mustAdd(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, Z: z}))
	return e
}

func newCamera(t *testing.T, w *ecs.World, x, y, z float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{}))
	mustAdd(t, ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{Zoom: 1.75, LerpFactor: 2}))
	mustAdd(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, Z: z}))
	return e
}

func newLevel(t *testing.T, w *ecs.World, h *asset.Handle) ecs.Entity {
	t.Helper()
	e, err := entity.NewLevel(w, h)
	if err != nil {
		t.Fatalf("spawn level: %v", err)
	}
	return e
}

func mustAdd(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("add component: %v", err)
	}
}

func transformOf(t *testing.T, w *ecs.World, e ecs.Entity) component.Transform {
	t.Helper()
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t.Fatalf("entity %s has no transform", e)
	}
	return *tr
}

func levelEntities(w *ecs.World) []ecs.Entity {
	return w.Query(component.LevelComponent.Kind())
}
