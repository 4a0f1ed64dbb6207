package main

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/ldtkdrop/asset"
	"github.com/milk9111/ldtkdrop/ecs"
	"github.com/milk9111/ldtkdrop/ecs/entity"
	"github.com/milk9111/ldtkdrop/ecs/render"
	"github.com/milk9111/ldtkdrop/ecs/system"
	"github.com/milk9111/ldtkdrop/input"
	"github.com/milk9111/ldtkdrop/input/desktop"
	"github.com/milk9111/ldtkdrop/levels"
	"github.com/milk9111/ldtkdrop/prefabs"
)

type Game struct {
	width  int
	height int
	debug  bool

	world     *ecs.World
	scheduler *ecs.Scheduler
	assets    *asset.Server
	drops     *desktop.Drops
	inbox     *input.InboxWatcher

	renderer *render.RenderSystem
	hud      *render.HUD
	overlay  *render.DropOverlay

	closed bool
}

func NewGame(spec prefabs.GameSpec, debug bool) (*Game, error) {
	bindings, err := desktop.ParseBindings(spec.Bindings.Up, spec.Bindings.Down, spec.Bindings.Left, spec.Bindings.Right)
	if err != nil {
		return nil, err
	}

	g := &Game{
		width:    spec.Window.Width,
		height:   spec.Window.Height,
		debug:    debug,
		world:    ecs.NewWorld(),
		assets:   asset.NewServer(),
		renderer: render.NewRenderSystem(),
		hud:      render.NewHUD(),
		overlay:  render.NewDropOverlay(spec.Window.Width, spec.Window.Height),
	}
	if spec.HotReload {
		if err := g.assets.Watch(); err != nil {
			log.Printf("game: hot reload disabled: %v", err)
		}
	}

	queue := &input.Queue{}
	g.drops = desktop.NewDrops(queue)
	if err := g.drops.EnableClipboard(); err != nil {
		log.Printf("game: clipboard paste disabled: %v", err)
	}
	if spec.Inbox.Dir != "" {
		settle := time.Duration(spec.Inbox.SettleMS) * time.Millisecond
		g.inbox, err = input.NewInboxWatcher(spec.Inbox.Dir, settle, queue)
		if err != nil {
			g.Close()
			return nil, fmt.Errorf("game: watch inbox %s: %w", spec.Inbox.Dir, err)
		}
		log.Printf("game: watching inbox %s", spec.Inbox.Dir)
	}

	builtin, err := builtinLocators(spec.Levels.Builtin)
	if err != nil {
		g.Close()
		return nil, err
	}

	levelSystem := system.NewLevelSystem(g.assets, queue, builtin)
	levelSystem.SetObserver(g.overlay)
	g.scheduler = ecs.NewScheduler(
		levelSystem,
		system.NewMovementSystem(desktop.NewKeyboard(bindings)),
		system.NewCameraSystem(),
		system.NewLevelSpawnSystem(g.assets, spec.Levels.Selection),
	)

	if err := g.spawnStartup(spec, levelSystem); err != nil {
		g.Close()
		return nil, err
	}
	return g, nil
}

// builtinLocators resolves configured level names against the embedded
// projects, skipping names that are not shipped.
func builtinLocators(names []string) ([]asset.Locator, error) {
	embedded := make(map[string]struct{})
	for _, name := range levels.Builtin() {
		embedded[name] = struct{}{}
	}
	out := make([]asset.Locator, 0, len(names))
	for _, name := range names {
		if _, ok := embedded[name]; !ok {
			log.Printf("game: built-in level %s is not embedded, skipping", name)
			continue
		}
		out = append(out, asset.Locator{Path: name, FS: levels.LevelsFS})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("game: none of the built-in levels %v are embedded", names)
	}
	return out, nil
}

// spawnStartup creates the camera, the player and the first level.
func (g *Game) spawnStartup(spec prefabs.GameSpec, levelSystem *system.LevelSystem) error {
	w, h := float64(g.width), float64(g.height)
	if _, err := entity.NewCameraAt(g.world, spec.Prefabs.Camera, w/2, h/2); err != nil {
		return fmt.Errorf("game: spawn camera: %w", err)
	}
	if _, err := entity.NewPlayerAt(g.world, spec.Prefabs.Player, w/2, h-30); err != nil {
		return fmt.Errorf("game: spawn player: %w", err)
	}
	if _, err := levelSystem.LoadInitial(g.world, spec.Levels.Default); err != nil {
		return fmt.Errorf("game: load initial level: %w", err)
	}
	return nil
}

func (g *Game) Update() error {
	ecs.SetDelta(g.world, 1/float64(ebiten.TPS()))
	g.drops.Poll()
	g.scheduler.Update(g.world)
	g.overlay.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(g.world, screen)
	if g.debug {
		g.hud.Draw(g.world, screen)
	}
	g.overlay.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true
	if g.inbox != nil {
		if err := g.inbox.Close(); err != nil {
			log.Printf("game: close inbox: %v", err)
		}
	}
	if err := g.assets.Close(); err != nil {
		log.Printf("game: close assets: %v", err)
	}
}

// runGame runs g with run and shuts it down however run returns.
func runGame(g *Game, run func(ebiten.Game) error) error {
	defer g.Close()
	return run(g)
}
