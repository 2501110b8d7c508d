package main

import (
	"fmt"
	"math"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/lanerunner/common"
	"github.com/milk9111/lanerunner/ecs"
	"github.com/milk9111/lanerunner/ecs/component"
	"github.com/milk9111/lanerunner/ecs/entity"
	"github.com/milk9111/lanerunner/ecs/render"
	"github.com/milk9111/lanerunner/ecs/system"
	"github.com/milk9111/lanerunner/logging"
	"github.com/milk9111/lanerunner/prefabs"
	"github.com/milk9111/lanerunner/settings"
	"go.uber.org/zap"
)

type GameOptions struct {
	Logger   *zap.Logger
	Settings *settings.Manager
	// Watcher is optional; when set, edited prefabs are re-applied to the scene.
	Watcher *prefabs.Watcher
	// KeyState overrides keyboard polling for the lane input.
	KeyState system.KeyState
	Debug    bool
}

type Game struct {
	frames int

	logger    *zap.Logger
	world     *ecs.World
	scheduler *ecs.Scheduler
	renderer  *render.Renderer
	scene     entity.Scene
	settings  *settings.Manager
	watcher   *prefabs.Watcher

	pauseUI *ebitenui.UI
	paused  bool
	quit    bool
	debug   bool
}

func NewGame(opts GameOptions) (*Game, error) {
	logger := logging.OrNop(opts.Logger)
	if opts.Settings == nil {
		opts.Settings = settings.NewManager(nil, logger)
	}

	world := ecs.NewWorld()
	scene, err := entity.SpawnScene(world)
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}

	input := system.NewInputSystem()
	if opts.KeyState != nil {
		input = system.NewInputSystemWith(opts.KeyState)
	}

	g := &Game{
		logger: logger,
		world:  world,
		scheduler: ecs.NewScheduler(
			input,
			system.NewLaneSlideSystem(logger),
			system.NewRollSystem(logger),
			system.NewPhysicsSystem(logger),
			system.NewCameraSystem(logger),
		),
		renderer: render.NewRenderer(logger),
		scene:    scene,
		settings: opts.Settings,
		watcher:  opts.Watcher,
		debug:    opts.Debug,
	}
	g.pauseUI = NewPauseUI(g)

	logger.Info("scene spawned",
		zap.Stringer("player", scene.Player),
		zap.Stringer("floor", scene.Floor),
		zap.Stringer("camera", scene.Camera),
		zap.Stringer("light", scene.Light),
	)
	return g, nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.settings.ToggleDebug()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(g.settings.ToggleFullscreen())
	}

	if g.watcher != nil {
		names, errs := g.watcher.Poll()
		for _, err := range errs {
			g.logger.Warn("prefab watcher", zap.Error(err))
		}
		g.reloadPrefabs(names)
	}

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.tick()
	return nil
}

// tick advances the simulation by one fixed step.
func (g *Game) tick() {
	g.frames++
	g.world.SetDelta(1.0 / common.TPS)
	g.scheduler.Update(g.world)
}

func (g *Game) reloadPrefabs(names []string) {
	for _, name := range names {
		ok, err := g.scene.Retune(g.world, name)
		switch {
		case err != nil:
			g.logger.Warn("prefab reload failed", zap.String("prefab", name), zap.Error(err))
		case ok:
			g.logger.Info("prefab reloaded", zap.String("prefab", name))
		default:
			g.logger.Debug("ignoring change to unused prefab", zap.String("prefab", name))
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(g.world, screen)

	if g.debug || g.settings.Get().ShowDebug {
		ebitenutil.DebugPrint(screen, g.debugText())
	}

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) debugText() string {
	text := fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS())

	transform, ok := ecs.Get(g.world, g.scene.Player, component.TransformComponent.Kind())
	if !ok {
		return text + "\nno player"
	}
	p := transform.Position
	text += fmt.Sprintf("\npos: %.2f %.2f %.2f  roll: %.0f°", p.X(), p.Y(), p.Z(), transform.Roll*180/math.Pi)

	if input, ok := ecs.Get(g.world, g.scene.Player, component.InputComponent.Kind()); ok {
		text += "\nintent: " + input.Intent.String()
	}
	if slide, ok := ecs.Get(g.world, g.scene.Player, component.LaneSlideComponent.Kind()); ok {
		st := slide.Controller.State()
		text += fmt.Sprintf("\nsliding: %t  target: %.2f", st.Sliding, st.Target.X())
	}
	if grounded, ok := ecs.Get(g.world, g.scene.Player, component.GroundedComponent.Kind()); ok {
		text += fmt.Sprintf("\ngrounded: %t", grounded.OnGround)
	}
	return text
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
