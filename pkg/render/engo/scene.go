// pkg/render/engo/scene.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-orrery/pkg/config"
	"github.com/opd-ai/go-orrery/pkg/engine"
	"github.com/opd-ai/go-orrery/pkg/input"
	"github.com/opd-ai/go-orrery/pkg/orbit"
	"github.com/opd-ai/go-orrery/pkg/render"
	"github.com/opd-ai/go-orrery/pkg/ui"
)

// SimulationSystem steps the simulation once per Engo frame with the input
// queued since the previous frame.
type SimulationSystem struct {
	sim       *engine.Simulation
	queue     *input.Queue
	maxFrames uint64
	exit      func()
	last      engine.StepResult
}

// NewSimulationSystem creates a system stepping sim
func NewSimulationSystem(sim *engine.Simulation, queue *input.Queue) *SimulationSystem {
	return &SimulationSystem{
		sim:   sim,
		queue: queue,
		exit:  engo.Exit,
	}
}

// SetMaxFrames makes the system exit after n steps; 0 runs until quit
func (s *SimulationSystem) SetMaxFrames(n uint64) {
	s.maxFrames = n
}

// Remove satisfies the ecs.System interface
func (s *SimulationSystem) Remove(basic ecs.BasicEntity) {}

// Update steps the simulation by dt seconds
func (s *SimulationSystem) Update(dt float32) {
	s.last = s.sim.Step(s.queue.Drain(), float64(dt))
	if s.last.Quit || (s.maxFrames > 0 && s.sim.Frames() >= s.maxFrames) {
		s.exit()
	}
}

// LastResult returns the result of the latest step
func (s *SimulationSystem) LastResult() engine.StepResult {
	return s.last
}

// OrreryScene is the windowed orrery. Systems run in the order input,
// simulation, camera, HUD, renderer; Engo's render system draws last.
type OrreryScene struct {
	sim       *engine.Simulation
	queue     input.Queue
	assets    *AssetManager
	maxFrames uint64

	panel      *ui.Panel
	input      *InputSystem
	simulation *SimulationSystem
	camera     *CameraSystem
	hud        *HUDSystem
	renderer   *EngoRenderer
}

// NewOrreryScene creates a scene for sim
func NewOrreryScene(sim *engine.Simulation) *OrreryScene {
	return &OrreryScene{
		sim:    sim,
		assets: NewAssetManager(),
	}
}

// SetMaxFrames makes the scene exit after n frames; 0 runs until quit
func (scene *OrreryScene) SetMaxFrames(n uint64) {
	scene.maxFrames = n
}

// Type returns the scene type (required by Engo)
func (scene *OrreryScene) Type() string {
	return "OrreryScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *OrreryScene) Preload() {
	if err := scene.assets.LoadAssets(); err != nil {
		scene.sim.Logger().Warn(scene.sim.Context(), "HUD text disabled", "error", err)
	}
}

// Setup is called when the scene starts (required by Engo)
func (scene *OrreryScene) Setup(u engo.Updater) {
	world, ok := u.(*ecs.World)
	if !ok {
		panic("orrery scene requires an *ecs.World updater")
	}

	common.SetBackground(hexColor(scene.sim.Config.Window.Background, color.Black))
	SetupInputBindings()

	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)
	for _, system := range scene.build(renderSystem, engo.GameWidth(), engo.GameHeight()) {
		world.AddSystem(system)
	}

	engo.Mailbox.Listen("WindowResizeMessage", func(engo.Message) {
		scene.camera.SetViewport(engo.GameWidth(), engo.GameHeight())
	})

	scene.sim.Start()
}

// build creates the orrery systems drawing into sprites, in update order
func (scene *OrreryScene) build(sprites SpriteSystem, width, height float32) []ecs.System {
	scene.panel = ui.NewFocusPanel(scene.sim.Config, ui.DefaultLayout)

	scene.camera = NewCameraSystem(scene.sim.Camera, EngoScale)
	scene.camera.SetViewport(width, height)

	scene.input = NewInputSystem(&scene.queue, scene.panel)
	scene.simulation = NewSimulationSystem(scene.sim, &scene.queue)
	scene.simulation.SetMaxFrames(scene.maxFrames)
	scene.hud = NewHUDSystem(scene.panel, scene.camera, sprites, scene.assets.Font(), scene.statusLine)
	scene.renderer = NewEngoRenderer(scene.sim, sprites, scene.camera, scene.assets)

	return []ecs.System{scene.input, scene.simulation, scene.camera, scene.hud, scene.renderer}
}

func (scene *OrreryScene) statusLine() string {
	return render.StatusLine(scene.sim.Focus.Target(), scene.sim.Camera.Zoom,
		scene.sim.SimSeconds()/orbit.OneDaySeconds, len(scene.sim.Projectiles))
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *OrreryScene) Exit() {
	scene.sim.Stop()
}

// Run opens the window and blocks until the scene exits
func Run(scene *OrreryScene, window config.WindowConfig) {
	opts := engo.RunOptions{
		Title:      window.Title,
		Width:      window.Width,
		Height:     window.Height,
		Fullscreen: window.Fullscreen,
		FPSLimit:   window.FPS,
		VSync:      true,
	}
	engo.Run(opts, scene)
}
