// cmd/orrery/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/EngoEngine/engo"
	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-orrery/pkg/audio"
	"github.com/opd-ai/go-orrery/pkg/config"
	"github.com/opd-ai/go-orrery/pkg/engine"
	"github.com/opd-ai/go-orrery/pkg/logging"
	"github.com/opd-ai/go-orrery/pkg/orbit"
	"github.com/opd-ai/go-orrery/pkg/render"
	engorender "github.com/opd-ai/go-orrery/pkg/render/engo"
)

func main() {
	configPath := flag.String("config", "orrery.json", "Path to configuration file")
	createDefault := flag.Bool("default", false, "Create default configuration file")
	system := flag.String("system", "", "System template: "+strings.Join(config.SystemTemplateKeys(), ", "))
	renderer := flag.String("renderer", "engo", "Renderer type: 'engo', 'terminal' or 'headless'")
	frames := flag.Uint64("frames", 0, "Stop after this many frames (headless default 600)")
	logPath := flag.String("log", "orrery.log", "Log file for the terminal renderer")
	fullscreen := flag.Bool("fullscreen", false, "Run in fullscreen mode (Engo only)")
	width := flag.Int("width", 0, "Window width, overrides config (Engo only)")
	height := flag.Int("height", 0, "Window height, overrides config (Engo only)")
	flag.Parse()

	logger := logging.NewLogger()
	var logFile *os.File
	if *renderer == "terminal" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file %s: %v\n", *logPath, err)
			os.Exit(1)
		}
		logFile = f
		logger = logging.NewLoggerWithWriter(f)
	}
	ctx := logging.WithSessionID(context.Background(), logging.GenerateSessionID())

	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	cfg, err := loadConfig(*configPath, *system)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err,
			"config_path", *configPath,
			"system", *system,
		)
		os.Exit(1)
	}
	if *width > 0 {
		cfg.Window.Width = *width
	}
	if *height > 0 {
		cfg.Window.Height = *height
	}
	cfg.Window.Fullscreen = cfg.Window.Fullscreen || *fullscreen

	sim, err := engine.NewSimulation(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to create simulation", err)
		os.Exit(1)
	}

	diag, err := startDiagnostics(ctx, sim, logger)
	if err != nil {
		logger.Error(ctx, "Failed to start diagnostics", err,
			"metrics_addr", cfg.Diagnostics.MetricsAddr,
		)
		os.Exit(1)
	}
	defer diag.Close(ctx)

	if cfg.Audio.Enabled {
		speaker := audio.NewSpeaker()
		if err := speaker.Init(); err != nil {
			logger.Warn(ctx, "Sound disabled", "error", err)
		} else {
			player := audio.NewPlayer(speaker, cfg.Audio.Volume, logger)
			player.Attach(sim.EventBus)
			defer player.Detach()
			defer speaker.Close()
		}
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch *renderer {
	case "engo":
		runEngo(ctx, sim, *frames)
	case "terminal":
		err = runTerminal(ctx, sim, *frames)
		logFile.Close()
	case "headless":
		n := *frames
		if n == 0 {
			n = 600
		}
		err = runHeadless(ctx, sim, n, logger)
	default:
		err = fmt.Errorf("unknown renderer %q", *renderer)
	}
	if err != nil {
		logger.Error(ctx, "Orrery stopped with an error", err, "renderer", *renderer)
		diag.Close(ctx)
		os.Exit(1)
	}
}

// loadConfig reads the configuration, applies the template and environment
// overrides and validates the result
func loadConfig(path, system string) (*config.Config, error) {
	cfg, err := config.LoadConfigWithTemplate(path, system)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnvironmentOverrides(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runEngo opens the window; it returns when the scene exits
func runEngo(ctx context.Context, sim *engine.Simulation, frames uint64) {
	scene := engorender.NewOrreryScene(sim)
	scene.SetMaxFrames(frames)

	go func() {
		<-ctx.Done()
		engo.Exit()
	}()
	engorender.Run(scene, sim.Config.Window)
}

// runTerminal draws the orrery on the terminal until quit
func runTerminal(ctx context.Context, sim *engine.Simulation, frames uint64) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return logging.WrapError(err, "failed to create terminal screen")
	}
	if err := screen.Init(); err != nil {
		return logging.WrapError(err, "failed to initialise terminal screen")
	}
	defer screen.Fini()

	app := render.NewTerminalApp(screen, sim)
	app.SetMaxFrames(frames)
	return app.Run(ctx)
}

// runHeadless steps the simulation at the configured frame rate without a
// display and logs the final state
func runHeadless(ctx context.Context, sim *engine.Simulation, frames uint64, logger *logging.Logger) error {
	fps := sim.Config.Window.FPS
	if fps <= 0 {
		fps = 30
	}
	dt := 1 / float64(fps)
	null := render.NewNullRenderer(logger)

	sim.Start()
	defer sim.Stop()
	for sim.Frames() < frames {
		if err := ctx.Err(); err != nil {
			break
		}
		if sim.Step(nil, dt).Quit {
			break
		}
		sim.Render(null)
	}

	state := sim.GetState()
	logger.Info(ctx, "Headless run finished",
		"frames", state.Frame,
		"sim_days", state.SimSeconds/orbit.OneDaySeconds,
		"focus", state.Focus,
		"bodies", len(state.Bodies),
		"projectiles", len(state.Projectiles),
		"presented", null.Frames(),
	)
	for _, b := range state.Bodies {
		logger.Debug(ctx, "Body position", "body_name", b.Name, "position", b.Position)
	}
	return nil
}
