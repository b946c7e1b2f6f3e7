package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"geogl/internal/logger"
	"geogl/pkg/app"
	"geogl/pkg/capture"
	"geogl/pkg/config"
	"geogl/pkg/graphics"
	_ "geogl/pkg/graphics/backends"
	"geogl/pkg/window"
)

func init() {
	// GLFW and the GL context must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file (.yaml, .yml or .toml)")
	apiName := flag.String("api", "", "Preferred rendering API: opengl, vulkan or headless (overrides config)")
	frames := flag.Int("frames", 0, "Stop after this many frames (0 = run until closed)")
	snapshot := flag.String("snapshot", "", "Write the viewport to this .png or .bmp file on exit")
	logLevel := flag.String("log", "", "Log level (overrides config)")
	flag.Parse()

	cfg, cfgErr := config.LoadConfig(*configPath)
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	log, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting GEOGL sandbox...")
	if cfgErr != nil {
		log.Warnf("%v", cfgErr)
	}

	if *apiName != "" {
		api, err := graphics.ParseAPI(*apiName)
		if err != nil {
			log.Fatalf("Invalid -api: %v", err)
		}
		cfg.Renderer.API = api
	}

	sel, err := graphics.Resolve(cfg.Renderer.API, graphics.Supported(), log)
	if err != nil {
		log.Fatalf("Failed to select a rendering backend: %v", err)
	}

	win, err := window.New(sel, window.Props{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		VSync:  cfg.Window.VSync,
	}, log)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}

	ctx := graphics.NewContext(sel, log)
	sandbox := app.New(win, ctx, app.Options{FrameRate: cfg.Window.FrameRate, MaxFrames: *frames}, log)
	defer sandbox.Close()

	viewport := app.NewViewportLayer(ctx, cfg.Viewport.Spec(), cfg.Viewport.Clear(), log)
	if err := sandbox.PushLayer(viewport); err != nil {
		log.Errorf("Failed to create viewport: %v", err)
		return
	}

	log.Info("Sandbox initialized, starting main loop...")
	sandbox.Run()

	if *snapshot != "" {
		if err := capture.Save(viewport.Framebuffer(), *snapshot); err != nil {
			log.Errorf("Failed to save snapshot: %v", err)
		} else {
			log.Infof("Saved viewport to %s", *snapshot)
		}
	}
}

func newLogger(cfg config.LogConfig) (*logger.Logger, error) {
	if cfg.File == "" {
		return logger.NewLogger(cfg.Level), nil
	}
	return logger.NewMultiLogger(cfg.Level, cfg.File)
}
