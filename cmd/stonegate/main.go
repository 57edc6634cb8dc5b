package main

import (
	"flag"
	"log"

	"github.com/Carmen-Shannon/stonegate/engine"
	"github.com/Carmen-Shannon/stonegate/engine/audio"
	"github.com/Carmen-Shannon/stonegate/engine/config"
	"github.com/Carmen-Shannon/stonegate/engine/renderer"
	"github.com/Carmen-Shannon/stonegate/engine/renderer/wgpu_backend"
	"github.com/Carmen-Shannon/stonegate/engine/resources"
	"github.com/Carmen-Shannon/stonegate/engine/window"
	"github.com/Carmen-Shannon/stonegate/gateway"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML settings file")
	flag.Parse()

	// ── Config ──────────────────────────────────────────────────────────
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// ── Window ──────────────────────────────────────────────────────────
	win := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)

	// ── Renderer ────────────────────────────────────────────────────────
	presentMode := renderer.PresentModeUncapped
	if cfg.Window.VSync {
		presentMode = renderer.PresentModeVSync
	}
	fb := win.FramebufferSize()
	r := renderer.NewRenderer(
		wgpu_backend.NewBackend(win.SurfaceDescriptor(), false),
		fb[0], fb[1],
		renderer.WithPresentMode(presentMode),
	)

	// ── Resources ───────────────────────────────────────────────────────
	reg, err := resources.NewRegistry(r, cfg)
	if err != nil {
		log.Fatalf("failed to build resources: %v", err)
	}
	defer reg.Release()

	// ── Audio ───────────────────────────────────────────────────────────
	sounds := audio.NewSoundManager(cfg.Audio)
	if err := sounds.Initialize(); err != nil {
		log.Printf("[Audio] disabled: %v", err)
	}
	defer sounds.Cleanup()

	// ── Modes ───────────────────────────────────────────────────────────
	puzzleMode, err := gateway.NewMode(r, reg, cfg, gateway.WithSounds(sounds))
	if err != nil {
		log.Fatalf("failed to build puzzle: %v", err)
	}
	defer puzzleMode.Pipeline().Release()

	// ── Engine ──────────────────────────────────────────────────────────
	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithRenderer(r),
		engine.WithMode(puzzleMode),
		engine.WithProfiling(cfg.Profiling),
	)
	eng.Run()
}
