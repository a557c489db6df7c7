package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/soar/padsynth/internal/config"
	"github.com/soar/padsynth/internal/gamepad"
	"github.com/soar/padsynth/internal/hub"
	"github.com/soar/padsynth/internal/log"
	"github.com/soar/padsynth/internal/sdlpad"
	"github.com/soar/padsynth/internal/server"
	"github.com/soar/padsynth/internal/simpad"
	"github.com/soar/padsynth/internal/tray"
)

const shutdownTimeout = 5 * time.Second

// Cross-platform signal handling: use os.Interrupt on all platforms
// On Windows: os.Interrupt is sent when Ctrl+C is pressed
// On Unix: os.Interrupt is equivalent to syscall.SIGINT
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "padsynth:", err)
		os.Exit(2)
	}

	logger, logFile, err := log.Setup(cfg.Log.Level, log.FileOptions{
		Path:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		Compress:   cfg.Log.Compress,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "padsynth:", err)
		os.Exit(1)
	}
	defer logFile.Close()

	if err := run(cfg, logger); err != nil {
		logger.Error("padsynth failed", "error", err)
		logFile.Close()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	sigCtx, stop := signal.NotifyContext(context.Background(), shutdownSignals...)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	var (
		source gamepad.Source
		demo   *simpad.Demo
	)
	switch cfg.Source {
	case config.SourceSim:
		pads := make([]*simpad.Pad, cfg.Sim.Pads)
		for i := range pads {
			pads[i] = simpad.NewStandard(i)
		}
		source = simpad.NewSource(pads...)
		demo = simpad.NewDemo(cfg.Sim.Period, pads...)
		logger.Info("using simulated gamepads", "pads", cfg.Sim.Pads)
	default:
		source = sdlpad.New(cfg.SDL.Deadzone, logger)
	}

	registry := gamepad.NewRegistry()
	reader := gamepad.NewReader(gamepad.ReaderConfig{
		Source:       source,
		Registry:     registry,
		Synthesizer:  gamepad.NewSynthesizer(cfg.MatchMode(), logger),
		PollInterval: cfg.PollInterval,
		Logger:       logger,
	})

	h := hub.NewHub(logger)
	broadcaster := hub.NewBroadcaster(h, reader.Batches(), registry, logger)

	assets, err := frontendFS()
	if err != nil {
		return err
	}
	srv, err := server.New(h, broadcaster, registry, assets, cfg.Addr, logger)
	if err != nil {
		return err
	}

	if demo != nil {
		g.Go(func() error {
			demo.Run(ctx, cfg.PollInterval)
			return nil
		})
	}
	g.Go(func() error { return reader.Run(ctx) })
	g.Go(func() error { return h.Run(ctx) })
	g.Go(func() error { return broadcaster.Run(ctx) })
	g.Go(srv.ListenAndServe)
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	url := server.BrowseURL(cfg.Addr)
	logger.Info("padsynth started", "url", url, "source", cfg.Source, "match", cfg.MatchMode().String())

	if cfg.Tray {
		t := tray.New(url, logger, func() {
			logger.Info("shutdown requested from tray")
			cancel()
		})
		go t.Run(tray.Icon())
		go func() {
			<-ctx.Done()
			t.Quit()
		}()
	} else {
		logger.Info("press Ctrl+C to exit")
	}

	err = g.Wait()
	if dropped := reader.Dropped(); dropped > 0 {
		logger.Warn("event batches dropped while the broadcaster lagged", "count", dropped)
	}
	logger.Info("padsynth stopped")
	return err
}
