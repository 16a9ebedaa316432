package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/ncruces/zenity"

	"github.com/iburimskiy/magic-circle/internal/config"
	"github.com/iburimskiy/magic-circle/internal/game"
	"github.com/iburimskiy/magic-circle/internal/geometry"
	mlog "github.com/iburimskiy/magic-circle/internal/log"
	"github.com/iburimskiy/magic-circle/internal/session"
	"github.com/iburimskiy/magic-circle/internal/shapes"
	"github.com/iburimskiy/magic-circle/internal/sound"
	"github.com/iburimskiy/magic-circle/internal/terminal"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	frontend := flag.String("frontend", "", "window or terminal (overrides config)")
	withSound := flag.Bool("sound", false, "play a tone on press and release")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	cfg.ApplyFlags(*frontend, *withSound)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fail(cfg.Frontend, fmt.Errorf("config: %w", err))
	}

	mlog.Init(mlog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	})
	defer mlog.Close()

	if err := run(cfg); err != nil {
		mlog.L().Error("exit", "err", err)
		_ = mlog.Close()
		fail(cfg.Frontend, err)
	}
}

func run(cfg config.AppConfig) error {
	hooks := session.Hooks{}
	if cfg.Sound.Enabled {
		chime, err := sound.Open(sound.Options{
			PressHz:   cfg.Sound.PressHz,
			ReleaseHz: cfg.Sound.ReleaseHz,
			Duration:  time.Duration(cfg.Sound.DurationMs) * time.Millisecond,
			Gain:      cfg.Sound.Gain(),
		}, mlog.WithComponent("sound"))
		if err != nil {
			mlog.L().Warn("audio unavailable, continuing silently", "err", err)
		}
		hooks.OnPress = func(geometry.Point) { chime.Press() }
		hooks.OnRelease = func(geometry.Hexagram) { chime.Release() }
	}

	list := shapes.NewDisplayList()
	sess := session.New(list, hooks, mlog.WithComponent("session"))

	switch cfg.Frontend {
	case config.FrontendTerminal:
		screen, err := terminal.Open()
		if err != nil {
			return err
		}
		defer screen.Fini()
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err = terminal.New(screen, cfg.Style, list, sess, mlog.WithComponent("terminal")).Run(ctx)
		if err == context.Canceled {
			return nil
		}
		return err
	default:
		g := game.New(cfg, list, sess, mlog.WithComponent("game"))
		return game.Run(cfg, g)
	}
}

// fail reports a fatal error and exits. Window users may have no console, so
// they also get a dialog.
func fail(frontend string, err error) {
	fmt.Fprintln(os.Stderr, "magic-circle:", err)
	if frontend != config.FrontendTerminal {
		_ = zenity.Error(err.Error(), zenity.Title("Magic Circle"), zenity.ErrorIcon)
	}
	os.Exit(1)
}
