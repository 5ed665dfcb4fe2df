// Command shotplay replays a recorded billiards shot in the terminal
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/lixenwraith/shotplay/audio"
	"github.com/lixenwraith/shotplay/config"
	"github.com/lixenwraith/shotplay/core"
	"github.com/lixenwraith/shotplay/engine"
	"github.com/lixenwraith/shotplay/input"
	"github.com/lixenwraith/shotplay/shot"
	"github.com/lixenwraith/shotplay/status"
	"github.com/lixenwraith/shotplay/terminal"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "shotplay: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	// Terminal must be restored before the report is printed
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flags := config.Flags()
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: shotplay [flags] [shot.json]\n\n%s", flags.FlagUsages())
	}
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if err := config.LoadEnvFile(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "shotplay: %v (ignored)\n", err)
	}
	v := config.New()
	if err := config.Bind(v, flags); err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	logger, logFile, err := setupLogging(cfg.Log, cfg.Debug)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	s, err := loadShot(flags.Args(), cfg)
	if err != nil {
		logger.Error().Err(err).Msg("load shot")
		return err
	}
	logShot(logger, s)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	core.RegisterScreen(screen)
	defer func() {
		core.RegisterScreen(nil)
		screen.Fini()
	}()
	screen.HideCursor()

	sound := audio.NewSoundManager(&cfg.Audio, logger)
	if err := sound.Initialize(); err != nil {
		logger.Warn().Err(err).Msg("audio unavailable, continuing without sound")
	}
	defer sound.Cleanup()

	src := input.NewTcellSource(screen, cfg.Keys, cfg.HoldWindow, logger)
	defer src.Close()

	player, err := engine.New(s, cfg.Engine, engine.Deps{
		Input:     src,
		Presenter: terminal.NewPresenter(screen),
		Sound:     sound,
		Status:    status.NewRegistry(),
		Logger:    logger,
	})
	if err != nil {
		logger.Error().Err(err).Msg("start playback")
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return player.Run(ctx)
}

// loadShot decodes the shot file named in args, or synthesizes a demo shot
// when --demo is set or no file is given
func loadShot(args []string, cfg *config.Config) (shot.Shot, error) {
	if cfg.Demo || len(args) == 0 {
		opts := shot.DefaultSynthOptions()
		if cfg.DemoBalls > 0 {
			opts.Balls = cfg.DemoBalls
		}
		return shot.Synthesize(opts), nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("open shot: %w", err)
	}
	defer f.Close()

	rec, err := shot.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", args[0], err)
	}
	return rec, nil
}

func logShot(logger zerolog.Logger, s shot.Shot) {
	logger.Info().
		Int("frames", s.N()).
		Strs("balls", shot.BallIDs(s)).
		Msg("shot loaded")
}
