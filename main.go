// glyphscene runs the scene demo in the local terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"glyphscene/internal/config"
	"glyphscene/internal/host"
	"glyphscene/internal/metrics"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/pkg/profile"
	"github.com/rs/zerolog"
)

func main() {
	mode := flag.String("profile", "", "write a cpu or mem profile to the current directory")
	flag.Parse()

	switch *mode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		fmt.Fprintf(os.Stderr, "error: unknown profile mode %q\n", *mode)
		os.Exit(2)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	// The screen owns stderr while running, so without a log file logs are dropped.
	logger, closer, err := cfg.NewLogger(nil)
	if err != nil {
		return err
	}
	defer closer.Close()

	if cfg.StatsdAddress != "" {
		if err := metrics.Init(cfg.StatsdAddress, []string{"binary:local"}); err != nil {
			logger.Warn().Err(err).Msg("statsd disabled")
		}
		defer metrics.Close() //nolint:errcheck
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	return runHost(screen, cfg, logger)
}

func runHost(screen tcell.Screen, cfg config.Config, logger zerolog.Logger) error {
	h, err := host.New(screen, cfg, logger, uuid.NewString())
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := h.Run(ctx); err != nil {
		h.Close() //nolint:errcheck
		return err
	}
	return h.Close()
}
