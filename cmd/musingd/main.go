// Command musingd is the process bootstrap for musing's server engine:
// parse CLI/TOML config, wire the catalog/queue/player/playlist store, scan
// the library, and serve the framed JSON protocol until a shutdown signal
// arrives. Grounded on the teacher's cmd/musicd/main.go (flag parsing,
// signal-triggered context cancellation, ordered component wiring), with
// the auth/media-session wiring dropped per spec.md §1's non-goals and
// the logger swapped from stdlib log to zerolog.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/alfazet/musing/internal/catalog"
	"github.com/alfazet/musing/internal/config"
	"github.com/alfazet/musing/internal/player"
	"github.com/alfazet/musing/internal/playlist"
	"github.com/alfazet/musing/internal/queue"
	"github.com/alfazet/musing/internal/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	fs := pflag.NewFlagSet("musingd", pflag.ExitOnError)
	config.RegisterFlags(fs)
	configPath := fs.String("config", "./musing.toml", "path to the TOML config file")
	fs.Parse(os.Args[1:])

	cfg, err := config.Load(*configPath, fs)
	if err != nil {
		zerolog.New(os.Stderr).With().Timestamp().Logger().Fatal().Err(err).Msg("loading config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Str("version", Version).Logger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		cancel()
	}()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("fatal error")
	}
}

func run(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	cat := catalog.New(cfg.MusicDir, log)
	log.Info().Str("root", cfg.MusicDir).Msg("scanning library")
	if err := cat.Scan(); err != nil {
		return err
	}

	q := queue.New()
	p := player.New(cfg.AudioDevice, log)

	if cfg.PlaylistDir != "" {
		if err := os.MkdirAll(cfg.PlaylistDir, 0o755); err != nil {
			return err
		}
	}
	store := &playlist.Store{Dir: cfg.PlaylistDir, Root: cfg.MusicDir}

	srv := server.New(cfg, log, cat, q, p, store)
	return srv.Run(ctx)
}
