// Package main is the entry point for Legends of Valor.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/samdwyer/valor/internal/game"
	"github.com/samdwyer/valor/internal/gamedata"
	"github.com/samdwyer/valor/internal/logging"
	"github.com/samdwyer/valor/internal/telemetry"
	"github.com/samdwyer/valor/internal/ui"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := game.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	seed, err := run(cfg)
	if err != nil {
		log.Fatalf("Game error: %v", err)
	}
	fmt.Printf("Seed: %d\n", seed)
}

// run plays one session and returns its seed so it can be replayed.
func run(cfg game.Config) (int64, error) {
	if cfg.Seed == 0 {
		seed, err := gamedata.NewSeed()
		if err != nil {
			return 0, err
		}
		cfg.Seed = seed
	}

	out, closeLog, err := openLogOutput(cfg.LogFile)
	if err != nil {
		return 0, err
	}
	defer closeLog()
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, out)
	if err != nil {
		return 0, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry {
		setupOTelEnv()
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
			log.Printf("Game will run without observability")
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}

	data, err := gamedata.LoadAll()
	if err != nil {
		return 0, fmt.Errorf("load game data: %w", err)
	}

	var (
		view  game.View
		input game.Input
		term  *ui.Terminal
	)
	switch cfg.UI {
	case game.UIText:
		view = ui.NewTextView(os.Stdout)
		input = game.NewLineInput(os.Stdin, os.Stdout)
	default:
		screen, err := ui.NewScreen()
		if err != nil {
			return 0, err
		}
		term = ui.NewTerminal(screen)
		defer term.Close()
		view, input = term, term
	}

	g, err := game.New(cfg, data, input, view, logger)
	if err != nil {
		return 0, err
	}
	if err := g.Run(ctx); err != nil {
		return g.Seed(), err
	}
	if term != nil && ctx.Err() == nil {
		term.WaitForKey()
	}
	return g.Seed(), nil
}

// openLogOutput opens the log file for appending, or falls back to stderr
// when no file is configured.
func openLogOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	// An explicit collector endpoint wins over Honeycomb
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}

	apiKey := os.Getenv("HONEYCOMB_VALOR_API_KEY")
	dataset := os.Getenv("HONEYCOMB_VALOR_DATASET")
	if dataset == "" {
		dataset = "valor" // default dataset name
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
