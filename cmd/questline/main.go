package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"questline/internal/app"
	"questline/internal/model"
	"questline/internal/storage"
	"questline/internal/store"
)

func main() {
	cfg, err := model.LoadConfig(model.DefaultConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.Storage.Path, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create data directory: %v\n", err)
		os.Exit(1)
	}

	log, logFile, err := openLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	kv, err := openStorage(cfg)
	if err != nil {
		log.Error().Err(err).Msg("opening storage")
		fmt.Fprintf(os.Stderr, "Failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer kv.Close()

	s := store.New(kv, log)
	s.Load(context.Background())

	log.Info().
		Str("driver", cfg.Storage.Driver).
		Str("path", cfg.Storage.Path).
		Msg("starting")

	p := tea.NewProgram(app.New(s, cfg.Display.Skin), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("program exited")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openLogger writes structured logs to a file in the data directory. The
// terminal is owned by the TUI, so nothing is logged to stdout.
func openLogger(cfg *model.AppConfig) (zerolog.Logger, *os.File, error) {
	path := filepath.Join(cfg.Storage.Path, "questline.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	log := zerolog.New(f).Level(level).With().Timestamp().Logger()
	return log, f, nil
}

// openStorage selects the key-value provider from configuration.
func openStorage(cfg *model.AppConfig) (storage.KV, error) {
	switch cfg.Storage.Driver {
	case "file":
		return storage.NewFileKV(cfg.Storage.Path)
	case "sqlite", "":
		return storage.NewSQLiteKV(filepath.Join(cfg.Storage.Path, "questline.db"))
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
