package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/hexlanes/internal/config"
	"github.com/vovakirdan/hexlanes/internal/core"
	"github.com/vovakirdan/hexlanes/internal/storage"
)

// fatal prints an error and exits with status 1.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger builds the process logger. Full-screen frontends own the
// terminal, so they only log when a log file is given.
func newLogger(fullScreen bool) (*log.Logger, func()) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fatal("invalid --log-level: %v", err)
	}

	var out io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			fatal("cannot open log file: %v", err)
		}
		out = f
		closeFn = func() { f.Close() }
	case fullScreen:
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
	return logger, closeFn
}

// loadConfig resolves the game config: file search order first, then
// command-line overrides.
func loadConfig(path, difficulty, scheduler string) config.HexagonConfig {
	cfg, err := config.LoadHexagon(path)
	if err != nil {
		fatal("%v", err)
	}

	if difficulty != "" {
		preset, err := config.ParsePreset(difficulty)
		if err != nil {
			fatal("%v", err)
		}
		config.ApplyHexagonPreset(&cfg, preset)
	}
	if scheduler != "" {
		cfg.Scheduler.Mode = scheduler
	}
	if rootCmd.PersistentFlags().Changed("fps") {
		cfg.Scheduler.TickRate = flagFPS
	}

	if err := cfg.Validate(); err != nil {
		fatal("invalid configuration: %v", err)
	}
	return cfg
}

// runtimeConfig sizes the session to the current terminal.
func runtimeConfig(cfg config.HexagonConfig) core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.Scheduler.TickRate,
		Seed:     flagSeed,
	}
}

// openStore opens the run journal. Play continues without one.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run journal", "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open run journal: %v\n", err)
		return nil
	}
	return store
}
