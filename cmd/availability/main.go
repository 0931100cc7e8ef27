package main

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"availability/internal/config"
	"availability/internal/service/availability"
	"availability/internal/transport/cli"
)

const (
	exitOK         = 0
	exitConfig     = 1
	exitValidation = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	runID := uuid.NewString()
	log := newLogger(stderr, slog.LevelInfo, runID)
	slog.SetDefault(log)

	cfg, err := config.Load(args)
	if err != nil {
		log.Error("config load failed", slog.Any("err", err))
		return exitConfig
	}

	log = newLogger(stderr, parseLogLevel(cfg.LogLevel), runID)
	slog.SetDefault(log)

	log.Debug(
		"starting",
		slog.String("window_start", cfg.WindowStart),
		slog.String("window_end", cfg.WindowEnd),
		slog.String("offset", cfg.Offset),
		slog.String("log_level", cfg.LogLevel),
	)

	req, err := cli.RequestFromConfig(cfg)
	if err != nil {
		log.Error("invalid arguments", slog.Any("err", err))
		return exitValidation
	}

	res, err := cli.NewRunner(log).Run(req)
	if err != nil {
		var vErr *availability.ValidationError
		if errors.As(err, &vErr) {
			return exitValidation
		}
		return exitConfig
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		log.Error("write result failed", slog.Any("err", err))
		return exitConfig
	}
	return exitOK
}

func newLogger(w io.Writer, level slog.Level, runID string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})).With(
		slog.String("service", "availability"),
		slog.String("run_id", runID),
	)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
