package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/tessaro/storefront/internal/cli"
)

func main() {
	// Optional; env vars win over .env file values.
	_ = godotenv.Load()

	configureLogging()

	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(cli.GetExitCode(err))
	}
}

// configureLogging sets the process-wide slog default from the environment:
// STOREFRONT_LOG_LEVEL (debug|info|warn|error, default info) and
// STOREFRONT_LOG_FORMAT (text|json, default text).
func configureLogging() {
	level := slog.LevelInfo
	switch os.Getenv("STOREFRONT_LOG_LEVEL") {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if os.Getenv("STOREFRONT_LOG_FORMAT") == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
