package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

type CLI struct {
	Serve   ServeCommand   `cmd:"serve" help:"Start the chat gateway."`
	Chat    ChatCommand    `cmd:"chat" help:"Chat with Gugi in the terminal."`
	Greet   GreetCommand   `cmd:"greet" help:"Ask Gugi for a greeting based on a summary."`
	Status  StatusCommand  `cmd:"status" help:"Create or list status checks."`
	Version VersionCommand `cmd:"version" help:"Print the version of the chat gateway."`
}

func main() {
	// A missing .env file is fine, configuration can come from the environment.
	_ = godotenv.Load()

	var cli CLI
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	kctx := kong.Parse(&cli, kong.UsageOnError(), kong.BindTo(ctx, (*context.Context)(nil)))
	if err := kctx.Run(); err != nil {
		log := getLogger("error")
		log.Error("error", slog.Any("error", err))
		stop()
		os.Exit(1)
	}
}

func getLogger(level string) *slog.Logger {
	ll := slog.LevelInfo
	switch level {
	case "debug":
		ll = slog.LevelDebug
	case "info":
		ll = slog.LevelInfo
	case "warn":
		ll = slog.LevelWarn
	case "error":
		ll = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: ll,
	}))
}
