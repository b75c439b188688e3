package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/humiapp/humi/internal/buildinfo"
	"github.com/humiapp/humi/internal/cli"
	"github.com/humiapp/humi/internal/config"
	"github.com/humiapp/humi/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	// optional; development setups keep API keys here
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)
}
