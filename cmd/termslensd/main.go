package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"termslens/internal/app"
	"termslens/internal/config"
	"termslens/internal/logging"
	"termslens/internal/mcp"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}
	_ = godotenv.Load()
	cmd := os.Args[1]
	cfg, err := config.Load(os.Getenv("TL_CONFIG"))
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Dev.Mode)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch cmd {
	case "serve":
		runServe(ctx, cfg, logger)
	case "mcp-stdio":
		runStdio(ctx, cfg, logger)
	default:
		usage()
	}
}

func runServe(ctx context.Context, cfg config.Config, logger *zap.Logger) {
	appInstance, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("app init error", zap.Error(err))
	}
	defer appInstance.Close()

	if err := appInstance.Serve(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func runStdio(ctx context.Context, cfg config.Config, logger *zap.Logger) {
	appInstance, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("app init error", zap.Error(err))
	}
	defer appInstance.Close()
	if err := mcp.RunStdio(ctx, appInstance.MCP, os.Stdin, os.Stdout); err != nil {
		logger.Fatal("stdio error", zap.Error(err))
	}
}

func usage() {
	fmt.Println("Usage: termslensd <serve|mcp-stdio>")
}
