// Package main 到期清扫进程入口：周期性处理过期条约、通牒、制裁
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"faction-diplomacy-api/internal/config"
	"faction-diplomacy-api/internal/wire"
	"faction-diplomacy-api/pkg/logger"
	"faction-diplomacy-api/pkg/tracer"
)

// Version 版本信息，构建时注入
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(
		cfg.Observability.Logging.Level,
		cfg.Observability.Logging.Format,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log := logger.FromContext(ctx)
	log.Info("starting sweeper",
		"version", Version,
		"build_time", BuildTime,
		"env", cfg.App.Env,
	)

	shutdown, err := tracer.Init(ctx, tracer.Config{
		ServiceName: cfg.App.Name + "-sweeper",
		Endpoint:    cfg.Observability.Tracing.Endpoint,
		SampleRate:  cfg.Observability.Tracing.SampleRate,
		Enabled:     cfg.Observability.Tracing.Enabled,
	})
	if err != nil {
		log.Error("failed to init tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Error("failed to shutdown tracer", "error", err)
		}
	}()

	sweeper, cleanup, err := wire.InitializeSweeper(cfg)
	if err != nil {
		logger.Fatal(ctx, "failed to initialize sweeper", err)
	}
	defer cleanup()

	interval := cfg.Diplomacy.SweepInterval
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.Info("sweep loop started", "interval", interval.String())

	// 启动时先清扫一轮，避免等待首个周期
	sweeper.Maintenance.SweepAll(ctx)

	for {
		select {
		case <-ticker.C:
			sweeper.Maintenance.SweepAll(ctx)
		case <-quit:
			log.Info("shutting down sweeper...")
			cancel()
			log.Info("sweeper exited")
			return
		}
	}
}
