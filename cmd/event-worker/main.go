// Package main 外交事件消费进程入口（event-worker）
// 订阅事件流，按事件涉及的阵营失效各副本的关系缓存
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"faction-diplomacy-api/internal/config"
	"faction-diplomacy-api/internal/domain/entity"
	"faction-diplomacy-api/internal/infrastructure/messaging"
	"faction-diplomacy-api/internal/infrastructure/persistence/redis"
	"faction-diplomacy-api/pkg/logger"
	"faction-diplomacy-api/pkg/metrics"
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

	ctx := context.Background()
	log := logger.FromContext(ctx)
	log.Info("starting event-worker",
		"version", Version,
		"build_time", BuildTime,
		"env", cfg.App.Env,
	)

	shutdown, err := tracer.Init(ctx, tracer.Config{
		ServiceName: cfg.App.Name + "-event-worker",
		Endpoint:    cfg.Observability.Tracing.Endpoint,
		SampleRate:  cfg.Observability.Tracing.SampleRate,
		Enabled:     cfg.Observability.Tracing.Enabled,
	})
	if err != nil {
		log.Error("failed to init tracer", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdown(context.Background()) }()

	redisClient, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		logger.Fatal(ctx, "failed to init redis", err)
	}
	defer func() { _ = redisClient.Close() }()

	cache := redis.NewCache(redisClient)

	consumer := messaging.NewConsumer(redisClient.Redis(), messaging.ConsumerConfig{
		Stream:       messaging.StreamDiplomacyEvents,
		Group:        messaging.ConsumerGroupWorldSync,
		ConsumerName: hostnameConsumerName(),
		BlockTimeout: cfg.Messaging.RedisStream.BlockTimeout,
		RetryLimit:   cfg.Messaging.RedisStream.RetryLimit,
		Backoff: messaging.BackoffConfig{
			Initial:    cfg.Messaging.RedisStream.RetryBackoff.Initial,
			Max:        cfg.Messaging.RedisStream.RetryBackoff.Max,
			Multiplier: cfg.Messaging.RedisStream.RetryBackoff.Multiplier,
		},
	})

	// 所有事件类型走同一处理器：事件涉及哪些阵营，就失效哪些阵营的缓存
	for _, eventType := range entity.AllEventTypes() {
		consumer.RegisterHandler(string(eventType), syncHandler(cache))
	}

	if err := consumer.Start(ctx); err != nil {
		logger.Fatal(ctx, "failed to start consumer", err)
	}

	log.Info("event-worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("event-worker shutting down")
	consumer.Stop()
}

// syncHandler 处理一条外交事件：失效涉及阵营的关系缓存
func syncHandler(cache *redis.Cache) messaging.MessageHandler {
	return func(ctx context.Context, msg *messaging.Message) error {
		var event entity.DiplomaticEvent
		if err := msg.UnmarshalPayload(&event); err != nil {
			metrics.EventsConsumedTotal.WithLabelValues(msg.Type, "error").Inc()
			return err
		}

		for _, factionID := range event.Factions {
			if err := cache.InvalidateFaction(ctx, factionID); err != nil {
				metrics.EventsConsumedTotal.WithLabelValues(msg.Type, "error").Inc()
				return err
			}
		}

		metrics.EventsConsumedTotal.WithLabelValues(msg.Type, "ok").Inc()
		logger.Info(ctx, "diplomatic event synced",
			"event_id", event.ID,
			"event_type", event.Type,
			"factions", []string(event.Factions),
		)
		return nil
	}
}

func hostnameConsumerName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "worker"
	}
	return fmt.Sprintf("%s-%d", host, os.Getpid())
}
