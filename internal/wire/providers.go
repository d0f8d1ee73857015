// Package wire 提供依赖注入配置
package wire

import (
	"time"

	"faction-diplomacy-api/internal/application/diplomacy"
	"faction-diplomacy-api/internal/config"
	"faction-diplomacy-api/internal/domain/repository"
	"faction-diplomacy-api/internal/infrastructure/messaging"
	"faction-diplomacy-api/internal/infrastructure/persistence/postgres"
	"faction-diplomacy-api/internal/infrastructure/persistence/redis"
)

// ProvidePostgresClient 提供 PostgreSQL 客户端
func ProvidePostgresClient(cfg *config.Config) (*postgres.Client, func(), error) {
	client, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}

// ProvideRedisClient 提供 Redis 客户端
func ProvideRedisClient(cfg *config.Config) (*redis.Client, func(), error) {
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}

// ProvideMessagingProducer 提供消息生产者
func ProvideMessagingProducer(redisClient *redis.Client, cfg *config.Config) *messaging.Producer {
	maxLen := cfg.Messaging.RedisStream.MaxLen
	if maxLen <= 0 {
		maxLen = 100000
	}
	return messaging.NewProducer(redisClient.Redis(), int64(maxLen))
}

// ProvidePolicy 提供外交策略阈值
func ProvidePolicy(cfg *config.Config) diplomacy.Policy {
	return diplomacy.PolicyFromConfig(&cfg.Diplomacy)
}

// ProvideCachedRelationshipRepository 用读穿缓存装饰关系仓储
func ProvideCachedRelationshipRepository(pgRepo *postgres.RelationshipRepository, cache *redis.Cache, cfg *config.Config) repository.RelationshipRepository {
	ttl := cfg.Cache.RelationshipTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return redis.NewCachedRelationshipRepository(pgRepo, cache, ttl)
}
