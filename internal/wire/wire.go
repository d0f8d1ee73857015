//go:build wireinject
// +build wireinject

// Package wire 提供依赖注入配置
package wire

import (
	"github.com/google/wire"

	"faction-diplomacy-api/internal/application/diplomacy"
	"faction-diplomacy-api/internal/config"
	"faction-diplomacy-api/internal/domain/repository"
	"faction-diplomacy-api/internal/domain/service"
	"faction-diplomacy-api/internal/infrastructure/messaging"
	"faction-diplomacy-api/internal/infrastructure/persistence/postgres"
	"faction-diplomacy-api/internal/infrastructure/persistence/redis"
	"faction-diplomacy-api/internal/interfaces/http/handler"
	"faction-diplomacy-api/internal/interfaces/http/middleware"
	"faction-diplomacy-api/internal/interfaces/http/router"
)

// InitializeApp 初始化 API 服务
func InitializeApp(cfg *config.Config) (*App, func(), error) {
	wire.Build(
		RepoSet,
		RedisSet,
		MessagingSet,
		ServiceSet,
		RouterSet,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}

// InitializeSweeper 初始化清扫进程
func InitializeSweeper(cfg *config.Config) (*Sweeper, func(), error) {
	wire.Build(
		RepoSet,
		RedisSet,
		MessagingSet,
		ServiceSet,
		wire.Struct(new(Sweeper), "*"),
	)
	return nil, nil, nil
}

// PostgresSet PostgreSQL 提供者集合
var PostgresSet = wire.NewSet(
	ProvidePostgresClient,
	postgres.NewTxManager,
	postgres.NewRelationshipRepository,
	postgres.NewTreatyRepository,
	postgres.NewViolationRepository,
	postgres.NewNegotiationRepository,
	postgres.NewEventRepository,
	postgres.NewIncidentRepository,
	postgres.NewUltimatumRepository,
	postgres.NewSanctionRepository,
)

// RedisSet Redis 提供者集合
var RedisSet = wire.NewSet(
	ProvideRedisClient,
	redis.NewCache,
	redis.NewRateLimiter,
	wire.Bind(new(middleware.RateLimiter), new(*redis.RateLimiter)),
)

// MessagingSet 消息队列提供者集合
var MessagingSet = wire.NewSet(
	ProvideMessagingProducer,
	messaging.NewEventPublisher,
	wire.Bind(new(service.EventSink), new(*messaging.EventPublisher)),
)

// RepoSet 整合了具体实现与接口绑定的集合
// 关系仓储经由缓存装饰器暴露，其余仓储直连 PostgreSQL
var RepoSet = wire.NewSet(
	PostgresSet,
	ProvideCachedRelationshipRepository,
	wire.Bind(new(repository.Transactor), new(*postgres.TxManager)),
	wire.Bind(new(repository.TreatyRepository), new(*postgres.TreatyRepository)),
	wire.Bind(new(repository.ViolationRepository), new(*postgres.ViolationRepository)),
	wire.Bind(new(repository.NegotiationRepository), new(*postgres.NegotiationRepository)),
	wire.Bind(new(repository.EventRepository), new(*postgres.EventRepository)),
	wire.Bind(new(repository.IncidentRepository), new(*postgres.IncidentRepository)),
	wire.Bind(new(repository.UltimatumRepository), new(*postgres.UltimatumRepository)),
	wire.Bind(new(repository.SanctionRepository), new(*postgres.SanctionRepository)),
)

// ServiceSet 应用服务提供者集合
var ServiceSet = wire.NewSet(
	ProvidePolicy,
	diplomacy.NewEventRecorder,
	diplomacy.NewTensionService,
	diplomacy.NewTreatyService,
	diplomacy.NewNegotiationService,
	diplomacy.NewIncidentService,
	diplomacy.NewUltimatumService,
	diplomacy.NewSanctionService,
	diplomacy.NewMaintenanceService,
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	handler.NewHealthHandler,
	handler.NewRelationshipHandler,
	handler.NewTreatyHandler,
	handler.NewNegotiationHandler,
	handler.NewEventHandler,
	handler.NewIncidentHandler,
	handler.NewUltimatumHandler,
	handler.NewSanctionHandler,
	handler.NewMaintenanceHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)
