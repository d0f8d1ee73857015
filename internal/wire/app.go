// Package wire 提供依赖注入配置
package wire

import (
	"faction-diplomacy-api/internal/application/diplomacy"
	"faction-diplomacy-api/internal/infrastructure/persistence/postgres"
	"faction-diplomacy-api/internal/infrastructure/persistence/redis"
	"faction-diplomacy-api/internal/interfaces/http/router"
)

// App API 服务依赖容器
type App struct {
	Router      *router.Router
	PgClient    *postgres.Client
	RedisClient *redis.Client
}

// Sweeper 后台清扫进程依赖容器
type Sweeper struct {
	Maintenance *diplomacy.MaintenanceService
	PgClient    *postgres.Client
	RedisClient *redis.Client
}
