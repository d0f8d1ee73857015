// Package repository 定义数据访问层接口
package repository

import (
	"context"
	"time"

	"faction-diplomacy-api/internal/domain/entity"
)

// TreatyFilter 条约过滤条件
type TreatyFilter struct {
	FactionID string
	Status    entity.TreatyStatus
	Type      entity.TreatyType
}

// TreatyRepository 条约仓储接口
type TreatyRepository interface {
	// Create 创建条约
	Create(ctx context.Context, treaty *entity.Treaty) error

	// GetByID 根据 ID 获取条约
	GetByID(ctx context.Context, id string) (*entity.Treaty, error)

	// Update 更新条约
	Update(ctx context.Context, treaty *entity.Treaty) error

	// List 获取条约列表
	List(ctx context.Context, filter *TreatyFilter, pagination Pagination) (*PagedResult[*entity.Treaty], error)

	// ListActiveExpiring 获取结束日期早于指定时间且仍生效的条约（维护扫描用）
	ListActiveExpiring(ctx context.Context, before time.Time) ([]*entity.Treaty, error)
}

// ViolationRepository 条约违约仓储接口
type ViolationRepository interface {
	// Create 创建违约记录
	Create(ctx context.Context, violation *entity.TreatyViolation) error

	// GetByID 根据 ID 获取违约记录
	GetByID(ctx context.Context, id string) (*entity.TreatyViolation, error)

	// Update 更新违约记录
	Update(ctx context.Context, violation *entity.TreatyViolation) error

	// ListByTreaty 获取条约的全部违约记录
	ListByTreaty(ctx context.Context, treatyID string) ([]*entity.TreatyViolation, error)

	// CountOpenByTreaty 统计条约未解决的违约数量
	CountOpenByTreaty(ctx context.Context, treatyID string) (int64, error)
}
