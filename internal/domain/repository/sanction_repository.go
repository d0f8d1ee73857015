// Package repository 定义数据访问层接口
package repository

import (
	"context"
	"time"

	"faction-diplomacy-api/internal/domain/entity"
)

// SanctionFilter 制裁过滤条件
type SanctionFilter struct {
	FactionID string
	Status    entity.SanctionStatus
}

// SanctionRepository 制裁仓储接口
type SanctionRepository interface {
	// Create 创建制裁
	Create(ctx context.Context, sanction *entity.Sanction) error

	// GetByID 根据 ID 获取制裁
	GetByID(ctx context.Context, id string) (*entity.Sanction, error)

	// Update 更新制裁
	Update(ctx context.Context, sanction *entity.Sanction) error

	// List 获取制裁列表
	List(ctx context.Context, filter *SanctionFilter, pagination Pagination) (*PagedResult[*entity.Sanction], error)

	// ListActiveExpired 获取结束日期早于指定时间且仍生效的制裁（维护扫描用）
	ListActiveExpired(ctx context.Context, before time.Time) ([]*entity.Sanction, error)
}
