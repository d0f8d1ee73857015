// Package repository 定义数据访问层接口
package repository

import (
	"context"
	"time"

	"faction-diplomacy-api/internal/domain/entity"
)

// UltimatumFilter 最后通牒过滤条件
type UltimatumFilter struct {
	FactionID string
	Status    entity.UltimatumStatus
}

// UltimatumRepository 最后通牒仓储接口
type UltimatumRepository interface {
	// Create 创建通牒
	Create(ctx context.Context, ultimatum *entity.Ultimatum) error

	// GetByID 根据 ID 获取通牒
	GetByID(ctx context.Context, id string) (*entity.Ultimatum, error)

	// Update 更新通牒
	Update(ctx context.Context, ultimatum *entity.Ultimatum) error

	// List 获取通牒列表
	List(ctx context.Context, filter *UltimatumFilter, pagination Pagination) (*PagedResult[*entity.Ultimatum], error)

	// ListPendingExpired 获取截止时间早于指定时间且仍待处理的通牒（维护扫描用）
	ListPendingExpired(ctx context.Context, before time.Time) ([]*entity.Ultimatum, error)
}
