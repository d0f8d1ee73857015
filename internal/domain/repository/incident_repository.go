// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"faction-diplomacy-api/internal/domain/entity"
)

// IncidentFilter 外交事件（冲突）过滤条件
type IncidentFilter struct {
	FactionID string
	OpenOnly  bool
}

// IncidentRepository 外交冲突仓储接口
type IncidentRepository interface {
	// Create 创建冲突记录
	Create(ctx context.Context, incident *entity.DiplomaticIncident) error

	// GetByID 根据 ID 获取冲突记录
	GetByID(ctx context.Context, id string) (*entity.DiplomaticIncident, error)

	// Update 更新冲突记录
	Update(ctx context.Context, incident *entity.DiplomaticIncident) error

	// List 获取冲突列表
	List(ctx context.Context, filter *IncidentFilter, pagination Pagination) (*PagedResult[*entity.DiplomaticIncident], error)
}
