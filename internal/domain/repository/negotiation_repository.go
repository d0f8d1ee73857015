// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"faction-diplomacy-api/internal/domain/entity"
)

// NegotiationFilter 谈判过滤条件
type NegotiationFilter struct {
	FactionID string
	Status    entity.NegotiationStatus
}

// NegotiationRepository 谈判仓储接口
type NegotiationRepository interface {
	// Create 创建谈判
	Create(ctx context.Context, negotiation *entity.Negotiation) error

	// GetByID 根据 ID 获取谈判
	GetByID(ctx context.Context, id string) (*entity.Negotiation, error)

	// Update 更新谈判
	Update(ctx context.Context, negotiation *entity.Negotiation) error

	// List 获取谈判列表
	List(ctx context.Context, filter *NegotiationFilter, pagination Pagination) (*PagedResult[*entity.Negotiation], error)
}
