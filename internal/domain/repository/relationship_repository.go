// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"faction-diplomacy-api/internal/domain/entity"
)

// RelationshipRepository 阵营关系仓储接口
// 关系按规范化阵营对存储，(A,B) 与 (B,A) 命中同一条记录
type RelationshipRepository interface {
	// Create 创建关系
	Create(ctx context.Context, rel *entity.FactionRelationship) error

	// GetByPair 根据规范化阵营对获取关系；不存在时返回 nil（纯读，无副作用）
	GetByPair(ctx context.Context, factionA, factionB string) (*entity.FactionRelationship, error)

	// Update 更新关系
	Update(ctx context.Context, rel *entity.FactionRelationship) error

	// ListByFaction 获取指定阵营的全部关系
	ListByFaction(ctx context.Context, factionID string, pagination Pagination) (*PagedResult[*entity.FactionRelationship], error)

	// ListByStatus 按状态获取关系列表
	ListByStatus(ctx context.Context, status entity.DiplomaticStatus, pagination Pagination) (*PagedResult[*entity.FactionRelationship], error)
}
