// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"faction-diplomacy-api/internal/domain/entity"
)

// RelationshipResponse 阵营关系响应
type RelationshipResponse struct {
	ID              string    `json:"id"`
	FactionAID      string    `json:"faction_a_id"`
	FactionBID      string    `json:"faction_b_id"`
	Status          string    `json:"status"`
	TrustLevel      int       `json:"trust_level"`
	TensionLevel    int       `json:"tension_level"`
	LastInteraction time.Time `json:"last_interaction"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// RelationshipListResponse 关系列表响应
type RelationshipListResponse struct {
	Items []*RelationshipResponse `json:"items"`
}

// ToRelationshipResponse 实体转换为响应
func ToRelationshipResponse(rel *entity.FactionRelationship) *RelationshipResponse {
	return &RelationshipResponse{
		ID:              rel.ID,
		FactionAID:      rel.FactionAID,
		FactionBID:      rel.FactionBID,
		Status:          string(rel.Status),
		TrustLevel:      rel.TrustLevel,
		TensionLevel:    rel.TensionLevel,
		LastInteraction: rel.LastInteraction,
		CreatedAt:       rel.CreatedAt,
		UpdatedAt:       rel.UpdatedAt,
	}
}

// ToRelationshipListResponse 实体列表转换为响应
func ToRelationshipListResponse(rels []*entity.FactionRelationship) *RelationshipListResponse {
	items := make([]*RelationshipResponse, len(rels))
	for i, rel := range rels {
		items[i] = ToRelationshipResponse(rel)
	}
	return &RelationshipListResponse{Items: items}
}

// EstablishRelationshipRequest 建立关系请求
// 已存在时返回现有关系，不做任何修改
type EstablishRelationshipRequest struct {
	FactionAID string `json:"faction_a_id" binding:"required"`
	FactionBID string `json:"faction_b_id" binding:"required,nefield=FactionAID"`
}

// AdjustTensionRequest 调整紧张度请求
type AdjustTensionRequest struct {
	FactionAID string `json:"faction_a_id" binding:"required"`
	FactionBID string `json:"faction_b_id" binding:"required,nefield=FactionAID"`
	Delta      int    `json:"delta" binding:"required"`
	Reason     string `json:"reason" binding:"omitempty,max=500"`
}

// AdjustTrustRequest 调整信任度请求
type AdjustTrustRequest struct {
	FactionAID string `json:"faction_a_id" binding:"required"`
	FactionBID string `json:"faction_b_id" binding:"required,nefield=FactionAID"`
	Delta      int    `json:"delta" binding:"required"`
	Reason     string `json:"reason" binding:"omitempty,max=500"`
}

// SetStatusRequest 强制设置外交状态请求
// 显式覆盖优先于阈值推导
type SetStatusRequest struct {
	FactionAID string `json:"faction_a_id" binding:"required"`
	FactionBID string `json:"faction_b_id" binding:"required,nefield=FactionAID"`
	Status     string `json:"status" binding:"required"`
	Reason     string `json:"reason" binding:"omitempty,max=500"`
}
