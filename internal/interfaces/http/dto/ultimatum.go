// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"faction-diplomacy-api/internal/application/diplomacy"
	"faction-diplomacy-api/internal/domain/entity"
)

// UltimatumResponse 最后通牒响应
type UltimatumResponse struct {
	ID                 string         `json:"id"`
	IssuerID           string         `json:"issuer_id"`
	RecipientID        string         `json:"recipient_id"`
	Demand             string         `json:"demand"`
	Terms              entity.JSONMap `json:"terms,omitempty"`
	Deadline           time.Time      `json:"deadline"`
	Status             string         `json:"status"`
	AcceptTrustDelta   int            `json:"accept_trust_delta"`
	RejectTensionDelta int            `json:"reject_tension_delta"`
	RespondedAt        *time.Time     `json:"responded_at,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// UltimatumListResponse 通牒列表响应
type UltimatumListResponse struct {
	Items []*UltimatumResponse `json:"items"`
}

// ToUltimatumResponse 实体转换为响应
func ToUltimatumResponse(u *entity.Ultimatum) *UltimatumResponse {
	return &UltimatumResponse{
		ID:                 u.ID,
		IssuerID:           u.IssuerID,
		RecipientID:        u.RecipientID,
		Demand:             u.Demand,
		Terms:              u.Terms,
		Deadline:           u.Deadline,
		Status:             string(u.Status),
		AcceptTrustDelta:   u.AcceptTrustDelta,
		RejectTensionDelta: u.RejectTensionDelta,
		RespondedAt:        u.RespondedAt,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

// ToUltimatumListResponse 实体列表转换为响应
func ToUltimatumListResponse(ultimatums []*entity.Ultimatum) *UltimatumListResponse {
	items := make([]*UltimatumResponse, len(ultimatums))
	for i, u := range ultimatums {
		items[i] = ToUltimatumResponse(u)
	}
	return &UltimatumListResponse{Items: items}
}

// IssueUltimatumRequest 发出最后通牒请求
type IssueUltimatumRequest struct {
	IssuerID           string         `json:"issuer_id" binding:"required"`
	RecipientID        string         `json:"recipient_id" binding:"required,nefield=IssuerID"`
	Demand             string         `json:"demand" binding:"required,max=2000"`
	Terms              entity.JSONMap `json:"terms" binding:"omitempty"`
	Deadline           time.Time      `json:"deadline" binding:"required"`
	AcceptTrustDelta   int            `json:"accept_trust_delta" binding:"omitempty,gte=0,lte=100"`
	RejectTensionDelta int            `json:"reject_tension_delta" binding:"omitempty,gte=0,lte=100"`
}

// ToIssueUltimatumInput 转换为服务入参
func (r *IssueUltimatumRequest) ToIssueUltimatumInput() diplomacy.IssueUltimatumInput {
	return diplomacy.IssueUltimatumInput{
		IssuerID:           r.IssuerID,
		RecipientID:        r.RecipientID,
		Demand:             r.Demand,
		Terms:              r.Terms,
		Deadline:           r.Deadline,
		AcceptTrustDelta:   r.AcceptTrustDelta,
		RejectTensionDelta: r.RejectTensionDelta,
	}
}
