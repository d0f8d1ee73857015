// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"faction-diplomacy-api/internal/application/diplomacy"
	"faction-diplomacy-api/internal/domain/entity"
)

// TreatyResponse 条约响应
type TreatyResponse struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Type          string         `json:"type"`
	Status        string         `json:"status"`
	Parties       []string       `json:"parties"`
	Terms         entity.JSONMap `json:"terms,omitempty"`
	StartDate     time.Time      `json:"start_date"`
	EndDate       *time.Time     `json:"end_date,omitempty"`
	Public        bool           `json:"public"`
	NegotiationID string         `json:"negotiation_id,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// TreatyListResponse 条约列表响应
type TreatyListResponse struct {
	Items []*TreatyResponse `json:"items"`
}

// ToTreatyResponse 实体转换为响应
func ToTreatyResponse(t *entity.Treaty) *TreatyResponse {
	return &TreatyResponse{
		ID:            t.ID,
		Name:          t.Name,
		Type:          string(t.Type),
		Status:        string(t.Status),
		Parties:       t.Parties,
		Terms:         t.Terms,
		StartDate:     t.StartDate,
		EndDate:       t.EndDate,
		Public:        t.Public,
		NegotiationID: t.NegotiationID,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// ToTreatyListResponse 实体列表转换为响应
func ToTreatyListResponse(treaties []*entity.Treaty) *TreatyListResponse {
	items := make([]*TreatyResponse, len(treaties))
	for i, t := range treaties {
		items[i] = ToTreatyResponse(t)
	}
	return &TreatyListResponse{Items: items}
}

// CreateTreatyRequest 创建条约请求
type CreateTreatyRequest struct {
	Name      string         `json:"name" binding:"required,max=200"`
	Type      string         `json:"type" binding:"required"`
	Parties   []string       `json:"parties" binding:"required,min=2"`
	Terms     entity.JSONMap `json:"terms" binding:"omitempty"`
	StartDate *time.Time     `json:"start_date" binding:"omitempty"`
	EndDate   *time.Time     `json:"end_date" binding:"omitempty"`
	Public    *bool          `json:"public" binding:"omitempty"`
}

// ToCreateTreatyInput 转换为服务入参
func (r *CreateTreatyRequest) ToCreateTreatyInput() diplomacy.CreateTreatyInput {
	return diplomacy.CreateTreatyInput{
		Name:      r.Name,
		Type:      entity.TreatyType(r.Type),
		Parties:   r.Parties,
		Terms:     r.Terms,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Public:    r.Public,
	}
}

// ViolationResponse 违约记录响应
type ViolationResponse struct {
	ID             string         `json:"id"`
	TreatyID       string         `json:"treaty_id"`
	ViolatorID     string         `json:"violator_id"`
	VictimID       string         `json:"victim_id,omitempty"`
	Description    string         `json:"description"`
	Severity       int            `json:"severity"`
	Evidence       entity.JSONMap `json:"evidence,omitempty"`
	Acknowledged   bool           `json:"acknowledged"`
	AcknowledgedAt *time.Time     `json:"acknowledged_at,omitempty"`
	Resolved       bool           `json:"resolved"`
	ResolvedAt     *time.Time     `json:"resolved_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// ViolationListResponse 违约列表响应
type ViolationListResponse struct {
	Items []*ViolationResponse `json:"items"`
}

// ToViolationResponse 实体转换为响应
func ToViolationResponse(v *entity.TreatyViolation) *ViolationResponse {
	return &ViolationResponse{
		ID:             v.ID,
		TreatyID:       v.TreatyID,
		ViolatorID:     v.ViolatorID,
		VictimID:       v.VictimID,
		Description:    v.Description,
		Severity:       v.Severity,
		Evidence:       v.Evidence,
		Acknowledged:   v.Acknowledged,
		AcknowledgedAt: v.AcknowledgedAt,
		Resolved:       v.Resolved,
		ResolvedAt:     v.ResolvedAt,
		CreatedAt:      v.CreatedAt,
	}
}

// ToViolationListResponse 实体列表转换为响应
func ToViolationListResponse(violations []*entity.TreatyViolation) *ViolationListResponse {
	items := make([]*ViolationResponse, len(violations))
	for i, v := range violations {
		items[i] = ToViolationResponse(v)
	}
	return &ViolationListResponse{Items: items}
}

// ReportViolationRequest 违约举报请求
type ReportViolationRequest struct {
	ViolatorID  string         `json:"violator_id" binding:"required"`
	VictimID    string         `json:"victim_id" binding:"omitempty"`
	Description string         `json:"description" binding:"required,max=2000"`
	Severity    int            `json:"severity" binding:"required,gte=1,lte=100"`
	Evidence    entity.JSONMap `json:"evidence" binding:"omitempty"`
}

// ToReportViolationInput 转换为服务入参
func (r *ReportViolationRequest) ToReportViolationInput() diplomacy.ReportViolationInput {
	return diplomacy.ReportViolationInput{
		ViolatorID:  r.ViolatorID,
		VictimID:    r.VictimID,
		Description: r.Description,
		Severity:    r.Severity,
		Evidence:    r.Evidence,
	}
}
