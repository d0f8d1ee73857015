// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"faction-diplomacy-api/internal/application/diplomacy"
	"faction-diplomacy-api/internal/domain/entity"
)

// SanctionViolationItem 制裁违规条目
type SanctionViolationItem struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// SanctionResponse 制裁响应
type SanctionResponse struct {
	ID           string                   `json:"id"`
	ImposerID    string                   `json:"imposer_id"`
	TargetID     string                   `json:"target_id"`
	SanctionType string                   `json:"sanction_type,omitempty"`
	Description  string                   `json:"description"`
	Impact       int                      `json:"impact"`
	TensionDelta int                      `json:"tension_delta"`
	StartDate    time.Time                `json:"start_date"`
	EndDate      *time.Time               `json:"end_date,omitempty"`
	Status       string                   `json:"status"`
	Violations   []*SanctionViolationItem `json:"violations"`
	LiftedAt     *time.Time               `json:"lifted_at,omitempty"`
	CreatedAt    time.Time                `json:"created_at"`
	UpdatedAt    time.Time                `json:"updated_at"`
}

// SanctionListResponse 制裁列表响应
type SanctionListResponse struct {
	Items []*SanctionResponse `json:"items"`
}

// ToSanctionResponse 实体转换为响应
func ToSanctionResponse(s *entity.Sanction) *SanctionResponse {
	violations := make([]*SanctionViolationItem, len(s.Violations))
	for i := range s.Violations {
		v := s.Violations[i]
		violations[i] = &SanctionViolationItem{
			ID:          v.ID,
			Description: v.Description,
			RecordedAt:  v.RecordedAt,
		}
	}
	return &SanctionResponse{
		ID:           s.ID,
		ImposerID:    s.ImposerID,
		TargetID:     s.TargetID,
		SanctionType: s.SanctionType,
		Description:  s.Description,
		Impact:       s.Impact,
		TensionDelta: s.TensionDelta,
		StartDate:    s.StartDate,
		EndDate:      s.EndDate,
		Status:       string(s.Status),
		Violations:   violations,
		LiftedAt:     s.LiftedAt,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// ToSanctionListResponse 实体列表转换为响应
func ToSanctionListResponse(sanctions []*entity.Sanction) *SanctionListResponse {
	items := make([]*SanctionResponse, len(sanctions))
	for i, s := range sanctions {
		items[i] = ToSanctionResponse(s)
	}
	return &SanctionListResponse{Items: items}
}

// ImposeSanctionRequest 施加制裁请求
type ImposeSanctionRequest struct {
	ImposerID    string     `json:"imposer_id" binding:"required"`
	TargetID     string     `json:"target_id" binding:"required,nefield=ImposerID"`
	SanctionType string     `json:"sanction_type" binding:"omitempty,max=64"`
	Description  string     `json:"description" binding:"required,max=2000"`
	Impact       int        `json:"impact" binding:"omitempty,gte=0,lte=100"`
	TensionDelta int        `json:"tension_delta" binding:"omitempty,gte=0,lte=100"`
	EndDate      *time.Time `json:"end_date" binding:"omitempty"`
}

// ToImposeSanctionInput 转换为服务入参
func (r *ImposeSanctionRequest) ToImposeSanctionInput() diplomacy.ImposeSanctionInput {
	return diplomacy.ImposeSanctionInput{
		ImposerID:    r.ImposerID,
		TargetID:     r.TargetID,
		SanctionType: r.SanctionType,
		Description:  r.Description,
		Impact:       r.Impact,
		TensionDelta: r.TensionDelta,
		EndDate:      r.EndDate,
	}
}

// RecordSanctionViolationRequest 记录制裁违规请求
type RecordSanctionViolationRequest struct {
	Description string `json:"description" binding:"required,max=2000"`
}
