// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"faction-diplomacy-api/internal/application/diplomacy"
	"faction-diplomacy-api/internal/domain/entity"
)

// IncidentResponse 外交冲突响应
type IncidentResponse struct {
	ID             string         `json:"id"`
	PerpetratorID  string         `json:"perpetrator_id"`
	VictimID       string         `json:"victim_id"`
	IncidentType   string         `json:"incident_type,omitempty"`
	Description    string         `json:"description"`
	Severity       int            `json:"severity"`
	TensionImpact  int            `json:"tension_impact"`
	Evidence       entity.JSONMap `json:"evidence,omitempty"`
	Acknowledged   bool           `json:"acknowledged"`
	AcknowledgedAt *time.Time     `json:"acknowledged_at,omitempty"`
	Resolved       bool           `json:"resolved"`
	ResolvedAt     *time.Time     `json:"resolved_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// IncidentListResponse 冲突列表响应
type IncidentListResponse struct {
	Items []*IncidentResponse `json:"items"`
}

// ToIncidentResponse 实体转换为响应
func ToIncidentResponse(in *entity.DiplomaticIncident) *IncidentResponse {
	return &IncidentResponse{
		ID:             in.ID,
		PerpetratorID:  in.PerpetratorID,
		VictimID:       in.VictimID,
		IncidentType:   in.IncidentType,
		Description:    in.Description,
		Severity:       in.Severity,
		TensionImpact:  in.TensionImpact,
		Evidence:       in.Evidence,
		Acknowledged:   in.Acknowledged,
		AcknowledgedAt: in.AcknowledgedAt,
		Resolved:       in.Resolved,
		ResolvedAt:     in.ResolvedAt,
		CreatedAt:      in.CreatedAt,
	}
}

// ToIncidentListResponse 实体列表转换为响应
func ToIncidentListResponse(incidents []*entity.DiplomaticIncident) *IncidentListResponse {
	items := make([]*IncidentResponse, len(incidents))
	for i, in := range incidents {
		items[i] = ToIncidentResponse(in)
	}
	return &IncidentListResponse{Items: items}
}

// RecordIncidentRequest 记录冲突请求
type RecordIncidentRequest struct {
	PerpetratorID string         `json:"perpetrator_id" binding:"required"`
	VictimID      string         `json:"victim_id" binding:"required,nefield=PerpetratorID"`
	IncidentType  string         `json:"incident_type" binding:"omitempty,max=64"`
	Description   string         `json:"description" binding:"required,max=2000"`
	Severity      int            `json:"severity" binding:"required,gte=1,lte=100"`
	TensionImpact int            `json:"tension_impact" binding:"omitempty,gte=0,lte=100"`
	Evidence      entity.JSONMap `json:"evidence" binding:"omitempty"`
}

// ToRecordIncidentInput 转换为服务入参
func (r *RecordIncidentRequest) ToRecordIncidentInput() diplomacy.RecordIncidentInput {
	return diplomacy.RecordIncidentInput{
		PerpetratorID: r.PerpetratorID,
		VictimID:      r.VictimID,
		IncidentType:  r.IncidentType,
		Description:   r.Description,
		Severity:      r.Severity,
		TensionImpact: r.TensionImpact,
		Evidence:      r.Evidence,
	}
}
