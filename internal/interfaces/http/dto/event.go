// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"faction-diplomacy-api/internal/domain/entity"
)

// EventResponse 外交事件响应
type EventResponse struct {
	ID            string        `json:"id"`
	Type          string        `json:"type"`
	Factions      []string      `json:"factions"`
	Description   string        `json:"description"`
	Severity      int           `json:"severity"`
	Public        bool          `json:"public"`
	TreatyID      string        `json:"treaty_id,omitempty"`
	NegotiationID string        `json:"negotiation_id,omitempty"`
	TensionDeltas entity.IntMap `json:"tension_deltas,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// EventListResponse 事件列表响应
type EventListResponse struct {
	Items []*EventResponse `json:"items"`
}

// ToEventResponse 实体转换为响应
func ToEventResponse(e *entity.DiplomaticEvent) *EventResponse {
	return &EventResponse{
		ID:            e.ID,
		Type:          string(e.Type),
		Factions:      e.Factions,
		Description:   e.Description,
		Severity:      e.Severity,
		Public:        e.Public,
		TreatyID:      e.TreatyID,
		NegotiationID: e.NegotiationID,
		TensionDeltas: e.TensionDeltas,
		CreatedAt:     e.CreatedAt,
	}
}

// ToEventListResponse 实体列表转换为响应
func ToEventListResponse(events []*entity.DiplomaticEvent) *EventListResponse {
	items := make([]*EventResponse, len(events))
	for i, e := range events {
		items[i] = ToEventResponse(e)
	}
	return &EventListResponse{Items: items}
}
