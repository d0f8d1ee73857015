// Package entity 定义领域实体
package entity

import (
	"time"
)

// DiplomaticEventType 外交事件类型
type DiplomaticEventType string

const (
	EventStatusChange        DiplomaticEventType = "status_change"
	EventTensionChange       DiplomaticEventType = "tension_change"
	EventTreatyCreated       DiplomaticEventType = "treaty_created"
	EventTreatyViolated      DiplomaticEventType = "treaty_violated"
	EventTreatyResolved      DiplomaticEventType = "treaty_resolved"
	EventTreatyExpired       DiplomaticEventType = "treaty_expired"
	EventNegotiationStarted  DiplomaticEventType = "negotiation_started"
	EventNegotiationOffer    DiplomaticEventType = "negotiation_offer"
	EventNegotiationAccepted DiplomaticEventType = "negotiation_accepted"
	EventNegotiationRejected DiplomaticEventType = "negotiation_rejected"
	EventIncident            DiplomaticEventType = "incident"
	EventIncidentResolved    DiplomaticEventType = "incident_resolved"
	EventUltimatumIssued     DiplomaticEventType = "ultimatum_issued"
	EventUltimatumAccepted   DiplomaticEventType = "ultimatum_accepted"
	EventUltimatumRejected   DiplomaticEventType = "ultimatum_rejected"
	EventUltimatumExpired    DiplomaticEventType = "ultimatum_expired"
	EventSanctionImposed     DiplomaticEventType = "sanction_imposed"
	EventSanctionViolated    DiplomaticEventType = "sanction_violated"
	EventSanctionLifted      DiplomaticEventType = "sanction_lifted"
	EventSanctionExpired     DiplomaticEventType = "sanction_expired"
)

// AllEventTypes 返回全部外交事件类型，供按类型注册消费处理器使用
func AllEventTypes() []DiplomaticEventType {
	return []DiplomaticEventType{
		EventStatusChange,
		EventTensionChange,
		EventTreatyCreated,
		EventTreatyViolated,
		EventTreatyResolved,
		EventTreatyExpired,
		EventNegotiationStarted,
		EventNegotiationOffer,
		EventNegotiationAccepted,
		EventNegotiationRejected,
		EventIncident,
		EventIncidentResolved,
		EventUltimatumIssued,
		EventUltimatumAccepted,
		EventUltimatumRejected,
		EventUltimatumExpired,
		EventSanctionImposed,
		EventSanctionViolated,
		EventSanctionLifted,
		EventSanctionExpired,
	}
}

// DiplomaticEvent 不可变审计记录，创建后只追加不修改
type DiplomaticEvent struct {
	ID            string              `json:"id"`
	Type          DiplomaticEventType `json:"type"`
	Factions      StringSlice         `json:"factions"`
	Description   string              `json:"description"`
	Severity      int                 `json:"severity"`
	Public        bool                `json:"public"`
	TreatyID      string              `json:"treaty_id,omitempty"`
	NegotiationID string              `json:"negotiation_id,omitempty"`
	TensionDeltas IntMap              `json:"tension_deltas,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
}

// NewDiplomaticEvent 创建外交事件
func NewDiplomaticEvent(eventType DiplomaticEventType, factions []string, description string, severity int) *DiplomaticEvent {
	return &DiplomaticEvent{
		Type:          eventType,
		Factions:      factions,
		Description:   description,
		Severity:      ClampScore(severity),
		Public:        true,
		TensionDeltas: IntMap{},
		CreatedAt:     time.Now(),
	}
}

// WithTreaty 关联条约
func (e *DiplomaticEvent) WithTreaty(treatyID string) *DiplomaticEvent {
	e.TreatyID = treatyID
	return e
}

// WithNegotiation 关联谈判
func (e *DiplomaticEvent) WithNegotiation(negotiationID string) *DiplomaticEvent {
	e.NegotiationID = negotiationID
	return e
}

// WithTensionDelta 记录应用到某对阵营的紧张度增量
func (e *DiplomaticEvent) WithTensionDelta(factionA, factionB string, delta int) *DiplomaticEvent {
	if e.TensionDeltas == nil {
		e.TensionDeltas = IntMap{}
	}
	e.TensionDeltas[PairKey(factionA, factionB)] = delta
	return e
}

// WithVisibility 设置公开/私密
func (e *DiplomaticEvent) WithVisibility(public bool) *DiplomaticEvent {
	e.Public = public
	return e
}
