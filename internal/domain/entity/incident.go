// Package entity 定义领域实体
package entity

import (
	"time"
)

// DiplomaticIncident 阵营间的独立敌对/显著行为，不依附于任何条约
type DiplomaticIncident struct {
	ID             string     `json:"id"`
	PerpetratorID  string     `json:"perpetrator_id"`
	VictimID       string     `json:"victim_id"`
	IncidentType   string     `json:"incident_type,omitempty"`
	Description    string     `json:"description"`
	Severity       int        `json:"severity"`
	TensionImpact  int        `json:"tension_impact"`
	Evidence       JSONMap    `json:"evidence,omitempty"`
	Acknowledged   bool       `json:"acknowledged"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
	Resolved       bool       `json:"resolved"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// NewDiplomaticIncident 创建事件记录
// tensionImpact 为 0 时缺省取 severity
func NewDiplomaticIncident(perpetratorID, victimID, description string, severity, tensionImpact int) *DiplomaticIncident {
	if tensionImpact == 0 {
		tensionImpact = severity
	}
	return &DiplomaticIncident{
		PerpetratorID: perpetratorID,
		VictimID:      victimID,
		Description:   description,
		Severity:      ClampScore(severity),
		TensionImpact: tensionImpact,
		Evidence:      JSONMap{},
		CreatedAt:     time.Now(),
	}
}

// Acknowledge 确认事件
func (i *DiplomaticIncident) Acknowledge(now time.Time) {
	if i.Acknowledged {
		return
	}
	i.Acknowledged = true
	i.AcknowledgedAt = &now
}

// Resolve 解决事件
func (i *DiplomaticIncident) Resolve(now time.Time) {
	if i.Resolved {
		return
	}
	i.Resolved = true
	i.ResolvedAt = &now
}

// Open 判断事件是否仍未解决
func (i *DiplomaticIncident) Open() bool {
	return !i.Resolved
}
