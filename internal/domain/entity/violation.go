// Package entity 定义领域实体
package entity

import (
	"time"
)

// TreatyViolation 条约违约记录
type TreatyViolation struct {
	ID             string     `json:"id"`
	TreatyID       string     `json:"treaty_id"`
	ViolatorID     string     `json:"violator_id"`
	VictimID       string     `json:"victim_id,omitempty"`
	Description    string     `json:"description"`
	Severity       int        `json:"severity"`
	Evidence       JSONMap    `json:"evidence,omitempty"`
	Acknowledged   bool       `json:"acknowledged"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
	Resolved       bool       `json:"resolved"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// NewTreatyViolation 创建违约记录
func NewTreatyViolation(treatyID, violatorID, victimID, description string, severity int) *TreatyViolation {
	return &TreatyViolation{
		TreatyID:    treatyID,
		ViolatorID:  violatorID,
		VictimID:    victimID,
		Description: description,
		Severity:    ClampScore(severity),
		Evidence:    JSONMap{},
		CreatedAt:   time.Now(),
	}
}

// Acknowledge 确认违约
func (v *TreatyViolation) Acknowledge(now time.Time) {
	if v.Acknowledged {
		return
	}
	v.Acknowledged = true
	v.AcknowledgedAt = &now
}

// Resolve 解决违约
func (v *TreatyViolation) Resolve(now time.Time) {
	if v.Resolved {
		return
	}
	v.Resolved = true
	v.ResolvedAt = &now
}

// Open 判断违约是否仍未解决
func (v *TreatyViolation) Open() bool {
	return !v.Resolved
}
