// Package entity 定义领域实体
package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// SanctionStatus 制裁状态
type SanctionStatus string

const (
	SanctionActive   SanctionStatus = "active"
	SanctionViolated SanctionStatus = "violated"
	SanctionLifted   SanctionStatus = "lifted"
	SanctionExpired  SanctionStatus = "expired"
)

// ErrSanctionNotActive 只有生效中的制裁可记录违规或解除
var ErrSanctionNotActive = errors.New("sanction is not active")

// SanctionViolationRecord 制裁违规记录
type SanctionViolationRecord struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// SanctionViolationList 可存储为 JSONB 的违规记录列表
type SanctionViolationList []SanctionViolationRecord

// Value 实现 driver.Valuer
func (l SanctionViolationList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan 实现 sql.Scanner
func (l *SanctionViolationList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// Sanction 施加的经济/外交惩罚，自带违规追踪
type Sanction struct {
	ID           string                `json:"id"`
	ImposerID    string                `json:"imposer_id"`
	TargetID     string                `json:"target_id"`
	SanctionType string                `json:"sanction_type,omitempty"`
	Description  string                `json:"description"`
	Impact       int                   `json:"impact"`
	TensionDelta int                   `json:"tension_delta"`
	StartDate    time.Time             `json:"start_date"`
	EndDate      *time.Time            `json:"end_date,omitempty"`
	Status       SanctionStatus        `json:"status"`
	Violations   SanctionViolationList `json:"violations"`
	LiftedAt     *time.Time            `json:"lifted_at,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// NewSanction 创建制裁，立即生效
func NewSanction(imposerID, targetID, description string, impact, tensionDelta int) *Sanction {
	now := time.Now()
	return &Sanction{
		ImposerID:    imposerID,
		TargetID:     targetID,
		Description:  description,
		Impact:       ClampScore(impact),
		TensionDelta: tensionDelta,
		StartDate:    now,
		Status:       SanctionActive,
		Violations:   SanctionViolationList{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// RecordViolation 在生效中的制裁上记录一次违规，状态转为 violated
func (s *Sanction) RecordViolation(id, description string, now time.Time) error {
	if s.Status != SanctionActive && s.Status != SanctionViolated {
		return fmt.Errorf("%w: status %s", ErrSanctionNotActive, s.Status)
	}
	s.Violations = append(s.Violations, SanctionViolationRecord{
		ID:          id,
		Description: description,
		RecordedAt:  now,
	})
	s.Status = SanctionViolated
	s.UpdatedAt = now
	return nil
}

// Lift 解除制裁
func (s *Sanction) Lift(now time.Time) error {
	if s.Status != SanctionActive && s.Status != SanctionViolated {
		return fmt.Errorf("%w: status %s", ErrSanctionNotActive, s.Status)
	}
	s.Status = SanctionLifted
	s.LiftedAt = &now
	s.UpdatedAt = now
	return nil
}

// Expire 过期处理
func (s *Sanction) Expire(now time.Time) {
	s.Status = SanctionExpired
	s.UpdatedAt = now
}

// IsExpired 判断是否已过结束日期且仍在生效
func (s *Sanction) IsExpired(now time.Time) bool {
	return (s.Status == SanctionActive || s.Status == SanctionViolated) &&
		s.EndDate != nil && now.After(*s.EndDate)
}
