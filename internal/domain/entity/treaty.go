// Package entity 定义领域实体
package entity

import (
	"errors"
	"time"
)

// TreatyType 条约类型
type TreatyType string

const (
	TreatyTypeAlliance      TreatyType = "alliance"
	TreatyTypeTrade         TreatyType = "trade"
	TreatyTypePeace         TreatyType = "peace"
	TreatyTypeNonAggression TreatyType = "non_aggression"
	TreatyTypeCeasefire     TreatyType = "ceasefire"
)

// Valid 判断条约类型是否合法
func (t TreatyType) Valid() bool {
	switch t {
	case TreatyTypeAlliance, TreatyTypeTrade, TreatyTypePeace, TreatyTypeNonAggression, TreatyTypeCeasefire:
		return true
	}
	return false
}

// TreatyStatus 条约状态
type TreatyStatus string

const (
	TreatyStatusDraft    TreatyStatus = "draft"
	TreatyStatusActive   TreatyStatus = "active"
	TreatyStatusExpired  TreatyStatus = "expired"
	TreatyStatusViolated TreatyStatus = "violated"
)

// 条约校验错误
var (
	ErrTreatyTooFewParties = errors.New("treaty requires at least two parties")
	ErrTreatyDateOrder     = errors.New("treaty end date must be after start date")
)

// Treaty 多方正式协议
type Treaty struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Type          TreatyType   `json:"type"`
	Status        TreatyStatus `json:"status"`
	Parties       StringSlice  `json:"parties"`
	Terms         JSONMap      `json:"terms,omitempty"`
	StartDate     time.Time    `json:"start_date"`
	EndDate       *time.Time   `json:"end_date,omitempty"`
	Public        bool         `json:"public"`
	NegotiationID string       `json:"negotiation_id,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// NewTreaty 创建条约，立即生效
func NewTreaty(name string, treatyType TreatyType, parties []string) *Treaty {
	now := time.Now()
	return &Treaty{
		Name:      name,
		Type:      treatyType,
		Status:    TreatyStatusActive,
		Parties:   parties,
		Terms:     JSONMap{},
		StartDate: now,
		Public:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate 校验条约约束
func (t *Treaty) Validate() error {
	if len(t.Parties) < 2 {
		return ErrTreatyTooFewParties
	}
	if t.EndDate != nil && !t.EndDate.After(t.StartDate) {
		return ErrTreatyDateOrder
	}
	return nil
}

// DurationDays 条约有效期天数；无结束日期时返回 0
func (t *Treaty) DurationDays() int {
	if t.EndDate == nil {
		return 0
	}
	return int(t.EndDate.Sub(t.StartDate).Hours() / 24)
}

// IsActive 判断条约是否生效中
func (t *Treaty) IsActive() bool {
	return t.Status == TreatyStatusActive
}

// IsExpired 判断条约是否已过结束日期
func (t *Treaty) IsExpired(now time.Time) bool {
	return t.EndDate != nil && now.After(*t.EndDate)
}

// MarkViolated 存在未解决违约时标记为违约状态
func (t *Treaty) MarkViolated() {
	t.Status = TreatyStatusViolated
	t.UpdatedAt = time.Now()
}

// MarkExpired 标记条约过期
func (t *Treaty) MarkExpired() {
	t.Status = TreatyStatusExpired
	t.UpdatedAt = time.Now()
}

// Reactivate 全部违约解决后恢复生效
func (t *Treaty) Reactivate() {
	t.Status = TreatyStatusActive
	t.UpdatedAt = time.Now()
}

// PairsOf 返回条约各方的全部无序阵营对（规范化顺序）
func (t *Treaty) PairsOf() [][2]string {
	var pairs [][2]string
	for i := 0; i < len(t.Parties); i++ {
		for j := i + 1; j < len(t.Parties); j++ {
			a, b := CanonicalPair(t.Parties[i], t.Parties[j])
			pairs = append(pairs, [2]string{a, b})
		}
	}
	return pairs
}
