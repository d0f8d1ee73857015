// Package entity 定义领域实体
package entity

import (
	"time"
)

// DiplomaticStatus 外交状态
type DiplomaticStatus string

const (
	StatusNeutral  DiplomaticStatus = "neutral"
	StatusFriendly DiplomaticStatus = "friendly"
	StatusAlliance DiplomaticStatus = "alliance"
	StatusTense    DiplomaticStatus = "tense"
	StatusHostile  DiplomaticStatus = "hostile"
	StatusWar      DiplomaticStatus = "war"
)

// Valid 判断状态值是否合法
func (s DiplomaticStatus) Valid() bool {
	switch s {
	case StatusNeutral, StatusFriendly, StatusAlliance, StatusTense, StatusHostile, StatusWar:
		return true
	}
	return false
}

// 分值边界
const (
	ScoreMin = 0
	ScoreMax = 100
)

// ClampScore 将分值收敛到 [0,100]
func ClampScore(v int) int {
	if v < ScoreMin {
		return ScoreMin
	}
	if v > ScoreMax {
		return ScoreMax
	}
	return v
}

// CanonicalPair 规范化无序阵营对：字典序小者在前
// (A,B) 与 (B,A) 解析到同一条关系记录
func CanonicalPair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}

// PairKey 规范化阵营对的字符串键
func PairKey(a, b string) string {
	a, b = CanonicalPair(a, b)
	return a + ":" + b
}

// FactionRelationship 两个阵营之间的双边外交状态
// 记录以规范化顺序存储：FactionAID < FactionBID
type FactionRelationship struct {
	ID              string           `json:"id"`
	FactionAID      string           `json:"faction_a_id"`
	FactionBID      string           `json:"faction_b_id"`
	Status          DiplomaticStatus `json:"status"`
	TrustLevel      int              `json:"trust_level"`
	TensionLevel    int              `json:"tension_level"`
	LastInteraction time.Time        `json:"last_interaction"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// NewFactionRelationship 创建默认关系（中立，信任 50，紧张度 0）
func NewFactionRelationship(factionA, factionB string, initialTrust int) *FactionRelationship {
	a, b := CanonicalPair(factionA, factionB)
	now := time.Now()
	return &FactionRelationship{
		FactionAID:      a,
		FactionBID:      b,
		Status:          StatusNeutral,
		TrustLevel:      ClampScore(initialTrust),
		TensionLevel:    0,
		LastInteraction: now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Involves 判断指定阵营是否为关系一方
func (r *FactionRelationship) Involves(factionID string) bool {
	return r.FactionAID == factionID || r.FactionBID == factionID
}

// Other 返回关系中另一方的阵营 ID
func (r *FactionRelationship) Other(factionID string) string {
	if r.FactionAID == factionID {
		return r.FactionBID
	}
	return r.FactionAID
}

// ApplyTensionDelta 应用紧张度增量并收敛到 [0,100]
func (r *FactionRelationship) ApplyTensionDelta(delta int) {
	r.TensionLevel = ClampScore(r.TensionLevel + delta)
}

// ApplyTrustDelta 应用信任度增量并收敛到 [0,100]
func (r *FactionRelationship) ApplyTrustDelta(delta int) {
	r.TrustLevel = ClampScore(r.TrustLevel + delta)
}

// Touch 更新最后交互时间
func (r *FactionRelationship) Touch(now time.Time) {
	r.LastInteraction = now
	r.UpdatedAt = now
}

// PairKey 关系的规范化键
func (r *FactionRelationship) PairKey() string {
	return PairKey(r.FactionAID, r.FactionBID)
}
