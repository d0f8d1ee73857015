// Package diplomacy 实现外交引擎的应用服务
package diplomacy

import (
	"faction-diplomacy-api/internal/config"
	"faction-diplomacy-api/internal/domain/entity"
)

// Policy 外交策略参数
// 状态阈值集中定义，各动作服务不得自带魔法数字
type Policy struct {
	WarThreshold     int
	HostileThreshold int
	TenseThreshold   int
	CalmThreshold    int
	FriendlyTrust    int
	InitialTrust     int

	DecayEnabled bool
	DecayPerDay  int

	TreatySignTrustBonus int
	UltimatumIssueDelta  int
	SanctionImposeDelta  int
	ResolveReliefFactor  float64
}

// DefaultPolicy 默认策略
func DefaultPolicy() Policy {
	return Policy{
		WarThreshold:         80,
		HostileThreshold:     50,
		TenseThreshold:       25,
		CalmThreshold:        10,
		FriendlyTrust:        70,
		InitialTrust:         50,
		DecayEnabled:         true,
		DecayPerDay:          2,
		TreatySignTrustBonus: 10,
		UltimatumIssueDelta:  10,
		SanctionImposeDelta:  15,
		ResolveReliefFactor:  0.5,
	}
}

// PolicyFromConfig 从配置构建策略
func PolicyFromConfig(cfg *config.DiplomacyConfig) Policy {
	p := DefaultPolicy()
	if cfg == nil {
		return p
	}
	if cfg.WarThreshold > 0 {
		p.WarThreshold = cfg.WarThreshold
	}
	if cfg.HostileThreshold > 0 {
		p.HostileThreshold = cfg.HostileThreshold
	}
	if cfg.TenseThreshold > 0 {
		p.TenseThreshold = cfg.TenseThreshold
	}
	if cfg.CalmThreshold > 0 {
		p.CalmThreshold = cfg.CalmThreshold
	}
	if cfg.FriendlyTrust > 0 {
		p.FriendlyTrust = cfg.FriendlyTrust
	}
	if cfg.InitialTrust > 0 {
		p.InitialTrust = cfg.InitialTrust
	}
	p.DecayEnabled = cfg.DecayEnabled
	if cfg.DecayPerDay > 0 {
		p.DecayPerDay = cfg.DecayPerDay
	}
	if cfg.TreatySignTrustBonus > 0 {
		p.TreatySignTrustBonus = cfg.TreatySignTrustBonus
	}
	if cfg.UltimatumIssueDelta > 0 {
		p.UltimatumIssueDelta = cfg.UltimatumIssueDelta
	}
	if cfg.SanctionImposeDelta > 0 {
		p.SanctionImposeDelta = cfg.SanctionImposeDelta
	}
	if cfg.ResolveReliefFactor > 0 {
		p.ResolveReliefFactor = cfg.ResolveReliefFactor
	}
	return p
}

// DeriveStatus 根据紧张度/信任度推导外交状态
// 仅由阈值推导，不会产出 alliance：结盟只能显式设置。
// 中间地带（calm 与 tense 之间）保持当前状态，形成滞回。
func (p Policy) DeriveStatus(current entity.DiplomaticStatus, tension, trust int) entity.DiplomaticStatus {
	switch {
	case tension >= p.WarThreshold:
		return entity.StatusWar
	case tension >= p.HostileThreshold:
		return entity.StatusHostile
	case tension >= p.TenseThreshold:
		return entity.StatusTense
	case tension <= p.CalmThreshold:
		if current == entity.StatusAlliance {
			return entity.StatusAlliance
		}
		if trust >= p.FriendlyTrust {
			return entity.StatusFriendly
		}
		return entity.StatusNeutral
	default:
		return current
	}
}

// ReliefDelta 按解决返还比例计算紧张度回落量（负值）
func (p Policy) ReliefDelta(applied int) int {
	if applied <= 0 {
		return 0
	}
	return -int(float64(applied) * p.ResolveReliefFactor)
}
