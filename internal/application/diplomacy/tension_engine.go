// Package diplomacy 实现外交引擎的应用服务
package diplomacy

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"faction-diplomacy-api/internal/domain/entity"
	"faction-diplomacy-api/internal/domain/repository"
	"faction-diplomacy-api/pkg/logger"
	"faction-diplomacy-api/pkg/metrics"
)

var tensionTracer = otel.Tracer("diplomacy.tension")

// Transition 对一组阵营对关系的一次完整变更
// 状态在每个逻辑动作中只计算一次：显式覆盖优先于阈值推导
type Transition struct {
	FactionA       string
	FactionB       string
	TensionDelta   int
	TrustDelta     int
	StatusOverride *entity.DiplomaticStatus
	Reason         string
}

// TensionService 双边关系状态的唯一读写入口
type TensionService struct {
	relationships repository.RelationshipRepository
	policy        Policy
	now           func() time.Time
}

// NewTensionService 创建紧张度引擎
func NewTensionService(relationships repository.RelationshipRepository, policy Policy) *TensionService {
	return &TensionService{
		relationships: relationships,
		policy:        policy,
		now:           time.Now,
	}
}

// Policy 返回生效中的策略
func (s *TensionService) Policy() Policy {
	return s.policy
}

// FindRelationship 纯读：不存在时返回 nil，不产生写副作用
func (s *TensionService) FindRelationship(ctx context.Context, factionA, factionB string) (*entity.FactionRelationship, error) {
	ctx, span := tensionTracer.Start(ctx, "tension.FindRelationship")
	defer span.End()

	a, b := entity.CanonicalPair(factionA, factionB)
	return s.relationships.GetByPair(ctx, a, b)
}

// GetOrCreateRelationship 显式 upsert：不存在时物化默认关系（中立/50/0）并持久化
func (s *TensionService) GetOrCreateRelationship(ctx context.Context, factionA, factionB string) (*entity.FactionRelationship, error) {
	ctx, span := tensionTracer.Start(ctx, "tension.GetOrCreateRelationship")
	defer span.End()

	a, b := entity.CanonicalPair(factionA, factionB)

	rel, err := s.relationships.GetByPair(ctx, a, b)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if rel != nil {
		return rel, nil
	}

	rel = entity.NewFactionRelationship(a, b, s.policy.InitialTrust)
	rel.ID = uuid.New().String()
	if err := s.relationships.Create(ctx, rel); err != nil {
		span.RecordError(err)
		return nil, err
	}

	logger.Info(ctx, "relationship materialized",
		"faction_a", a,
		"faction_b", b,
	)
	return rel, nil
}

// ListByFaction 获取指定阵营的全部关系
func (s *TensionService) ListByFaction(ctx context.Context, factionID string, pagination repository.Pagination) (*repository.PagedResult[*entity.FactionRelationship], error) {
	return s.relationships.ListByFaction(ctx, factionID, pagination)
}

// ListByStatus 按状态获取关系列表
func (s *TensionService) ListByStatus(ctx context.Context, status entity.DiplomaticStatus, pagination repository.Pagination) (*repository.PagedResult[*entity.FactionRelationship], error) {
	return s.relationships.ListByStatus(ctx, status, pagination)
}

// UpdateTension 应用紧张度增量：衰减 -> 增量 -> 收敛 -> 阈值推导状态
func (s *TensionService) UpdateTension(ctx context.Context, factionA, factionB string, delta int, reason string) (*entity.FactionRelationship, error) {
	return s.ApplyTransition(ctx, Transition{
		FactionA:     factionA,
		FactionB:     factionB,
		TensionDelta: delta,
		Reason:       reason,
	})
}

// AdjustTrust 应用信任度增量
func (s *TensionService) AdjustTrust(ctx context.Context, factionA, factionB string, delta int, reason string) (*entity.FactionRelationship, error) {
	return s.ApplyTransition(ctx, Transition{
		FactionA:   factionA,
		FactionB:   factionB,
		TrustDelta: delta,
		Reason:     reason,
	})
}

// SetStatus 显式覆盖状态（签署同盟等直接外交动作）
func (s *TensionService) SetStatus(ctx context.Context, factionA, factionB string, status entity.DiplomaticStatus, reason string) (*entity.FactionRelationship, error) {
	return s.ApplyTransition(ctx, Transition{
		FactionA:       factionA,
		FactionB:       factionB,
		StatusOverride: &status,
		Reason:         reason,
	})
}

// ApplyTransition 单一入口：每个逻辑动作只计算一次状态
// 优先级：显式覆盖 > 阈值推导
func (s *TensionService) ApplyTransition(ctx context.Context, t Transition) (*entity.FactionRelationship, error) {
	ctx, span := tensionTracer.Start(ctx, "tension.ApplyTransition")
	defer span.End()

	rel, err := s.GetOrCreateRelationship(ctx, t.FactionA, t.FactionB)
	if err != nil {
		return nil, err
	}

	now := s.now()
	prevStatus := rel.Status

	// 时间衰减先于增量应用
	if s.policy.DecayEnabled {
		s.applyDecay(rel, now)
	}

	if t.TensionDelta != 0 {
		rel.ApplyTensionDelta(t.TensionDelta)
		metrics.TensionDelta.WithLabelValues(t.Reason).Observe(absFloat(t.TensionDelta))
	}
	if t.TrustDelta != 0 {
		rel.ApplyTrustDelta(t.TrustDelta)
	}

	if t.StatusOverride != nil {
		rel.Status = *t.StatusOverride
	} else {
		rel.Status = s.policy.DeriveStatus(rel.Status, rel.TensionLevel, rel.TrustLevel)
	}

	rel.Touch(now)

	if err := s.relationships.Update(ctx, rel); err != nil {
		span.RecordError(err)
		return nil, err
	}

	if rel.Status != prevStatus {
		metrics.StatusTransitionsTotal.WithLabelValues(string(prevStatus), string(rel.Status)).Inc()
		logger.Info(ctx, "diplomatic status changed",
			"faction_a", rel.FactionAID,
			"faction_b", rel.FactionBID,
			"from", prevStatus,
			"to", rel.Status,
			"tension", rel.TensionLevel,
			"reason", t.Reason,
		)
	}

	span.SetAttributes(
		attribute.Int("tension", rel.TensionLevel),
		attribute.Int("trust", rel.TrustLevel),
		attribute.String("status", string(rel.Status)),
	)
	return rel, nil
}

// applyDecay 按距上次交互的整天数向 0 衰减紧张度
func (s *TensionService) applyDecay(rel *entity.FactionRelationship, now time.Time) {
	days := int(now.Sub(rel.LastInteraction).Hours() / 24)
	if days <= 0 || rel.TensionLevel == 0 {
		return
	}
	decay := days * s.policy.DecayPerDay
	if decay > rel.TensionLevel {
		decay = rel.TensionLevel
	}
	rel.TensionLevel -= decay
}

func absFloat(v int) float64 {
	if v < 0 {
		return float64(-v)
	}
	return float64(v)
}
