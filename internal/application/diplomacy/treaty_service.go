// Package diplomacy 实现外交引擎的应用服务
package diplomacy

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"faction-diplomacy-api/internal/domain/entity"
	"faction-diplomacy-api/internal/domain/repository"
	"faction-diplomacy-api/pkg/errors"
	"faction-diplomacy-api/pkg/metrics"
)

var treatyTracer = otel.Tracer("diplomacy.treaty")

// CreateTreatyInput 创建条约入参
type CreateTreatyInput struct {
	Name          string
	Type          entity.TreatyType
	Parties       []string
	Terms         entity.JSONMap
	StartDate     *time.Time
	EndDate       *time.Time
	Public        *bool
	NegotiationID string
}

// ReportViolationInput 违约举报入参
type ReportViolationInput struct {
	ViolatorID  string
	VictimID    string
	Description string
	Severity    int
	Evidence    entity.JSONMap
}

// TreatyService 条约生命周期服务
type TreatyService struct {
	treaties   repository.TreatyRepository
	violations repository.ViolationRepository
	tension    *TensionService
	recorder   *EventRecorder
	tx         repository.Transactor
}

// NewTreatyService 创建条约服务
func NewTreatyService(
	treaties repository.TreatyRepository,
	violations repository.ViolationRepository,
	tension *TensionService,
	recorder *EventRecorder,
	tx repository.Transactor,
) *TreatyService {
	return &TreatyService{
		treaties:   treaties,
		violations: violations,
		tension:    tension,
		recorder:   recorder,
		tx:         tx,
	}
}

// CreateTreaty 创建条约：落库 + 各方关系调整 + 事件追加，单事务完成
func (s *TreatyService) CreateTreaty(ctx context.Context, input CreateTreatyInput) (*entity.Treaty, error) {
	ctx, span := treatyTracer.Start(ctx, "treaty.CreateTreaty")
	defer span.End()

	treaty := entity.NewTreaty(input.Name, input.Type, input.Parties)
	treaty.ID = uuid.New().String()
	if input.Terms != nil {
		treaty.Terms = input.Terms
	}
	if input.StartDate != nil {
		treaty.StartDate = *input.StartDate
	}
	treaty.EndDate = input.EndDate
	if input.Public != nil {
		treaty.Public = *input.Public
	}
	treaty.NegotiationID = input.NegotiationID

	if err := treaty.Validate(); err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, errors.CodeValidationFailed, "invalid treaty")
	}

	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.treaties.Create(txCtx, treaty); err != nil {
			return err
		}

		// 签署方两两调整关系；同盟条约显式设置结盟状态
		policy := s.tension.Policy()
		for _, pair := range treaty.PairsOf() {
			transition := Transition{
				FactionA:   pair[0],
				FactionB:   pair[1],
				TrustDelta: policy.TreatySignTrustBonus,
				Reason:     "treaty_signed",
			}
			if treaty.Type == entity.TreatyTypeAlliance {
				alliance := entity.StatusAlliance
				transition.StatusOverride = &alliance
			}
			if _, err := s.tension.ApplyTransition(txCtx, transition); err != nil {
				return err
			}
		}

		event := entity.NewDiplomaticEvent(entity.EventTreatyCreated, treaty.Parties,
			fmt.Sprintf("treaty %q signed", treaty.Name), 0).
			WithTreaty(treaty.ID).
			WithVisibility(treaty.Public)
		if treaty.NegotiationID != "" {
			event.WithNegotiation(treaty.NegotiationID)
		}
		return s.recorder.Record(txCtx, event)
	})
	if err != nil {
		span.RecordError(err)
		metrics.ActionsTotal.WithLabelValues("create_treaty", "error").Inc()
		return nil, err
	}

	metrics.ActionsTotal.WithLabelValues("create_treaty", "ok").Inc()
	return treaty, nil
}

// GetTreaty 获取条约；不存在时返回 NotFound
func (s *TreatyService) GetTreaty(ctx context.Context, id string) (*entity.Treaty, error) {
	treaty, err := s.treaties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if treaty == nil {
		return nil, errors.ErrTreatyNotFound
	}
	return treaty, nil
}

// ListTreaties 过滤获取条约列表
func (s *TreatyService) ListTreaties(ctx context.Context, filter *repository.TreatyFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Treaty], error) {
	return s.treaties.List(ctx, filter, pagination)
}

// ReportViolation 举报条约违约：违约落库 + 条约转违约态 + 紧张度上调 + 事件
func (s *TreatyService) ReportViolation(ctx context.Context, treatyID string, input ReportViolationInput) (*entity.TreatyViolation, error) {
	ctx, span := treatyTracer.Start(ctx, "treaty.ReportViolation")
	defer span.End()

	treaty, err := s.GetTreaty(ctx, treatyID)
	if err != nil {
		return nil, err
	}

	violation := entity.NewTreatyViolation(treaty.ID, input.ViolatorID, input.VictimID, input.Description, input.Severity)
	violation.ID = uuid.New().String()
	if input.Evidence != nil {
		violation.Evidence = input.Evidence
	}

	victim := input.VictimID
	if victim == "" {
		// 未指明受害方时取条约中首个非违约方
		for _, p := range treaty.Parties {
			if p != input.ViolatorID {
				victim = p
				break
			}
		}
		violation.VictimID = victim
	}

	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.violations.Create(txCtx, violation); err != nil {
			return err
		}

		treaty.MarkViolated()
		if err := s.treaties.Update(txCtx, treaty); err != nil {
			return err
		}

		delta := violation.Severity
		if victim != "" {
			if _, err := s.tension.UpdateTension(txCtx, input.ViolatorID, victim, delta, "treaty_violation"); err != nil {
				return err
			}
		}

		event := entity.NewDiplomaticEvent(entity.EventTreatyViolated, []string{input.ViolatorID, victim},
			fmt.Sprintf("treaty %q violated: %s", treaty.Name, input.Description), violation.Severity).
			WithTreaty(treaty.ID).
			WithTensionDelta(input.ViolatorID, victim, delta)
		return s.recorder.Record(txCtx, event)
	})
	if err != nil {
		span.RecordError(err)
		metrics.ActionsTotal.WithLabelValues("report_violation", "error").Inc()
		return nil, err
	}

	metrics.ActionsTotal.WithLabelValues("report_violation", "ok").Inc()
	return violation, nil
}

// ListViolations 获取条约的违约记录
func (s *TreatyService) ListViolations(ctx context.Context, treatyID string) ([]*entity.TreatyViolation, error) {
	treaty, err := s.GetTreaty(ctx, treatyID)
	if err != nil {
		return nil, err
	}
	return s.violations.ListByTreaty(ctx, treaty.ID)
}

// ResolveViolation 解决违约；条约无未解决违约时恢复生效
func (s *TreatyService) ResolveViolation(ctx context.Context, violationID string) (*entity.TreatyViolation, error) {
	ctx, span := treatyTracer.Start(ctx, "treaty.ResolveViolation")
	defer span.End()

	violation, err := s.violations.GetByID(ctx, violationID)
	if err != nil {
		return nil, err
	}
	if violation == nil {
		return nil, errors.ErrViolationNotFound
	}

	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		now := time.Now()
		violation.Acknowledge(now)
		violation.Resolve(now)
		if err := s.violations.Update(txCtx, violation); err != nil {
			return err
		}

		open, err := s.violations.CountOpenByTreaty(txCtx, violation.TreatyID)
		if err != nil {
			return err
		}

		treaty, err := s.treaties.GetByID(txCtx, violation.TreatyID)
		if err != nil {
			return err
		}
		if treaty != nil && open == 0 && treaty.Status == entity.TreatyStatusViolated {
			treaty.Reactivate()
			if err := s.treaties.Update(txCtx, treaty); err != nil {
				return err
			}
		}

		event := entity.NewDiplomaticEvent(entity.EventTreatyResolved, []string{violation.ViolatorID, violation.VictimID},
			"treaty violation resolved", violation.Severity).
			WithTreaty(violation.TreatyID)
		return s.recorder.Record(txCtx, event)
	})
	if err != nil {
		span.RecordError(err)
		metrics.ActionsTotal.WithLabelValues("resolve_violation", "error").Inc()
		return nil, err
	}

	metrics.ActionsTotal.WithLabelValues("resolve_violation", "ok").Inc()
	return violation, nil
}

// ExpireTreaty 显式过期条约
func (s *TreatyService) ExpireTreaty(ctx context.Context, id string) (*entity.Treaty, error) {
	ctx, span := treatyTracer.Start(ctx, "treaty.ExpireTreaty")
	defer span.End()

	treaty, err := s.GetTreaty(ctx, id)
	if err != nil {
		return nil, err
	}
	if treaty.Status == entity.TreatyStatusExpired {
		return treaty, nil
	}

	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		treaty.MarkExpired()
		if err := s.treaties.Update(txCtx, treaty); err != nil {
			return err
		}

		event := entity.NewDiplomaticEvent(entity.EventTreatyExpired, treaty.Parties,
			fmt.Sprintf("treaty %q expired", treaty.Name), 0).
			WithTreaty(treaty.ID)
		return s.recorder.Record(txCtx, event)
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	metrics.ActionsTotal.WithLabelValues("expire_treaty", "ok").Inc()
	return treaty, nil
}
