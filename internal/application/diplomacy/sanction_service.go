package diplomacy

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"faction-diplomacy-api/internal/domain/entity"
	"faction-diplomacy-api/internal/domain/repository"
	"faction-diplomacy-api/pkg/errors"
	"faction-diplomacy-api/pkg/metrics"
)

var sanctionTracer = otel.Tracer("diplomacy.sanction")

// ImposeSanctionInput 施加制裁入参
type ImposeSanctionInput struct {
	ImposerID    string
	TargetID     string
	SanctionType string
	Description  string
	Impact       int
	TensionDelta int
	EndDate      *time.Time
}

// SanctionService 制裁服务：施加、违规记录、解除、过期
type SanctionService struct {
	sanctions repository.SanctionRepository
	tension   *TensionService
	recorder  *EventRecorder
	tx        repository.Transactor
}

// NewSanctionService 创建制裁服务
func NewSanctionService(
	sanctions repository.SanctionRepository,
	tension *TensionService,
	recorder *EventRecorder,
	tx repository.Transactor,
) *SanctionService {
	return &SanctionService{
		sanctions: sanctions,
		tension:   tension,
		recorder:  recorder,
		tx:        tx,
	}
}

// ImposeSanction 施加制裁：落库 + 紧张度上调 + 事件
func (s *SanctionService) ImposeSanction(ctx context.Context, input ImposeSanctionInput) (*entity.Sanction, error) {
	ctx, span := sanctionTracer.Start(ctx, "sanction.ImposeSanction")
	defer span.End()

	if input.ImposerID == "" || input.TargetID == "" {
		return nil, errors.New(errors.CodeValidationFailed, "imposer and target are required")
	}
	if input.ImposerID == input.TargetID {
		return nil, errors.New(errors.CodeValidationFailed, "imposer and target must differ")
	}

	delta := input.TensionDelta
	if delta == 0 {
		delta = s.tension.Policy().SanctionImposeDelta
	}

	sanction := entity.NewSanction(input.ImposerID, input.TargetID, input.Description, input.Impact, delta)
	sanction.ID = uuid.New().String()
	sanction.SanctionType = input.SanctionType
	sanction.EndDate = input.EndDate

	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.sanctions.Create(txCtx, sanction); err != nil {
			return err
		}

		if _, err := s.tension.UpdateTension(txCtx, sanction.ImposerID, sanction.TargetID, sanction.TensionDelta, "sanction_imposed"); err != nil {
			return err
		}

		event := entity.NewDiplomaticEvent(entity.EventSanctionImposed, []string{sanction.ImposerID, sanction.TargetID},
			fmt.Sprintf("sanction imposed: %s", sanction.Description), sanction.Impact).
			WithTensionDelta(sanction.ImposerID, sanction.TargetID, sanction.TensionDelta)
		return s.recorder.Record(txCtx, event)
	})
	if err != nil {
		span.RecordError(err)
		metrics.ActionsTotal.WithLabelValues("impose_sanction", "error").Inc()
		return nil, err
	}

	metrics.ActionsTotal.WithLabelValues("impose_sanction", "ok").Inc()
	return sanction, nil
}

// GetSanction 获取制裁
func (s *SanctionService) GetSanction(ctx context.Context, id string) (*entity.Sanction, error) {
	sanction, err := s.sanctions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sanction == nil {
		return nil, errors.ErrSanctionNotFound
	}
	return sanction, nil
}

// ListSanctions 过滤获取制裁列表
func (s *SanctionService) ListSanctions(ctx context.Context, filter *repository.SanctionFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Sanction], error) {
	return s.sanctions.List(ctx, filter, pagination)
}

// RecordSanctionViolation 记录制裁违规：追加记录 + 状态转违规 + 紧张度再次上调
func (s *SanctionService) RecordSanctionViolation(ctx context.Context, id, description string) (*entity.Sanction, error) {
	ctx, span := sanctionTracer.Start(ctx, "sanction.RecordSanctionViolation")
	defer span.End()

	sanction, err := s.GetSanction(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := sanction.RecordViolation(uuid.New().String(), description, time.Now()); err != nil {
		return nil, sanctionStateError(err)
	}

	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.sanctions.Update(txCtx, sanction); err != nil {
			return err
		}

		if _, err := s.tension.UpdateTension(txCtx, sanction.ImposerID, sanction.TargetID, sanction.TensionDelta, "sanction_violated"); err != nil {
			return err
		}

		event := entity.NewDiplomaticEvent(entity.EventSanctionViolated, []string{sanction.ImposerID, sanction.TargetID},
			fmt.Sprintf("sanction violated: %s", description), sanction.Impact).
			WithTensionDelta(sanction.ImposerID, sanction.TargetID, sanction.TensionDelta)
		return s.recorder.Record(txCtx, event)
	})
	if err != nil {
		span.RecordError(err)
		metrics.ActionsTotal.WithLabelValues("sanction_violation", "error").Inc()
		return nil, err
	}

	metrics.ActionsTotal.WithLabelValues("sanction_violation", "ok").Inc()
	return sanction, nil
}

// LiftSanction 解除制裁并按配置系数回落紧张度
func (s *SanctionService) LiftSanction(ctx context.Context, id string) (*entity.Sanction, error) {
	ctx, span := sanctionTracer.Start(ctx, "sanction.LiftSanction")
	defer span.End()

	sanction, err := s.GetSanction(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := sanction.Lift(time.Now()); err != nil {
		return nil, sanctionStateError(err)
	}

	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.sanctions.Update(txCtx, sanction); err != nil {
			return err
		}

		relief := s.tension.Policy().ReliefDelta(sanction.TensionDelta)
		if relief != 0 {
			if _, err := s.tension.UpdateTension(txCtx, sanction.ImposerID, sanction.TargetID, relief, "sanction_lifted"); err != nil {
				return err
			}
		}

		event := entity.NewDiplomaticEvent(entity.EventSanctionLifted, []string{sanction.ImposerID, sanction.TargetID},
			fmt.Sprintf("sanction lifted: %s", sanction.Description), 0).
			WithTensionDelta(sanction.ImposerID, sanction.TargetID, relief)
		return s.recorder.Record(txCtx, event)
	})
	if err != nil {
		span.RecordError(err)
		metrics.ActionsTotal.WithLabelValues("lift_sanction", "error").Inc()
		return nil, err
	}

	metrics.ActionsTotal.WithLabelValues("lift_sanction", "ok").Inc()
	return sanction, nil
}

// ExpireSanction 结束日期已过，转为过期终态
func (s *SanctionService) ExpireSanction(ctx context.Context, sanction *entity.Sanction) error {
	ctx, span := sanctionTracer.Start(ctx, "sanction.ExpireSanction")
	defer span.End()

	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		sanction.Expire(time.Now())
		if err := s.sanctions.Update(txCtx, sanction); err != nil {
			return err
		}

		event := entity.NewDiplomaticEvent(entity.EventSanctionExpired, []string{sanction.ImposerID, sanction.TargetID},
			fmt.Sprintf("sanction expired: %s", sanction.Description), 0)
		return s.recorder.Record(txCtx, event)
	})
	if err != nil {
		span.RecordError(err)
		return err
	}

	metrics.SweepExpiredTotal.WithLabelValues("sanction").Inc()
	return nil
}

// sanctionStateError 将实体层状态错误映射为 409 Conflict
func sanctionStateError(err error) error {
	if stderrors.Is(err, entity.ErrSanctionNotActive) {
		return errors.Wrap(err, errors.CodeSanctionNotActive, "sanction is not active")
	}
	return err
}
