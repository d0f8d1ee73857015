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

var ultimatumTracer = otel.Tracer("diplomacy.ultimatum")

// IssueUltimatumInput 发出最后通牒入参
type IssueUltimatumInput struct {
	IssuerID           string
	RecipientID        string
	Demand             string
	Terms              entity.JSONMap
	Deadline           time.Time
	AcceptTrustDelta   int
	RejectTensionDelta int
}

// UltimatumService 最后通牒服务：发出、响应、过期
type UltimatumService struct {
	ultimatums repository.UltimatumRepository
	tension    *TensionService
	recorder   *EventRecorder
	tx         repository.Transactor
}

// NewUltimatumService 创建通牒服务
func NewUltimatumService(
	ultimatums repository.UltimatumRepository,
	tension *TensionService,
	recorder *EventRecorder,
	tx repository.Transactor,
) *UltimatumService {
	return &UltimatumService{
		ultimatums: ultimatums,
		tension:    tension,
		recorder:   recorder,
		tx:         tx,
	}
}

// IssueUltimatum 发出通牒：落库 + 紧张度上调 + 事件
func (s *UltimatumService) IssueUltimatum(ctx context.Context, input IssueUltimatumInput) (*entity.Ultimatum, error) {
	ctx, span := ultimatumTracer.Start(ctx, "ultimatum.IssueUltimatum")
	defer span.End()

	if input.IssuerID == "" || input.RecipientID == "" {
		return nil, errors.New(errors.CodeValidationFailed, "issuer and recipient are required")
	}
	if input.IssuerID == input.RecipientID {
		return nil, errors.New(errors.CodeValidationFailed, "issuer and recipient must differ")
	}
	if !input.Deadline.After(time.Now()) {
		return nil, errors.New(errors.CodeDeadlinePassed, "ultimatum deadline must be in the future")
	}

	policy := s.tension.Policy()
	acceptDelta := input.AcceptTrustDelta
	rejectDelta := input.RejectTensionDelta
	if rejectDelta == 0 {
		rejectDelta = policy.UltimatumIssueDelta
	}

	ultimatum := entity.NewUltimatum(input.IssuerID, input.RecipientID, input.Demand, input.Deadline, acceptDelta, rejectDelta)
	ultimatum.ID = uuid.New().String()
	if input.Terms != nil {
		ultimatum.Terms = input.Terms
	}

	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.ultimatums.Create(txCtx, ultimatum); err != nil {
			return err
		}

		// 通牒本身即敌意升级
		if _, err := s.tension.UpdateTension(txCtx, ultimatum.IssuerID, ultimatum.RecipientID, policy.UltimatumIssueDelta, "ultimatum_issued"); err != nil {
			return err
		}

		event := entity.NewDiplomaticEvent(entity.EventUltimatumIssued, []string{ultimatum.IssuerID, ultimatum.RecipientID},
			fmt.Sprintf("ultimatum issued: %s", ultimatum.Demand), policy.UltimatumIssueDelta).
			WithTensionDelta(ultimatum.IssuerID, ultimatum.RecipientID, policy.UltimatumIssueDelta)
		return s.recorder.Record(txCtx, event)
	})
	if err != nil {
		span.RecordError(err)
		metrics.ActionsTotal.WithLabelValues("issue_ultimatum", "error").Inc()
		return nil, err
	}

	metrics.ActionsTotal.WithLabelValues("issue_ultimatum", "ok").Inc()
	return ultimatum, nil
}

// GetUltimatum 获取通牒
func (s *UltimatumService) GetUltimatum(ctx context.Context, id string) (*entity.Ultimatum, error) {
	ultimatum, err := s.ultimatums.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ultimatum == nil {
		return nil, errors.ErrUltimatumNotFound
	}
	return ultimatum, nil
}

// ListUltimatums 过滤获取通牒列表
func (s *UltimatumService) ListUltimatums(ctx context.Context, filter *repository.UltimatumFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Ultimatum], error) {
	return s.ultimatums.List(ctx, filter, pagination)
}

// AcceptUltimatum 接受通牒：信任按约定上调，紧张度回落同等幅度
func (s *UltimatumService) AcceptUltimatum(ctx context.Context, id string) (*entity.Ultimatum, error) {
	ctx, span := ultimatumTracer.Start(ctx, "ultimatum.AcceptUltimatum")
	defer span.End()

	ultimatum, err := s.GetUltimatum(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if ultimatum.IsExpired(now) {
		return nil, errors.New(errors.CodeDeadlinePassed, "ultimatum deadline has passed")
	}
	if err := ultimatum.Accept(now); err != nil {
		return nil, ultimatumStateError(err)
	}

	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.ultimatums.Update(txCtx, ultimatum); err != nil {
			return err
		}

		transition := Transition{
			FactionA:     ultimatum.IssuerID,
			FactionB:     ultimatum.RecipientID,
			TrustDelta:   ultimatum.AcceptTrustDelta,
			TensionDelta: -ultimatum.RejectTensionDelta,
			Reason:       "ultimatum_accepted",
		}
		if _, err := s.tension.ApplyTransition(txCtx, transition); err != nil {
			return err
		}

		event := entity.NewDiplomaticEvent(entity.EventUltimatumAccepted, []string{ultimatum.IssuerID, ultimatum.RecipientID},
			fmt.Sprintf("ultimatum accepted: %s", ultimatum.Demand), 0).
			WithTensionDelta(ultimatum.IssuerID, ultimatum.RecipientID, -ultimatum.RejectTensionDelta)
		return s.recorder.Record(txCtx, event)
	})
	if err != nil {
		span.RecordError(err)
		metrics.ActionsTotal.WithLabelValues("accept_ultimatum", "error").Inc()
		return nil, err
	}

	metrics.ActionsTotal.WithLabelValues("accept_ultimatum", "ok").Inc()
	return ultimatum, nil
}

// RejectUltimatum 拒绝通牒，施加约定的紧张度后果
func (s *UltimatumService) RejectUltimatum(ctx context.Context, id string) (*entity.Ultimatum, error) {
	ctx, span := ultimatumTracer.Start(ctx, "ultimatum.RejectUltimatum")
	defer span.End()

	ultimatum, err := s.GetUltimatum(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ultimatum.Reject(time.Now()); err != nil {
		return nil, ultimatumStateError(err)
	}

	if err := s.applyRejection(ctx, ultimatum, entity.EventUltimatumRejected, "ultimatum_rejected", "ultimatum rejected"); err != nil {
		span.RecordError(err)
		metrics.ActionsTotal.WithLabelValues("reject_ultimatum", "error").Inc()
		return nil, err
	}

	metrics.ActionsTotal.WithLabelValues("reject_ultimatum", "ok").Inc()
	return ultimatum, nil
}

// ExpireUltimatum 截止时间已过仍未响应，按拒绝后果处理
func (s *UltimatumService) ExpireUltimatum(ctx context.Context, ultimatum *entity.Ultimatum) error {
	ctx, span := ultimatumTracer.Start(ctx, "ultimatum.ExpireUltimatum")
	defer span.End()

	if err := ultimatum.Expire(time.Now()); err != nil {
		return ultimatumStateError(err)
	}

	if err := s.applyRejection(ctx, ultimatum, entity.EventUltimatumExpired, "ultimatum_expired", "ultimatum expired unanswered"); err != nil {
		span.RecordError(err)
		return err
	}
	metrics.SweepExpiredTotal.WithLabelValues("ultimatum").Inc()
	return nil
}

// applyRejection 拒绝与过期共用一条后果路径
func (s *UltimatumService) applyRejection(ctx context.Context, ultimatum *entity.Ultimatum, eventType entity.DiplomaticEventType, reason, description string) error {
	return s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.ultimatums.Update(txCtx, ultimatum); err != nil {
			return err
		}

		if _, err := s.tension.UpdateTension(txCtx, ultimatum.IssuerID, ultimatum.RecipientID, ultimatum.RejectTensionDelta, reason); err != nil {
			return err
		}

		event := entity.NewDiplomaticEvent(eventType, []string{ultimatum.IssuerID, ultimatum.RecipientID},
			fmt.Sprintf("%s: %s", description, ultimatum.Demand), ultimatum.RejectTensionDelta).
			WithTensionDelta(ultimatum.IssuerID, ultimatum.RecipientID, ultimatum.RejectTensionDelta)
		return s.recorder.Record(txCtx, event)
	})
}

// ultimatumStateError 将实体层状态错误映射为 409 Conflict
func ultimatumStateError(err error) error {
	if stderrors.Is(err, entity.ErrUltimatumNotPending) {
		return errors.Wrap(err, errors.CodeInvalidTransition, "ultimatum already responded")
	}
	return err
}
