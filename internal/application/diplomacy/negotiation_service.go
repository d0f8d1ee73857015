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

var negotiationTracer = otel.Tracer("diplomacy.negotiation")

// StartNegotiationInput 发起谈判入参
type StartNegotiationInput struct {
	Parties   []string
	Initiator string
	Deadline  *time.Time
}

// MakeOfferInput 出价入参
type MakeOfferInput struct {
	Proposer string
	Terms    entity.JSONMap
	Message  string
}

// NegotiationService 谈判状态机服务，接受后在同一事务内产出条约
type NegotiationService struct {
	negotiations repository.NegotiationRepository
	treaties     *TreatyService
	recorder     *EventRecorder
	tx           repository.Transactor
}

// NewNegotiationService 创建谈判服务
func NewNegotiationService(
	negotiations repository.NegotiationRepository,
	treaties *TreatyService,
	recorder *EventRecorder,
	tx repository.Transactor,
) *NegotiationService {
	return &NegotiationService{
		negotiations: negotiations,
		treaties:     treaties,
		recorder:     recorder,
		tx:           tx,
	}
}

// StartNegotiation 发起谈判，初始状态 pending
func (s *NegotiationService) StartNegotiation(ctx context.Context, input StartNegotiationInput) (*entity.Negotiation, error) {
	ctx, span := negotiationTracer.Start(ctx, "negotiation.StartNegotiation")
	defer span.End()

	if len(input.Parties) < 2 {
		return nil, errors.New(errors.CodeValidationFailed, "negotiation requires at least two parties")
	}

	negotiation := entity.NewNegotiation(input.Parties, input.Initiator, input.Deadline)
	negotiation.ID = uuid.New().String()
	if !negotiation.IsParty(input.Initiator) {
		return nil, errors.New(errors.CodeValidationFailed, "initiator must be one of the parties")
	}

	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.negotiations.Create(txCtx, negotiation); err != nil {
			return err
		}
		event := entity.NewDiplomaticEvent(entity.EventNegotiationStarted, negotiation.Parties,
			fmt.Sprintf("negotiation started by %s", negotiation.Initiator), 0).
			WithNegotiation(negotiation.ID)
		return s.recorder.Record(txCtx, event)
	})
	if err != nil {
		span.RecordError(err)
		metrics.ActionsTotal.WithLabelValues("start_negotiation", "error").Inc()
		return nil, err
	}

	metrics.ActionsTotal.WithLabelValues("start_negotiation", "ok").Inc()
	return negotiation, nil
}

// GetNegotiation 获取谈判
func (s *NegotiationService) GetNegotiation(ctx context.Context, id string) (*entity.Negotiation, error) {
	negotiation, err := s.negotiations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if negotiation == nil {
		return nil, errors.ErrNegotiationNotFound
	}
	return negotiation, nil
}

// ListNegotiations 过滤获取谈判列表
func (s *NegotiationService) ListNegotiations(ctx context.Context, filter *repository.NegotiationFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Negotiation], error) {
	return s.negotiations.List(ctx, filter, pagination)
}

// MakeOffer 出价或还价，非法状态迁移返回 Conflict
func (s *NegotiationService) MakeOffer(ctx context.Context, negotiationID string, input MakeOfferInput) (*entity.Negotiation, error) {
	ctx, span := negotiationTracer.Start(ctx, "negotiation.MakeOffer")
	defer span.End()

	negotiation, err := s.GetNegotiation(ctx, negotiationID)
	if err != nil {
		return nil, err
	}
	if !negotiation.IsParty(input.Proposer) {
		return nil, errors.New(errors.CodeValidationFailed, "proposer is not a negotiation party")
	}
	if negotiation.Deadline != nil && time.Now().After(*negotiation.Deadline) {
		return nil, errors.New(errors.CodeDeadlinePassed, "negotiation deadline has passed")
	}

	if err := negotiation.MakeOffer(uuid.New().String(), input.Proposer, input.Terms, input.Message); err != nil {
		return nil, transitionError(err)
	}

	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.negotiations.Update(txCtx, negotiation); err != nil {
			return err
		}
		event := entity.NewDiplomaticEvent(entity.EventNegotiationOffer, negotiation.Parties,
			fmt.Sprintf("offer made by %s", input.Proposer), 0).
			WithNegotiation(negotiation.ID)
		return s.recorder.Record(txCtx, event)
	})
	if err != nil {
		span.RecordError(err)
		metrics.ActionsTotal.WithLabelValues("make_offer", "error").Inc()
		return nil, err
	}

	metrics.ActionsTotal.WithLabelValues("make_offer", "ok").Inc()
	return negotiation, nil
}

// AcceptOffer 接受当前出价并产出条约；谈判更新、条约创建与事件同属一个事务
func (s *NegotiationService) AcceptOffer(ctx context.Context, negotiationID, accepter string) (*entity.Negotiation, *entity.Treaty, error) {
	ctx, span := negotiationTracer.Start(ctx, "negotiation.AcceptOffer")
	defer span.End()

	negotiation, err := s.GetNegotiation(ctx, negotiationID)
	if err != nil {
		return nil, nil, err
	}
	if accepter != "" && !negotiation.IsParty(accepter) {
		return nil, nil, errors.New(errors.CodeValidationFailed, "accepter is not a negotiation party")
	}

	offer := negotiation.CurrentOffer()
	if err := negotiation.Accept(); err != nil {
		return nil, nil, transitionError(err)
	}

	var treaty *entity.Treaty
	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.negotiations.Update(txCtx, negotiation); err != nil {
			return err
		}

		input := treatyInputFromOffer(negotiation, offer)
		created, err := s.treaties.CreateTreaty(txCtx, input)
		if err != nil {
			return err
		}
		treaty = created

		event := entity.NewDiplomaticEvent(entity.EventNegotiationAccepted, negotiation.Parties,
			fmt.Sprintf("negotiation accepted by %s", accepter), 0).
			WithNegotiation(negotiation.ID).
			WithTreaty(treaty.ID)
		return s.recorder.Record(txCtx, event)
	})
	if err != nil {
		span.RecordError(err)
		metrics.ActionsTotal.WithLabelValues("accept_offer", "error").Inc()
		return nil, nil, err
	}

	metrics.ActionsTotal.WithLabelValues("accept_offer", "ok").Inc()
	return negotiation, treaty, nil
}

// RejectOffer 拒绝谈判，进入终态
func (s *NegotiationService) RejectOffer(ctx context.Context, negotiationID, rejecter string) (*entity.Negotiation, error) {
	ctx, span := negotiationTracer.Start(ctx, "negotiation.RejectOffer")
	defer span.End()

	negotiation, err := s.GetNegotiation(ctx, negotiationID)
	if err != nil {
		return nil, err
	}
	if rejecter != "" && !negotiation.IsParty(rejecter) {
		return nil, errors.New(errors.CodeValidationFailed, "rejecter is not a negotiation party")
	}

	if err := negotiation.Reject(); err != nil {
		return nil, transitionError(err)
	}

	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.negotiations.Update(txCtx, negotiation); err != nil {
			return err
		}
		event := entity.NewDiplomaticEvent(entity.EventNegotiationRejected, negotiation.Parties,
			fmt.Sprintf("negotiation rejected by %s", rejecter), 0).
			WithNegotiation(negotiation.ID)
		return s.recorder.Record(txCtx, event)
	})
	if err != nil {
		span.RecordError(err)
		metrics.ActionsTotal.WithLabelValues("reject_offer", "error").Inc()
		return nil, err
	}

	metrics.ActionsTotal.WithLabelValues("reject_offer", "ok").Inc()
	return negotiation, nil
}

// treatyInputFromOffer 从被接受的出价构造条约入参
// 出价条款中 treaty_type / treaty_name / end_date 为约定键，缺省时退化为贸易条约
func treatyInputFromOffer(n *entity.Negotiation, offer *entity.Offer) CreateTreatyInput {
	input := CreateTreatyInput{
		Name:          fmt.Sprintf("Treaty of %s", n.Initiator),
		Type:          entity.TreatyTypeTrade,
		Parties:       n.Parties,
		NegotiationID: n.ID,
	}
	if offer == nil {
		return input
	}
	input.Terms = offer.Terms
	if v, ok := offer.Terms["treaty_name"].(string); ok && v != "" {
		input.Name = v
	}
	if v, ok := offer.Terms["treaty_type"].(string); ok {
		if t := entity.TreatyType(v); t.Valid() {
			input.Type = t
		}
	}
	if v, ok := offer.Terms["end_date"].(string); ok {
		if end, err := time.Parse(time.RFC3339, v); err == nil {
			input.EndDate = &end
		}
	}
	return input
}

// transitionError 将实体层迁移错误映射为 409 Conflict
func transitionError(err error) error {
	if stderrors.Is(err, entity.ErrInvalidNegotiationTransition) {
		return errors.Wrap(err, errors.CodeInvalidTransition, "invalid negotiation transition")
	}
	return err
}
