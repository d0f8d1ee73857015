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

var incidentTracer = otel.Tracer("diplomacy.incident")

// RecordIncidentInput 记录外交事件入参
type RecordIncidentInput struct {
	PerpetratorID string
	VictimID      string
	IncidentType  string
	Description   string
	Severity      int
	TensionImpact int
	Evidence      entity.JSONMap
}

// IncidentService 处理条约之外的敌对行为记录及其紧张度后果
type IncidentService struct {
	incidents repository.IncidentRepository
	tension   *TensionService
	recorder  *EventRecorder
	tx        repository.Transactor
}

// NewIncidentService 创建事件服务
func NewIncidentService(
	incidents repository.IncidentRepository,
	tension *TensionService,
	recorder *EventRecorder,
	tx repository.Transactor,
) *IncidentService {
	return &IncidentService{
		incidents: incidents,
		tension:   tension,
		recorder:  recorder,
		tx:        tx,
	}
}

// RecordIncident 记录事件：落库 + 紧张度按影响值上调 + 事件追加
func (s *IncidentService) RecordIncident(ctx context.Context, input RecordIncidentInput) (*entity.DiplomaticIncident, error) {
	ctx, span := incidentTracer.Start(ctx, "incident.RecordIncident")
	defer span.End()

	if input.PerpetratorID == "" || input.VictimID == "" {
		return nil, errors.New(errors.CodeValidationFailed, "perpetrator and victim are required")
	}
	if input.PerpetratorID == input.VictimID {
		return nil, errors.New(errors.CodeValidationFailed, "perpetrator and victim must differ")
	}

	incident := entity.NewDiplomaticIncident(input.PerpetratorID, input.VictimID, input.Description, input.Severity, input.TensionImpact)
	incident.ID = uuid.New().String()
	incident.IncidentType = input.IncidentType
	if input.Evidence != nil {
		incident.Evidence = input.Evidence
	}

	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.incidents.Create(txCtx, incident); err != nil {
			return err
		}

		if _, err := s.tension.UpdateTension(txCtx, incident.PerpetratorID, incident.VictimID, incident.TensionImpact, "incident"); err != nil {
			return err
		}

		event := entity.NewDiplomaticEvent(entity.EventIncident, []string{incident.PerpetratorID, incident.VictimID},
			fmt.Sprintf("incident: %s", incident.Description), incident.Severity).
			WithTensionDelta(incident.PerpetratorID, incident.VictimID, incident.TensionImpact)
		return s.recorder.Record(txCtx, event)
	})
	if err != nil {
		span.RecordError(err)
		metrics.ActionsTotal.WithLabelValues("record_incident", "error").Inc()
		return nil, err
	}

	metrics.ActionsTotal.WithLabelValues("record_incident", "ok").Inc()
	return incident, nil
}

// GetIncident 获取事件
func (s *IncidentService) GetIncident(ctx context.Context, id string) (*entity.DiplomaticIncident, error) {
	incident, err := s.incidents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if incident == nil {
		return nil, errors.ErrIncidentNotFound
	}
	return incident, nil
}

// ListIncidents 过滤获取事件列表
func (s *IncidentService) ListIncidents(ctx context.Context, filter *repository.IncidentFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.DiplomaticIncident], error) {
	return s.incidents.List(ctx, filter, pagination)
}

// AcknowledgeIncident 确认事件
func (s *IncidentService) AcknowledgeIncident(ctx context.Context, id string) (*entity.DiplomaticIncident, error) {
	incident, err := s.GetIncident(ctx, id)
	if err != nil {
		return nil, err
	}
	incident.Acknowledge(time.Now())
	if err := s.incidents.Update(ctx, incident); err != nil {
		return nil, err
	}
	return incident, nil
}

// ResolveIncident 解决事件并按配置系数回落紧张度
func (s *IncidentService) ResolveIncident(ctx context.Context, id string) (*entity.DiplomaticIncident, error) {
	ctx, span := incidentTracer.Start(ctx, "incident.ResolveIncident")
	defer span.End()

	incident, err := s.GetIncident(ctx, id)
	if err != nil {
		return nil, err
	}
	if incident.Resolved {
		return incident, nil
	}

	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		now := time.Now()
		incident.Acknowledge(now)
		incident.Resolve(now)
		if err := s.incidents.Update(txCtx, incident); err != nil {
			return err
		}

		relief := s.tension.Policy().ReliefDelta(incident.TensionImpact)
		if relief != 0 {
			if _, err := s.tension.UpdateTension(txCtx, incident.PerpetratorID, incident.VictimID, relief, "incident_resolved"); err != nil {
				return err
			}
		}

		event := entity.NewDiplomaticEvent(entity.EventIncidentResolved, []string{incident.PerpetratorID, incident.VictimID},
			fmt.Sprintf("incident resolved: %s", incident.Description), incident.Severity).
			WithTensionDelta(incident.PerpetratorID, incident.VictimID, relief)
		return s.recorder.Record(txCtx, event)
	})
	if err != nil {
		span.RecordError(err)
		metrics.ActionsTotal.WithLabelValues("resolve_incident", "error").Inc()
		return nil, err
	}

	metrics.ActionsTotal.WithLabelValues("resolve_incident", "ok").Inc()
	return incident, nil
}
