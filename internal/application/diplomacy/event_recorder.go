// Package diplomacy 实现外交引擎的应用服务
package diplomacy

import (
	"context"

	"github.com/google/uuid"

	"faction-diplomacy-api/internal/domain/entity"
	"faction-diplomacy-api/internal/domain/repository"
	"faction-diplomacy-api/internal/domain/service"
	"faction-diplomacy-api/pkg/logger"
	"faction-diplomacy-api/pkg/metrics"
)

// EventRecorder 事件日志追加 + 对外发布
// 日志追加参与调用方事务；对外发布延迟到事务提交之后，
// 回滚的动作不会对下游可见。发布为 best-effort，失败只记日志。
type EventRecorder struct {
	events repository.EventRepository
	sink   service.EventSink
}

// NewEventRecorder 创建事件记录器
func NewEventRecorder(events repository.EventRepository, sink service.EventSink) *EventRecorder {
	if sink == nil {
		sink = service.NopEventSink{}
	}
	return &EventRecorder{
		events: events,
		sink:   sink,
	}
}

// Record 追加事件记录，并注册提交后的对外发布
func (r *EventRecorder) Record(ctx context.Context, event *entity.DiplomaticEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	if err := r.events.Create(ctx, event); err != nil {
		return err
	}
	metrics.EventsAppendedTotal.WithLabelValues(string(event.Type)).Inc()

	repository.AfterCommit(ctx, func(ctx context.Context) {
		r.publish(ctx, event)
	})
	return nil
}

// publish 对外发布；失败只记日志，不影响已提交的动作
func (r *EventRecorder) publish(ctx context.Context, event *entity.DiplomaticEvent) {
	if err := r.sink.Publish(ctx, event); err != nil {
		metrics.EventsPublishedTotal.WithLabelValues(string(event.Type), "error").Inc()
		logger.Warn(ctx, "failed to publish diplomatic event",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err.Error(),
		)
		return
	}
	metrics.EventsPublishedTotal.WithLabelValues(string(event.Type), "ok").Inc()
}
