package service

import (
	"context"

	"faction-diplomacy-api/internal/domain/entity"
)

// EventSink 外交事件对外发布端口。
// 说明：该接口位于 domain/service，作为跨层的稳定契约（port），
// 取代原设计中的全局单例事件分发器——实现由构造时显式注入。
// 约定：实现应尽量"best-effort"，发布失败不应阻塞外交动作本身。
type EventSink interface {
	Publish(ctx context.Context, event *entity.DiplomaticEvent) error
}

// NopEventSink 空实现，测试与无消息队列部署时使用
type NopEventSink struct{}

// Publish 丢弃事件
func (NopEventSink) Publish(ctx context.Context, event *entity.DiplomaticEvent) error {
	return nil
}
