// Package repository 定义数据访问层接口
package repository

import (
	"context"
	"time"

	"faction-diplomacy-api/internal/domain/entity"
)

// EventFilter 外交事件过滤条件
type EventFilter struct {
	FactionID  string
	Type       entity.DiplomaticEventType
	From       time.Time
	To         time.Time
	PublicOnly bool
}

// EventRepository 外交事件仓储接口
// 事件日志只追加：不提供更新/删除，修正历史须追加覆盖事件
type EventRepository interface {
	// Create 追加事件
	Create(ctx context.Context, event *entity.DiplomaticEvent) error

	// GetByID 根据 ID 获取事件
	GetByID(ctx context.Context, id string) (*entity.DiplomaticEvent, error)

	// List 过滤读取事件列表，按时间倒序
	List(ctx context.Context, filter *EventFilter, pagination Pagination) (*PagedResult[*entity.DiplomaticEvent], error)
}
