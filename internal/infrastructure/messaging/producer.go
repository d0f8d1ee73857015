// Package messaging 提供消息队列实现
package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"faction-diplomacy-api/internal/domain/entity"
)

var tracer = otel.Tracer("messaging")

// Producer 消息生产者
type Producer struct {
	client *redis.Client
	maxLen int64
}

// NewProducer 创建消息生产者
func NewProducer(client *redis.Client, maxLen int64) *Producer {
	if maxLen <= 0 {
		maxLen = 100000
	}
	return &Producer{
		client: client,
		maxLen: maxLen,
	}
}

// Publish 发布消息到指定流
func (p *Producer) Publish(ctx context.Context, stream Stream, msg *Message) (string, error) {
	ctx, span := tracer.Start(ctx, "producer.Publish",
		trace.WithAttributes(
			attribute.String("stream", string(stream)),
			attribute.String("message.id", msg.ID),
			attribute.String("message.type", msg.Type),
		))
	defer span.End()

	data, err := json.Marshal(msg)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("failed to marshal message: %w", err)
	}

	result, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: string(stream),
		MaxLen: p.maxLen,
		Approx: true,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()

	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("failed to publish message: %w", err)
	}

	span.SetAttributes(attribute.String("stream.message_id", result))
	return result, nil
}

// EventPublisher 将已落库的外交事件发布到事件流
// 实现应用层的 EventSink 端口，由服务构造时显式注入
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher 创建事件发布器
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// Publish 发布外交事件
func (p *EventPublisher) Publish(ctx context.Context, event *entity.DiplomaticEvent) error {
	msg, err := NewMessage(event.ID, string(event.Type), event.Factions, event)
	if err != nil {
		return err
	}

	msg.SetMetadata("severity", fmt.Sprintf("%d", event.Severity))
	if event.TreatyID != "" {
		msg.SetMetadata("treaty_id", event.TreatyID)
	}
	if event.NegotiationID != "" {
		msg.SetMetadata("negotiation_id", event.NegotiationID)
	}

	_, err = p.producer.Publish(ctx, StreamDiplomacyEvents, msg)
	return err
}
