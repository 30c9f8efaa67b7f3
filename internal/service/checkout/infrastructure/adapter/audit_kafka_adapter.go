// checkout-service/internal/infrastructure/adapter/audit_kafka_adapter.go
package adapter

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"minorder/internal/pkg/logger"
	"minorder/internal/service/checkout/domain/port"
)

// AuditKafkaAdapter 是 port.AuditTrail 的 Kafka 实现。
// 拦截事件仅用于运营侧分析，发布失败绝不影响请求，只记错误日志。
type AuditKafkaAdapter struct {
	writer *kafka.Writer
}

// NewAuditKafkaAdapter 创建一个新的审计事件发布器。
func NewAuditKafkaAdapter(brokers []string, topic string) *AuditKafkaAdapter {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}
	return &AuditKafkaAdapter{writer: writer}
}

// CheckoutBlocked 发布一次拦截审计事件，按会话分区保证同会话事件有序。
func (a *AuditKafkaAdapter) CheckoutBlocked(ctx context.Context, evt port.BlockedCheckoutEvent) {
	payload, err := json.Marshal(evt)
	if err != nil {
		logger.Ctx(ctx).Error().Err(err).Msg("cannot marshal blocked checkout event")
		return
	}

	writeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	err = a.writer.WriteMessages(writeCtx, kafka.Message{
		Key:   []byte(evt.SessionID),
		Value: payload,
	})
	if err != nil {
		logger.Ctx(ctx).Error().Err(err).Str("event_id", evt.EventID).
			Msg("failed to publish blocked checkout event")
	}
}

// Close 关闭底层的 Kafka writer。
func (a *AuditKafkaAdapter) Close() error {
	return a.writer.Close()
}
