package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Consumer struct {
	reader *kafka.Reader
	log    *zap.Logger
}

func NewConsumer(brokers []string, groupID, topic string, log *zap.Logger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
		log: log,
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// ConsumeAudit reads audit events until ctx is done or handler fails.
// Messages that do not decode are logged and skipped.
func (c *Consumer) ConsumeAudit(ctx context.Context, handler func(context.Context, AuditEvent) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		event, err := DecodeAuditEvent(msg.Value)
		if err != nil {
			c.log.Warn("skip undecodable audit event",
				zap.Int64("offset", msg.Offset), zap.Error(err))
			continue
		}

		if err := handler(ctx, event); err != nil {
			return err
		}
	}
}

func DecodeAuditEvent(data []byte) (AuditEvent, error) {
	var event AuditEvent
	err := json.Unmarshal(data, &event)
	return event, err
}
