// Package events publishes order and settlement status changes for downstream consumers.
package events

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Publish writes synchronously, so each call flushes its own batch.
const (
	publishBatchTimeout = 5 * time.Millisecond
	publishWriteTimeout = 5 * time.Second
	publishMaxAttempts  = 3
)

type KafkaPublisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewKafkaPublisher(brokers []string, topic string, log *zap.Logger) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka publisher requires at least one broker")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka publisher requires a topic")
	}
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			RequiredAcks: kafka.RequireAll,
			Balancer:     &kafka.Hash{},
			BatchTimeout: publishBatchTimeout,
			WriteTimeout: publishWriteTimeout,
			MaxAttempts:  publishMaxAttempts,
		},
		logger: log,
	}, nil
}

// Publish keys messages by entity id so one order's events stay ordered.
func (p *KafkaPublisher) Publish(ctx context.Context, eventType string, key string, payload []byte) error {
	err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
		Time:  time.Now().UTC(),
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	})
	if err != nil {
		return fmt.Errorf("publish %s for %s: %w", eventType, key, err)
	}
	p.logger.Debug("event published", zap.String("event", eventType), zap.String("key", key))
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops events. It is used when no Kafka brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, string, []byte) error {
	return nil
}
