package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// Publisher emits domain events keyed for partitioning.
type Publisher interface {
	Publish(ctx context.Context, key string, payload any) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaProducer writes JSON payloads to a single topic.
type KafkaProducer struct {
	topic  string
	writer messageWriter
	now    func() time.Time
}

func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}
	return &KafkaProducer{topic: topic, writer: writer, now: time.Now}
}

func (p *KafkaProducer) Publish(ctx context.Context, key string, payload any) error {
	msg, err := p.newMessage(key, payload)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("events: write to %s: %w", p.topic, err)
	}
	return nil
}

func (p *KafkaProducer) newMessage(key string, payload any) (kafka.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("events: marshal payload: %w", err)
	}
	return kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  p.now(),
	}, nil
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}

// NopPublisher drops every event. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }
func (NopPublisher) Close() error                               { return nil }
