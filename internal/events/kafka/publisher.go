// Package kafka publishes split events to a Kafka topic.
package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/mmynk/settleup/internal/events"
)

// messageWriter is the subset of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

var _ events.Publisher = (*Publisher)(nil)

// Publisher writes SplitCreated events keyed by group name, so events for
// one group land on one partition in order.
type Publisher struct {
	writer messageWriter
}

// NewPublisher returns a publisher writing to topic on brokers.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			// Writes are synchronous per request; don't wait for a batch to fill.
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

func (p *Publisher) PublishSplitCreated(ctx context.Context, event events.SplitCreated) error {
	data, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.GroupName),
		Value: data,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(events.SplitCreatedType)},
		},
	})
	if err != nil {
		return fmt.Errorf("write kafka message: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
