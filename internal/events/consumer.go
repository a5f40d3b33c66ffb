package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/apache/pulsar-client-go/pulsar"
	"github.com/rs/zerolog"
)

const defaultMaxDeliveries = 3

// EventConsumer receives auth events for the audit log on a shared
// subscription. Payloads that repeatedly fail to decode are routed to the
// dead letter topic once redelivery is exhausted.
type EventConsumer struct {
	client   pulsar.Client
	consumer pulsar.Consumer
	log      *zerolog.Logger
}

// NewEventConsumer initializes the Pulsar client and subscribes to the auth
// events topic. An empty dlqTopic or zero maxDeliveries selects the defaults.
func NewEventConsumer(pulsarURL, topic, subscription, dlqTopic string, maxDeliveries uint32, log *zerolog.Logger) (*EventConsumer, error) {
	client, err := pulsar.NewClient(pulsar.ClientOptions{URL: pulsarURL})
	if err != nil {
		return nil, fmt.Errorf("could not create Pulsar client: %w", err)
	}

	consumer, err := client.Subscribe(pulsar.ConsumerOptions{
		Topic:            topic,
		SubscriptionName: subscription,
		Type:             pulsar.Shared,
		DLQ:              dlqPolicy(topic, dlqTopic, maxDeliveries),
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("could not create Pulsar consumer: %w", err)
	}

	return &EventConsumer{client: client, consumer: consumer, log: log}, nil
}

// ReceiveEvent blocks until the next auth event arrives and decodes it.
// Undecodable payloads are nacked and skipped; redelivery and the DLQ deal
// with them.
func (c *EventConsumer) ReceiveEvent(ctx context.Context) (Event, pulsar.Message, error) {
	for {
		msg, err := c.consumer.Receive(ctx)
		if err != nil {
			return Event{}, nil, fmt.Errorf("failed to receive message: %w", err)
		}

		event, err := decodeEvent(msg.Payload())
		if err != nil {
			c.log.Error().Err(err).Str("topic", msg.Topic()).Msg("nacking undecodable event payload")
			c.consumer.Nack(msg)
			continue
		}
		return event, msg, nil
	}
}

// Ack acknowledges a processed event.
func (c *EventConsumer) Ack(msg pulsar.Message) {
	c.consumer.Ack(msg)
}

// Nack requests redelivery of an event that could not be processed.
func (c *EventConsumer) Nack(msg pulsar.Message) {
	c.consumer.Nack(msg)
}

// Close cleans up the Pulsar consumer and client.
func (c *EventConsumer) Close() {
	c.consumer.Close()
	c.client.Close()
}

func dlqPolicy(topic, dlqTopic string, maxDeliveries uint32) *pulsar.DLQPolicy {
	if dlqTopic == "" {
		dlqTopic = topic + "-dlq"
	}
	if maxDeliveries == 0 {
		maxDeliveries = defaultMaxDeliveries
	}
	return &pulsar.DLQPolicy{
		MaxDeliveries:   maxDeliveries,
		DeadLetterTopic: dlqTopic,
	}
}

// decodeEvent parses an event payload, stamping OccurredAt when the producer
// left it unset.
func decodeEvent(payload []byte) (Event, error) {
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return Event{}, fmt.Errorf("could not decode event payload: %w", err)
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	return event, nil
}
