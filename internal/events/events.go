package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/apache/pulsar-client-go/pulsar"
)

// Event names published on the auth events topic.
const (
	UserCreated          = "user_created"
	UserDeleted          = "user_deleted"
	GroupCreated         = "group_created"
	GroupUpdated         = "group_updated"
	GroupDeleted         = "group_deleted"
	UserGroupAssociated  = "user_group_associated"
	UserGroupDissociated = "user_group_dissociated"
	PolicyCreated        = "policy_created"
	PolicyDeleted        = "policy_deleted"
	SessionDeleted       = "session_deleted"
)

// Event is the payload published for every auth state change.
type Event struct {
	Name       string            `json:"name"`
	Data       map[string]string `json:"data"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// Notifier is the publishing interface handlers depend on.
type Notifier interface {
	Publish(event Event) error
	Close()
}

type EventPublisher struct {
	client   pulsar.Client
	producer pulsar.Producer
}

// NewEventPublisher initializes the Pulsar client and producer.
func NewEventPublisher(pulsarURL, topic string) (*EventPublisher, error) {
	client, err := pulsar.NewClient(pulsar.ClientOptions{
		URL: pulsarURL,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create Pulsar client: %w", err)
	}

	producer, err := client.CreateProducer(pulsar.ProducerOptions{
		Topic: topic,
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("could not create Pulsar producer: %w", err)
	}

	return &EventPublisher{client: client, producer: producer}, nil
}

// Publish sends an event to the configured topic.
func (p *EventPublisher) Publish(event Event) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	message, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("could not serialize event payload: %w", err)
	}

	_, err = p.producer.Send(context.Background(), &pulsar.ProducerMessage{
		Key:     event.Name,
		Payload: message,
	})
	if err != nil {
		return fmt.Errorf("could not send event to Pulsar: %w", err)
	}

	return nil
}

// Close cleans up the Pulsar producer and client.
func (p *EventPublisher) Close() {
	p.producer.Close()
	p.client.Close()
}
