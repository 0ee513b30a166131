package noop

import "github.com/afrifa-micro/banking-core/internal/interfaces"

// Publisher drops every event. Used when no broker is configured and in
// tests.
type Publisher struct{}

func NewPublisher() *Publisher {
	return &Publisher{}
}

func (*Publisher) Publish(topic string, event any) error {
	return nil
}

var _ interfaces.EventPublisher = (*Publisher)(nil)
