// Package messaging binds the domain event publisher port to RabbitMQ.
package messaging

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/arkadata/userhub/internal/domain/event"
	"github.com/arkadata/userhub/pkg/helpers"
)

// EventPublisher publishes domain events as persistent JSON messages on the
// user-events queue, carrying the event and aggregate types as message
// headers for consumer-side dispatch.
type EventPublisher struct {
	pub    *helpers.RabbitPublisher
	logger *logrus.Logger
}

func NewEventPublisher(pub *helpers.RabbitPublisher, logger *logrus.Logger) *EventPublisher {
	return &EventPublisher{pub: pub, logger: logger}
}

func (p *EventPublisher) Publish(ctx context.Context, e event.Event) error {
	env := e.Header()
	headers := map[string]any{
		"event_type":     env.EventType,
		"aggregate_type": env.AggregateType,
	}
	if err := p.pub.PublishJSON(ctx, e, headers); err != nil {
		return err
	}
	if p.logger != nil {
		p.logger.WithFields(logrus.Fields{
			"event_id":   env.EventID,
			"event_type": env.EventType,
		}).Info("published event")
	}
	return nil
}

var _ event.Publisher = (*EventPublisher)(nil)
