package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/arkadata/userhub/internal/domain/event"
	"github.com/arkadata/userhub/internal/infrastructure/search"
	"github.com/arkadata/userhub/pkg/mailer"
)

// UserCreatedHandler reacts to user.created events on the worker side:
// it projects the new user into the search index and, when enabled, sends
// a welcome email. Indexing is best effort; a mail failure makes the
// message redeliverable.
type UserCreatedHandler struct {
	Logger      *logrus.Logger
	Indexer     *search.UserIndexer
	Mailer      *mailer.Mailgun
	MailEnabled bool
}

func (h *UserCreatedHandler) Handle(ctx context.Context, ev event.UserCreated) error {
	h.Logger.WithFields(logrus.Fields{
		"event_id":     ev.EventID,
		"aggregate_id": ev.AggregateID,
		"email":        ev.Email,
		"name":         ev.Name,
	}).Info("processing user.created event")

	if h.Indexer != nil {
		doc := map[string]any{
			"id":    ev.AggregateID,
			"email": ev.Email,
			"name":  ev.Name,
		}
		if err := h.Indexer.Index(ctx, ev.AggregateID, doc); err != nil {
			h.Logger.WithError(err).WithField("user_id", ev.AggregateID).Warn("search index failed")
		}
	}

	if h.MailEnabled && h.Mailer != nil {
		subject := "Welcome to userhub"
		text := fmt.Sprintf("Hi %s,\n\nyour account was created for %s.\n", ev.Name, ev.Email)
		if err := h.Mailer.Send(ctx, ev.Email, subject, text, ""); err != nil {
			return fmt.Errorf("sending welcome email: %w", err)
		}
	}
	return nil
}

// UserUpdatedHandler reacts to user.updated events: it logs the change
// record and pushes the new email/name values into the search index.
type UserUpdatedHandler struct {
	Logger  *logrus.Logger
	Indexer *search.UserIndexer
}

func (h *UserUpdatedHandler) Handle(ctx context.Context, ev event.UserUpdated) error {
	h.Logger.WithFields(logrus.Fields{
		"event_id":     ev.EventID,
		"aggregate_id": ev.AggregateID,
		"changes":      ev.Changes,
	}).Info("processing user.updated event")

	if h.Indexer == nil {
		return nil
	}

	fields := map[string]any{}
	for _, name := range []string{"email", "name"} {
		if ch, ok := ev.Changes[name]; ok {
			fields[name] = ch.New
		}
	}
	if len(fields) == 0 {
		return nil
	}
	if err := h.Indexer.UpdateFields(ctx, ev.AggregateID, fields); err != nil {
		h.Logger.WithError(err).WithField("user_id", ev.AggregateID).Warn("search index update failed")
	}
	return nil
}
