package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/arkadata/userhub/config"
	"github.com/arkadata/userhub/internal/application"
	"github.com/arkadata/userhub/internal/domain/event"
	"github.com/arkadata/userhub/internal/infrastructure/search"
	"github.com/arkadata/userhub/pkg/helpers"
	"github.com/arkadata/userhub/pkg/mailer"
)

// The event worker consumes user lifecycle events from RabbitMQ and runs
// the side effects the API server deliberately keeps out of its request
// path: search index projection and welcome emails. Delivery is at least
// once, so every handler must tolerate replays.
func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-worker", cfg.Env)

	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.UserEventsQueue, cfg.ConsumerPrefetch)
	if err != nil {
		log.Fatalf("amqp connect: %v", err)
	}
	defer consumer.Close()

	msgs, err := consumer.Consume()
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	var indexer *search.UserIndexer
	if cfg.SearchIndexEnabled {
		es, err := search.NewClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			log.Fatalf("elasticsearch client: %v", err)
		}
		indexer = search.NewUserIndexer(es, cfg.ESUsersIndex)
	}

	var mg *mailer.Mailgun
	if cfg.MailSendEnabled {
		if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
			log.Fatal("MAIL_SEND_ENABLED=true but Mailgun is not configured")
		}
		mg = mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	}

	createdHandler := &application.UserCreatedHandler{
		Logger:      logger,
		Indexer:     indexer,
		Mailer:      mg,
		MailEnabled: cfg.MailSendEnabled,
	}
	updatedHandler := &application.UserUpdatedHandler{
		Logger:  logger,
		Indexer: indexer,
	}

	ctx := context.Background()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for msg := range msgs {
			handleDelivery(ctx, logger, createdHandler, updatedHandler, msg)
		}
	}()

	logger.WithField("queue", cfg.UserEventsQueue).Info("event worker started")
	select {
	case <-stop:
		logger.Info("shutting down event worker")
		consumer.Close()
		<-done
	case <-done:
		logger.Warn("delivery channel closed, exiting")
	}
}

// handleDelivery decodes and dispatches one message. Decode failures are
// permanent and must drop the message; only handler failures requeue, so a
// malformed payload can never cycle through redelivery forever.
func handleDelivery(ctx context.Context, logger *logrus.Logger, created *application.UserCreatedHandler, updated *application.UserUpdatedHandler, msg amqp.Delivery) {
	var env event.Envelope
	if err := json.Unmarshal(msg.Body, &env); err != nil {
		logger.WithError(err).Warn("undecodable message, dropping")
		_ = msg.Nack(false, false)
		return
	}

	var handle func() error
	switch env.EventType {
	case event.TypeUserCreated:
		var ev event.UserCreated
		if err := json.Unmarshal(msg.Body, &ev); err != nil {
			dropUndecodable(logger, env, err, msg)
			return
		}
		handle = func() error { return created.Handle(ctx, ev) }
	case event.TypeUserUpdated:
		var ev event.UserUpdated
		if err := json.Unmarshal(msg.Body, &ev); err != nil {
			dropUndecodable(logger, env, err, msg)
			return
		}
		handle = func() error { return updated.Handle(ctx, ev) }
	default:
		// Unknown types are acked so they do not wedge the queue.
		logger.WithField("event_type", env.EventType).Warn("unknown event type, skipping")
		_ = msg.Ack(false)
		return
	}

	if err := handle(); err != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"event_id":   env.EventID,
			"event_type": env.EventType,
		}).Error("event handling failed, requeueing")
		_ = msg.Nack(false, true)
		return
	}
	_ = msg.Ack(false)
}

func dropUndecodable(logger *logrus.Logger, env event.Envelope, err error, msg amqp.Delivery) {
	logger.WithError(err).WithFields(logrus.Fields{
		"event_id":   env.EventID,
		"event_type": env.EventType,
	}).Warn("undecodable payload, dropping")
	_ = msg.Nack(false, false)
}
