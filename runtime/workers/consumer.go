package workers

import (
	"context"
	"encoding/json"
	goerrors "errors"
	"fmt"
	"log/slog"
	"notify-lab/contract"
	"notify-lab/domain/event"
	"notify-lab/repositories"
	"time"

	"github.com/nats-io/nats.go"
)

// outcome decides what happens to the stream position after an event.
type outcome int

const (
	// ackEvent: persisted and broadcast, advance.
	ackEvent outcome = iota
	// skipEvent: malformed, never retried, advance.
	skipEvent
	// retryEvent: persistence failed; the position must not advance past
	// an event whose row was never written, so the stream redelivers it.
	retryEvent
)

// Consumer maintains a durable pull subscription on the upstream
// notification-event subject. Events are processed strictly one at a time:
// an event is fully persisted and broadcast before the next is fetched, so
// a client can never observe a push before the record is queryable.
//
// Every instance of a deployment binds the same durable name, which makes
// JetStream load-balance the subject across instances without duplicate
// delivery (the original Kafka consumer-group semantics).
type Consumer struct {
	log          *slog.Logger
	js           nats.JetStreamContext
	repository   repositories.INotificationRepository
	broadcaster  contract.IBroadcaster
	subject      string
	durable      string
	fetchTimeout time.Duration
}

func NewConsumer(log *slog.Logger, js nats.JetStreamContext,
	repository repositories.INotificationRepository, broadcaster contract.IBroadcaster,
	subject, durable string, fetchTimeout time.Duration) *Consumer {
	return &Consumer{
		log:          log,
		js:           js,
		repository:   repository,
		broadcaster:  broadcaster,
		subject:      subject,
		durable:      durable,
		fetchTimeout: fetchTimeout,
	}
}

// EnsureStream creates the upstream stream when it does not exist yet.
// Deployments normally provision it out of band; this keeps local setups
// working without extra tooling.
func EnsureStream(js nats.JetStreamContext, name, subject string) error {
	_, err := js.StreamInfo(name)
	if err == nil {
		return nil
	}
	if !goerrors.Is(err, nats.ErrStreamNotFound) {
		return fmt.Errorf("stream info %s: %w", name, err)
	}
	_, err = js.AddStream(&nats.StreamConfig{
		Name:     name,
		Subjects: []string{subject},
	})
	if err != nil {
		return fmt.Errorf("create stream %s: %w", name, err)
	}
	return nil
}

// Run blocks fetching events until the context is canceled. An in-flight
// event always finishes persist+broadcast and its ack/nak before a
// shutdown is honored. A broken upstream connection makes Run return an
// error; the supervisor restarts it after its backoff interval, and the
// durable consumer resumes from its committed position.
func (c *Consumer) Run(ctx context.Context) error {
	sub, err := c.js.PullSubscribe(c.subject, c.durable, nats.AckExplicit())
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", c.subject, err)
	}

	c.log.Info("Consuming notification events", "subject", c.subject, "durable", c.durable)
	for {
		if ctx.Err() != nil {
			c.log.Debug("Context done, stopping consumer")
			return nil
		}

		msgs, err := sub.Fetch(1, nats.MaxWait(c.fetchTimeout))
		if err != nil {
			if goerrors.Is(err, nats.ErrTimeout) || goerrors.Is(err, context.DeadlineExceeded) {
				// No event published within the window; keep polling.
				continue
			}
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("fetch %s: %w", c.subject, err)
		}

		for _, msg := range msgs {
			switch c.handle(msg.Data) {
			case ackEvent:
				if err := msg.Ack(); err != nil {
					c.log.Warn("Ack failed, event may be redelivered", "error", err)
				}
			case skipEvent:
				if err := msg.Term(); err != nil {
					c.log.Warn("Term failed", "error", err)
				}
			case retryEvent:
				if err := msg.Nak(); err != nil {
					c.log.Warn("Nak failed", "error", err)
				}
			}
		}
	}
}

// handle runs the persist-then-broadcast pipeline for one raw event.
func (c *Consumer) handle(data []byte) outcome {
	var evt event.TaskEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		c.log.Warn("Skipping malformed event", "error", err)
		return skipEvent
	}
	if err := evt.Validate(); err != nil {
		c.log.Warn("Skipping event with missing fields", "error", err)
		return skipEvent
	}

	stored, err := c.repository.Insert(evt.Notification())
	if err != nil {
		// Skipping here would silently drop a notification.
		c.log.Error("Store unavailable, event will be redelivered", "error", err)
		return retryEvent
	}

	c.log.Info("Notification persisted",
		"notification_id", stored.ID, "user_id", stored.UserID, "type", stored.Type)
	c.broadcaster.Broadcast(stored)
	return ackEvent
}
