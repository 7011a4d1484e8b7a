package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cdentertainment/site-api/internal/app/model"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	leadFetchBatch   = 10
	leadFetchMaxWait = 5 * time.Second

	leadRetryBase = 30 * time.Second
	leadRetryMax  = 30 * time.Minute
)

// LeadMailer sends the staff notification for a lead.
type LeadMailer interface {
	IsConfigured() bool
	SendLead(event model.LeadEvent) error
}

// LeadNotifier consumes lead events from JetStream and emails them to staff.
type LeadNotifier struct {
	js     nats.JetStreamContext
	logger *zap.Logger
	mailer LeadMailer
}

// NewLeadNotifier creates a new lead notifier. The stream and durable consumer must
// already exist (see natsclient.EnsureLeadStream).
func NewLeadNotifier(js nats.JetStreamContext, logger *zap.Logger, mailer LeadMailer) *LeadNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeadNotifier{js: js, logger: logger, mailer: mailer}
}

// Start subscribes to the durable consumer and processes messages until ctx is done.
func (n *LeadNotifier) Start(ctx context.Context) error {
	sub, err := n.js.PullSubscribe(model.LeadStreamSubject, model.LeadConsumerName,
		nats.Bind(model.LeadStreamName, model.LeadConsumerName))
	if err != nil {
		return fmt.Errorf("subscribe lead consumer: %w", err)
	}

	if !n.mailer.IsConfigured() {
		n.logger.Warn("email is not configured, lead notifications will be acknowledged without sending")
	}

	go n.consume(ctx, sub)
	return nil
}

func (n *LeadNotifier) consume(ctx context.Context, sub *nats.Subscription) {
	defer func() { _ = sub.Unsubscribe() }()

	for {
		if ctx.Err() != nil {
			n.logger.Info("lead notifier stopped")
			return
		}

		msgs, err := sub.Fetch(leadFetchBatch, nats.MaxWait(leadFetchMaxWait))
		if err != nil && !errors.Is(err, nats.ErrTimeout) {
			n.logger.Error("failed to fetch lead events", zap.Error(err))
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
			continue
		}

		for _, msg := range msgs {
			if err := n.handle(msg.Data); err != nil {
				var delivered uint64 = 1
				if meta, err := msg.Metadata(); err == nil {
					delivered = meta.NumDelivered
				}
				_ = msg.NakWithDelay(leadRetryDelay(delivered))
				continue
			}
			_ = msg.Ack()
		}
	}
}

// leadRetryDelay doubles from leadRetryBase per delivery, capped at leadRetryMax,
// so an SMTP outage is ridden out instead of burning MaxDeliver in seconds.
func leadRetryDelay(delivered uint64) time.Duration {
	delay := leadRetryBase
	for i := uint64(1); i < delivered; i++ {
		delay *= 2
		if delay >= leadRetryMax {
			return leadRetryMax
		}
	}
	return delay
}

// handle returns an error when the message should be redelivered.
func (n *LeadNotifier) handle(data []byte) error {
	var event model.LeadEvent
	if err := json.Unmarshal(data, &event); err != nil {
		// A malformed payload will never parse; dropping it beats redelivering forever.
		n.logger.Error("discarding malformed lead event", zap.Error(err))
		return nil
	}

	if !n.mailer.IsConfigured() {
		n.logger.Debug("lead notification skipped, email disabled",
			zap.String("id", event.ID),
			zap.String("kind", string(event.Kind)),
		)
		return nil
	}

	if err := n.mailer.SendLead(event); err != nil {
		n.logger.Error("failed to send lead notification",
			zap.String("id", event.ID),
			zap.String("kind", string(event.Kind)),
			zap.Uint("record_id", event.RecordID),
			zap.Error(err))
		return err
	}

	n.logger.Info("lead notification sent",
		zap.String("id", event.ID),
		zap.String("kind", string(event.Kind)),
		zap.Uint("record_id", event.RecordID),
	)
	return nil
}
