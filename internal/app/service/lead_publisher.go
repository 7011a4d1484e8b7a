package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cdentertainment/site-api/internal/app/model"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// LeadSink receives lead events after a form has been stored.
type LeadSink interface {
	PublishLead(ctx context.Context, event model.LeadEvent) error
}

// JetStreamPublisher is the part of nats.JetStreamContext the publisher uses.
type JetStreamPublisher interface {
	Publish(subj string, data []byte, opts ...nats.PubOpt) (*nats.PubAck, error)
}

// LeadPublisher publishes lead events to the LEADS JetStream stream.
type LeadPublisher struct {
	js  JetStreamPublisher
	now func() time.Time
}

// NewLeadPublisher creates a new lead event publisher.
func NewLeadPublisher(js JetStreamPublisher) *LeadPublisher {
	return &LeadPublisher{js: js, now: time.Now}
}

// PublishLead assigns the event id and timestamp and publishes it. The event id doubles
// as the JetStream message id so a retried publish is deduplicated by the server.
func (p *LeadPublisher) PublishLead(ctx context.Context, event model.LeadEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = p.now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal lead event: %w", err)
	}

	if _, err := p.js.Publish(model.LeadStreamSubject, data, nats.MsgId(event.ID), nats.Context(ctx)); err != nil {
		return fmt.Errorf("publish lead event %s: %w", event.ID, err)
	}
	return nil
}
