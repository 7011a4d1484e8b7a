package model

import "time"

// LeadKind names the form a lead came from.
type LeadKind string

const (
	LeadKindContact LeadKind = "contact"
	LeadKindIntake  LeadKind = "intake"
)

// LeadEvent is published to NATS whenever a visitor leaves their details.
type LeadEvent struct {
	ID         string    `json:"id"`
	Kind       LeadKind  `json:"kind"`
	RecordID   uint      `json:"record_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	EventType  string    `json:"event_type,omitempty"`
	EventDate  time.Time `json:"event_date,omitempty"`
	Venue      string    `json:"venue,omitempty"`
	Summary    string    `json:"summary,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

const (
	LeadStreamName     = "LEADS"
	LeadStreamSubject  = "leads.events"
	LeadConsumerName   = "lead-notifier"
	LeadStreamMaxBytes = 1024 * 1024 * 50 // 50MB
)
