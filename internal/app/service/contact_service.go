package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cdentertainment/site-api/internal/app/model"
	"github.com/cdentertainment/site-api/internal/app/repository"
	"github.com/cdentertainment/site-api/internal/infra/prometheus"
	"go.uber.org/zap"
)

var (
	// ErrUnknownEventType is returned when a contact form names an event type that does not exist.
	ErrUnknownEventType = errors.New("unknown event type")
	// ErrContactNotFound is returned when deleting a contact submission that does not exist.
	ErrContactNotFound = errors.New("contact submission not found")
)

// ContactService handles the public contact form and its staff listing.
type ContactService interface {
	Submit(ctx context.Context, submission *model.ContactSubmission) error
	List(ctx context.Context) ([]model.ContactSubmission, error)
	Delete(ctx context.Context, id uint) error
}

// ContactDeps groups dependencies required by the contact service.
type ContactDeps struct {
	Logger   *zap.Logger
	Contacts repository.ContactSubmissionRepository
	Catalog  repository.CatalogRepository
	Leads    LeadSink
}

type contactService struct {
	logger   *zap.Logger
	contacts repository.ContactSubmissionRepository
	catalog  repository.CatalogRepository
	leads    LeadSink
}

func NewContactService(deps ContactDeps) ContactService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &contactService{
		logger:   logger,
		contacts: deps.Contacts,
		catalog:  deps.Catalog,
		leads:    deps.Leads,
	}
}

func (s *contactService) Submit(ctx context.Context, submission *model.ContactSubmission) error {
	eventType, err := s.catalog.GetEventType(ctx, submission.EventTypeID)
	if err != nil {
		if errors.Is(err, repository.ErrEventTypeNotFound) {
			return fmt.Errorf("submit contact form: %w", ErrUnknownEventType)
		}
		return fmt.Errorf("lookup event type: %w", err)
	}

	submission.ID = 0
	if err := s.contacts.Create(ctx, submission); err != nil {
		s.logger.Error("failed to store contact submission", zap.String("email", submission.Email), zap.Error(err))
		return fmt.Errorf("create contact submission: %w", err)
	}

	prometheus.ObserveLead(string(model.LeadKindContact))
	s.logger.Info("contact form received", zap.Uint("id", submission.ID), zap.String("event_type", eventType.Name))

	publishLead(ctx, s.logger, s.leads, model.LeadEvent{
		Kind:      model.LeadKindContact,
		RecordID:  submission.ID,
		Name:      strings.TrimSpace(submission.FirstName + " " + submission.LastName),
		Email:     submission.Email,
		Phone:     submission.PhoneNumber,
		EventType: eventType.Name,
		EventDate: submission.DateOfEvent,
		Venue:     submission.VenueLocation,
		Summary:   submission.EventDescription,
	})
	return nil
}

func (s *contactService) List(ctx context.Context) ([]model.ContactSubmission, error) {
	submissions, err := s.contacts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contact submissions: %w", err)
	}
	return submissions, nil
}

func (s *contactService) Delete(ctx context.Context, id uint) error {
	if err := s.contacts.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrContactSubmissionNotFound) {
			return ErrContactNotFound
		}
		return fmt.Errorf("delete contact submission %d: %w", id, err)
	}
	return nil
}

// publishLead hands the event to sink; the form is already stored so failures are only logged.
func publishLead(ctx context.Context, logger *zap.Logger, sink LeadSink, event model.LeadEvent) {
	if sink == nil {
		return
	}
	if err := sink.PublishLead(ctx, event); err != nil {
		logger.Warn("failed to publish lead event",
			zap.String("kind", string(event.Kind)),
			zap.Uint("record_id", event.RecordID),
			zap.Error(err))
	}
}
