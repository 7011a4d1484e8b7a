package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/cdentertainment/site-api/internal/app/model"
	"github.com/cdentertainment/site-api/internal/app/repository"
	"github.com/cdentertainment/site-api/internal/infra/prometheus"
	"go.uber.org/zap"
)

const (
	defaultIntakePageSize = 50
	maxIntakePageSize     = 200
)

// ErrIntakeNotFound is returned for intake form ids that do not exist.
var ErrIntakeNotFound = errors.New("intake form not found")

// IntakeFormService handles the client planning questionnaire.
type IntakeFormService interface {
	Submit(ctx context.Context, form *model.IntakeForm) error
	List(ctx context.Context, limit, offset int) ([]model.IntakeForm, error)
	Get(ctx context.Context, id uint) (*model.IntakeForm, error)
	Delete(ctx context.Context, id uint) error
}

// IntakeFormDeps groups dependencies required by the intake form service.
type IntakeFormDeps struct {
	Logger *zap.Logger
	Forms  repository.IntakeFormRepository
	Leads  LeadSink
}

type intakeFormService struct {
	logger *zap.Logger
	forms  repository.IntakeFormRepository
	leads  LeadSink
}

func NewIntakeFormService(deps IntakeFormDeps) IntakeFormService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &intakeFormService{logger: logger, forms: deps.Forms, leads: deps.Leads}
}

func (s *intakeFormService) Submit(ctx context.Context, form *model.IntakeForm) error {
	form.ID = 0
	if form.MusicGenres == nil {
		form.MusicGenres = []string{}
	}
	if err := s.forms.Create(ctx, form); err != nil {
		s.logger.Error("failed to store intake form", zap.String("email", form.Email), zap.Error(err))
		return fmt.Errorf("create intake form: %w", err)
	}

	prometheus.ObserveLead(string(model.LeadKindIntake))
	s.logger.Info("intake form received", zap.Uint("id", form.ID), zap.String("event_type", form.EventType))

	publishLead(ctx, s.logger, s.leads, model.LeadEvent{
		Kind:      model.LeadKindIntake,
		RecordID:  form.ID,
		Name:      form.ClientName,
		Email:     form.Email,
		Phone:     form.PhoneNumber,
		EventType: form.EventType,
		EventDate: form.EventDate,
		Venue:     form.VenueLocation,
		Summary:   fmt.Sprintf("%d guests, %s to %s", form.GuestCount, form.EventStartTime, form.EventEndTime),
	})
	return nil
}

// List pages through intake forms, newest first. A non-positive limit means the default page size.
func (s *intakeFormService) List(ctx context.Context, limit, offset int) ([]model.IntakeForm, error) {
	if limit <= 0 {
		limit = defaultIntakePageSize
	}
	if limit > maxIntakePageSize {
		limit = maxIntakePageSize
	}
	if offset < 0 {
		offset = 0
	}
	forms, err := s.forms.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list intake forms: %w", err)
	}
	return forms, nil
}

func (s *intakeFormService) Get(ctx context.Context, id uint) (*model.IntakeForm, error) {
	form, err := s.forms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrIntakeFormNotFound) {
			return nil, ErrIntakeNotFound
		}
		return nil, fmt.Errorf("get intake form %d: %w", id, err)
	}
	return form, nil
}

func (s *intakeFormService) Delete(ctx context.Context, id uint) error {
	if err := s.forms.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrIntakeFormNotFound) {
			return ErrIntakeNotFound
		}
		return fmt.Errorf("delete intake form %d: %w", id, err)
	}
	return nil
}
