package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/cdentertainment/site-api/internal/app/model"
	"github.com/cdentertainment/site-api/internal/app/repository"
	"go.uber.org/zap"
)

// ErrAboutNotFound is returned when the about section has not been created yet.
var ErrAboutNotFound = errors.New("about section not found")

// CatalogService serves the read-mostly site content: event types, packages, counters, about.
type CatalogService interface {
	SeedEventTypes(ctx context.Context) error
	EventTypes(ctx context.Context) ([]model.EventType, error)
	Packages(ctx context.Context) ([]model.PricePackage, error)
	Counters(ctx context.Context) ([]model.Counter, error)
	About(ctx context.Context) (*model.About, error)
	UpdateAbout(ctx context.Context, about *model.About) error
}

type catalogService struct {
	logger  *zap.Logger
	catalog repository.CatalogRepository
}

func NewCatalogService(logger *zap.Logger, catalog repository.CatalogRepository) CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &catalogService{logger: logger, catalog: catalog}
}

func (s *catalogService) SeedEventTypes(ctx context.Context) error {
	added, err := s.catalog.SeedEventTypes(ctx, model.DefaultEventTypes)
	if err != nil {
		return fmt.Errorf("seed event types: %w", err)
	}
	if added > 0 {
		s.logger.Info("seeded event types", zap.Int64("count", added))
	}
	return nil
}

func (s *catalogService) EventTypes(ctx context.Context) ([]model.EventType, error) {
	types, err := s.catalog.ListEventTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list event types: %w", err)
	}
	return types, nil
}

func (s *catalogService) Packages(ctx context.Context) ([]model.PricePackage, error) {
	packages, err := s.catalog.ListPackages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	return packages, nil
}

func (s *catalogService) Counters(ctx context.Context) ([]model.Counter, error) {
	counters, err := s.catalog.ListCounters(ctx)
	if err != nil {
		return nil, fmt.Errorf("list counters: %w", err)
	}
	return counters, nil
}

func (s *catalogService) About(ctx context.Context) (*model.About, error) {
	about, err := s.catalog.GetAbout(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrAboutNotFound) {
			return nil, ErrAboutNotFound
		}
		return nil, fmt.Errorf("get about: %w", err)
	}
	return about, nil
}

func (s *catalogService) UpdateAbout(ctx context.Context, about *model.About) error {
	if err := s.catalog.UpdateAbout(ctx, about); err != nil {
		if errors.Is(err, repository.ErrAboutNotFound) {
			return ErrAboutNotFound
		}
		return fmt.Errorf("update about %d: %w", about.ID, err)
	}
	s.logger.Info("about section updated", zap.Uint("id", about.ID))
	return nil
}
