package repository

import (
	"context"
	"errors"

	"github.com/cdentertainment/site-api/internal/app/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrEventTypeNotFound = errors.New("event type not found")
	ErrAboutNotFound     = errors.New("about content not found")
)

// CatalogRepository serves the mostly static content shown on the public pages.
type CatalogRepository interface {
	SeedEventTypes(ctx context.Context, names []string) (int64, error)
	ListEventTypes(ctx context.Context) ([]model.EventType, error)
	GetEventType(ctx context.Context, id uint) (*model.EventType, error)
	ListPackages(ctx context.Context) ([]model.PricePackage, error)
	ListCounters(ctx context.Context) ([]model.Counter, error)
	GetAbout(ctx context.Context) (*model.About, error)
	UpdateAbout(ctx context.Context, about *model.About) error
}

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository returns a GORM-backed CatalogRepository.
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// SeedEventTypes inserts the names that are missing and reports how many were created.
func (r *catalogRepository) SeedEventTypes(ctx context.Context, names []string) (int64, error) {
	if len(names) == 0 {
		return 0, nil
	}
	rows := make([]model.EventType, 0, len(names))
	for _, name := range names {
		rows = append(rows, model.EventType{Name: name})
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&rows)
	return result.RowsAffected, result.Error
}

func (r *catalogRepository) ListEventTypes(ctx context.Context) ([]model.EventType, error) {
	var result []model.EventType
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

func (r *catalogRepository) GetEventType(ctx context.Context, id uint) (*model.EventType, error) {
	var et model.EventType
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&et).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventTypeNotFound
		}
		return nil, err
	}
	return &et, nil
}

func (r *catalogRepository) ListPackages(ctx context.Context) ([]model.PricePackage, error) {
	var result []model.PricePackage
	if err := r.db.WithContext(ctx).
		Preload("Features", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Order("price ASC").
		Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

func (r *catalogRepository) ListCounters(ctx context.Context) ([]model.Counter, error) {
	var result []model.Counter
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

func (r *catalogRepository) GetAbout(ctx context.Context) (*model.About, error) {
	var about model.About
	if err := r.db.WithContext(ctx).Order("id ASC").First(&about).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAboutNotFound
		}
		return nil, err
	}
	return &about, nil
}

func (r *catalogRepository) UpdateAbout(ctx context.Context, about *model.About) error {
	result := r.db.WithContext(ctx).
		Model(&model.About{}).
		Where("id = ?", about.ID).
		Updates(map[string]interface{}{
			"description": about.Description,
			"image_url":   about.ImageURL,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAboutNotFound
	}
	return r.db.WithContext(ctx).Where("id = ?", about.ID).First(about).Error
}
