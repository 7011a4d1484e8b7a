package repository

import (
	"context"
	"errors"

	"github.com/cdentertainment/site-api/internal/app/model"
	"gorm.io/gorm"
)

var (
	// ErrContactSubmissionNotFound signals that the requested contact submission does not exist.
	ErrContactSubmissionNotFound = errors.New("contact submission not found")
	// ErrIntakeFormNotFound signals that the requested intake form does not exist.
	ErrIntakeFormNotFound = errors.New("intake form not found")
)

// ContactSubmissionRepository defines the data access contract for contact form submissions.
type ContactSubmissionRepository interface {
	Create(ctx context.Context, submission *model.ContactSubmission) error
	List(ctx context.Context) ([]model.ContactSubmission, error)
	Delete(ctx context.Context, id uint) error
}

// IntakeFormRepository defines the data access contract for client intake forms.
type IntakeFormRepository interface {
	Create(ctx context.Context, form *model.IntakeForm) error
	GetByID(ctx context.Context, id uint) (*model.IntakeForm, error)
	List(ctx context.Context, limit, offset int) ([]model.IntakeForm, error)
	Delete(ctx context.Context, id uint) error
}

type contactSubmissionRepository struct {
	db *gorm.DB
}

// NewContactSubmissionRepository returns a GORM-backed ContactSubmissionRepository.
func NewContactSubmissionRepository(db *gorm.DB) ContactSubmissionRepository {
	return &contactSubmissionRepository{db: db}
}

func (r *contactSubmissionRepository) Create(ctx context.Context, submission *model.ContactSubmission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *contactSubmissionRepository) List(ctx context.Context) ([]model.ContactSubmission, error) {
	var result []model.ContactSubmission
	if err := r.db.WithContext(ctx).Order("submitted_at DESC").Order("id DESC").Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

func (r *contactSubmissionRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ContactSubmission{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrContactSubmissionNotFound
	}
	return nil
}

type intakeFormRepository struct {
	db *gorm.DB
}

// NewIntakeFormRepository returns a GORM-backed IntakeFormRepository.
func NewIntakeFormRepository(db *gorm.DB) IntakeFormRepository {
	return &intakeFormRepository{db: db}
}

func (r *intakeFormRepository) Create(ctx context.Context, form *model.IntakeForm) error {
	return r.db.WithContext(ctx).Create(form).Error
}

func (r *intakeFormRepository) GetByID(ctx context.Context, id uint) (*model.IntakeForm, error) {
	var form model.IntakeForm
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&form).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIntakeFormNotFound
		}
		return nil, err
	}
	return &form, nil
}

func (r *intakeFormRepository) List(ctx context.Context, limit, offset int) ([]model.IntakeForm, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var result []model.IntakeForm
	if err := r.db.WithContext(ctx).
		Order("submitted_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

func (r *intakeFormRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.IntakeForm{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrIntakeFormNotFound
	}
	return nil
}
