package repository

import (
	"context"
	"errors"
	"time"

	"github.com/cdentertainment/site-api/internal/app/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrSongRequestNotFound signals that no active (or, for delete, no) request has the given id.
	ErrSongRequestNotFound = errors.New("song request not found")
	// ErrRequestsClosed signals that the acceptance gate was closed when the insert was attempted.
	ErrRequestsClosed = errors.New("song requests are closed")
)

// SongRequestRepository defines the data access contract for song requests.
type SongRequestRepository interface {
	CreateIfAccepting(ctx context.Context, req *model.SongRequest) error
	ListActive(ctx context.Context) ([]model.SongRequest, error)
	GetByID(ctx context.Context, id uint) (*model.SongRequest, error)
	Archive(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
	ArchiveAllActive(ctx context.Context) (int64, error)
	ArchiveRequestedBefore(ctx context.Context, before time.Time) (int64, error)
}

type songRequestRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSongRequestRepository returns a GORM-backed SongRequestRepository.
func NewSongRequestRepository(db *gorm.DB) SongRequestRepository {
	return &songRequestRepository{db: db, now: time.Now}
}

// CreateIfAccepting re-reads the gate under a row lock and inserts in the same
// transaction, so a toggle that commits first is always honoured.
func (r *songRequestRepository) CreateIfAccepting(ctx context.Context, req *model.SongRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var settings model.AppSettings
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", model.AppSettingsID).
			First(&settings).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestsClosed
			}
			return err
		}
		if !settings.AcceptingSongRequests {
			return ErrRequestsClosed
		}

		req.ID = 0
		req.Archived = false
		req.RequestedAt = r.now().UTC()
		return tx.Create(req).Error
	})
}

func (r *songRequestRepository) ListActive(ctx context.Context) ([]model.SongRequest, error) {
	var result []model.SongRequest
	if err := r.db.WithContext(ctx).
		Where("archived = ?", false).
		Order("requested_at DESC").
		Order("id DESC").
		Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

func (r *songRequestRepository) GetByID(ctx context.Context, id uint) (*model.SongRequest, error) {
	var req model.SongRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSongRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

// Archive only touches active rows, so archiving twice reports not found the second time.
func (r *songRequestRepository) Archive(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&model.SongRequest{}).
		Where("id = ? AND archived = ?", id, false).
		Update("archived", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSongRequestNotFound
	}
	return nil
}

func (r *songRequestRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.SongRequest{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSongRequestNotFound
	}
	return nil
}

func (r *songRequestRepository) ArchiveAllActive(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.SongRequest{}).
		Where("archived = ?", false).
		Update("archived", true)
	return result.RowsAffected, result.Error
}

func (r *songRequestRepository) ArchiveRequestedBefore(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.SongRequest{}).
		Where("archived = ? AND requested_at < ?", false, before.UTC()).
		Update("archived", true)
	return result.RowsAffected, result.Error
}
