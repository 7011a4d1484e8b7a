package repository

import (
	"context"
	"errors"

	"github.com/cdentertainment/site-api/internal/app/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrSettingsNotInitialized means EnsureDefaults never ran against this database.
var ErrSettingsNotInitialized = errors.New("app settings row is missing")

// SettingsRepository owns the single app settings row, including the song request gate.
type SettingsRepository interface {
	EnsureDefaults(ctx context.Context, acceptingSongRequests bool) error
	Get(ctx context.Context) (*model.AppSettings, error)
	SetAcceptingSongRequests(ctx context.Context, accepting bool) (*model.AppSettings, error)
	ToggleAcceptingSongRequests(ctx context.Context) (*model.AppSettings, error)
}

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository returns a GORM-backed SettingsRepository.
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// EnsureDefaults creates the settings row if it does not exist and leaves an existing row untouched.
func (r *settingsRepository) EnsureDefaults(ctx context.Context, acceptingSongRequests bool) error {
	row := model.AppSettings{
		ID:                    model.AppSettingsID,
		AcceptingSongRequests: acceptingSongRequests,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error
}

func (r *settingsRepository) Get(ctx context.Context) (*model.AppSettings, error) {
	return r.load(r.db.WithContext(ctx))
}

func (r *settingsRepository) SetAcceptingSongRequests(ctx context.Context, accepting bool) (*model.AppSettings, error) {
	var out *model.AppSettings
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := model.AppSettings{ID: model.AppSettingsID, AcceptingSongRequests: accepting}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"accepting_song_requests", "updated_at"}),
		}).Create(&row).Error; err != nil {
			return err
		}
		loaded, err := r.load(tx)
		if err != nil {
			return err
		}
		out = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ToggleAcceptingSongRequests flips the flag in a single UPDATE so concurrent toggles never lose a write.
func (r *settingsRepository) ToggleAcceptingSongRequests(ctx context.Context) (*model.AppSettings, error) {
	var out *model.AppSettings
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.AppSettings{}).
			Where("id = ?", model.AppSettingsID).
			Update("accepting_song_requests", gorm.Expr("NOT accepting_song_requests"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrSettingsNotInitialized
		}
		loaded, err := r.load(tx)
		if err != nil {
			return err
		}
		out = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *settingsRepository) load(db *gorm.DB) (*model.AppSettings, error) {
	var settings model.AppSettings
	if err := db.Where("id = ?", model.AppSettingsID).First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingsNotInitialized
		}
		return nil, err
	}
	return &settings, nil
}
