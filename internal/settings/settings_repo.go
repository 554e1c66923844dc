package settings

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=settings_repo.go -destination=mock/settings_repo_mock.go -package=mock
type Repository interface {
	Get(ctx context.Context) (*CompanySettings, error)
	Upsert(ctx context.Context, s *CompanySettings) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Get(ctx context.Context) (*CompanySettings, error) {
	var s CompanySettings
	err := r.db.WithContext(ctx).
		Where("id = ?", SettingsRowID).
		First(&s).Error
	return &s, err
}

func (r *repository) Upsert(ctx context.Context, s *CompanySettings) error {
	s.ID = SettingsRowID
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"company_name", "default_working_days", "updated_at"}),
		}).
		Create(s).Error
}
