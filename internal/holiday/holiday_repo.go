package holiday

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=holiday_repo.go -destination=mock/holiday_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, h *Holiday) error
	FindAll(ctx context.Context) ([]Holiday, error)
	FindByID(ctx context.Context, id string) (*Holiday, error)
	// FindByMonth returns the holidays whose date falls in a "YYYY-MM" month.
	FindByMonth(ctx context.Context, month string) ([]Holiday, error)
	Update(ctx context.Context, h *Holiday) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, h *Holiday) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Holiday, error) {
	var rows []Holiday
	err := r.db.WithContext(ctx).
		Order("holiday_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Holiday, error) {
	var h Holiday
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&h).Error
	return &h, err
}

func (r *repository) FindByMonth(ctx context.Context, month string) ([]Holiday, error) {
	var rows []Holiday
	err := r.db.WithContext(ctx).
		Where("to_char(holiday_date, 'YYYY-MM') = ?", month).
		Order("holiday_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, h *Holiday) error {
	return r.db.WithContext(ctx).Save(h).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&Holiday{}).Error
}
