package announcement

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=announcement_repo.go -destination=mock/announcement_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, a *Announcement) error
	FindAll(ctx context.Context) ([]Announcement, error)
	FindByID(ctx context.Context, id string) (*Announcement, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Announcement) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Announcement, error) {
	var rows []Announcement
	err := r.db.WithContext(ctx).
		Order("published_on DESC, created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Announcement, error) {
	var a Announcement
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&a).Error
	return &a, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&Announcement{}).Error
}
