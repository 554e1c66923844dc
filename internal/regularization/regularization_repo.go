package regularization

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=regularization_repo.go -destination=mock/regularization_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *Regularization) error
	FindAll(ctx context.Context) ([]Regularization, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]Regularization, error)
	// FindByIDForUpdate row-locks the request so concurrent reviews
	// serialize on it.
	FindByIDForUpdate(ctx context.Context, id string) (*Regularization, error)
	// SaveReview persists the outcome of a review.
	SaveReview(ctx context.Context, r *Regularization) error
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

func (r *repository) Create(ctx context.Context, reg *Regularization) error {
	return r.db.WithContext(ctx).Create(reg).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Regularization, error) {
	var rows []Regularization
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]Regularization, error) {
	var rows []Regularization
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*Regularization, error) {
	query := `
SELECT id, employee_id, date, requested_check_out, reason, status, reviewed_on, reviewed_by
FROM regularizations
WHERE id = $1 AND deleted_at IS NULL
FOR UPDATE
`
	row := r.queryRower().QueryRowContext(ctx, query, id)

	var reg Regularization
	err := row.Scan(
		&reg.ID, &reg.EmployeeID, &reg.Date,
		&reg.RequestedCheckOut, &reg.Reason, &reg.Status,
		&reg.ReviewedOn, &reg.ReviewedBy,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &reg, nil
}

func (r *repository) SaveReview(ctx context.Context, reg *Regularization) error {
	query := `
UPDATE regularizations
SET status = $2, reviewed_on = $3, reviewed_by = $4, updated_at = NOW()
WHERE id = $1
`
	_, err := r.execer().ExecContext(ctx, query,
		reg.ID, reg.Status, reg.ReviewedOn, reg.ReviewedBy,
	)
	return err
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	db, _ := r.db.DB()
	return db
}

func (r *repository) queryRower() interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
} {
	if r.tx != nil {
		return r.tx
	}
	db, _ := r.db.DB()
	return db
}
