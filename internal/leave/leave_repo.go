package leave

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Balance is the employee's leave-ledger state as stored on the
// employees row.
type Balance struct {
	Current decimal.Decimal
	Month   *string
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindAll(ctx context.Context) ([]Leave, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]Leave, error)
	// FindByIDForUpdate row-locks the request so concurrent reviews
	// serialize on it.
	FindByIDForUpdate(ctx context.Context, id string) (*Leave, error)
	// SaveReview persists the outcome of a review.
	SaveReview(ctx context.Context, l *Leave) error
	// BalanceForUpdate row-locks the employee's ledger state.
	BalanceForUpdate(ctx context.Context, employeeID string) (Balance, error)
	SaveBalance(ctx context.Context, employeeID string, balance decimal.Decimal, month string) error
	// FindApprovedOn returns the approved leave covering the given date,
	// or gorm.ErrRecordNotFound.
	FindApprovedOn(ctx context.Context, employeeID string, date time.Time) (*Leave, error)
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

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Leave, error) {
	var rows []Leave
	err := r.db.WithContext(ctx).
		Order("requested_on DESC, created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]Leave, error) {
	var rows []Leave
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("requested_on DESC, created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*Leave, error) {
	query := `
SELECT id, employee_id, type, session, start_date, end_date, reason,
       days_count, status, is_paid, requested_on, reviewed_on, reviewed_by
FROM leaves
WHERE id = $1 AND deleted_at IS NULL
FOR UPDATE
`
	row := r.queryRower().QueryRowContext(ctx, query, id)

	var l Leave
	err := row.Scan(
		&l.ID, &l.EmployeeID, &l.Type, &l.Session, &l.StartDate, &l.EndDate,
		&l.Reason, &l.DaysCount, &l.Status, &l.IsPaid,
		&l.RequestedOn, &l.ReviewedOn, &l.ReviewedBy,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *repository) SaveReview(ctx context.Context, l *Leave) error {
	query := `
UPDATE leaves
SET status = $2, is_paid = $3, reviewed_on = $4, reviewed_by = $5, updated_at = NOW()
WHERE id = $1
`
	_, err := r.execer().ExecContext(ctx, query,
		l.ID, l.Status, l.IsPaid, l.ReviewedOn, l.ReviewedBy,
	)
	return err
}

func (r *repository) BalanceForUpdate(ctx context.Context, employeeID string) (Balance, error) {
	query := `
SELECT leave_balance_current, leave_balance_month
FROM employees
WHERE id = $1 AND deleted_at IS NULL
FOR UPDATE
`
	var b Balance
	err := r.queryRower().QueryRowContext(ctx, query, employeeID).Scan(&b.Current, &b.Month)
	if err == sql.ErrNoRows {
		return Balance{}, gorm.ErrRecordNotFound
	}
	return b, err
}

func (r *repository) SaveBalance(ctx context.Context, employeeID string, balance decimal.Decimal, month string) error {
	query := `
UPDATE employees
SET leave_balance_current = $2, leave_balance_month = $3, updated_at = NOW()
WHERE id = $1
`
	_, err := r.execer().ExecContext(ctx, query, employeeID, balance, month)
	return err
}

func (r *repository) FindApprovedOn(ctx context.Context, employeeID string, date time.Time) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusApproved).
		Where("start_date <= ? AND end_date >= ?", date.Format("2006-01-02"), date.Format("2006-01-02")).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "start_date"}, Desc: true}},
		}).
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
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
