package attendance

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	// CreateIfAbsent inserts a row unless one already exists for the
	// (employee, date) key; reports whether the insert happened. The
	// conflict target on the natural key settles concurrent check-ins.
	CreateIfAbsent(ctx context.Context, a *Attendance) (bool, error)
	// Upsert overwrites the full row on the natural key (last write wins).
	Upsert(ctx context.Context, a *Attendance) error
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	FindAll(ctx context.Context) ([]Attendance, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]Attendance, error)
	Update(ctx context.Context, a *Attendance) error
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

func (r *repository) CreateIfAbsent(ctx context.Context, a *Attendance) (bool, error) {
	query := `
INSERT INTO attendances (id, employee_id, attendance_date, check_in, check_out, status, source, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
ON CONFLICT (employee_id, attendance_date) DO NOTHING
`
	res, err := r.execer().ExecContext(ctx, query,
		a.ID, a.EmployeeID, a.AttendanceDate.Format("2006-01-02"),
		a.CheckIn, a.CheckOut, a.Status, a.Source,
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *repository) Upsert(ctx context.Context, a *Attendance) error {
	query := `
INSERT INTO attendances (id, employee_id, attendance_date, check_in, check_out, status, source, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
ON CONFLICT (employee_id, attendance_date) DO UPDATE
SET check_in = EXCLUDED.check_in,
    check_out = EXCLUDED.check_out,
    status = EXCLUDED.status,
    source = EXCLUDED.source,
    updated_at = NOW()
`
	_, err := r.execer().ExecContext(ctx, query,
		a.ID, a.EmployeeID, a.AttendanceDate.Format("2006-01-02"),
		a.CheckIn, a.CheckOut, a.Status, a.Source,
	)
	return err
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
	query := `
SELECT id, employee_id, attendance_date, check_in, check_out, status, source
FROM attendances
WHERE employee_id = $1 AND attendance_date = $2 AND deleted_at IS NULL
`
	row := r.queryRower().QueryRowContext(ctx, query, employeeID, date.Format("2006-01-02"))

	var a Attendance
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.AttendanceDate,
		&a.CheckIn, &a.CheckOut, &a.Status, &a.Source,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindAll(ctx context.Context) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Order("attendance_date DESC, employee_id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("attendance_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	query := `
UPDATE attendances
SET check_in = $2, check_out = $3, status = $4, source = $5, updated_at = NOW()
WHERE id = $1
`
	_, err := r.execer().ExecContext(ctx, query,
		a.ID, a.CheckIn, a.CheckOut, a.Status, a.Source,
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
