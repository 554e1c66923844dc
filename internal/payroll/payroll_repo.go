package payroll

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	// TallyAttendance aggregates the month's attendance rows per employee.
	TallyAttendance(ctx context.Context, month string) (map[string]Tally, error)
	ListEmployeePay(ctx context.Context) ([]EmployeePay, error)
	FindEmployeePay(ctx context.Context, employeeID string) (*EmployeePay, error)
	// UpsertBatch writes the run's records; conflicts on (employee_id,
	// month) overwrite the previous run.
	UpsertBatch(ctx context.Context, records []PayrollRecord) error
	FindByMonth(ctx context.Context, month string) ([]PayrollRecord, error)
	FindByID(ctx context.Context, id string) (*PayrollRecord, error)
	SavePayslipPath(ctx context.Context, id, path string, generatedAt time.Time) error
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

func (r *repository) TallyAttendance(ctx context.Context, month string) (map[string]Tally, error) {
	query := `
SELECT
	employee_id::text,
	COUNT(*) FILTER (WHERE status = 'Present'),
	COUNT(*) FILTER (WHERE status = 'Half Day'),
	COUNT(*)
FROM attendances
WHERE to_char(attendance_date, 'YYYY-MM') = ? AND deleted_at IS NULL
GROUP BY employee_id
`
	rows, err := r.db.WithContext(ctx).Raw(query, month).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tallies := make(map[string]Tally)
	for rows.Next() {
		var (
			employeeID string
			t          Tally
		)
		if err := rows.Scan(&employeeID, &t.Present, &t.HalfDay, &t.Total); err != nil {
			return nil, err
		}
		tallies[employeeID] = t
	}
	return tallies, rows.Err()
}

func (r *repository) ListEmployeePay(ctx context.Context) ([]EmployeePay, error) {
	var out []EmployeePay
	err := r.db.WithContext(ctx).
		Table("employees").
		Select(`id::text AS id, full_name, employee_number,
			salary_basic AS basic, salary_hra AS hra,
			salary_allowances AS allowances, salary_deductions AS deductions`).
		Where("deleted_at IS NULL").
		Order("employee_number ASC").
		Scan(&out).Error
	return out, err
}

func (r *repository) FindEmployeePay(ctx context.Context, employeeID string) (*EmployeePay, error) {
	var out EmployeePay
	res := r.db.WithContext(ctx).
		Table("employees").
		Select(`id::text AS id, full_name, employee_number,
			salary_basic AS basic, salary_hra AS hra,
			salary_allowances AS allowances, salary_deductions AS deductions`).
		Where("id = ? AND deleted_at IS NULL", employeeID).
		Scan(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &out, nil
}

func (r *repository) UpsertBatch(ctx context.Context, records []PayrollRecord) error {
	query := `
INSERT INTO payroll_records (
	id, employee_id, month,
	working_days, present_days, half_days, total_days, effective_days,
	basic_earned, hra_earned, allowances_earned, deductions,
	ad_hoc_allowance, ad_hoc_deduction, gross_pay, net_pay,
	processed_on, processed_by, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, NOW(), NOW())
ON CONFLICT (employee_id, month) DO UPDATE
SET working_days = EXCLUDED.working_days,
    present_days = EXCLUDED.present_days,
    half_days = EXCLUDED.half_days,
    total_days = EXCLUDED.total_days,
    effective_days = EXCLUDED.effective_days,
    basic_earned = EXCLUDED.basic_earned,
    hra_earned = EXCLUDED.hra_earned,
    allowances_earned = EXCLUDED.allowances_earned,
    deductions = EXCLUDED.deductions,
    ad_hoc_allowance = EXCLUDED.ad_hoc_allowance,
    ad_hoc_deduction = EXCLUDED.ad_hoc_deduction,
    gross_pay = EXCLUDED.gross_pay,
    net_pay = EXCLUDED.net_pay,
    processed_on = EXCLUDED.processed_on,
    processed_by = EXCLUDED.processed_by,
    updated_at = NOW()
`
	for _, rec := range records {
		_, err := r.execer().ExecContext(ctx, query,
			rec.ID, rec.EmployeeID, rec.Month,
			rec.WorkingDays, rec.PresentDays, rec.HalfDays, rec.TotalDays, rec.EffectiveDays,
			rec.BasicEarned, rec.HRAEarned, rec.AllowancesEarned, rec.Deductions,
			rec.AdHocAllowance, rec.AdHocDeduction, rec.GrossPay, rec.NetPay,
			rec.ProcessedOn, rec.ProcessedBy,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) FindByMonth(ctx context.Context, month string) ([]PayrollRecord, error) {
	var rows []PayrollRecord
	err := r.db.WithContext(ctx).
		Where("month = ?", month).
		Order("employee_id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*PayrollRecord, error) {
	var rec PayrollRecord
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&rec).Error
	return &rec, err
}

func (r *repository) SavePayslipPath(ctx context.Context, id, path string, generatedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&PayrollRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"payslip_path": path,
			"generated_at": generatedAt,
		}).Error
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
