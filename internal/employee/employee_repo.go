package employee

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	Update(ctx context.Context, e *Employee) error
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

func (r *repository) Create(ctx context.Context, e *Employee) error {
	query := `
INSERT INTO employees (
	id, employee_number, full_name, mobile, email, department, designation, date_of_joining,
	salary_basic, salary_hra, salary_allowances, salary_deductions,
	bank_account_number, bank_ifsc, bank_name, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
`
	_, err := r.execer().ExecContext(ctx, query,
		e.ID, e.EmployeeNumber, e.FullName, e.Mobile, e.Email,
		e.Department, e.Designation, e.DateOfJoining.Format("2006-01-02"),
		e.SalaryBasic, e.SalaryHRA, e.SalaryAllowances, e.SalaryDeductions,
		e.BankAccountNumber, e.BankIFSC, e.BankName,
	)
	return err
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var rows []Employee
	err := r.db.WithContext(ctx).
		Order("employee_number ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	query := `
SELECT id, employee_number, full_name, mobile, email, department, designation, date_of_joining,
       salary_basic, salary_hra, salary_allowances, salary_deductions,
       bank_account_number, bank_ifsc, bank_name,
       leave_balance_current, leave_balance_month
FROM employees
WHERE id = $1 AND deleted_at IS NULL
`
	row := r.queryRower().QueryRowContext(ctx, query, id)

	var e Employee
	err := row.Scan(
		&e.ID, &e.EmployeeNumber, &e.FullName, &e.Mobile, &e.Email,
		&e.Department, &e.Designation, &e.DateOfJoining,
		&e.SalaryBasic, &e.SalaryHRA, &e.SalaryAllowances, &e.SalaryDeductions,
		&e.BankAccountNumber, &e.BankIFSC, &e.BankName,
		&e.LeaveBalanceCurrent, &e.LeaveBalanceMonth,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *repository) Update(ctx context.Context, e *Employee) error {
	query := `
UPDATE employees
SET full_name = $2, mobile = $3, email = $4, department = $5, designation = $6,
    date_of_joining = $7, salary_basic = $8, salary_hra = $9,
    salary_allowances = $10, salary_deductions = $11,
    bank_account_number = $12, bank_ifsc = $13, bank_name = $14, updated_at = NOW()
WHERE id = $1 AND deleted_at IS NULL
`
	_, err := r.execer().ExecContext(ctx, query,
		e.ID, e.FullName, e.Mobile, e.Email, e.Department, e.Designation,
		e.DateOfJoining.Format("2006-01-02"), e.SalaryBasic, e.SalaryHRA,
		e.SalaryAllowances, e.SalaryDeductions,
		e.BankAccountNumber, e.BankIFSC, e.BankName,
	)
	return err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	query := `
UPDATE employees
SET deleted_at = NOW(), updated_at = NOW()
WHERE id = $1 AND deleted_at IS NULL
`
	_, err := r.execer().ExecContext(ctx, query, id)
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
