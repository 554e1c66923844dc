package payroll

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	payrollerrors "hrconnect/internal/payroll/errors"
)

type fakeRepo struct {
	tallyAttendanceFn func(ctx context.Context, month string) (map[string]Tally, error)
	listEmployeePayFn func(ctx context.Context) ([]EmployeePay, error)
	findEmployeePayFn func(ctx context.Context, employeeID string) (*EmployeePay, error)
	upsertBatchFn     func(ctx context.Context, records []PayrollRecord) error
	findByMonthFn     func(ctx context.Context, month string) ([]PayrollRecord, error)
	findByIDFn        func(ctx context.Context, id string) (*PayrollRecord, error)
	savePayslipPathFn func(ctx context.Context, id, path string, generatedAt time.Time) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) TallyAttendance(ctx context.Context, month string) (map[string]Tally, error) {
	return f.tallyAttendanceFn(ctx, month)
}

func (f *fakeRepo) ListEmployeePay(ctx context.Context) ([]EmployeePay, error) {
	return f.listEmployeePayFn(ctx)
}

func (f *fakeRepo) FindEmployeePay(ctx context.Context, employeeID string) (*EmployeePay, error) {
	return f.findEmployeePayFn(ctx, employeeID)
}

func (f *fakeRepo) UpsertBatch(ctx context.Context, records []PayrollRecord) error {
	return f.upsertBatchFn(ctx, records)
}

func (f *fakeRepo) FindByMonth(ctx context.Context, month string) ([]PayrollRecord, error) {
	return f.findByMonthFn(ctx, month)
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*PayrollRecord, error) {
	return f.findByIDFn(ctx, id)
}

func (f *fakeRepo) SavePayslipPath(ctx context.Context, id, path string, generatedAt time.Time) error {
	return f.savePayslipPathFn(ctx, id, path, generatedAt)
}

type fakeWorkingDays struct {
	days int
	err  error
}

func (f *fakeWorkingDays) WorkingDays(ctx context.Context, month string) (int, error) {
	return f.days, f.err
}

func clockAt(ts string) func() time.Time {
	t, _ := time.Parse(time.RFC3339, ts)
	return func() time.Time { return t }
}

func TestProcess_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	empID := uuid.NewString()
	var upserted []PayrollRecord
	repo := &fakeRepo{
		listEmployeePayFn: func(ctx context.Context) ([]EmployeePay, error) {
			return []EmployeePay{{
				ID:             empID,
				FullName:       "Asha Verma",
				EmployeeNumber: "EMP-000001",
				Basic:          money(16000),
				HRA:            money(6000),
				Allowances:     money(4000),
				Deductions:     money(0),
			}}, nil
		},
		tallyAttendanceFn: func(ctx context.Context, month string) (map[string]Tally, error) {
			return map[string]Tally{empID: {Present: 20, HalfDay: 4, Total: 26}}, nil
		},
		upsertBatchFn: func(ctx context.Context, records []PayrollRecord) error {
			upserted = records
			return nil
		},
	}

	svc := NewServiceWithClock(db, repo, &fakeWorkingDays{days: 26}, nil, clockAt("2025-09-01T06:00:00Z"))

	resp, err := svc.Process(context.Background(), uuid.NewString(), ProcessPayrollRequest{Month: "2025-08"})
	require.NoError(t, err)
	assert.Equal(t, 26, resp.WorkingDays)
	assert.Equal(t, 1, resp.Employees)

	require.Len(t, upserted, 1)
	rec := upserted[0]
	assert.Equal(t, "2025-08", rec.Month)
	assert.Equal(t, 20, rec.PresentDays)
	assert.Equal(t, 4, rec.HalfDays)
	assert.True(t, rec.EffectiveDays.Equal(money(22)))
	assert.True(t, rec.NetPay.Equal(money(22000)), "net: %s", rec.NetPay)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcess_InsufficientWorkingDaysFailsWholeRun(t *testing.T) {
	upserts := 0
	repo := &fakeRepo{
		upsertBatchFn: func(ctx context.Context, records []PayrollRecord) error {
			upserts++
			return nil
		},
	}

	svc := NewServiceWithClock(nil, repo, &fakeWorkingDays{days: 0}, nil, clockAt("2025-09-01T06:00:00Z"))

	_, err := svc.Process(context.Background(), uuid.NewString(), ProcessPayrollRequest{Month: "2025-08"})
	assert.ErrorIs(t, err, payrollerrors.ErrInsufficientWorkingDays)
	assert.Zero(t, upserts, "no record may be written when the run fails")
}

func TestProcess_InvalidActorID(t *testing.T) {
	svc := NewServiceWithClock(nil, &fakeRepo{}, nil, nil, clockAt("2025-09-01T06:00:00Z"))

	_, err := svc.Process(context.Background(), "payroll-admin", ProcessPayrollRequest{Month: "2025-08"})
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidEmployeeID)
}

func TestProcess_ManualWorkingDaysOverride(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := &fakeRepo{
		listEmployeePayFn: func(ctx context.Context) ([]EmployeePay, error) { return nil, nil },
		tallyAttendanceFn: func(ctx context.Context, month string) (map[string]Tally, error) {
			return map[string]Tally{}, nil
		},
		upsertBatchFn: func(ctx context.Context, records []PayrollRecord) error { return nil },
	}

	// The calendar provider would error; the explicit value wins.
	svc := NewServiceWithClock(db, repo, &fakeWorkingDays{err: context.DeadlineExceeded}, nil, clockAt("2025-09-01T06:00:00Z"))

	resp, err := svc.Process(context.Background(), uuid.NewString(), ProcessPayrollRequest{Month: "2025-08", WorkingDays: 24})
	require.NoError(t, err)
	assert.Equal(t, 24, resp.WorkingDays)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcess_RerunIsDeterministic(t *testing.T) {
	empID := uuid.NewString()
	runOnce := func(clock func() time.Time) PayrollRecord {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectCommit()

		var upserted []PayrollRecord
		repo := &fakeRepo{
			listEmployeePayFn: func(ctx context.Context) ([]EmployeePay, error) {
				return []EmployeePay{{ID: empID, Basic: money(26000), Deductions: money(500)}}, nil
			},
			tallyAttendanceFn: func(ctx context.Context, month string) (map[string]Tally, error) {
				return map[string]Tally{empID: {Present: 22, HalfDay: 2, Total: 26}}, nil
			},
			upsertBatchFn: func(ctx context.Context, records []PayrollRecord) error {
				upserted = records
				return nil
			},
		}

		svc := NewServiceWithClock(db, repo, &fakeWorkingDays{days: 26}, nil, clock)
		_, err = svc.Process(context.Background(), uuid.NewString(), ProcessPayrollRequest{Month: "2025-08"})
		require.NoError(t, err)
		require.Len(t, upserted, 1)
		return upserted[0]
	}

	first := runOnce(clockAt("2025-09-01T06:00:00Z"))
	second := runOnce(clockAt("2025-09-03T10:30:00Z"))

	// Everything but the run timestamp is identical across reruns.
	assert.True(t, first.NetPay.Equal(second.NetPay))
	assert.True(t, first.GrossPay.Equal(second.GrossPay))
	assert.True(t, first.EffectiveDays.Equal(second.EffectiveDays))
	assert.Equal(t, first.PresentDays, second.PresentDays)
	assert.Equal(t, first.HalfDays, second.HalfDays)
	assert.NotEqual(t, first.ProcessedOn, second.ProcessedOn)
}

// An approved leave day lands in the tally as Present whether or not
// the ledger could pay for it; the engine prices the status alone. The
// paid flag stays informational.
func TestProcess_PricesStatusNotPaidFlag(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	empID := uuid.NewString()
	var upserted []PayrollRecord
	repo := &fakeRepo{
		listEmployeePayFn: func(ctx context.Context) ([]EmployeePay, error) {
			return []EmployeePay{{ID: empID, Basic: money(26000)}}, nil
		},
		// 26 Present days, some of which covered unpaid approved leave.
		tallyAttendanceFn: func(ctx context.Context, month string) (map[string]Tally, error) {
			return map[string]Tally{empID: {Present: 26, Total: 26}}, nil
		},
		upsertBatchFn: func(ctx context.Context, records []PayrollRecord) error {
			upserted = records
			return nil
		},
	}

	svc := NewServiceWithClock(db, repo, &fakeWorkingDays{days: 26}, nil, clockAt("2025-09-01T06:00:00Z"))

	_, err = svc.Process(context.Background(), uuid.NewString(), ProcessPayrollRequest{Month: "2025-08"})
	require.NoError(t, err)
	require.Len(t, upserted, 1)
	assert.True(t, upserted[0].NetPay.Equal(money(26000)), "net: %s", upserted[0].NetPay)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByMonth_InvalidMonth(t *testing.T) {
	svc := NewServiceWithClock(nil, &fakeRepo{}, nil, nil, clockAt("2025-09-01T06:00:00Z"))

	_, err := svc.GetByMonth(context.Background(), "August 2025")
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidMonth)
}
