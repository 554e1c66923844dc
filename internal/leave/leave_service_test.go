package leave

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	leaveerrors "hrconnect/internal/leave/errors"
)

type fakeRepo struct {
	createFn            func(ctx context.Context, l *Leave) error
	findAllFn           func(ctx context.Context) ([]Leave, error)
	findAllByEmployeeFn func(ctx context.Context, employeeID string) ([]Leave, error)
	findByIDForUpdateFn func(ctx context.Context, id string) (*Leave, error)
	saveReviewFn        func(ctx context.Context, l *Leave) error
	balanceForUpdateFn  func(ctx context.Context, employeeID string) (Balance, error)
	saveBalanceFn       func(ctx context.Context, employeeID string, balance decimal.Decimal, month string) error
	findApprovedOnFn    func(ctx context.Context, employeeID string, date time.Time) (*Leave, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, l *Leave) error { return f.createFn(ctx, l) }

func (f *fakeRepo) FindAll(ctx context.Context) ([]Leave, error) { return f.findAllFn(ctx) }

func (f *fakeRepo) FindAllByEmployee(ctx context.Context, employeeID string) ([]Leave, error) {
	return f.findAllByEmployeeFn(ctx, employeeID)
}

func (f *fakeRepo) FindByIDForUpdate(ctx context.Context, id string) (*Leave, error) {
	return f.findByIDForUpdateFn(ctx, id)
}

func (f *fakeRepo) SaveReview(ctx context.Context, l *Leave) error { return f.saveReviewFn(ctx, l) }

func (f *fakeRepo) BalanceForUpdate(ctx context.Context, employeeID string) (Balance, error) {
	return f.balanceForUpdateFn(ctx, employeeID)
}

func (f *fakeRepo) SaveBalance(ctx context.Context, employeeID string, balance decimal.Decimal, month string) error {
	return f.saveBalanceFn(ctx, employeeID, balance, month)
}

func (f *fakeRepo) FindApprovedOn(ctx context.Context, employeeID string, date time.Time) (*Leave, error) {
	return f.findApprovedOnFn(ctx, employeeID, date)
}

func fixedClock(date string) func() time.Time {
	t, _ := time.Parse("2006-01-02", date)
	return func() time.Time { return t }
}

func TestApply_FullDayHasOneDayCount(t *testing.T) {
	var created *Leave
	repo := &fakeRepo{
		createFn: func(ctx context.Context, l *Leave) error {
			created = l
			return nil
		},
	}
	svc := NewServiceWithClock(nil, repo, nil, fixedClock("2025-08-11"))

	resp, err := svc.Apply(context.Background(), uuid.NewString(), ApplyLeaveRequest{
		Type:      "CASUAL",
		Session:   "FULL_DAY",
		StartDate: "2025-08-20",
		EndDate:   "2025-08-20",
		Reason:    "personal",
	})
	require.NoError(t, err)
	assert.Equal(t, string(StatusPending), resp.Status)
	assert.True(t, created.DaysCount.Equal(decimal.NewFromInt(1)))
	assert.Nil(t, created.IsPaid)
}

func TestApply_HalfSessionHasHalfDayCount(t *testing.T) {
	var created *Leave
	repo := &fakeRepo{
		createFn: func(ctx context.Context, l *Leave) error {
			created = l
			return nil
		},
	}
	svc := NewServiceWithClock(nil, repo, nil, fixedClock("2025-08-11"))

	_, err := svc.Apply(context.Background(), uuid.NewString(), ApplyLeaveRequest{
		Type:      "HALF_DAY",
		Session:   "FIRST_HALF",
		StartDate: "2025-08-20",
		EndDate:   "2025-08-20",
	})
	require.NoError(t, err)
	assert.True(t, created.DaysCount.Equal(decimal.NewFromFloat(0.5)))
}

func TestApply_AcceptsTenantLeaveCodes(t *testing.T) {
	var created *Leave
	repo := &fakeRepo{
		createFn: func(ctx context.Context, l *Leave) error {
			created = l
			return nil
		},
	}
	svc := NewServiceWithClock(nil, repo, nil, fixedClock("2025-08-11"))

	resp, err := svc.Apply(context.Background(), uuid.NewString(), ApplyLeaveRequest{
		Type:      "CL",
		Session:   "FULL_DAY",
		StartDate: "2025-08-20",
		EndDate:   "2025-08-21",
	})
	require.NoError(t, err)
	assert.Equal(t, "CL", resp.Type)
	assert.Equal(t, Type("CL"), created.Type)
}

func TestApply_Rejections(t *testing.T) {
	svc := NewServiceWithClock(nil, &fakeRepo{}, nil, fixedClock("2025-08-11"))
	empID := uuid.NewString()

	_, err := svc.Apply(context.Background(), empID, ApplyLeaveRequest{
		Type: "  ", Session: "FULL_DAY", StartDate: "2025-08-20", EndDate: "2025-08-20",
	})
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidLeaveType)

	_, err = svc.Apply(context.Background(), empID, ApplyLeaveRequest{
		Type: "HALF_DAY", Session: "FULL_DAY", StartDate: "2025-08-20", EndDate: "2025-08-20",
	})
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidSession)

	_, err = svc.Apply(context.Background(), empID, ApplyLeaveRequest{
		Type: "CASUAL", Session: "FULL_DAY", StartDate: "2025-08-20", EndDate: "2025-08-19",
	})
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)

	// A half day spanning a range would debit 0.5 days yet upgrade every
	// day in the range at check-out.
	_, err = svc.Apply(context.Background(), empID, ApplyLeaveRequest{
		Type: "HALF_DAY", Session: "FIRST_HALF", StartDate: "2025-08-20", EndDate: "2025-08-22",
	})
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
}

// ledgerHarness simulates the employee's stored ledger state across
// sequential reviews.
type ledgerHarness struct {
	balance decimal.Decimal
	month   *string
	reviews []*Leave
}

func (h *ledgerHarness) repoFor(pending *Leave) *fakeRepo {
	return &fakeRepo{
		findByIDForUpdateFn: func(ctx context.Context, id string) (*Leave, error) {
			return pending, nil
		},
		balanceForUpdateFn: func(ctx context.Context, employeeID string) (Balance, error) {
			return Balance{Current: h.balance, Month: h.month}, nil
		},
		saveBalanceFn: func(ctx context.Context, employeeID string, balance decimal.Decimal, month string) error {
			h.balance = balance
			h.month = &month
			return nil
		},
		saveReviewFn: func(ctx context.Context, l *Leave) error {
			h.reviews = append(h.reviews, l)
			return nil
		},
	}
}

func pendingFullDayLeave(startDate string) *Leave {
	start, _ := time.Parse("2006-01-02", startDate)
	return &Leave{
		ID:         uuid.New(),
		EmployeeID: uuid.New(),
		Type:       TypeCasual,
		Session:    SessionFullDay,
		StartDate:  start,
		EndDate:    start,
		DaysCount:  decimal.NewFromInt(1),
		Status:     StatusPending,
	}
}

func approveOnce(t *testing.T, h *ledgerHarness, pending *Leave) *Leave {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	svc := NewServiceWithClock(db, h.repoFor(pending), nil, fixedClock("2025-08-25"))

	_, err = svc.Review(context.Background(), pending.ID.String(), uuid.NewString(), ReviewLeaveRequest{Status: "Approved"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
	require.NotEmpty(t, h.reviews)
	return h.reviews[len(h.reviews)-1]
}

func TestReview_LedgerAcrossSequentialApprovals(t *testing.T) {
	// Fresh employee: no accrual month recorded, zero balance.
	h := &ledgerHarness{balance: decimal.Zero}

	// First approval accrues two days, debits one, marks paid.
	first := approveOnce(t, h, pendingFullDayLeave("2025-08-05"))
	require.NotNil(t, first.IsPaid)
	assert.True(t, *first.IsPaid)
	assert.True(t, h.balance.Equal(decimal.NewFromInt(1)), "balance after first: %s", h.balance)
	require.NotNil(t, h.month)
	assert.Equal(t, "2025-08", *h.month)

	// Second approval in the same month: no new accrual, last paid day.
	second := approveOnce(t, h, pendingFullDayLeave("2025-08-12"))
	assert.True(t, *second.IsPaid)
	assert.True(t, h.balance.Equal(decimal.Zero), "balance after second: %s", h.balance)

	// Third approval in the same month: nothing left, unpaid, clamped at zero.
	third := approveOnce(t, h, pendingFullDayLeave("2025-08-19"))
	assert.False(t, *third.IsPaid)
	assert.True(t, h.balance.Equal(decimal.Zero), "balance after third: %s", h.balance)
}

func TestReview_AccruesForEveryElapsedMonth(t *testing.T) {
	may := "2025-05"
	h := &ledgerHarness{balance: decimal.NewFromFloat(0.5), month: &may}

	// Three months elapsed from May to August: six days accrue on top
	// of the carried half day, one is debited.
	approved := approveOnce(t, h, pendingFullDayLeave("2025-08-05"))
	assert.True(t, *approved.IsPaid)
	assert.True(t, h.balance.Equal(decimal.NewFromFloat(5.5)), "balance: %s", h.balance)
	assert.Equal(t, "2025-08", *h.month)
}

func TestReview_RejectionLeavesLedgerUntouched(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	pending := pendingFullDayLeave("2025-08-05")
	balanceTouched := false
	repo := &fakeRepo{
		findByIDForUpdateFn: func(ctx context.Context, id string) (*Leave, error) {
			return pending, nil
		},
		balanceForUpdateFn: func(ctx context.Context, employeeID string) (Balance, error) {
			balanceTouched = true
			return Balance{}, nil
		},
		saveBalanceFn: func(ctx context.Context, employeeID string, balance decimal.Decimal, month string) error {
			balanceTouched = true
			return nil
		},
		saveReviewFn: func(ctx context.Context, l *Leave) error { return nil },
	}

	svc := NewServiceWithClock(db, repo, nil, fixedClock("2025-08-25"))

	resp, err := svc.Review(context.Background(), pending.ID.String(), uuid.NewString(), ReviewLeaveRequest{Status: "Rejected"})
	require.NoError(t, err)
	assert.Equal(t, string(StatusRejected), resp.Status)
	assert.Nil(t, resp.IsPaid)
	assert.False(t, balanceTouched)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReview_AlreadyReviewed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	reviewed := pendingFullDayLeave("2025-08-05")
	reviewed.Status = StatusApproved
	repo := &fakeRepo{
		findByIDForUpdateFn: func(ctx context.Context, id string) (*Leave, error) {
			return reviewed, nil
		},
	}

	svc := NewServiceWithClock(db, repo, nil, fixedClock("2025-08-25"))

	_, err = svc.Review(context.Background(), reviewed.ID.String(), uuid.NewString(), ReviewLeaveRequest{Status: "Rejected"})
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}
