package employee

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	employeeerrors "hrconnect/internal/employee/errors"
	"hrconnect/internal/events"
	"hrconnect/internal/messaging/kafka"
)

type fakeRepo struct {
	createFn   func(ctx context.Context, e *Employee) error
	findAllFn  func(ctx context.Context) ([]Employee, error)
	findByIDFn func(ctx context.Context, id string) (*Employee, error)
	updateFn   func(ctx context.Context, e *Employee) error
	deleteFn   func(ctx context.Context, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, e *Employee) error {
	return f.createFn(ctx, e)
}

func (f *fakeRepo) FindAll(ctx context.Context) ([]Employee, error) {
	return f.findAllFn(ctx)
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Employee, error) {
	return f.findByIDFn(ctx, id)
}

func (f *fakeRepo) Update(ctx context.Context, e *Employee) error {
	return f.updateFn(ctx, e)
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

type fakeCounter struct {
	next int64
	err  error
}

func (f *fakeCounter) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	return f.next, f.err
}

type fakeOutbox struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

func validCreateRequest() CreateEmployeeRequest {
	return CreateEmployeeRequest{
		FullName:      "Asha Verma",
		Email:         "asha.verma@example.com",
		Department:    "Engineering",
		Designation:   "Backend Engineer",
		DateOfJoining: "2025-03-01",
		Salary: SalaryStructure{
			Basic:      decimal.NewFromInt(26000),
			HRA:        decimal.NewFromInt(8000),
			Allowances: decimal.NewFromInt(4000),
			Deductions: decimal.NewFromInt(1800),
		},
		BankAccount: BankAccount{
			Number:   "000111222333",
			IFSC:     "HDFC0001234",
			BankName: "HDFC",
		},
	}
}

func TestCreate_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	var persisted *Employee
	repo := &fakeRepo{
		createFn: func(ctx context.Context, e *Employee) error {
			persisted = e
			return nil
		},
	}
	outbox := &fakeOutbox{}

	svc := NewServiceWithOutbox(db, repo, &fakeCounter{next: 42}, outbox, nil)

	resp, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, "EMP-000042", resp.EmployeeNumber)
	assert.Equal(t, "2025-03-01", resp.DateOfJoining)
	assert.True(t, resp.Salary.Basic.Equal(decimal.NewFromInt(26000)))
	require.NotNil(t, persisted)
	assert.Equal(t, persisted.ID.String(), resp.ID)

	require.Len(t, outbox.created, 1)
	assert.Equal(t, "employee.created", outbox.created[0].EventType)
	assert.Equal(t, events.EmployeeCreatedTopic, outbox.created[0].Topic)
	assert.Equal(t, persisted.ID.String(), outbox.created[0].AggregateID)
	assert.Equal(t, kafka.OutboxStatusPending, outbox.created[0].Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_InvalidDateOfJoining(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewServiceWithOutbox(db, &fakeRepo{}, &fakeCounter{next: 1}, &fakeOutbox{}, nil)

	req := validCreateRequest()
	req.DateOfJoining = "01-03-2025"

	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, employeeerrors.ErrInvalidDateOfJoining)
}

func TestCreate_DuplicateEmailMapsToConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := &fakeRepo{
		createFn: func(ctx context.Context, e *Employee) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_employees_email"}
		},
	}

	svc := NewServiceWithOutbox(db, repo, &fakeCounter{next: 7}, &fakeOutbox{}, nil)

	_, err = svc.Create(context.Background(), validCreateRequest())
	assert.ErrorIs(t, err, employeeerrors.ErrEmailAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Employee, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewServiceWithOutbox(db, repo, &fakeCounter{}, &fakeOutbox{}, nil)

	_, err = svc.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
}

func TestGetAll_ReadsRepositoryWithoutCache(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &fakeRepo{
		findAllFn: func(ctx context.Context) ([]Employee, error) {
			return []Employee{
				{ID: uuid.New(), EmployeeNumber: "EMP-000001", FullName: "Asha Verma"},
				{ID: uuid.New(), EmployeeNumber: "EMP-000002", FullName: "Ravi Kumar"},
			}, nil
		},
	}

	svc := NewServiceWithOutbox(db, repo, &fakeCounter{}, &fakeOutbox{}, nil)

	rows, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "EMP-000001", rows[0].EmployeeNumber)
}

func TestUpdate_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Employee, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewServiceWithOutbox(db, repo, &fakeCounter{}, &fakeOutbox{}, nil)

	req := UpdateEmployeeRequest(validCreateRequest())
	_, err = svc.Update(context.Background(), uuid.NewString(), req)
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_CommitsTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	deleted := ""
	repo := &fakeRepo{
		deleteFn: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}

	svc := NewServiceWithOutbox(db, repo, &fakeCounter{}, &fakeOutbox{}, nil)

	id := uuid.NewString()
	require.NoError(t, svc.Delete(context.Background(), id))
	assert.Equal(t, id, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
