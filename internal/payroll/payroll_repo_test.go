package payroll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func monthRecord(month string) PayrollRecord {
	return PayrollRecord{
		ID:            uuid.New(),
		EmployeeID:    uuid.New(),
		Month:         month,
		WorkingDays:   26,
		PresentDays:   24,
		HalfDays:      2,
		TotalDays:     26,
		EffectiveDays: decimal.NewFromInt(25),
		BasicEarned:   decimal.NewFromInt(50000),
		GrossPay:      decimal.NewFromInt(50000),
		NetPay:        decimal.NewFromInt(50000),
		ProcessedOn:   time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		ProcessedBy:   uuid.New(),
	}
}

// The run's records must settle on the caller's transaction; the nil
// gorm handle would crash any write taking the plain-connection path.
func TestUpsertBatch_RunsOnTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO payroll_records").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO payroll_records").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	repo := NewRepository(nil).WithTx(tx)

	records := []PayrollRecord{monthRecord("2025-08"), monthRecord("2025-08")}
	require.NoError(t, repo.UpsertBatch(context.Background(), records))

	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertBatch_FailureLeavesTransactionOpenForRollback(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	writeErr := errors.New("deadlock detected")
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO payroll_records").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO payroll_records").WillReturnError(writeErr)
	mock.ExpectRollback()

	tx, err := db.Begin()
	require.NoError(t, err)

	repo := NewRepository(nil).WithTx(tx)

	records := []PayrollRecord{monthRecord("2025-08"), monthRecord("2025-08")}
	err = repo.UpsertBatch(context.Background(), records)
	assert.ErrorIs(t, err, writeErr)

	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}
