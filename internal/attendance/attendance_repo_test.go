package attendance

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// beginTx hands out a transaction on a mocked connection. The repository
// under test gets a nil gorm handle on purpose: any statement that does
// not go through the transaction would crash instead of passing.
func beginTx(t *testing.T) (*sql.Tx, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectBegin()
	tx, err := db.Begin()
	require.NoError(t, err)
	return tx, mock
}

func sampleRow() *Attendance {
	clock := "09:00:00"
	return &Attendance{
		ID:             uuid.New(),
		EmployeeID:     uuid.New(),
		AttendanceDate: time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC),
		CheckIn:        &clock,
		Status:         StatusPresent,
		Source:         SourceSelf,
	}
}

func TestCreateIfAbsent_RunsOnTransaction(t *testing.T) {
	tx, mock := beginTx(t)
	mock.ExpectExec("INSERT INTO attendances").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewRepository(nil).WithTx(tx)

	inserted, err := repo.CreateIfAbsent(context.Background(), sampleRow())
	require.NoError(t, err)
	assert.True(t, inserted)

	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateIfAbsent_LostRaceReportsNoInsert(t *testing.T) {
	tx, mock := beginTx(t)
	mock.ExpectExec("INSERT INTO attendances").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	repo := NewRepository(nil).WithTx(tx)

	inserted, err := repo.CreateIfAbsent(context.Background(), sampleRow())
	require.NoError(t, err)
	assert.False(t, inserted)

	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsert_RunsOnTransaction(t *testing.T) {
	tx, mock := beginTx(t)
	mock.ExpectExec("INSERT INTO attendances").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	repo := NewRepository(nil).WithTx(tx)

	require.NoError(t, repo.Upsert(context.Background(), sampleRow()))

	// A rollback after the write must leave nothing behind; the mock
	// verifies the statement never ran outside the transaction.
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_RunsOnTransaction(t *testing.T) {
	tx, mock := beginTx(t)
	mock.ExpectExec("UPDATE attendances").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewRepository(nil).WithTx(tx)

	require.NoError(t, repo.Update(context.Background(), sampleRow()))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByEmployeeAndDate_OnTransaction(t *testing.T) {
	tx, mock := beginTx(t)

	empID := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "employee_id", "attendance_date", "check_in", "check_out", "status", "source"}).
		AddRow(uuid.New().String(), empID.String(), time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC), "09:00:00", nil, "Present", "SELF")
	mock.ExpectQuery("SELECT (.+) FROM attendances").WillReturnRows(rows)
	mock.ExpectCommit()

	repo := NewRepository(nil).WithTx(tx)

	a, err := repo.FindByEmployeeAndDate(context.Background(), empID.String(), time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, empID, a.EmployeeID)
	require.NotNil(t, a.CheckIn)
	assert.Equal(t, "09:00:00", *a.CheckIn)
	assert.Nil(t, a.CheckOut)

	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByEmployeeAndDate_NotFound(t *testing.T) {
	tx, mock := beginTx(t)
	mock.ExpectQuery("SELECT (.+) FROM attendances").WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	repo := NewRepository(nil).WithTx(tx)

	_, err := repo.FindByEmployeeAndDate(context.Background(), uuid.NewString(), time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}
