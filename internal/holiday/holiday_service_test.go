package holiday

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	holidayerrors "hrconnect/internal/holiday/errors"
)

type fakeRepo struct {
	createFn      func(ctx context.Context, h *Holiday) error
	findAllFn     func(ctx context.Context) ([]Holiday, error)
	findByIDFn    func(ctx context.Context, id string) (*Holiday, error)
	findByMonthFn func(ctx context.Context, month string) ([]Holiday, error)
	updateFn      func(ctx context.Context, h *Holiday) error
	deleteFn      func(ctx context.Context, id string) error

	findAllCalls int
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, h *Holiday) error { return f.createFn(ctx, h) }

func (f *fakeRepo) FindAll(ctx context.Context) ([]Holiday, error) {
	f.findAllCalls++
	return f.findAllFn(ctx)
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Holiday, error) {
	return f.findByIDFn(ctx, id)
}

func (f *fakeRepo) FindByMonth(ctx context.Context, month string) ([]Holiday, error) {
	return f.findByMonthFn(ctx, month)
}

func (f *fakeRepo) Update(ctx context.Context, h *Holiday) error { return f.updateFn(ctx, h) }

func (f *fakeRepo) Delete(ctx context.Context, id string) error { return f.deleteFn(ctx, id) }

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return d
}

func TestGetAll_CacheHitSkipsRepository(t *testing.T) {
	rdb, mock := redismock.NewClientMock()

	cached := []HolidayResponse{
		{ID: uuid.NewString(), Name: "Independence Day", Date: "2025-08-15"},
	}
	payload, err := json.Marshal(cached)
	require.NoError(t, err)

	mock.ExpectGet(holidayListCacheKey).SetVal(string(payload))

	repo := &fakeRepo{
		findAllFn: func(ctx context.Context) ([]Holiday, error) {
			t.Fatal("repository must not be hit on cache hit")
			return nil, nil
		},
	}

	svc := NewService(repo, rdb)

	rows, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Independence Day", rows[0].Name)
	assert.Zero(t, repo.findAllCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAll_CacheMissFillsCache(t *testing.T) {
	rdb, mock := redismock.NewClientMock()

	holidays := []Holiday{
		{ID: uuid.New(), Name: "Republic Day", HolidayDate: mustDate(t, "2025-01-26")},
	}
	resp := []HolidayResponse{
		{ID: holidays[0].ID.String(), Name: "Republic Day", Date: "2025-01-26"},
	}
	payload, err := json.Marshal(resp)
	require.NoError(t, err)

	mock.ExpectGet(holidayListCacheKey).RedisNil()
	mock.ExpectSet(holidayListCacheKey, payload, 30*time.Minute).SetVal("OK")

	repo := &fakeRepo{
		findAllFn: func(ctx context.Context) ([]Holiday, error) {
			return holidays, nil
		},
	}

	svc := NewService(repo, rdb)

	rows, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2025-01-26", rows[0].Date)
	assert.Equal(t, 1, repo.findAllCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_InvalidatesCache(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectDel(holidayListCacheKey).SetVal(1)

	repo := &fakeRepo{
		createFn: func(ctx context.Context, h *Holiday) error { return nil },
	}

	svc := NewService(repo, rdb)

	resp, err := svc.Create(context.Background(), CreateHolidayRequest{
		Name: "Diwali",
		Date: "2025-10-21",
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-10-21", resp.Date)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateDateMapsToConflict(t *testing.T) {
	repo := &fakeRepo{
		createFn: func(ctx context.Context, h *Holiday) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "idx_holidays_holiday_date"}
		},
	}

	svc := NewService(repo, nil)

	_, err := svc.Create(context.Background(), CreateHolidayRequest{
		Name: "Diwali",
		Date: "2025-10-21",
	})
	assert.ErrorIs(t, err, holidayerrors.ErrHolidayDateExists)
}

func TestCreate_InvalidDate(t *testing.T) {
	svc := NewService(&fakeRepo{}, nil)

	_, err := svc.Create(context.Background(), CreateHolidayRequest{
		Name: "Diwali",
		Date: "21-10-2025",
	})
	assert.ErrorIs(t, err, holidayerrors.ErrInvalidHolidayDate)
}

func TestDatesInMonth_KeyedByDate(t *testing.T) {
	repo := &fakeRepo{
		findByMonthFn: func(ctx context.Context, month string) ([]Holiday, error) {
			assert.Equal(t, "2025-08", month)
			return []Holiday{
				{ID: uuid.New(), Name: "Independence Day", HolidayDate: mustDate(t, "2025-08-15")},
			}, nil
		},
	}

	svc := NewService(repo, nil)

	dates, err := svc.DatesInMonth(context.Background(), "2025-08")
	require.NoError(t, err)
	assert.Contains(t, dates, "2025-08-15")
	assert.Len(t, dates, 1)
}
