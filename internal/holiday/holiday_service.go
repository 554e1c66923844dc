package holiday

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	holidayerrors "hrconnect/internal/holiday/errors"
	"hrconnect/internal/shared/timeutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const holidayListCacheKey = "holidays:all"

//go:generate mockgen -source=holiday_service.go -destination=mock/holiday_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	GetAll(ctx context.Context) ([]HolidayResponse, error)
	Update(ctx context.Context, id string, req UpdateHolidayRequest) (HolidayResponse, error)
	Delete(ctx context.Context, id string) error
	// DatesInMonth returns the month's holiday dates keyed "YYYY-MM-DD",
	// the shape the working-days calculation consumes.
	DatesInMonth(ctx context.Context, month string) (map[string]struct{}, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("holiday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.service")
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error) {
	date, err := time.Parse(timeutil.DateLayout, req.Date)
	if err != nil {
		return HolidayResponse{}, holidayerrors.ErrInvalidHolidayDate
	}

	h := &Holiday{
		ID:          uuid.New(),
		Name:        req.Name,
		HolidayDate: date,
	}
	if err := s.repo.Create(ctx, h); err != nil {
		return HolidayResponse{}, mapRepositoryError(err)
	}

	s.invalidateCache(ctx)
	s.logger.Info("holiday created", zap.String("date", req.Date), zap.String("name", req.Name))
	return mapToResponse(*h), nil
}

func (s *service) GetAll(ctx context.Context) ([]HolidayResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, holidayListCacheKey).Result()
		if err == nil {
			var resp []HolidayResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(holidayListCacheKey, func() (interface{}, error) {
		rows, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		resp := make([]HolidayResponse, len(rows))
		for i, h := range rows {
			resp[i] = mapToResponse(h)
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, holidayListCacheKey, jsonData, 30*time.Minute)
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]HolidayResponse), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateHolidayRequest) (HolidayResponse, error) {
	date, err := time.Parse(timeutil.DateLayout, req.Date)
	if err != nil {
		return HolidayResponse{}, holidayerrors.ErrInvalidHolidayDate
	}

	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return HolidayResponse{}, holidayerrors.ErrHolidayNotFound
		}
		return HolidayResponse{}, err
	}

	h.Name = req.Name
	h.HolidayDate = date

	if err := s.repo.Update(ctx, h); err != nil {
		return HolidayResponse{}, mapRepositoryError(err)
	}

	s.invalidateCache(ctx)
	return mapToResponse(*h), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return holidayerrors.ErrHolidayNotFound
		}
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *service) DatesInMonth(ctx context.Context, month string) (map[string]struct{}, error) {
	rows, err := s.repo.FindByMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	dates := make(map[string]struct{}, len(rows))
	for _, h := range rows {
		dates[h.HolidayDate.Format(timeutil.DateLayout)] = struct{}{}
	}
	return dates, nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, holidayListCacheKey).Err(); err != nil {
		s.logger.Error("invalidate holiday cache failed", zap.Error(err))
	}
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return holidayerrors.ErrHolidayDateExists
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return holidayerrors.ErrHolidayDateExists
	}
	return err
}

func mapToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:   h.ID.String(),
		Name: h.Name,
		Date: h.HolidayDate.Format(timeutil.DateLayout),
	}
}
