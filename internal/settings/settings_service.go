package settings

import (
	"context"
	"errors"
	"time"

	"hrconnect/internal/shared/timeutil"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// The weekly rest day is fixed company policy.
const restDay = time.Sunday

// HolidayCalendar is the month lookup the working-days calculation
// needs; the holiday package provides the implementation.
type HolidayCalendar interface {
	DatesInMonth(ctx context.Context, month string) (map[string]struct{}, error)
}

//go:generate mockgen -source=settings_service.go -destination=mock/settings_service_mock.go -package=mock
type Service interface {
	Get(ctx context.Context) (SettingsResponse, error)
	Update(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)
	// WorkingDays derives the month's payable days from the calendar:
	// every date that is neither a Sunday nor a holiday.
	WorkingDays(ctx context.Context, month string) (int, error)
}

type service struct {
	repo     Repository
	holidays HolidayCalendar
	logger   *zap.Logger
}

func NewService(repo Repository, holidays HolidayCalendar, logger ...*zap.Logger) Service {
	l := zap.L().Named("settings.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("settings.service")
	}
	return &service{repo: repo, holidays: holidays, logger: l}
}

func (s *service) Get(ctx context.Context) (SettingsResponse, error) {
	row, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Defaults until the first explicit save.
			return SettingsResponse{DefaultWorkingDays: 26}, nil
		}
		return SettingsResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error) {
	row := &CompanySettings{
		CompanyName:        req.CompanyName,
		DefaultWorkingDays: req.DefaultWorkingDays,
	}
	if err := s.repo.Upsert(ctx, row); err != nil {
		s.logger.Error("settings upsert failed", zap.Error(err))
		return SettingsResponse{}, err
	}
	s.logger.Info("settings updated", zap.Int("default_working_days", req.DefaultWorkingDays))
	return mapToResponse(*row), nil
}

func (s *service) WorkingDays(ctx context.Context, month string) (int, error) {
	holidays, err := s.holidays.DatesInMonth(ctx, month)
	if err != nil {
		return 0, err
	}
	return timeutil.WorkingDaysInMonth(month, restDay, holidays)
}

func mapToResponse(row CompanySettings) SettingsResponse {
	return SettingsResponse{
		CompanyName:        row.CompanyName,
		DefaultWorkingDays: row.DefaultWorkingDays,
	}
}
