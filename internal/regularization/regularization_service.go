package regularization

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"hrconnect/internal/attendance"
	regularizationerrors "hrconnect/internal/regularization/errors"
	"hrconnect/internal/shared/timeutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=regularization_service.go -destination=mock/regularization_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, employeeID string, req ApplyRegularizationRequest) (RegularizationResponse, error)
	Review(ctx context.Context, id, reviewerID string, req ReviewRegularizationRequest) (RegularizationResponse, error)
	GetAll(ctx context.Context, actorID string, canReadAll bool) ([]RegularizationResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	attendances attendance.Repository
	leaves      attendance.LeaveChecker
	now         func() time.Time
	logger      *zap.Logger
}

func NewService(db *sql.DB, repo Repository, attendances attendance.Repository, leaves attendance.LeaveChecker, logger ...*zap.Logger) Service {
	return NewServiceWithClock(db, repo, attendances, leaves, time.Now, logger...)
}

func NewServiceWithClock(db *sql.DB, repo Repository, attendances attendance.Repository, leaves attendance.LeaveChecker, now func() time.Time, logger ...*zap.Logger) Service {
	l := zap.L().Named("regularization.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("regularization.service")
	}
	return &service{db: db, repo: repo, attendances: attendances, leaves: leaves, now: now, logger: l}
}

func (s *service) Apply(ctx context.Context, employeeID string, req ApplyRegularizationRequest) (RegularizationResponse, error) {
	empUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return RegularizationResponse{}, regularizationerrors.ErrInvalidEmployeeID
	}
	date, err := time.Parse(timeutil.DateLayout, req.Date)
	if err != nil {
		return RegularizationResponse{}, regularizationerrors.ErrInvalidDate
	}
	if _, err := time.Parse(timeutil.ClockLayout, req.RequestedCheckOut); err != nil {
		return RegularizationResponse{}, regularizationerrors.ErrInvalidCheckOutTime
	}

	reg := &Regularization{
		ID:                uuid.New(),
		EmployeeID:        empUUID,
		Date:              date,
		RequestedCheckOut: req.RequestedCheckOut,
		Reason:            req.Reason,
		Status:            StatusPending,
	}
	if err := s.repo.Create(ctx, reg); err != nil {
		s.logger.Error("apply regularization persist failed", zap.Error(err))
		return RegularizationResponse{}, err
	}

	s.logger.Info("regularization applied",
		zap.String("regularization_id", reg.ID.String()),
		zap.String("employee_id", employeeID),
		zap.String("date", req.Date),
	)
	return mapToResponse(*reg), nil
}

// Review settles a pending correction. An approval replays the
// check-out classification with the requested time, leave merge
// included, and overwrites the attendance row in the same transaction.
func (s *service) Review(ctx context.Context, id, reviewerID string, req ReviewRegularizationRequest) (RegularizationResponse, error) {
	reviewerUUID, err := uuid.Parse(reviewerID)
	if err != nil {
		return RegularizationResponse{}, regularizationerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RegularizationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	reg, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RegularizationResponse{}, regularizationerrors.ErrRegularizationNotFound
		}
		return RegularizationResponse{}, err
	}
	if reg.Status != StatusPending {
		return RegularizationResponse{}, regularizationerrors.ErrAlreadyReviewed
	}

	if Status(req.Status) == StatusApproved {
		if err := s.applyCorrection(ctx, tx, reg); err != nil {
			return RegularizationResponse{}, err
		}
	}

	now := s.now().UTC()
	reg.Status = Status(req.Status)
	reg.ReviewedOn = &now
	reg.ReviewedBy = &reviewerUUID

	if err := qtx.SaveReview(ctx, reg); err != nil {
		s.logger.Error("review regularization persist failed", zap.Error(err))
		return RegularizationResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return RegularizationResponse{}, err
	}

	s.logger.Info("regularization reviewed",
		zap.String("regularization_id", id),
		zap.String("status", req.Status),
	)
	return mapToResponse(*reg), nil
}

func (s *service) applyCorrection(ctx context.Context, tx *sql.Tx, reg *Regularization) error {
	atx := s.attendances.WithTx(tx)

	row, err := atx.FindByEmployeeAndDate(ctx, reg.EmployeeID.String(), reg.Date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return regularizationerrors.ErrNoCheckInOnDate
		}
		return err
	}
	if row.CheckIn == nil {
		return regularizationerrors.ErrNoCheckInOnDate
	}

	leave, err := s.leaves.ApprovedLeaveOn(ctx, reg.EmployeeID.String(), reg.Date)
	if err != nil {
		return err
	}

	status, err := attendance.ClassifyCheckOut(*row.CheckIn, reg.RequestedCheckOut, leave)
	if err != nil {
		return regularizationerrors.ErrInvalidCheckOutTime
	}

	row.CheckOut = &reg.RequestedCheckOut
	row.Status = status
	row.Source = attendance.SourceManual

	if err := atx.Upsert(ctx, row); err != nil {
		s.logger.Error("regularization attendance upsert failed", zap.Error(err))
		return err
	}

	s.logger.Debug("attendance corrected",
		zap.String("employee_id", reg.EmployeeID.String()),
		zap.String("date", reg.Date.Format(timeutil.DateLayout)),
		zap.String("status", string(status)),
	)
	return nil
}

func (s *service) GetAll(ctx context.Context, actorID string, canReadAll bool) ([]RegularizationResponse, error) {
	var (
		rows []Regularization
		err  error
	)
	if canReadAll {
		rows, err = s.repo.FindAll(ctx)
	} else {
		if _, parseErr := uuid.Parse(actorID); parseErr != nil {
			return nil, regularizationerrors.ErrInvalidEmployeeID
		}
		rows, err = s.repo.FindAllByEmployee(ctx, actorID)
	}
	if err != nil {
		return nil, err
	}
	res := make([]RegularizationResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func mapToResponse(r Regularization) RegularizationResponse {
	resp := RegularizationResponse{
		ID:                r.ID.String(),
		EmployeeID:        r.EmployeeID.String(),
		Date:              r.Date.Format(timeutil.DateLayout),
		RequestedCheckOut: r.RequestedCheckOut,
		Reason:            r.Reason,
		Status:            string(r.Status),
	}
	if r.ReviewedOn != nil {
		reviewed := r.ReviewedOn.Format(timeutil.DateLayout)
		resp.ReviewedOn = &reviewed
	}
	return resp
}
