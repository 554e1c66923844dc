package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	attendanceerrors "hrconnect/internal/attendance/errors"
	"hrconnect/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LeaveChecker exposes the single leave lookup the classifier needs;
// the leave package provides the implementation.
type LeaveChecker interface {
	ApprovedLeaveOn(ctx context.Context, employeeID string, date time.Time) (*ApprovedLeave, error)
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, employeeID string) (AttendanceResponse, error)
	CheckOut(ctx context.Context, employeeID string) (AttendanceResponse, error)
	ManualMark(ctx context.Context, req ManualMarkRequest) (AttendanceResponse, error)
	GetAll(ctx context.Context, actorID string, canReadAll bool) ([]AttendanceResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	leaves LeaveChecker
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, leaves LeaveChecker, logger ...*zap.Logger) Service {
	return NewServiceWithClock(db, repo, leaves, time.Now, logger...)
}

func NewServiceWithClock(db *sql.DB, repo Repository, leaves LeaveChecker, now func() time.Time, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, leaves: leaves, now: now, logger: l}
}

func (s *service) CheckIn(ctx context.Context, employeeID string) (AttendanceResponse, error) {
	empUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now()
	today := dateOnly(now)
	clock := now.Format("15:04:05")

	existing, err := qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}
	if err == nil && existing.CheckIn != nil {
		s.logger.Warn("check-in rejected, already checked in",
			zap.String("employee_id", employeeID),
			zap.String("date", today.Format("2006-01-02")),
		)
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
	}

	row := &Attendance{
		ID:             uuid.New(),
		EmployeeID:     empUUID,
		AttendanceDate: today,
		CheckIn:        &clock,
		Status:         StatusPresent, // provisional until check-out
		Source:         SourceSelf,
	}

	inserted, err := qtx.CreateIfAbsent(ctx, row)
	if err != nil {
		s.logger.Error("check-in persist failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	if !inserted {
		// Lost the upsert race on the natural key.
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
	}

	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("check-in success",
		zap.String("employee_id", employeeID),
		zap.String("check_in", clock),
	)
	return mapToResponse(*row), nil
}

func (s *service) CheckOut(ctx context.Context, employeeID string) (AttendanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now()
	today := dateOnly(now)
	clock := now.Format("15:04:05")

	row, err := qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrNoCheckIn
		}
		return AttendanceResponse{}, err
	}
	if row.CheckIn == nil {
		return AttendanceResponse{}, attendanceerrors.ErrNoCheckIn
	}

	leave, err := s.leaves.ApprovedLeaveOn(ctx, employeeID, today)
	if err != nil {
		s.logger.Error("check-out leave lookup failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	status, err := ClassifyCheckOut(*row.CheckIn, clock, leave)
	if err != nil {
		return AttendanceResponse{}, apperror.Wrap(err, apperror.CodeInvalidState, "Stored check-in time is corrupt", 500)
	}

	// A repeat check-out is a pure overwrite of check-out and status;
	// the original check-in is never touched.
	row.CheckOut = &clock
	row.Status = status

	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error("check-out persist failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("check-out success",
		zap.String("employee_id", employeeID),
		zap.String("check_out", clock),
		zap.String("status", string(status)),
	)
	return mapToResponse(*row), nil
}

func (s *service) ManualMark(ctx context.Context, req ManualMarkRequest) (AttendanceResponse, error) {
	empUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	status := Status(req.Status)
	if !status.Valid() {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidStatus
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	checkIn, checkOut := manualMarkTimes(status)
	row := &Attendance{
		ID:             uuid.New(),
		EmployeeID:     empUUID,
		AttendanceDate: date,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		Status:         status,
		Source:         SourceManual,
	}

	if err := qtx.Upsert(ctx, row); err != nil {
		s.logger.Error("manual mark persist failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("manual mark success",
		zap.String("employee_id", req.EmployeeID),
		zap.String("date", req.Date),
		zap.String("status", req.Status),
	)
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, actorID string, canReadAll bool) ([]AttendanceResponse, error) {
	var (
		rows []Attendance
		err  error
	)
	if canReadAll {
		rows, err = s.repo.FindAll(ctx)
	} else {
		if _, parseErr := uuid.Parse(actorID); parseErr != nil {
			return nil, attendanceerrors.ErrInvalidEmployeeID
		}
		rows, err = s.repo.FindAllByEmployee(ctx, actorID)
	}
	if err != nil {
		return nil, err
	}
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID.String(),
		EmployeeID:     a.EmployeeID.String(),
		AttendanceDate: a.AttendanceDate.Format("2006-01-02"),
		CheckIn:        a.CheckIn,
		CheckOut:       a.CheckOut,
		Status:         string(a.Status),
		Source:         a.Source,
	}
	if a.Employee != nil {
		resp.EmployeeName = a.Employee.FullName
	}
	return resp
}
