package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"hrconnect/internal/events"
	leaveerrors "hrconnect/internal/leave/errors"
	"hrconnect/internal/messaging/kafka"
	"hrconnect/internal/shared/contextutil"
	"hrconnect/internal/shared/timeutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Two leave days accrue per calendar month worked.
const monthlyAccrualDays = 2

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, employeeID string, req ApplyLeaveRequest) (LeaveResponse, error)
	Review(ctx context.Context, leaveID, reviewerID string, req ReviewLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, actorID string, canReadAll bool) ([]LeaveResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) Service {
	return NewServiceWithClock(db, repo, outbox, time.Now, logger...)
}

func NewServiceWithClock(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, now func() time.Time, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, now: now, logger: l}
}

func (s *service) Apply(ctx context.Context, employeeID string, req ApplyLeaveRequest) (LeaveResponse, error) {
	empUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}

	leaveType := Type(strings.TrimSpace(req.Type))
	if leaveType == "" {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveType
	}
	session := Session(req.Session)
	if !session.Valid() {
		return LeaveResponse{}, leaveerrors.ErrInvalidSession
	}
	if leaveType == TypeHalfDay && session == SessionFullDay {
		return LeaveResponse{}, leaveerrors.ErrInvalidSession
	}

	start, err := time.Parse(timeutil.DateLayout, req.StartDate)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}
	end, err := time.Parse(timeutil.DateLayout, req.EndDate)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}
	if end.Before(start) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}
	// A half day is a single-day request; a range would let 0.5 debited
	// days upgrade every day in it at check-out.
	if leaveType == TypeHalfDay && !end.Equal(start) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	l := &Leave{
		ID:          uuid.New(),
		EmployeeID:  empUUID,
		Type:        leaveType,
		Session:     session,
		StartDate:   start,
		EndDate:     end,
		Reason:      req.Reason,
		DaysCount:   daysCountFor(session),
		Status:      StatusPending,
		RequestedOn: s.now().UTC().Truncate(24 * time.Hour),
	}

	if err := s.repo.Create(ctx, l); err != nil {
		s.logger.Error("apply leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("leave applied",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", employeeID),
		zap.String("type", req.Type),
	)
	return mapToResponse(*l), nil
}

// Review settles a pending request. An approval and its ledger effects
// on the employee row commit atomically; a crash between them can never
// leave an approved request whose balance was not debited.
func (s *service) Review(ctx context.Context, leaveID, reviewerID string, req ReviewLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	reviewerUUID, err := uuid.Parse(reviewerID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}

	decision := Status(req.Status)
	if decision != StatusApproved && decision != StatusRejected {
		return LeaveResponse{}, leaveerrors.ErrInvalidReviewStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDForUpdate(ctx, leaveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.Status != StatusPending {
		s.logger.Warn("review rejected, request already reviewed",
			zap.String("leave_id", leaveID),
			zap.String("status", string(l.Status)),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	now := s.now().UTC()
	l.Status = decision
	l.ReviewedOn = &now
	l.ReviewedBy = &reviewerUUID

	if decision == StatusApproved {
		if err := s.settleLedger(ctx, qtx, l); err != nil {
			return LeaveResponse{}, err
		}
	}

	if err := qtx.SaveReview(ctx, l); err != nil {
		s.logger.Error("review persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if s.outbox != nil {
		event := events.LeaveReviewedEvent{
			EventType:  "leave.reviewed",
			LeaveID:    l.ID.String(),
			EmployeeID: l.EmployeeID.String(),
			Status:     string(l.Status),
			IsPaid:     l.IsPaid,
			OccurredAt: now,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return LeaveResponse{}, err
		}
		outboxEvent := kafka.OutboxEvent{
			ID:            uuid.New().String(),
			RequestID:     rid,
			AggregateType: "leave",
			AggregateID:   l.ID.String(),
			EventType:     event.EventType,
			Topic:         events.LeaveReviewedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}
		if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
			s.logger.Error("review outbox failed", zap.Error(err))
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("leave reviewed",
		zap.String("leave_id", leaveID),
		zap.String("status", string(decision)),
	)
	return mapToResponse(*l), nil
}

// settleLedger accrues any months owed since the last accrual, decides
// whether the balance covers the request, and debits it (floored at
// zero). Runs on the same transaction as the status write.
func (s *service) settleLedger(ctx context.Context, qtx Repository, l *Leave) error {
	bal, err := qtx.BalanceForUpdate(ctx, l.EmployeeID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrLeaveNotFound
		}
		return err
	}

	leaveMonth := l.StartDate.Format(timeutil.MonthLayout)

	current := bal.Current
	if bal.Month == nil || *bal.Month != leaveMonth {
		monthsElapsed := 1
		if bal.Month != nil {
			elapsed, err := timeutil.MonthsBetween(*bal.Month, leaveMonth)
			if err != nil {
				return err
			}
			if elapsed > monthsElapsed {
				monthsElapsed = elapsed
			}
		}
		accrued := decimal.NewFromInt(int64(monthlyAccrualDays * monthsElapsed))
		current = current.Add(accrued)
		s.logger.Debug("leave balance accrued",
			zap.String("employee_id", l.EmployeeID.String()),
			zap.Int("months", monthsElapsed),
			zap.String("balance", current.String()),
		)
	}

	isPaid := current.GreaterThanOrEqual(l.DaysCount)
	l.IsPaid = &isPaid

	newBalance := current.Sub(l.DaysCount)
	if newBalance.IsNegative() {
		newBalance = decimal.Zero
	}

	return qtx.SaveBalance(ctx, l.EmployeeID.String(), newBalance, leaveMonth)
}

func (s *service) GetAll(ctx context.Context, actorID string, canReadAll bool) ([]LeaveResponse, error) {
	var (
		rows []Leave
		err  error
	)
	if canReadAll {
		rows, err = s.repo.FindAll(ctx)
	} else {
		if _, parseErr := uuid.Parse(actorID); parseErr != nil {
			return nil, leaveerrors.ErrInvalidEmployeeID
		}
		rows, err = s.repo.FindAllByEmployee(ctx, actorID)
	}
	if err != nil {
		return nil, err
	}
	res := make([]LeaveResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func daysCountFor(session Session) decimal.Decimal {
	if session == SessionFullDay {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromFloat(0.5)
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:          l.ID.String(),
		EmployeeID:  l.EmployeeID.String(),
		Type:        string(l.Type),
		Session:     string(l.Session),
		StartDate:   l.StartDate.Format(timeutil.DateLayout),
		EndDate:     l.EndDate.Format(timeutil.DateLayout),
		Reason:      l.Reason,
		DaysCount:   l.DaysCount,
		Status:      string(l.Status),
		IsPaid:      l.IsPaid,
		RequestedOn: l.RequestedOn.Format(timeutil.DateLayout),
	}
	if l.ReviewedOn != nil {
		reviewed := l.ReviewedOn.Format(timeutil.DateLayout)
		resp.ReviewedOn = &reviewed
	}
	return resp
}
