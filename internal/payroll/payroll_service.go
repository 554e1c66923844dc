package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"hrconnect/internal/events"
	"hrconnect/internal/messaging/kafka"
	payrollerrors "hrconnect/internal/payroll/errors"
	"hrconnect/internal/shared/contextutil"
	"hrconnect/internal/shared/timeutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// WorkingDaysProvider derives a month's payable days; the settings
// package provides the implementation.
type WorkingDaysProvider interface {
	WorkingDays(ctx context.Context, month string) (int, error)
}

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Process(ctx context.Context, actorID string, req ProcessPayrollRequest) (ProcessPayrollResponse, error)
	GetByMonth(ctx context.Context, month string) ([]PayrollResponse, error)
	GetByID(ctx context.Context, id string) (PayrollResponse, error)
	// Payslip renders the record's PDF on demand.
	Payslip(ctx context.Context, id string) ([]byte, error)
	// GeneratePayslips renders and stores every payslip for a settled
	// month; returns how many were written.
	GeneratePayslips(ctx context.Context, month, dir string) (int, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	workingDays WorkingDaysProvider
	outbox      kafka.OutboxRepository
	now         func() time.Time
	logger      *zap.Logger
}

func NewService(db *sql.DB, repo Repository, workingDays WorkingDaysProvider, outbox kafka.OutboxRepository, logger ...*zap.Logger) Service {
	return NewServiceWithClock(db, repo, workingDays, outbox, time.Now, logger...)
}

func NewServiceWithClock(db *sql.DB, repo Repository, workingDays WorkingDaysProvider, outbox kafka.OutboxRepository, now func() time.Time, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{db: db, repo: repo, workingDays: workingDays, outbox: outbox, now: now, logger: l}
}

// Process prices the month for every employee and settles the run in a
// single transaction. The computation stage touches nothing; a failure
// there leaves no partial records behind.
func (s *service) Process(ctx context.Context, actorID string, req ProcessPayrollRequest) (ProcessPayrollResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if _, err := timeutil.ParseMonth(req.Month); err != nil {
		return ProcessPayrollResponse{}, payrollerrors.ErrInvalidMonth
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return ProcessPayrollResponse{}, payrollerrors.ErrInvalidEmployeeID
	}

	workingDays := req.WorkingDays
	if workingDays <= 0 && s.workingDays != nil {
		workingDays, err = s.workingDays.WorkingDays(ctx, req.Month)
		if err != nil {
			return ProcessPayrollResponse{}, err
		}
	}
	if workingDays <= 0 {
		s.logger.Warn("payroll run rejected",
			zap.String("month", req.Month),
			zap.Int("working_days", workingDays),
		)
		return ProcessPayrollResponse{}, payrollerrors.ErrInsufficientWorkingDays
	}

	employees, err := s.repo.ListEmployeePay(ctx)
	if err != nil {
		return ProcessPayrollResponse{}, err
	}
	tallies, err := s.repo.TallyAttendance(ctx, req.Month)
	if err != nil {
		return ProcessPayrollResponse{}, err
	}

	adjustments := make(map[string]Adjustment, len(req.Adjustments))
	for _, a := range req.Adjustments {
		adjustments[a.EmployeeID] = Adjustment{Allowance: a.Allowance, Deduction: a.Deduction}
	}

	processedOn := s.now().UTC()
	records := make([]PayrollRecord, 0, len(employees))
	for _, emp := range employees {
		comp, err := Compute(emp, tallies[emp.ID], workingDays, adjustments[emp.ID])
		if err != nil {
			return ProcessPayrollResponse{}, err
		}

		empUUID, err := uuid.Parse(emp.ID)
		if err != nil {
			return ProcessPayrollResponse{}, err
		}
		records = append(records, PayrollRecord{
			ID:               uuid.New(),
			EmployeeID:       empUUID,
			Month:            req.Month,
			WorkingDays:      comp.WorkingDays,
			PresentDays:      comp.PresentDays,
			HalfDays:         comp.HalfDays,
			TotalDays:        comp.TotalDays,
			EffectiveDays:    comp.EffectiveDays,
			BasicEarned:      comp.BasicEarned,
			HRAEarned:        comp.HRAEarned,
			AllowancesEarned: comp.AllowancesEarned,
			Deductions:       comp.Deductions,
			AdHocAllowance:   comp.AdHocAllowance,
			AdHocDeduction:   comp.AdHocDeduction,
			GrossPay:         comp.GrossPay,
			NetPay:           comp.NetPay,
			ProcessedOn:      processedOn,
			ProcessedBy:      actorUUID,
		})
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ProcessPayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.UpsertBatch(ctx, records); err != nil {
		s.logger.Error("payroll upsert failed", zap.String("month", req.Month), zap.Error(err))
		return ProcessPayrollResponse{}, err
	}

	if s.outbox != nil {
		event := events.PayrollProcessedEvent{
			EventType:   "payroll.processed",
			Month:       req.Month,
			WorkingDays: workingDays,
			Employees:   len(records),
			ProcessedBy: actorID,
			OccurredAt:  processedOn,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return ProcessPayrollResponse{}, err
		}
		outboxEvent := kafka.OutboxEvent{
			ID:            uuid.New().String(),
			RequestID:     rid,
			AggregateType: "payroll",
			AggregateID:   req.Month,
			EventType:     event.EventType,
			Topic:         events.PayrollProcessedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}
		if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
			s.logger.Error("payroll outbox failed", zap.Error(err))
			return ProcessPayrollResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return ProcessPayrollResponse{}, err
	}

	s.logger.Info("payroll processed",
		zap.String("month", req.Month),
		zap.Int("working_days", workingDays),
		zap.Int("employees", len(records)),
	)

	resp := ProcessPayrollResponse{
		Month:       req.Month,
		WorkingDays: workingDays,
		Employees:   len(records),
		Records:     make([]PayrollResponse, len(records)),
	}
	names := make(map[string]EmployeePay, len(employees))
	for _, emp := range employees {
		names[emp.ID] = emp
	}
	for i, rec := range records {
		resp.Records[i] = mapToResponse(rec, names[rec.EmployeeID.String()])
	}
	return resp, nil
}

func (s *service) GetByMonth(ctx context.Context, month string) ([]PayrollResponse, error) {
	if _, err := timeutil.ParseMonth(month); err != nil {
		return nil, payrollerrors.ErrInvalidMonth
	}

	rows, err := s.repo.FindByMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	resp := make([]PayrollResponse, len(rows))
	for i, rec := range rows {
		resp[i] = mapToResponse(rec, EmployeePay{})
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayrollResponse, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}
	return mapToResponse(*rec, EmployeePay{}), nil
}

func (s *service) Payslip(ctx context.Context, id string) ([]byte, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrollerrors.ErrPayrollNotFound
		}
		return nil, err
	}
	pay, err := s.repo.FindEmployeePay(ctx, rec.EmployeeID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrollerrors.ErrPayrollNotFound
		}
		return nil, err
	}
	return RenderPayslip(*rec, *pay)
}

func (s *service) GeneratePayslips(ctx context.Context, month, dir string) (int, error) {
	if _, err := timeutil.ParseMonth(month); err != nil {
		return 0, payrollerrors.ErrInvalidMonth
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}

	records, err := s.repo.FindByMonth(ctx, month)
	if err != nil {
		return 0, err
	}

	written := 0
	for _, rec := range records {
		pay, err := s.repo.FindEmployeePay(ctx, rec.EmployeeID.String())
		if err != nil {
			s.logger.Error("payslip employee lookup failed",
				zap.String("employee_id", rec.EmployeeID.String()),
				zap.Error(err),
			)
			continue
		}

		pdf, err := RenderPayslip(rec, *pay)
		if err != nil {
			s.logger.Error("payslip render failed", zap.String("payroll_id", rec.ID.String()), zap.Error(err))
			continue
		}

		path := filepath.Join(dir, fmt.Sprintf("payslip-%s-%s.pdf", month, pay.EmployeeNumber))
		if err := os.WriteFile(path, pdf, 0o644); err != nil {
			s.logger.Error("payslip write failed", zap.String("path", path), zap.Error(err))
			continue
		}

		if err := s.repo.SavePayslipPath(ctx, rec.ID.String(), path, s.now().UTC()); err != nil {
			s.logger.Error("payslip path persist failed", zap.String("payroll_id", rec.ID.String()), zap.Error(err))
			continue
		}
		written++
	}

	s.logger.Info("payslips generated",
		zap.String("month", month),
		zap.Int("written", written),
		zap.Int("records", len(records)),
	)
	return written, nil
}

func mapToResponse(rec PayrollRecord, pay EmployeePay) PayrollResponse {
	return PayrollResponse{
		ID:               rec.ID.String(),
		EmployeeID:       rec.EmployeeID.String(),
		EmployeeName:     pay.FullName,
		EmployeeNumber:   pay.EmployeeNumber,
		Month:            rec.Month,
		WorkingDays:      rec.WorkingDays,
		PresentDays:      rec.PresentDays,
		HalfDays:         rec.HalfDays,
		EffectiveDays:    rec.EffectiveDays,
		BasicEarned:      rec.BasicEarned,
		HRAEarned:        rec.HRAEarned,
		AllowancesEarned: rec.AllowancesEarned,
		Deductions:       rec.Deductions,
		AdHocAllowance:   rec.AdHocAllowance,
		AdHocDeduction:   rec.AdHocDeduction,
		GrossPay:         rec.GrossPay,
		NetPay:           rec.NetPay,
		ProcessedOn:      rec.ProcessedOn.Format(time.RFC3339),
	}
}
