package consumer

import (
	"context"
	"encoding/json"
	"os"

	"hrconnect/internal/events"
	"hrconnect/internal/payroll"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const defaultPayslipDir = "storage/payslips"

// ConsumePayrollProcessed renders payslip PDFs whenever a payroll run
// settles. Rendering happens off the request path so a slow PDF batch
// never holds the HTTP response.
func ConsumePayrollProcessed(
	ctx context.Context,
	reader *kafkago.Reader,
	payrollService payroll.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payroll_payslip")
	log.Info("payroll payslip consumer started")

	dir := os.Getenv("PAYSLIP_DIR")
	if dir == "" {
		dir = defaultPayslipDir
	}

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payroll payslip consumer stopped")
				return
			}
			log.Error("fetch payroll processed message failed", zap.Error(err))
			continue
		}

		var event events.PayrollProcessedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode payroll_processed event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		written, err := payrollService.GeneratePayslips(ctx, event.Month, dir)
		if err != nil {
			log.Error("generate payslips failed",
				zap.String("month", event.Month),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payroll processed message failed", zap.Error(err))
			continue
		}

		log.Info("payslips generated from payroll_processed event",
			zap.String("month", event.Month),
			zap.Int("written", written),
		)
	}
}
