package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"hrconnect/internal/bootstrap"
	"hrconnect/internal/events"
	"hrconnect/internal/holiday"
	"hrconnect/internal/messaging/kafka"
	"hrconnect/internal/messaging/kafka/consumer"
	"hrconnect/internal/payroll"
	"hrconnect/internal/settings"
	"hrconnect/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	rdb, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	defer rdb.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	holidayService := holiday.NewService(holiday.NewRepository(gormDB), rdb)
	settingsService := settings.NewService(settings.NewRepository(gormDB), holidayService)
	payrollService := payroll.NewService(sqlDB, payroll.NewRepository(gormDB), settingsService, outboxRepo)

	payslipReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.PayrollProcessedTopic,
		GroupID:        "hrconnect-payslips",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer payslipReader.Close()

	lifecycleReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.EmployeeCreatedTopic,
		GroupID:        "hrconnect-audit",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer lifecycleReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumePayrollProcessed(ctx, payslipReader, payrollService, logger)
	go consumer.ConsumeEmployeeLifecycle(ctx, lifecycleReader, bootstrap.NewStdoutAuditLogger(), logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
