// Package connection dials the backing services with a fixed-interval
// retry loop so the binaries survive a slow docker-compose startup.
package connection

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const retryInterval = 5 * time.Second

func withRetry(name string, maxRetries int, dial func() error) error {
	var lastErr error
	for i := 1; i <= maxRetries; i++ {
		if lastErr = dial(); lastErr == nil {
			return nil
		}
		zap.L().Warn("connection attempt failed",
			zap.String("target", name),
			zap.Int("attempt", i),
			zap.Int("max", maxRetries),
			zap.Error(lastErr),
		)
		time.Sleep(retryInterval)
	}
	return fmt.Errorf("%s connection failed after %d retries: %w", name, maxRetries, lastErr)
}

func ConnectGORMWithRetry(host, user, password, dbname, port, sslmode string, maxRetries int) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, user, password, dbname, port, sslmode,
	)

	var db *gorm.DB
	err := withRetry("postgres", maxRetries, func() error {
		opened, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return err
		}
		sqlDB, err := opened.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.Ping(); err != nil {
			return err
		}
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(time.Hour)
		db = opened
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("database connected")
	return db, nil
}

func ConnectRedisWithRetry(addr string, maxRetries int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	err := withRetry("redis", maxRetries, func() error {
		return rdb.Ping(context.Background()).Err()
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("redis connected")
	return rdb, nil
}

// ConnectKafkaWithRetry probes the broker before handing back a shared
// writer; the writer itself is lazy, so the dial is the only health check.
func ConnectKafkaWithRetry(broker string, maxRetries int) (*kafkago.Writer, error) {
	err := withRetry("kafka", maxRetries, func() error {
		conn, err := kafkago.Dial("tcp", broker)
		if err != nil {
			return err
		}
		return conn.Close()
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("kafka broker reachable", zap.String("broker", broker))
	return &kafkago.Writer{
		Addr:         kafkago.TCP(broker),
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}, nil
}
