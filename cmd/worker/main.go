package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/airadmin/config"
	"github.com/Domenick1991/airadmin/internal/audit"
	"github.com/Domenick1991/airadmin/internal/kafka"
	"github.com/Domenick1991/airadmin/internal/logger"
	"go.uber.org/zap"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logg, syncLog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer syncLog()

	if len(cfg.Kafka.Brokers) == 0 {
		logg.Error("kafka.brokers is empty, nothing to consume")
		syncLog()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.AuditTopic, logg.Named("kafka"))
	defer consumer.Close()

	recorder := audit.NewRecorder(logg)

	logg.Info("audit worker started", zap.String("topic", cfg.Kafka.AuditTopic))
	if err := consumer.ConsumeAudit(ctx, recorder.Record); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error("consumer stopped", zap.Error(err))
		return
	}
	logg.Info("audit worker stopped")
}
