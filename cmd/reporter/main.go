package main

import (
	"context"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"moliyabot/internal/clients/cache"
	"moliyabot/internal/clients/kafka"
	"moliyabot/internal/clients/tg"
	"moliyabot/internal/config"
	"moliyabot/internal/logger"
	"moliyabot/internal/model/reports"
	"moliyabot/internal/model/storage"
)

func main() {
	logger.Info("Reporter init - start")

	conf, err := config.New()
	if err != nil {
		logger.Fatal("failed to init config", zap.Error(err))
	}

	db, err := storage.NewPostgresStorage(conf.Postgres())
	if err != nil {
		logger.Fatal("failed to init postgres", zap.Error(err))
	}

	mc, err := cache.NewMemcache(conf.Memcached())
	if err != nil {
		logger.Fatal("failed to init memcached", zap.Error(err))
	}

	client, err := tg.New(conf.Telegram())
	if err != nil {
		logger.Fatal("failed to init telegram client", zap.Error(err))
	}

	processor := reports.NewProcessor(reports.NewGenerator(db), client, mc)

	consumer, err := kafka.NewConsumer(conf.Kafka(), processor)
	if err != nil {
		logger.Fatal("failed to init kafka consumer", zap.Error(err))
	}

	logger.Info("Reporter init - end")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err = consumer.StartConsuming(ctx); err != nil {
		logger.Fatal("failed to start consuming", zap.Error(err))
	}
}
