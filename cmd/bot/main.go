package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	"go.uber.org/zap"

	"moliyabot/internal/clients/cache"
	"moliyabot/internal/clients/kafka"
	"moliyabot/internal/clients/tg"
	"moliyabot/internal/config"
	"moliyabot/internal/logger"
	"moliyabot/internal/model/messages"
	"moliyabot/internal/model/sessions"
	"moliyabot/internal/model/storage"
)

const serviceName = "moliyabot"

func main() {
	conf, err := config.New()
	if err != nil {
		logger.Fatal("failed to init config", zap.Error(err))
	}

	closer, err := initTracing(serviceName)
	if err != nil {
		logger.Fatal("failed to init tracing", zap.Error(err))
	}
	defer func() {
		if err := closer.Close(); err != nil {
			logger.Error("failed to close tracer", zap.Error(err))
		}
	}()

	db, err := storage.NewPostgresStorage(conf.Postgres())
	if err != nil {
		logger.Fatal("failed to init postgres", zap.Error(err))
	}

	mc, err := cache.NewMemcache(conf.Memcached())
	if err != nil {
		logger.Fatal("failed to init memcached", zap.Error(err))
	}

	producer, err := kafka.NewProducer(conf.Kafka())
	if err != nil {
		logger.Fatal("failed to init kafka producer", zap.Error(err))
	}
	defer producer.Close()

	client, err := tg.New(conf.Telegram())
	if err != nil {
		logger.Fatal("failed to init telegram client", zap.Error(err))
	}

	msgService := messages.NewService(client, db, producer, mc, sessions.NewInMemStore(), conf.App())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	go serveMetrics(conf.App().MetricsPort())
	go msgService.WatchSessions(ctx)

	client.ListenUpdates(ctx, msgService)
}

func initTracing(service string) (io.Closer, error) {
	cfg := jaegercfg.Configuration{
		ServiceName: service,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  "const",
			Param: 1,
		},
	}
	tracer, closer, err := cfg.NewTracer()
	if err != nil {
		return nil, errors.Wrap(err, "cannot init tracing")
	}
	opentracing.SetGlobalTracer(tracer)
	return closer, nil
}

func serveMetrics(port int) {
	http.Handle("/metrics", promhttp.Handler())
	logger.Info("metrics listener started", zap.Int("port", port))
	if err := http.ListenAndServe(fmt.Sprintf(":%d", port), nil); err != nil {
		logger.Error("metrics listener stopped", zap.Error(err))
	}
}
