package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/andreyxaxa/portfolio-dashboard/config"
	kafkactrl "github.com/andreyxaxa/portfolio-dashboard/internal/controller/kafka"
	"github.com/andreyxaxa/portfolio-dashboard/internal/controller/restapi"
	formsworker "github.com/andreyxaxa/portfolio-dashboard/internal/controller/worker/forms"
	"github.com/andreyxaxa/portfolio-dashboard/internal/controller/worker/outbox"
	infrakafka "github.com/andreyxaxa/portfolio-dashboard/internal/infrastructure/kafka"
	"github.com/andreyxaxa/portfolio-dashboard/internal/infrastructure/metrics"
	"github.com/andreyxaxa/portfolio-dashboard/internal/infrastructure/processor"
	"github.com/andreyxaxa/portfolio-dashboard/internal/repo/persistent"
	"github.com/andreyxaxa/portfolio-dashboard/internal/usecase/content"
	"github.com/andreyxaxa/portfolio-dashboard/internal/usecase/events"
	"github.com/andreyxaxa/portfolio-dashboard/internal/usecase/forms"
	"github.com/andreyxaxa/portfolio-dashboard/internal/usecase/images"
	"github.com/andreyxaxa/portfolio-dashboard/migrations"
	"github.com/andreyxaxa/portfolio-dashboard/pkg/httpserver"
	"github.com/andreyxaxa/portfolio-dashboard/pkg/kafka/consumer"
	"github.com/andreyxaxa/portfolio-dashboard/pkg/kafka/producer"
	"github.com/andreyxaxa/portfolio-dashboard/pkg/logger"
	"github.com/andreyxaxa/portfolio-dashboard/pkg/postgres"
	"github.com/andreyxaxa/portfolio-dashboard/pkg/s3client"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func Run(cfg *config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Logger
	l := logger.New(cfg.Log.Level)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	// Repository

	// s3
	s3c, err := s3client.New(ctx, cfg.S3.Endpoint, cfg.S3.AccessKey, cfg.S3.SecretKey, cfg.S3.Bucket,
		s3client.Region(cfg.S3.Region),
		s3client.UsePathStyle(cfg.S3.UsePathStyle),
		s3client.AttemptTimeout(cfg.S3.CfgLoadTimeout),
	)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - s3client.New: %w", err))
	}

	// postgres
	pg, err := postgres.New(ctx, cfg.PG.URL,
		postgres.MaxPoolSize(cfg.PG.PoolMax),
		postgres.ConnAttempts(cfg.PG.ConnAttempts),
	)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - postgres.New: %w", err))
	}
	defer pg.Close()

	// the pool answered, so the schema can be brought up to date
	if cfg.PG.Migrate {
		if err = postgres.Migrate(ctx, cfg.PG.URL, migrations.FS); err != nil {
			l.Fatal(fmt.Errorf("app - Run - postgres.Migrate: %w", err))
		}
	}

	blobRepo := persistent.NewBlobRepo(s3c, cfg.S3.PublicURL)
	outboxRepo := persistent.NewOutboxRepo(pg)

	// Use-Case
	imageProcessor := processor.New(cfg.Images.MaxWidth, cfg.Images.MaxHeight)

	contentUseCase := content.New(
		persistent.NewProjectRepo(pg),
		persistent.NewJourneyRepo(pg),
		persistent.NewMonthRepo(pg),
		outboxRepo,
		blobRepo,
		pg,
		m,
		l,
		content.MaxCleanupAttempts(cfg.Content.MaxCleanupAttempts),
	)

	formsUseCase := forms.New(contentUseCase, imageProcessor, l, forms.TTL(cfg.Forms.TTL))
	imagesUseCase := images.New(blobRepo, imageProcessor, l)
	eventsUseCase := events.New(outboxRepo, cfg.OutboxRelay.Retention, l)

	// Kafka Producer
	kafkaProducer, err := producer.New(ctx, cfg.Kafka.Brokers,
		producer.ConnAttempts(cfg.Kafka.ConnAttempts),
		producer.AutoCreateTopic(cfg.Kafka.AutoCreateTopic),
	)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - producer.New: %w", err))
	}

	// Outbox Relay Worker
	outboxRelayWorker := outbox.New(
		eventsUseCase,
		infrakafka.NewEventProducer(kafkaProducer, cfg.Kafka.Topic),
		l,
		cfg.OutboxRelay.PollInterval,
		cfg.OutboxRelay.CleanupInterval,
		cfg.OutboxRelay.MarkFailedInterval,
		cfg.OutboxRelay.ProcessBatchTimeout,
		cfg.OutboxRelay.BatchSize,
		cfg.OutboxRelay.MaxRetries,
	)

	// Forms Sweeper Worker
	formsSweeper := formsworker.New(formsUseCase, l, cfg.Forms.SweepInterval)

	// Kafka Consumer
	kafkaConsumer, err := consumer.New(ctx, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic,
		consumer.ConnAttempts(cfg.Kafka.ConnAttempts),
	)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - consumer.New: %w", err))
	}

	// Kafka as Controller
	kafkaController := kafkactrl.New(
		contentUseCase,
		infrakafka.NewEventConsumer(kafkaConsumer),
		l,
		cfg.KafkaController.CommitTimeout,
		cfg.KafkaController.ProcessTimeout,
		runtime.NumCPU(),
	)

	// HTTP Server
	httpServer := httpserver.New(l,
		httpserver.Port(cfg.HTTP.Port),
		httpserver.Prefork(cfg.HTTP.UsePreforkMode),
		httpserver.BodyLimit(cfg.HTTP.BodyLimitMB*1024*1024),
	)
	restapi.NewRouter(httpServer.App, cfg, contentUseCase, formsUseCase, imagesUseCase, registry, l)

	// Start Components
	err = outboxRelayWorker.Start(ctx)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - outboxRelayWorker.Start: %w", err))
	}
	err = formsSweeper.Start(ctx)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - formsSweeper.Start: %w", err))
	}
	err = kafkaController.Start(ctx)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - kafkaController.Start: %w", err))
	}
	httpServer.Start()

	// Waiting Signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		l.Info("app - Run - signal: %s", s.String())
	case err = <-httpServer.Notify():
		l.Error(fmt.Errorf("app - Run - httpServer.Notify: %w", err))
	}

	// Shutdown
	err = httpServer.Shutdown()
	if err != nil {
		l.Error(fmt.Errorf("app - Run - httpServer.Shutdown: %w", err))
	}

	fsShutdownCtx, fsShutdownCancel := context.WithTimeout(ctx, cfg.OutboxRelay.ShutdownTimeout)
	defer fsShutdownCancel()
	err = formsSweeper.Shutdown(fsShutdownCtx)
	if err != nil {
		l.Error(fmt.Errorf("app - Run - formsSweeper.Shutdown: %w", err))
	}

	orlShutdownCtx, orlShutdownCancel := context.WithTimeout(ctx, cfg.OutboxRelay.ShutdownTimeout)
	defer orlShutdownCancel()
	err = outboxRelayWorker.Shutdown(orlShutdownCtx)
	if err != nil {
		l.Error(fmt.Errorf("app - Run - outboxRelayWorker.Shutdown: %w", err))
	}

	kcShutdownCtx, kcShutdownCancel := context.WithTimeout(ctx, cfg.KafkaController.ShutdownTimeout)
	defer kcShutdownCancel()
	err = kafkaController.Shutdown(kcShutdownCtx)
	if err != nil {
		l.Error(fmt.Errorf("app - Run - kafkaController.Shutdown: %w", err))
	}
}
