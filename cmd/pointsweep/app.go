package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/MikeRez0/pointsweep/internal/adapter/calendar"
	"github.com/MikeRez0/pointsweep/internal/adapter/client/bank"
	"github.com/MikeRez0/pointsweep/internal/adapter/config"
	"github.com/MikeRez0/pointsweep/internal/adapter/events"
	"github.com/MikeRez0/pointsweep/internal/adapter/lock"
	"github.com/MikeRez0/pointsweep/internal/adapter/logger"
	"github.com/MikeRez0/pointsweep/internal/adapter/metrics"
	"github.com/MikeRez0/pointsweep/internal/adapter/storage"
	"github.com/MikeRez0/pointsweep/internal/adapter/storage/repository"
	"github.com/MikeRez0/pointsweep/internal/adapter/webhook"
	"github.com/MikeRez0/pointsweep/internal/core/port"
	"github.com/MikeRez0/pointsweep/internal/core/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// app holds the wired dependencies shared by every command.
type app struct {
	conf     *config.Config
	log      *zap.Logger
	db       *storage.DB
	repo     *repository.Repository
	registry *prometheus.Registry
	metrics  *metrics.Metrics

	preparer   *service.BatchPreparerService
	sweeps     *service.SweepService
	callbacks  *service.CallbackService
	notifier   *service.NotificationService
	settlement *service.SettlementService
	lineage    *service.LineageService
	orders     *service.OrderService

	closers []func() error
}

// newBase loads config, the logger and the database. Services are wired by wire.
func newBase(ctx context.Context) (*app, error) {
	conf, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	log, err := logger.NewLogger(conf.App)
	if err != nil {
		return nil, fmt.Errorf("error creating log: %w", err)
	}

	a := &app{conf: conf, log: log}

	db, err := storage.NewDBStorage(ctx, conf.Database)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("database error: %w", err)
	}
	a.db = db
	a.closers = append(a.closers, func() error {
		db.Close()
		return nil
	})

	return a, nil
}

func newApp(ctx context.Context) (*app, error) {
	a, err := newBase(ctx)
	if err != nil {
		return nil, err
	}
	if err := a.wire(ctx); err != nil {
		a.close()
		return nil, err
	}
	return a, nil
}

func (a *app) wire(ctx context.Context) error {
	conf, log := a.conf, a.log

	repo, err := repository.NewRepository(a.db)
	if err != nil {
		return fmt.Errorf("repository creating error: %w", err)
	}
	a.repo = repo

	a.registry = prometheus.NewRegistry()
	a.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	a.metrics = metrics.New(a.registry)

	locker, err := a.locker(ctx)
	if err != nil {
		return err
	}
	publisher, err := a.publisher()
	if err != nil {
		return err
	}

	cal, err := calendar.NewMarketCalendar(conf.Calendar)
	if err != nil {
		return fmt.Errorf("market calendar error: %w", err)
	}

	var rail port.BankRail
	if client := bank.NewRailClient(conf.Bank, log.Named("Bank")); client != nil {
		rail = client
	} else {
		log.Info("bank rail address not set, transfers are recorded but not submitted")
	}

	transport := webhook.NewClient(conf.Webhook, log.Named("Webhook"))
	a.notifier = service.NewNotificationService(repo, repo, transport, a.metrics, log.Named("Notifier"))
	a.preparer = service.NewBatchPreparerService(repo, repo, repo, conf.Sweep.PageSize, log.Named("Preparer"))
	a.sweeps = service.NewSweepService(repo, repo, repo, a.notifier, cal, locker, publisher, a.metrics,
		conf.Sweep.LockTTL, log.Named("Sweep"))
	a.callbacks = service.NewCallbackService(repo, repo, publisher, a.metrics,
		conf.Broker.ConfirmRetryBudget, conf.Broker.PlacedMaxAge, log.Named("Callback"))
	a.settlement = service.NewSettlementService(repo, repo, a.notifier, rail, locker, publisher, a.metrics,
		conf.Sweep.LockTTL, log.Named("Settlement"))
	a.lineage = service.NewLineageService(repo, repo, repo, repo, repo, log.Named("Lineage"))
	a.orders, err = service.NewOrderService(repo, publisher, log.Named("Orders"))
	if err != nil {
		return fmt.Errorf("order service creating error: %w", err)
	}
	return nil
}

// locker prefers Redis and falls back to PostgreSQL advisory locks.
func (a *app) locker(ctx context.Context) (port.Locker, error) {
	if a.conf.Redis.URL == "" {
		return storage.NewAdvisoryLocker(a.db), nil
	}
	client, err := lock.Connect(ctx, a.conf.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("redis error: %w", err)
	}
	a.closers = append(a.closers, client.Close)
	return lock.NewRedisLocker(client), nil
}

func (a *app) publisher() (port.EventPublisher, error) {
	if len(a.conf.Kafka.Brokers) == 0 {
		return events.NopPublisher{}, nil
	}
	p, err := events.NewKafkaPublisher(a.conf.Kafka.Brokers, a.conf.Kafka.Topic, a.log.Named("Events"))
	if err != nil {
		return nil, fmt.Errorf("kafka publisher error: %w", err)
	}
	a.closers = append(a.closers, p.Close)
	return p, nil
}

// close releases resources in reverse order of acquisition.
func (a *app) close() {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		a.log.Warn("shutdown", zap.Error(err))
	}
	_ = a.log.Sync()
}
