package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/MikeRez0/pointsweep/internal/adapter/auth"
	"github.com/MikeRez0/pointsweep/internal/adapter/handler/http"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd() *cobra.Command {
	var (
		addr         string
		jobsInterval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the admin API and the broker and bank callbacks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			if addr != "" {
				a.conf.HTTP.HostString = addr
			}
			if err := a.db.RunMigrations(); err != nil {
				return fmt.Errorf("database migration error: %w", err)
			}

			tokenService, err := auth.New(a.conf.Auth)
			if err != nil {
				return fmt.Errorf("token service creating error: %w", err)
			}

			handlers, err := newHandlers(a)
			if err != nil {
				return err
			}
			r, err := http.NewRouter(a.conf, tokenService, a.repo, a.metrics, a.registry, handlers, a.log.Named("Router"))
			if err != nil {
				return fmt.Errorf("router creating error: %w", err)
			}

			if jobsInterval > 0 {
				go a.scheduleJobs(ctx, jobsInterval)
			}

			a.log.Info("serving", zap.String("address", a.conf.HTTP.HostString))
			return r.Serve(a.conf.HTTP.HostString)
		},
	}

	cmd.Flags().StringVarP(&addr, "address", "a", "", "listen address, overrides RUN_ADDRESS")
	cmd.Flags().DurationVar(&jobsInterval, "jobs-interval", 0,
		"run escalation and transfer reconciliation in-process at this interval (0 disables)")

	return cmd
}

func newHandlers(a *app) (http.Handlers, error) {
	var h http.Handlers
	var err error

	if h.Batch, err = http.NewBatchHandler(a.preparer, a.log.Named("Batch handler")); err != nil {
		return h, fmt.Errorf("batch handler creating error: %w", err)
	}
	if h.Sweep, err = http.NewSweepHandler(a.sweeps, a.log.Named("Sweep handler")); err != nil {
		return h, fmt.Errorf("sweep handler creating error: %w", err)
	}
	if h.Callback, err = http.NewCallbackHandler(a.callbacks, a.settlement, a.log.Named("Callback handler")); err != nil {
		return h, fmt.Errorf("callback handler creating error: %w", err)
	}
	if h.Notification, err = http.NewNotificationHandler(a.notifier, a.log.Named("Notification handler")); err != nil {
		return h, fmt.Errorf("notification handler creating error: %w", err)
	}
	if h.Payment, err = http.NewPaymentHandler(a.settlement, a.log.Named("Payment handler")); err != nil {
		return h, fmt.Errorf("payment handler creating error: %w", err)
	}
	if h.Lineage, err = http.NewLineageHandler(a.lineage, a.log.Named("Lineage handler")); err != nil {
		return h, fmt.Errorf("lineage handler creating error: %w", err)
	}
	if h.Order, err = http.NewOrderHandler(a.orders, a.log.Named("Order handler")); err != nil {
		return h, fmt.Errorf("order handler creating error: %w", err)
	}
	return h, nil
}

// scheduleJobs runs the periodic maintenance jobs until ctx is done.
func (a *app) scheduleJobs(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := a.callbacks.EscalateStale(ctx); err != nil {
				a.log.Error("scheduled escalation", zap.Error(err))
			} else if n > 0 {
				a.log.Info("scheduled escalation", zap.Int("failed", n))
			}
			if n, err := a.settlement.ReconcileTransfers(ctx); err != nil {
				a.log.Error("scheduled transfer reconciliation", zap.Error(err))
			} else if n > 0 {
				a.log.Info("scheduled transfer reconciliation", zap.Int("updated", n))
			}
		}
	}
}
