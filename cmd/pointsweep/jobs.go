package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/MikeRez0/pointsweep/internal/core/domain"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// printJSON writes a command result to stdout for cron logs.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func sweepCmd() *cobra.Command {
	var merchantID string

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Dispatch promoted batches to brokers",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			result, err := a.sweeps.Run(cmd.Context(), merchantID)
			if err != nil {
				return fmt.Errorf("sweep: %w", err)
			}
			if err := printJSON(result); err != nil {
				return err
			}
			switch result.Status {
			case domain.SweepStatusFailed, domain.SweepStatusPartial:
				return fmt.Errorf("sweep finished with status %s", result.Status)
			case domain.SweepStatusMarketClosed:
				a.log.Info("market closed, nothing dispatched")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&merchantID, "merchant", "m", "", "limit the sweep to one merchant")

	return cmd
}

func settleCmd() *cobra.Command {
	var merchantID, paidBatchID string

	cmd := &cobra.Command{
		Use:   "settle",
		Short: "Mark a merchant's settled orders as paid and start the bank transfer",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			result, err := a.settlement.MarkPaid(cmd.Context(), merchantID, paidBatchID)
			if err != nil {
				return fmt.Errorf("settle %s: %w", merchantID, err)
			}
			for _, w := range result.Warnings {
				a.log.Warn("settlement", zap.String("merchant", merchantID), zap.String("warning", w))
			}
			return printJSON(result)
		},
	}

	cmd.Flags().StringVarP(&merchantID, "merchant", "m", "", "merchant to settle")
	cmd.Flags().StringVar(&paidBatchID, "paid-batch-id", "", "explicit paid batch id, generated when empty")
	_ = cmd.MarkFlagRequired("merchant")

	return cmd
}

func escalateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "escalate",
		Short: "Fail orders held in placed longer than BROKER_PLACED_MAX_AGE",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			n, err := a.callbacks.EscalateStale(cmd.Context())
			if err != nil {
				return fmt.Errorf("escalate: %w", err)
			}
			a.log.Info("escalation finished", zap.Int("failed", n))
			return nil
		},
	}
}

func reconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile-transfers",
		Short: "Submit pending bank transfers and poll open ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			n, err := a.settlement.ReconcileTransfers(cmd.Context())
			if err != nil {
				return fmt.Errorf("reconcile transfers: %w", err)
			}
			a.log.Info("transfer reconciliation finished", zap.Int("updated", n))
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newBase(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.db.RunMigrations(); err != nil {
				return fmt.Errorf("database migration error: %w", err)
			}
			a.log.Info("migrations applied")
			return nil
		},
	}
}
