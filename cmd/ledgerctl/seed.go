package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/example/ledger-core/internal/accounts"
	"github.com/example/ledger-core/internal/journal"
	"github.com/example/ledger-core/internal/sequence"
)

func newSeedChartCommand() *cobra.Command {
	var tenantID string

	cmd := &cobra.Command{
		Use:   "seed-chart",
		Short: "Run migrations and seed the default chart of accounts for a tenant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			_, pool, err := connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			accountStore := accounts.NewPostgresStore(pool)
			if err := accountStore.Migrate(ctx); err != nil {
				return err
			}
			if err := sequence.NewPostgresCounterStore(pool).Migrate(ctx); err != nil {
				return err
			}
			if err := journal.NewPostgresEntryStore(pool).Migrate(ctx); err != nil {
				return err
			}

			svc := accounts.NewService(accountStore)
			if err := svc.Seed(ctx, tenantID); err != nil {
				return err
			}
			log.Printf("chart seeded for tenant %s", tenantID)
			return nil
		},
	}

	cmd.Flags().StringVar(&tenantID, "tenant", "", "tenant ID (required)")
	_ = cmd.MarkFlagRequired("tenant")

	return cmd
}
