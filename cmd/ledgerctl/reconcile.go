package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/ledger-core/internal/config"
	"github.com/example/ledger-core/internal/inventory"
	"github.com/example/ledger-core/internal/reconcile"
)

func newReconcileCommand() *cobra.Command {
	var tenantID string

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Report inventory movements with no linked journal entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			movements, err := inventory.NewSQLiteMovementStore(cfg.InventoryDBPath)
			if err != nil {
				return err
			}
			defer movements.Close()

			scanner := reconcile.NewScanner(movements, cfg.ReconcileGrace)
			orphans, err := scanner.Orphans(ctx, tenantID)
			if err != nil {
				return err
			}
			if len(orphans) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no orphaned movements")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "MOVEMENT\tPRODUCT\tTYPE\tCREATED\tAGE")
			for _, o := range orphans {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					o.MovementID, o.ProductID, o.Type,
					o.CreatedAt.Format("2006-01-02 15:04:05"), o.Age.Truncate(time.Second))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&tenantID, "tenant", "", "tenant ID (required)")
	_ = cmd.MarkFlagRequired("tenant")

	return cmd
}
