package main

import (
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/ledger-core/internal/accounts"
	"github.com/example/ledger-core/internal/journal"
	"github.com/example/ledger-core/internal/sequence"
)

func newBalancesCommand() *cobra.Command {
	var tenantID string
	var startStr, endStr string
	var codes []string

	cmd := &cobra.Command{
		Use:   "balances",
		Short: "Report opening, period and closing balances per account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			start, err := time.Parse("2006-01-02", startStr)
			if err != nil {
				return fmt.Errorf("invalid start date %q: %w", startStr, err)
			}
			end, err := time.Parse("2006-01-02", endStr)
			if err != nil {
				return fmt.Errorf("invalid end date %q: %w", endStr, err)
			}

			_, pool, err := connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			chart := accounts.NewService(accounts.NewPostgresStore(pool))
			sequences := sequence.NewGenerator(sequence.NewPostgresCounterStore(pool))
			svc := journal.NewService(journal.NewPostgresEntryStore(pool), chart, sequences, nil)

			balances, err := svc.Balances(ctx, tenantID, codes, start, end)
			if err != nil {
				return err
			}

			sorted := make([]string, 0, len(balances))
			for code := range balances {
				sorted = append(sorted, code)
			}
			sort.Strings(sorted)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ACCOUNT\tOPENING\tDEBIT\tCREDIT\tCLOSING")
			for _, code := range sorted {
				b := balances[code]
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					code, b.Opening.StringFixed(2), b.PeriodDebit.StringFixed(2),
					b.PeriodCredit.StringFixed(2), b.Closing.StringFixed(2))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&tenantID, "tenant", "", "tenant ID (required)")
	_ = cmd.MarkFlagRequired("tenant")
	cmd.Flags().StringVar(&startStr, "start", "", "period start, YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("start")
	cmd.Flags().StringVar(&endStr, "end", "", "period end, YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("end")
	cmd.Flags().StringSliceVar(&codes, "accounts", nil, "account codes to report (default: all)")

	return cmd
}
