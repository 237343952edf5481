package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cuadra-dev/cuadra/internal/report"
)

func newReportCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Show the organization-wide summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts.ledgerDir, opts.verbose)
			if err != nil {
				return err
			}

			sum := report.Build(
				e.store.Accounts(),
				e.store.Transactions(),
				e.store.Invoices(),
				e.store.Closings(),
				time.Now(),
			)

			fmt.Printf("%s\n", e.cfg.Business.Name)
			fmt.Printf("Total balance:       %s %s\n", sum.TotalBalance.StringFixed(2), e.cfg.Business.Currency)
			fmt.Printf("Movements (30 days): %d\n", sum.RecentMovements)
			fmt.Printf("Open movements:      %d\n", sum.OpenMovements)
			fmt.Printf("Open invoices:       %d\n", sum.OpenInvoices)

			if len(sum.CashByStore) > 0 {
				fmt.Println("Cash by store:")
				for _, store := range sum.Stores() {
					fmt.Printf("  %-15s %s\n", store, sum.CashByStore[store].StringFixed(2))
				}
			}
			return nil
		},
	}
}
