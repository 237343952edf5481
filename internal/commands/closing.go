package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cuadra-dev/cuadra/internal/id"
	"github.com/cuadra-dev/cuadra/internal/model"
	"github.com/cuadra-dev/cuadra/internal/statement"
)

func newClosingCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "closing",
		Short: "Record daily cash closings",
	}
	cmd.AddCommand(newClosingAddCommand(opts))
	cmd.AddCommand(newClosingListCommand(opts))
	return cmd
}

func newClosingAddCommand(opts *rootOptions) *cobra.Command {
	var storeID, day, cash, card, expenses, notes string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a cash closing for a store and day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts.ledgerDir, opts.verbose)
			if err != nil {
				return err
			}

			date, ok := statement.NormalizeDate(day)
			if !ok {
				return fmt.Errorf("unrecognized --date %q", day)
			}

			cashAmt, err := parseAmountFlag("cash", cash)
			if err != nil {
				return err
			}
			cardAmt, err := parseAmountFlag("card", card)
			if err != nil {
				return err
			}
			expenseAmt, err := parseAmountFlag("expenses", expenses)
			if err != nil {
				return err
			}

			c := model.CashClosing{
				ID:            id.New(id.KindClosing),
				StoreID:       storeID,
				Date:          date,
				CashAmount:    cashAmt,
				CardAmount:    cardAmt,
				ExpenseAmount: expenseAmt,
				Notes:         notes,
			}
			e.store.AddClosing(c)

			if err := e.commit(fmt.Sprintf("closing: %s %s", storeID, date.Format("2006-01-02"))); err != nil {
				return err
			}
			fmt.Printf("Recorded closing %s, total %s\n", c.ID, c.Total().StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&storeID, "store", "", "store id (required)")
	_ = cmd.MarkFlagRequired("store")
	cmd.Flags().StringVar(&day, "date", "", "closing date (required)")
	_ = cmd.MarkFlagRequired("date")
	cmd.Flags().StringVar(&cash, "cash", "0", "cash takings")
	cmd.Flags().StringVar(&card, "card", "0", "card takings")
	cmd.Flags().StringVar(&expenses, "expenses", "0", "cash expenses paid out")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form note")
	return cmd
}

func newClosingListCommand(opts *rootOptions) *cobra.Command {
	var storeID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cash closings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts.ledgerDir, opts.verbose)
			if err != nil {
				return err
			}

			count := 0
			for _, c := range e.store.Closings() {
				if storeID != "" && c.StoreID != storeID {
					continue
				}
				fmt.Printf("%s  %s  %-10s  cash %10s  card %10s  expenses %10s  total %10s\n",
					c.ID, c.Date.Format("2006-01-02"), c.StoreID,
					c.CashAmount.StringFixed(2), c.CardAmount.StringFixed(2),
					c.ExpenseAmount.StringFixed(2), c.Total().StringFixed(2))
				count++
			}
			if count == 0 {
				fmt.Println("No closings.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&storeID, "store", "", "filter by store")
	return cmd
}

func parseAmountFlag(name, value string) (decimal.Decimal, error) {
	amt, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing --%s: %w", name, err)
	}
	if amt.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("--%s must not be negative", name)
	}
	return amt, nil
}
