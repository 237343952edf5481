package commands

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cuadra-dev/cuadra/internal/id"
	"github.com/cuadra-dev/cuadra/internal/model"
	"github.com/cuadra-dev/cuadra/internal/rules"
	"github.com/cuadra-dev/cuadra/internal/statement"
)

func newTxCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Manage movements",
	}
	cmd.AddCommand(newTxAddCommand(opts))
	cmd.AddCommand(newTxListCommand(opts))
	cmd.AddCommand(newTxSetCommand(opts))
	cmd.AddCommand(newTxDeleteCommand(opts))
	return cmd
}

func newTxAddCommand(opts *rootOptions) *cobra.Command {
	var accountID, storeID, date, amount, kind string

	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Record a movement manually",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts.ledgerDir, opts.verbose)
			if err != nil {
				return err
			}

			day, ok := statement.NormalizeDate(date)
			if !ok {
				return fmt.Errorf("unrecognized date %q", date)
			}
			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("parsing --amount: %w", err)
			}

			txKind := model.TxKind(kind)
			switch txKind {
			case model.KindBank:
				if _, ok := e.store.Account(accountID); !ok {
					return fmt.Errorf("account %s not found", accountID)
				}
			case model.KindCash:
			default:
				return fmt.Errorf("unknown kind %q", kind)
			}

			tx := model.Transaction{
				ID:          id.New(id.KindTransaction),
				Kind:        txKind,
				AccountID:   accountID,
				StoreID:     storeID,
				Date:        day,
				Amount:      amt,
				Description: args[0],
				Recon:       model.ReconOpen,
			}
			// Manual entries get categorized like imports do.
			tx = rules.Apply(tx, e.ruleSet)
			e.store.AddTransactions([]model.Transaction{tx})

			if err := e.commit("tx: add " + tx.Description); err != nil {
				return err
			}
			fmt.Printf("Added movement %s\n", tx.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "account id (required for bank movements)")
	cmd.Flags().StringVar(&storeID, "store", "", "store id")
	cmd.Flags().StringVar(&date, "date", "", "movement date (required)")
	_ = cmd.MarkFlagRequired("date")
	cmd.Flags().StringVar(&amount, "amount", "", "signed amount, positive = inflow (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&kind, "kind", string(model.KindBank), "movement kind: bank or cash")
	return cmd
}

func newTxListCommand(opts *rootOptions) *cobra.Command {
	var accountID, search string
	var openOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List movements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts.ledgerDir, opts.verbose)
			if err != nil {
				return err
			}

			q := strings.ToLower(search)
			shown := 0
			for _, tx := range e.store.Transactions() {
				if accountID != "" && tx.AccountID != accountID {
					continue
				}
				if openOnly && tx.Recon != model.ReconOpen {
					continue
				}
				if q != "" {
					blob := strings.ToLower(tx.Description + " " + tx.Party + " " + tx.Category)
					if !strings.Contains(blob, q) {
						continue
					}
				}
				cat := tx.Category
				if cat == "" {
					cat = "-"
				}
				fmt.Printf("%s  %s %9s  %-12s %-10s %s\n",
					tx.ID, tx.Date.Format("2006-01-02"), tx.Amount.StringFixed(2),
					cat, tx.Recon, tx.Description)
				shown++
			}
			fmt.Printf("%d movements\n", shown)
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "filter by account id")
	cmd.Flags().StringVar(&search, "search", "", "filter by description/party/category substring")
	cmd.Flags().BoolVar(&openOnly, "open", false, "only unreconciled movements")
	return cmd
}

func newTxSetCommand(opts *rootOptions) *cobra.Command {
	var category, party string

	cmd := &cobra.Command{
		Use:   "set <tx-id>",
		Short: "Edit a movement's category and counter-party",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts.ledgerDir, opts.verbose)
			if err != nil {
				return err
			}

			tx, ok := e.store.Transaction(args[0])
			if !ok {
				return fmt.Errorf("transaction %s not found", args[0])
			}
			if !cmd.Flags().Changed("category") {
				category = tx.Category
			}
			if !cmd.Flags().Changed("party") {
				party = tx.Party
			}
			if err := e.store.UpdateTransactionLabels(tx.ID, category, party); err != nil {
				return err
			}

			if err := e.commit("tx: edit " + tx.ID); err != nil {
				return err
			}
			fmt.Printf("Updated %s\n", tx.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "new category")
	cmd.Flags().StringVar(&party, "party", "", "new counter-party")
	return cmd
}

func newTxDeleteCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <tx-id>",
		Short: "Delete an unreconciled movement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts.ledgerDir, opts.verbose)
			if err != nil {
				return err
			}
			if err := e.store.DeleteTransaction(args[0]); err != nil {
				return err
			}
			if err := e.commit("tx: delete " + args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", args[0])
			return nil
		},
	}
}
