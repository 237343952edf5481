package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cuadra-dev/cuadra/internal/id"
	"github.com/cuadra-dev/cuadra/internal/model"
)

func newAccountCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage bank accounts",
	}
	cmd.AddCommand(newAccountAddCommand(opts))
	cmd.AddCommand(newAccountListCommand(opts))
	cmd.AddCommand(newAccountDeleteCommand(opts))
	return cmd
}

func newAccountAddCommand(opts *rootOptions) *cobra.Command {
	var currency string
	var opening string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a bank account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts.ledgerDir, opts.verbose)
			if err != nil {
				return err
			}

			openingBal, err := decimal.NewFromString(opening)
			if err != nil {
				return fmt.Errorf("parsing --opening: %w", err)
			}
			if currency == "" {
				currency = e.cfg.Business.Currency
			}

			acc := model.Account{
				ID:             id.New(id.KindAccount),
				Name:           args[0],
				Currency:       currency,
				OpeningBalance: openingBal,
			}
			e.store.AddAccount(acc)

			if err := e.commit("account: add " + acc.Name); err != nil {
				return err
			}
			fmt.Printf("Added account %s (%s)\n", acc.Name, acc.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&currency, "currency", "", "account currency (default from config)")
	cmd.Flags().StringVar(&opening, "opening", "0", "opening balance")
	return cmd
}

func newAccountListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts with balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts.ledgerDir, opts.verbose)
			if err != nil {
				return err
			}

			accounts := e.store.Accounts()
			if len(accounts) == 0 {
				fmt.Println("No accounts. Add one with: cuadra account add <name>")
				return nil
			}
			for _, a := range accounts {
				bal, err := e.store.Balance(a.ID)
				if err != nil {
					return err
				}
				fmt.Printf("%s  %-20s %8s %s\n", a.ID, a.Name, bal.StringFixed(2), a.Currency)
			}
			return nil
		},
	}
}

func newAccountDeleteCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <account-id>",
		Short: "Delete an account with no transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts.ledgerDir, opts.verbose)
			if err != nil {
				return err
			}
			if err := e.store.DeleteAccount(args[0]); err != nil {
				return err
			}
			if err := e.commit("account: delete " + args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted account %s\n", args[0])
			return nil
		},
	}
}
