package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cuadra-dev/cuadra/internal/recon"
)

func newReconcileCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Match bank movements against invoices",
	}
	cmd.AddCommand(newReconcileSuggestCommand(opts))
	cmd.AddCommand(newReconcileCreateCommand(opts))
	cmd.AddCommand(newReconcileListCommand(opts))
	cmd.AddCommand(newReconcileDeleteCommand(opts))
	return cmd
}

func newReconcileSuggestCommand(opts *rootOptions) *cobra.Command {
	var tolerance, storeID string
	var windowDays, limit int

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest likely movement/invoice pairs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts.ledgerDir, opts.verbose)
			if err != nil {
				return err
			}

			matchOpts, err := e.matchOptions(tolerance, windowDays, storeID)
			if err != nil {
				return err
			}

			hints := recon.Suggest(e.store.Transactions(), e.store.Invoices(), matchOpts)
			if len(hints) == 0 {
				fmt.Println("No matches within the current thresholds.")
				return nil
			}
			if limit > 0 && len(hints) > limit {
				hints = hints[:limit]
			}

			for _, h := range hints {
				tx, _ := e.store.Transaction(h.TxID)
				inv, _ := e.store.Invoice(h.InvoiceID)
				fmt.Printf("%s %10s %-30s <-> %s %10s %-20s  gap %s, %dd\n",
					h.TxID, tx.Amount.StringFixed(2), truncate(tx.Description, 30),
					h.InvoiceID, inv.Total.StringFixed(2), truncate(inv.Party, 20),
					h.AmountGap.StringFixed(2), h.DayGap)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tolerance, "tolerance", "", "max amount gap (default from config)")
	cmd.Flags().IntVar(&windowDays, "window", 0, "max days apart (default from config)")
	cmd.Flags().StringVar(&storeID, "store", "", "restrict to one store")
	cmd.Flags().IntVar(&limit, "limit", 20, "max suggestions to print, 0 for all")
	return cmd
}

func newReconcileCreateCommand(opts *rootOptions) *cobra.Command {
	var txIDs, invIDs []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Reconcile selected movements with selected invoices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts.ledgerDir, opts.verbose)
			if err != nil {
				return err
			}

			sel := recon.Selection{MovementIDs: txIDs, InvoiceIDs: invIDs}
			plan, err := recon.BuildGroup(sel, e.store.Transactions(), e.store.Invoices())
			if err != nil {
				return err
			}
			if err := e.store.ApplyGroupPlan(plan); err != nil {
				return err
			}
			if err := e.commit("reconcile: create " + plan.Group.ID); err != nil {
				return err
			}

			g := plan.Group
			fmt.Printf("Created group %s: %d movements (%s) against %d invoices (%s)\n",
				g.ID, len(g.MovementIDs), g.MovementTotal.StringFixed(2),
				len(g.InvoiceIDs), g.InvoiceTotal.StringFixed(2))
			if !g.Difference.IsZero() {
				fmt.Printf("Difference: %s\n", g.Difference.StringFixed(2))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&txIDs, "tx", nil, "movement ids (required)")
	_ = cmd.MarkFlagRequired("tx")
	cmd.Flags().StringSliceVar(&invIDs, "inv", nil, "invoice ids (required)")
	_ = cmd.MarkFlagRequired("inv")
	return cmd
}

func newReconcileListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List reconciliation groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts.ledgerDir, opts.verbose)
			if err != nil {
				return err
			}

			groups := e.store.Groups()
			if len(groups) == 0 {
				fmt.Println("No reconciliation groups.")
				return nil
			}

			for _, g := range groups {
				movTotal, invTotal, diff, err := recon.Recompute(g, e.store.Transactions(), e.store.Invoices())
				if err != nil {
					return fmt.Errorf("group %s: %w", g.ID, err)
				}
				fmt.Printf("%s  %d tx (%s) / %d inv (%s)  diff %s\n",
					g.ID,
					len(g.MovementIDs), movTotal.StringFixed(2),
					len(g.InvoiceIDs), invTotal.StringFixed(2),
					diff.StringFixed(2))
				if !diff.Equal(g.Difference) {
					fmt.Printf("  warning: stored difference %s no longer matches members\n", g.Difference.StringFixed(2))
				}
			}
			return nil
		},
	}
}

func newReconcileDeleteCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <group-id>",
		Short: "Undo a reconciliation group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts.ledgerDir, opts.verbose)
			if err != nil {
				return err
			}

			group, ok := e.store.Group(args[0])
			if !ok {
				return fmt.Errorf("group %s not found", args[0])
			}

			plan := recon.TeardownGroup(group)
			if err := e.store.ApplyGroupPlan(plan); err != nil {
				return err
			}
			if err := e.commit("reconcile: delete " + group.ID); err != nil {
				return err
			}
			fmt.Printf("Deleted group %s, %d movements and %d invoices reopened\n",
				group.ID, len(group.MovementIDs), len(group.InvoiceIDs))
			return nil
		},
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
