package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cuadra-dev/cuadra/internal/id"
	"github.com/cuadra-dev/cuadra/internal/model"
	"github.com/cuadra-dev/cuadra/internal/rules"
)

func newRuleCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rule",
		Short: "Manage categorization rules",
	}
	cmd.AddCommand(newRuleAddCommand(opts))
	cmd.AddCommand(newRuleListCommand(opts))
	cmd.AddCommand(newRuleDeleteCommand(opts))
	cmd.AddCommand(newRuleApplyCommand(opts))
	return cmd
}

func newRuleAddCommand(opts *rootOptions) *cobra.Command {
	var category, party, direction, storeScope string
	var priority int

	cmd := &cobra.Command{
		Use:   "add <needle>",
		Short: "Add a categorization rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts.ledgerDir, opts.verbose)
			if err != nil {
				return err
			}

			dir := model.Direction(direction)
			switch dir {
			case model.DirectionAny, model.DirectionIn, model.DirectionOut:
			default:
				return fmt.Errorf("unknown direction %q (any, in, out)", direction)
			}

			r := model.Rule{
				ID:         id.New(id.KindRule),
				Needle:     args[0],
				Category:   category,
				Party:      party,
				Direction:  dir,
				Priority:   priority,
				StoreScope: storeScope,
			}
			e.ruleSet = append(e.ruleSet, r)
			if err := rules.Save(e.dir, e.ruleSet); err != nil {
				return err
			}

			if err := e.commit("rule: add " + r.Needle); err != nil {
				return err
			}
			fmt.Printf("Added rule %s (%s -> %s)\n", r.ID, r.Needle, r.Category)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "category to assign (required)")
	_ = cmd.MarkFlagRequired("category")
	cmd.Flags().StringVar(&party, "party", "", "counter-party to assign")
	cmd.Flags().StringVar(&direction, "direction", string(model.DirectionAny), "direction filter: any, in, out")
	cmd.Flags().IntVar(&priority, "priority", 10, "priority, higher wins")
	cmd.Flags().StringVar(&storeScope, "store", "", "restrict to one store")
	return cmd
}

func newRuleListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts.ledgerDir, opts.verbose)
			if err != nil {
				return err
			}
			if len(e.ruleSet) == 0 {
				fmt.Println("No rules. Add one with: cuadra rule add <needle> --category <cat>")
				return nil
			}
			for _, r := range e.ruleSet {
				fmt.Printf("%s  prio %3d  %-4s  %-20q -> %s\n", r.ID, r.Priority, r.Direction, r.Needle, r.Category)
			}
			return nil
		},
	}
}

func newRuleDeleteCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <rule-id>",
		Short: "Delete a rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts.ledgerDir, opts.verbose)
			if err != nil {
				return err
			}

			kept := e.ruleSet[:0]
			found := false
			for _, r := range e.ruleSet {
				if r.ID == args[0] {
					found = true
					continue
				}
				kept = append(kept, r)
			}
			if !found {
				return fmt.Errorf("rule %s not found", args[0])
			}
			if err := rules.Save(e.dir, kept); err != nil {
				return err
			}

			if err := e.commit("rule: delete " + args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted rule %s\n", args[0])
			return nil
		},
	}
}

func newRuleApplyCommand(opts *rootOptions) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Re-run the rule set over all open movements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts.ledgerDir, opts.verbose)
			if err != nil {
				return err
			}

			var open []model.Transaction
			for _, tx := range e.store.Transactions() {
				if tx.Recon == model.ReconOpen {
					open = append(open, tx)
				}
			}

			changes := rules.BulkApply(open, e.ruleSet)
			if dryRun {
				for _, c := range changes {
					fmt.Printf("%s -> category %q, party %q\n", c.TxID, c.Category, c.Party)
				}
				fmt.Printf("%d movements would change\n", len(changes))
				return nil
			}

			for _, c := range changes {
				if err := e.store.UpdateTransactionLabels(c.TxID, c.Category, c.Party); err != nil {
					return err
				}
			}
			if err := e.commit(fmt.Sprintf("rules: recategorize %d movements", len(changes))); err != nil {
				return err
			}
			fmt.Printf("Rules applied: %d movements updated\n", len(changes))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show changes without applying")
	return cmd
}
