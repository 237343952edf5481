package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cuadra-dev/cuadra/internal/id"
	"github.com/cuadra-dev/cuadra/internal/model"
	"github.com/cuadra-dev/cuadra/internal/statement"
)

func newInvoiceCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Manage invoices",
	}
	cmd.AddCommand(newInvoiceAddCommand(opts))
	cmd.AddCommand(newInvoiceListCommand(opts))
	cmd.AddCommand(newInvoiceMarkPaidCommand(opts))
	cmd.AddCommand(newInvoiceCancelCommand(opts))
	cmd.AddCommand(newInvoiceDeleteCommand(opts))
	return cmd
}

func newInvoiceAddCommand(opts *rootOptions) *cobra.Command {
	var party, number, total, issueDate, dueDate, storeID, attachment string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an invoice",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts.ledgerDir, opts.verbose)
			if err != nil {
				return err
			}

			amount, err := decimal.NewFromString(total)
			if err != nil {
				return fmt.Errorf("parsing --total: %w", err)
			}
			if amount.IsNegative() {
				return fmt.Errorf("--total must not be negative")
			}

			issued, ok := statement.NormalizeDate(issueDate)
			if !ok {
				return fmt.Errorf("unrecognized --date %q", issueDate)
			}

			inv := model.Invoice{
				ID:        id.New(id.KindInvoice),
				StoreID:   storeID,
				Party:     party,
				Number:    number,
				Total:     amount,
				IssueDate: issued,
				Payment:   model.PaymentPending,
				Recon:     model.ReconOpen,
			}
			if dueDate != "" {
				due, ok := statement.NormalizeDate(dueDate)
				if !ok {
					return fmt.Errorf("unrecognized --due %q", dueDate)
				}
				inv.DueDate = due
			}

			if attachment != "" {
				ref, err := e.store.StoreAttachment(attachment, inv.ID)
				if err != nil {
					return fmt.Errorf("storing attachment: %w", err)
				}
				inv.AttachmentRef = ref
			}
			e.store.AddInvoice(inv)

			if err := e.commit("invoice: add " + inv.ID); err != nil {
				return err
			}
			fmt.Printf("Added invoice %s (%s, %s)\n", inv.ID, inv.Party, inv.Total.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&party, "party", "", "supplier or customer name (required)")
	_ = cmd.MarkFlagRequired("party")
	cmd.Flags().StringVar(&number, "number", "", "invoice number")
	cmd.Flags().StringVar(&total, "total", "", "invoice total (required)")
	_ = cmd.MarkFlagRequired("total")
	cmd.Flags().StringVar(&issueDate, "date", "", "issue date (required)")
	_ = cmd.MarkFlagRequired("date")
	cmd.Flags().StringVar(&dueDate, "due", "", "due date")
	cmd.Flags().StringVar(&storeID, "store", "", "store the invoice belongs to")
	cmd.Flags().StringVar(&attachment, "attachment", "", "file to copy into attachments/")
	return cmd
}

func newInvoiceListCommand(opts *rootOptions) *cobra.Command {
	var openOnly bool
	var storeID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List invoices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts.ledgerDir, opts.verbose)
			if err != nil {
				return err
			}

			count := 0
			for _, inv := range e.store.Invoices() {
				if openOnly && (inv.Recon != model.ReconOpen || inv.Payment != model.PaymentPending) {
					continue
				}
				if storeID != "" && inv.StoreID != storeID {
					continue
				}
				due := ""
				if !inv.DueDate.IsZero() {
					due = "  due " + inv.DueDate.Format("2006-01-02")
				}
				fmt.Printf("%s  %s  %10s  %-8s  %-10s  %s%s\n",
					inv.ID, inv.IssueDate.Format("2006-01-02"), inv.Total.StringFixed(2),
					inv.Payment, inv.Recon, inv.Party, due)
				count++
			}
			if count == 0 {
				fmt.Println("No invoices.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&openOnly, "open", false, "only pending, unreconciled invoices")
	cmd.Flags().StringVar(&storeID, "store", "", "filter by store")
	return cmd
}

func newInvoiceMarkPaidCommand(opts *rootOptions) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "mark-paid <invoice-id>",
		Short: "Mark an invoice paid outside reconciliation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status := model.PaymentPaid
			if undo {
				status = model.PaymentPending
			}
			return setInvoiceStatus(opts, args[0], status)
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "set the invoice back to pending")
	return cmd
}

func newInvoiceCancelCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <invoice-id>",
		Short: "Cancel an invoice so it never matches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setInvoiceStatus(opts, args[0], model.PaymentCanceled)
		},
	}
}

func setInvoiceStatus(opts *rootOptions, invID string, status model.PaymentStatus) error {
	e, err := openEnv(opts.ledgerDir, opts.verbose)
	if err != nil {
		return err
	}
	if err := e.store.SetInvoicePayment(invID, status); err != nil {
		return err
	}
	if err := e.commit(fmt.Sprintf("invoice: %s %s", invID, status)); err != nil {
		return err
	}
	fmt.Printf("Invoice %s is now %s\n", invID, status)
	return nil
}

func newInvoiceDeleteCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <invoice-id>",
		Short: "Delete an invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts.ledgerDir, opts.verbose)
			if err != nil {
				return err
			}
			if err := e.store.DeleteInvoice(args[0]); err != nil {
				return err
			}
			if err := e.commit("invoice: delete " + args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted invoice %s\n", args[0])
			return nil
		},
	}
}
