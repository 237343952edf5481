package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cuadra-dev/cuadra/internal/buildinfo"
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	ledgerDir string
	verbose   bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "cuadra",
		Short:   "Small-business bookkeeping: import, categorize, reconcile",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.ledgerDir, "ledger", ".", "ledger directory")
	rootCmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newAccountCommand(opts))
	rootCmd.AddCommand(newImportCommand(opts))
	rootCmd.AddCommand(newTxCommand(opts))
	rootCmd.AddCommand(newRuleCommand(opts))
	rootCmd.AddCommand(newInvoiceCommand(opts))
	rootCmd.AddCommand(newReconcileCommand(opts))
	rootCmd.AddCommand(newClosingCommand(opts))
	rootCmd.AddCommand(newReportCommand(opts))

	return rootCmd
}
