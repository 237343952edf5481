package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cuadra-dev/cuadra/internal/importer"
)

func newImportCommand(opts *rootOptions) *cobra.Command {
	var accountID string
	var storeID string
	var keep bool

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a bank statement CSV (or everything waiting in import/)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts.ledgerDir, opts.verbose)
			if err != nil {
				return err
			}
			if _, ok := e.store.Account(accountID); !ok {
				return fmt.Errorf("account %s not found", accountID)
			}

			if len(args) == 1 {
				return runImportFile(e, args[0], accountID, storeID, false)
			}

			files, err := importer.Scan(e.dir)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Println("Nothing to import in import/")
				return nil
			}
			for _, f := range files {
				if err := runImportFile(e, f.Path, accountID, storeID, !keep); err != nil {
					return fmt.Errorf("%s: %w", f.Name, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "target account id (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(&storeID, "store", "", "store id to tag imported movements with")
	cmd.Flags().BoolVar(&keep, "keep", false, "leave statements in import/ after importing")

	return cmd
}

func runImportFile(e *env, path, accountID, storeID string, moveProcessed bool) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading statement: %w", err)
	}

	res, err := importer.Run(importer.Request{
		AccountID: accountID,
		StoreID:   storeID,
		Raw:       string(raw),
		Existing:  e.store.Fingerprints(accountID),
		Rules:     e.ruleSet,
	})
	if err != nil {
		return err
	}

	e.log.Debug().
		Str("file", path).
		Int("accepted", len(res.Accepted)).
		Int("duplicates", res.SkippedDuplicate).
		Int("invalid", res.SkippedInvalid).
		Msg("statement parsed")

	// The store re-checks fingerprints at commit time; a concurrent
	// import between our snapshot and now still cannot double-insert.
	added := e.store.AddTransactions(res.Accepted)

	if moveProcessed {
		if err := importer.MarkProcessed(e.dir, filepath.Base(path)); err != nil {
			return err
		}
	}

	if err := e.commit(fmt.Sprintf("import: %d movements into %s", added, accountID)); err != nil {
		return err
	}
	fmt.Printf("Imported %d movements (%d duplicates, %d invalid rows skipped)\n",
		added, res.SkippedDuplicate+len(res.Accepted)-added, res.SkippedInvalid)
	return nil
}
