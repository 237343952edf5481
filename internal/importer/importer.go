// Package importer runs the statement import pipeline: parse the CSV
// dialect, locate the date/amount/description columns, normalize each
// row, drop duplicates by fingerprint, and categorize accepted rows.
// It is pure: the caller supplies the existing fingerprint set and
// persists the accepted transactions.
package importer

import (
	"fmt"

	"github.com/cuadra-dev/cuadra/internal/id"
	"github.com/cuadra-dev/cuadra/internal/model"
	"github.com/cuadra-dev/cuadra/internal/rules"
	"github.com/cuadra-dev/cuadra/internal/statement"
)

// Request describes one import run.
type Request struct {
	AccountID string
	StoreID   string
	Raw       string          // raw statement text
	Existing  map[string]bool // fingerprints already stored for the account
	Rules     []model.Rule
}

// Result summarizes an import run. Accepted rows carry fresh ids,
// fingerprints, and any category/party assigned by the rule set.
type Result struct {
	Accepted         []model.Transaction
	SkippedDuplicate int
	SkippedInvalid   int
}

// Run executes the pipeline. It fails before processing any row when
// the statement has no recognizable columns (model.ErrInputMalformed);
// per-row problems are counted, never fatal.
func Run(req Request) (Result, error) {
	tbl := statement.Parse(req.Raw)
	cols, err := DetectColumns(tbl.Headers)
	if err != nil {
		return Result{}, fmt.Errorf("import for account %s: %w", req.AccountID, err)
	}

	// Copy so reruns against the same request stay idempotent. The set
	// grows during the run to catch duplicates inside the file itself.
	seen := make(map[string]bool, len(req.Existing))
	for fp := range req.Existing {
		seen[fp] = true
	}

	var res Result
	maxCol := cols.Date
	if cols.Amount > maxCol {
		maxCol = cols.Amount
	}
	if cols.Description > maxCol {
		maxCol = cols.Description
	}

	for _, row := range tbl.Rows {
		if len(row) <= maxCol {
			res.SkippedInvalid++
			continue
		}

		date, ok := statement.NormalizeDate(row[cols.Date])
		desc := row[cols.Description]
		if !ok || desc == "" {
			res.SkippedInvalid++
			continue
		}
		amount := statement.NormalizeAmount(row[cols.Amount])

		fp := Fingerprint(req.AccountID, date, amount, desc)
		if seen[fp] {
			res.SkippedDuplicate++
			continue
		}
		seen[fp] = true

		tx := model.Transaction{
			ID:          id.New(id.KindTransaction),
			Kind:        model.KindBank,
			AccountID:   req.AccountID,
			StoreID:     req.StoreID,
			Date:        date,
			Amount:      amount,
			Description: desc,
			Recon:       model.ReconOpen,
			Fingerprint: fp,
		}
		tx = rules.Apply(tx, req.Rules)
		res.Accepted = append(res.Accepted, tx)
	}
	return res, nil
}
