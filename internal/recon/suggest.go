// Package recon proposes and applies reconciliations between bank
// movements and invoices. Everything here is pure: functions take a
// snapshot of the relevant records and return hints or intended
// mutation plans that the ledger store applies.
package recon

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cuadra-dev/cuadra/internal/model"
)

// Options scope and bound hint generation.
type Options struct {
	Tolerance  decimal.Decimal // max absolute amount gap
	WindowDays int             // max days between movement and invoice
	StoreID    string          // restrict to one store, empty = all
	From, To   time.Time       // optional movement date window
}

// DefaultOptions returns the stock matching thresholds: amounts within
// 0.50 and dates within 20 days.
func DefaultOptions() Options {
	return Options{Tolerance: decimal.NewFromFloat(0.5), WindowDays: 20}
}

// Hint is one candidate pairing. Lower Score means a more exact match.
type Hint struct {
	TxID      string
	InvoiceID string
	AmountGap decimal.Decimal
	DayGap    int
	Score     decimal.Decimal
}

// amountWeight skews the score toward amount exactness over date
// proximity. The exact weighting is a tunable heuristic; only the
// direction (closer gap, lower score) is relied on.
var amountWeight = decimal.NewFromInt(2)

// Suggest pairs every open bank movement with every open, non-canceled
// invoice in scope, keeps pairs within Tolerance and WindowDays, and
// ranks them best-first.
func Suggest(txs []model.Transaction, invoices []model.Invoice, opts Options) []Hint {
	var hints []Hint
	for _, tx := range txs {
		if tx.Kind != model.KindBank || tx.Recon != model.ReconOpen {
			continue
		}
		if excludedStore(tx.StoreID, opts.StoreID) {
			continue
		}
		if !opts.From.IsZero() && tx.Date.Before(opts.From) {
			continue
		}
		if !opts.To.IsZero() && tx.Date.After(opts.To) {
			continue
		}

		for _, inv := range invoices {
			if inv.Recon != model.ReconOpen || inv.Payment == model.PaymentCanceled {
				continue
			}
			if excludedStore(inv.StoreID, opts.StoreID) {
				continue
			}

			amountGap := tx.Amount.Abs().Sub(inv.Total.Abs()).Abs()
			dayGap := daysApart(tx.Date, inv.IssueDate)
			if amountGap.GreaterThan(opts.Tolerance) || dayGap > opts.WindowDays {
				continue
			}

			hints = append(hints, Hint{
				TxID:      tx.ID,
				InvoiceID: inv.ID,
				AmountGap: amountGap,
				DayGap:    dayGap,
				Score:     amountGap.Mul(amountWeight).Add(decimal.NewFromInt(int64(dayGap))),
			})
		}
	}

	sort.SliceStable(hints, func(i, j int) bool {
		return hints[i].Score.LessThan(hints[j].Score)
	})
	return hints
}

func excludedStore(recordStore, wantStore string) bool {
	return wantStore != "" && recordStore != "" && recordStore != wantStore
}

func daysApart(a, b time.Time) int {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return int(d.Hours() / 24)
}
