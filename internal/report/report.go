// Package report computes the dashboard aggregates: balances across
// accounts, recent movement flow, open counts, and cash totals.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cuadra-dev/cuadra/internal/model"
)

// recentWindow is how far back "recent movements" looks.
const recentWindow = 30 * 24 * time.Hour

// Summary is the organization-wide snapshot shown by the report command.
type Summary struct {
	TotalBalance    decimal.Decimal // Σ (opening + bank movements) over accounts
	RecentMovements int             // movements in the last 30 days
	OpenMovements   int             // not yet reconciled
	OpenInvoices    int             // pending, not reconciled, not canceled
	CashByStore     map[string]decimal.Decimal
}

// Build assembles a Summary from full collection snapshots. now anchors
// the recent-movement window so results are reproducible in tests.
func Build(accounts []model.Account, txs []model.Transaction, invoices []model.Invoice, closings []model.CashClosing, now time.Time) Summary {
	sum := Summary{CashByStore: make(map[string]decimal.Decimal)}

	perAccount := make(map[string]decimal.Decimal, len(accounts))
	for _, a := range accounts {
		perAccount[a.ID] = a.OpeningBalance
	}
	for _, tx := range txs {
		if tx.Kind == model.KindBank {
			if bal, ok := perAccount[tx.AccountID]; ok {
				perAccount[tx.AccountID] = bal.Add(tx.Amount)
			}
		}
		if now.Sub(tx.Date) <= recentWindow && !tx.Date.After(now) {
			sum.RecentMovements++
		}
		if tx.Recon == model.ReconOpen {
			sum.OpenMovements++
		}
	}
	for _, bal := range perAccount {
		sum.TotalBalance = sum.TotalBalance.Add(bal)
	}

	for _, inv := range invoices {
		if inv.Recon == model.ReconOpen && inv.Payment == model.PaymentPending {
			sum.OpenInvoices++
		}
	}

	for _, c := range closings {
		sum.CashByStore[c.StoreID] = sum.CashByStore[c.StoreID].Add(c.Total())
	}
	return sum
}

// Stores returns the store ids present in the summary, sorted for
// stable output.
func (s Summary) Stores() []string {
	stores := make([]string, 0, len(s.CashByStore))
	for st := range s.CashByStore {
		stores = append(stores, st)
	}
	sort.Strings(stores)
	return stores
}
