package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TxKind distinguishes bank movements from cash-register entries.
type TxKind string

const (
	KindBank TxKind = "bank"
	KindCash TxKind = "cash"
)

// ReconStatus is the reconciliation lifecycle state shared by
// transactions and invoices.
type ReconStatus string

const (
	ReconOpen       ReconStatus = "open"
	ReconReconciled ReconStatus = "reconciled"
)

// Transaction is a single bank or cash movement.
type Transaction struct {
	ID          string
	Kind        TxKind
	AccountID   string // bank account, empty for cash entries
	StoreID     string // optional store scope
	Date        time.Time
	Amount      decimal.Decimal // positive = inflow, negative = outflow
	Description string
	Party       string
	Category    string
	Recon       ReconStatus
	Fingerprint string // import dedupe key, empty for manual entries
}

// Inflow reports whether the transaction is money coming in.
func (t Transaction) Inflow() bool { return t.Amount.IsPositive() }
