package model

import "github.com/shopspring/decimal"

// ReconciliationGroup pairs a set of bank movements with a set of
// invoices: "this money paid for these invoices". Both id sets are
// non-empty. Difference = MovementTotal - InvoiceTotal; a non-zero
// difference is legal (partial payments, discounts).
type ReconciliationGroup struct {
	ID            string
	MovementIDs   []string
	InvoiceIDs    []string
	MovementTotal decimal.Decimal
	InvoiceTotal  decimal.Decimal
	Difference    decimal.Decimal
	StoreScope    string
}

// Covers reports whether the group references the given transaction.
func (g ReconciliationGroup) Covers(txID string) bool {
	for _, id := range g.MovementIDs {
		if id == txID {
			return true
		}
	}
	return false
}

// CoversInvoice reports whether the group references the given invoice.
func (g ReconciliationGroup) CoversInvoice(invID string) bool {
	for _, id := range g.InvoiceIDs {
		if id == invID {
			return true
		}
	}
	return false
}
