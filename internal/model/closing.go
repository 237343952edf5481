package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashClosing is a finalized daily cash-register summary for one store.
// It is not matched against invoices individually; it feeds aggregate
// flow reporting.
type CashClosing struct {
	ID            string
	StoreID       string
	Date          time.Time
	CashAmount    decimal.Decimal
	CardAmount    decimal.Decimal
	ExpenseAmount decimal.Decimal
	Notes         string
}

// Total returns cash + card - expenses.
func (c CashClosing) Total() decimal.Decimal {
	return c.CashAmount.Add(c.CardAmount).Sub(c.ExpenseAmount)
}
