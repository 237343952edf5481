package model

import "github.com/shopspring/decimal"

// Account is a bank account whose balance is the opening balance plus
// the sum of all bank transactions recorded against it.
type Account struct {
	ID             string
	Name           string
	Currency       string
	OpeningBalance decimal.Decimal
}
