package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cuadra-dev/cuadra/internal/model"
)

// AccountHeader is the CSV header for accounts.csv.
const AccountHeader = "id,name,currency,opening_balance"

const (
	accNumFields  = 4
	accColID      = 0
	accColName    = 1
	accColCcy     = 2
	accColOpening = 3
)

// ReadAccounts reads all accounts from an accounts.csv reader.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = accNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		opening, err := decimal.NewFromString(rec[accColOpening])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing opening balance %q: %w", i+2, rec[accColOpening], err)
		}
		accounts = append(accounts, model.Account{
			ID:             rec[accColID],
			Name:           rec[accColName],
			Currency:       rec[accColCcy],
			OpeningBalance: opening,
		})
	}
	return accounts, nil
}

// WriteAccounts writes accounts (including header).
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(AccountHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, a := range accounts {
		row := make([]string, accNumFields)
		row[accColID] = a.ID
		row[accColName] = a.Name
		row[accColCcy] = a.Currency
		row[accColOpening] = a.OpeningBalance.String()
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}
