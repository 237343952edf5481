package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cuadra-dev/cuadra/internal/model"
)

// TxHeader is the CSV header for transactions.csv.
const TxHeader = "id,kind,account_id,store_id,date,amount,description,party,category,recon,fingerprint"

const (
	txNumFields = 11
	txColID     = 0
	txColKind   = 1
	txColAcct   = 2
	txColStore  = 3
	txColDate   = 4
	txColAmount = 5
	txColDesc   = 6
	txColParty  = 7
	txColCat    = 8
	txColRecon  = 9
	txColFP     = 10
)

const dateFormat = "2006-01-02"

// ReadTransactions reads all transactions from a transactions.csv reader.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = txNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var txs []model.Transaction
	for i, rec := range records[1:] {
		tx, err := unmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// WriteTransactions writes transactions (including header).
func WriteTransactions(w io.Writer, txs []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(TxHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, tx := range txs {
		if err := cw.Write(marshalTransaction(tx)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

func marshalTransaction(tx model.Transaction) []string {
	row := make([]string, txNumFields)
	row[txColID] = tx.ID
	row[txColKind] = string(tx.Kind)
	row[txColAcct] = tx.AccountID
	row[txColStore] = tx.StoreID
	row[txColDate] = tx.Date.Format(dateFormat)
	row[txColAmount] = tx.Amount.String()
	row[txColDesc] = tx.Description
	row[txColParty] = tx.Party
	row[txColCat] = tx.Category
	row[txColRecon] = string(tx.Recon)
	row[txColFP] = tx.Fingerprint
	return row
}

func unmarshalTransaction(rec []string) (model.Transaction, error) {
	date, err := time.Parse(dateFormat, rec[txColDate])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", rec[txColDate], err)
	}
	amount, err := decimal.NewFromString(rec[txColAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", rec[txColAmount], err)
	}

	return model.Transaction{
		ID:          rec[txColID],
		Kind:        model.TxKind(rec[txColKind]),
		AccountID:   rec[txColAcct],
		StoreID:     rec[txColStore],
		Date:        date,
		Amount:      amount,
		Description: rec[txColDesc],
		Party:       rec[txColParty],
		Category:    rec[txColCat],
		Recon:       model.ReconStatus(rec[txColRecon]),
		Fingerprint: rec[txColFP],
	}, nil
}
