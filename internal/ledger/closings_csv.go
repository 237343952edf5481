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

// ClosingHeader is the CSV header for closings.csv. The daily total is
// derived (cash + card - expenses), not stored.
const ClosingHeader = "id,store_id,date,cash,card,expenses,notes"

const (
	clsNumFields = 7
	clsColID     = 0
	clsColStore  = 1
	clsColDate   = 2
	clsColCash   = 3
	clsColCard   = 4
	clsColExp    = 5
	clsColNotes  = 6
)

// ReadClosings reads all cash closings from a closings.csv reader.
func ReadClosings(r io.Reader) ([]model.CashClosing, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = clsNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading closings CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var closings []model.CashClosing
	for i, rec := range records[1:] {
		c, err := unmarshalClosing(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		closings = append(closings, c)
	}
	return closings, nil
}

// WriteClosings writes cash closings (including header).
func WriteClosings(w io.Writer, closings []model.CashClosing) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(ClosingHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, c := range closings {
		row := make([]string, clsNumFields)
		row[clsColID] = c.ID
		row[clsColStore] = c.StoreID
		row[clsColDate] = c.Date.Format(dateFormat)
		row[clsColCash] = c.CashAmount.String()
		row[clsColCard] = c.CardAmount.String()
		row[clsColExp] = c.ExpenseAmount.String()
		row[clsColNotes] = c.Notes
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

func unmarshalClosing(rec []string) (model.CashClosing, error) {
	date, err := time.Parse(dateFormat, rec[clsColDate])
	if err != nil {
		return model.CashClosing{}, fmt.Errorf("parsing date %q: %w", rec[clsColDate], err)
	}
	cash, err := decimal.NewFromString(rec[clsColCash])
	if err != nil {
		return model.CashClosing{}, fmt.Errorf("parsing cash %q: %w", rec[clsColCash], err)
	}
	card, err := decimal.NewFromString(rec[clsColCard])
	if err != nil {
		return model.CashClosing{}, fmt.Errorf("parsing card %q: %w", rec[clsColCard], err)
	}
	exp, err := decimal.NewFromString(rec[clsColExp])
	if err != nil {
		return model.CashClosing{}, fmt.Errorf("parsing expenses %q: %w", rec[clsColExp], err)
	}

	return model.CashClosing{
		ID:            rec[clsColID],
		StoreID:       rec[clsColStore],
		Date:          date,
		CashAmount:    cash,
		CardAmount:    card,
		ExpenseAmount: exp,
		Notes:         rec[clsColNotes],
	}, nil
}
