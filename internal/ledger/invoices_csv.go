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

// InvoiceHeader is the CSV header for invoices.csv.
const InvoiceHeader = "id,store_id,party,number,total,issue_date,due_date,payment,recon,attachment"

const (
	invNumFields  = 10
	invColID      = 0
	invColStore   = 1
	invColParty   = 2
	invColNumber  = 3
	invColTotal   = 4
	invColIssue   = 5
	invColDue     = 6
	invColPayment = 7
	invColRecon   = 8
	invColAttach  = 9
)

// ReadInvoices reads all invoices from an invoices.csv reader.
func ReadInvoices(r io.Reader) ([]model.Invoice, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = invNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading invoices CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var invoices []model.Invoice
	for i, rec := range records[1:] {
		inv, err := unmarshalInvoice(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

// WriteInvoices writes invoices (including header).
func WriteInvoices(w io.Writer, invoices []model.Invoice) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(InvoiceHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, inv := range invoices {
		if err := cw.Write(marshalInvoice(inv)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

func marshalInvoice(inv model.Invoice) []string {
	row := make([]string, invNumFields)
	row[invColID] = inv.ID
	row[invColStore] = inv.StoreID
	row[invColParty] = inv.Party
	row[invColNumber] = inv.Number
	row[invColTotal] = inv.Total.String()
	row[invColIssue] = inv.IssueDate.Format(dateFormat)
	if !inv.DueDate.IsZero() {
		row[invColDue] = inv.DueDate.Format(dateFormat)
	}
	row[invColPayment] = string(inv.Payment)
	row[invColRecon] = string(inv.Recon)
	row[invColAttach] = inv.AttachmentRef
	return row
}

func unmarshalInvoice(rec []string) (model.Invoice, error) {
	total, err := decimal.NewFromString(rec[invColTotal])
	if err != nil {
		return model.Invoice{}, fmt.Errorf("parsing total %q: %w", rec[invColTotal], err)
	}
	issue, err := time.Parse(dateFormat, rec[invColIssue])
	if err != nil {
		return model.Invoice{}, fmt.Errorf("parsing issue date %q: %w", rec[invColIssue], err)
	}

	var due time.Time
	if rec[invColDue] != "" {
		due, err = time.Parse(dateFormat, rec[invColDue])
		if err != nil {
			return model.Invoice{}, fmt.Errorf("parsing due date %q: %w", rec[invColDue], err)
		}
	}

	return model.Invoice{
		ID:            rec[invColID],
		StoreID:       rec[invColStore],
		Party:         rec[invColParty],
		Number:        rec[invColNumber],
		Total:         total,
		IssueDate:     issue,
		DueDate:       due,
		Payment:       model.PaymentStatus(rec[invColPayment]),
		Recon:         model.ReconStatus(rec[invColRecon]),
		AttachmentRef: rec[invColAttach],
	}, nil
}
