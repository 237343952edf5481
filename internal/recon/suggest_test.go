package recon

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuadra-dev/cuadra/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func openTx(id string, day int, amount string) model.Transaction {
	return model.Transaction{
		ID: id, Kind: model.KindBank, Date: date(2024, 3, day),
		Amount: dec(amount), Recon: model.ReconOpen,
	}
}

func openInv(id string, day int, total string) model.Invoice {
	return model.Invoice{
		ID: id, IssueDate: date(2024, 3, day), Total: dec(total),
		Payment: model.PaymentPending, Recon: model.ReconOpen,
	}
}

func TestSuggestRespectsBounds(t *testing.T) {
	txs := []model.Transaction{
		openTx("tx_close", 10, "-100.00"),
		openTx("tx_amount_off", 10, "-101.00"),
		openTx("tx_date_off", 31, "-100.00"),
	}
	invoices := []model.Invoice{openInv("inv_1", 10, "100.00")}

	opts := Options{Tolerance: dec("0.5"), WindowDays: 20}
	hints := Suggest(txs, invoices, opts)

	require.Len(t, hints, 1)
	assert.Equal(t, "tx_close", hints[0].TxID)
	for _, h := range hints {
		assert.True(t, h.AmountGap.LessThanOrEqual(opts.Tolerance))
		assert.LessOrEqual(t, h.DayGap, opts.WindowDays)
	}
}

func TestSuggestOrdering(t *testing.T) {
	// Same invoice, three movements at increasing distance: exact match
	// first, then closer amount, then closer date.
	txs := []model.Transaction{
		openTx("tx_far", 18, "-95.40"),
		openTx("tx_exact", 10, "-95.00"),
		openTx("tx_near", 12, "-95.10"),
	}
	invoices := []model.Invoice{openInv("inv_1", 10, "95.00")}

	hints := Suggest(txs, invoices, DefaultOptions())
	require.Len(t, hints, 3)
	assert.Equal(t, "tx_exact", hints[0].TxID)
	assert.Equal(t, "tx_near", hints[1].TxID)
	assert.Equal(t, "tx_far", hints[2].TxID)
}

func TestSuggestSkipsIneligibleRecords(t *testing.T) {
	reconciled := openTx("tx_done", 10, "-50.00")
	reconciled.Recon = model.ReconReconciled
	cash := openTx("tx_cash", 10, "-50.00")
	cash.Kind = model.KindCash

	canceled := openInv("inv_void", 10, "50.00")
	canceled.Payment = model.PaymentCanceled
	paid := openInv("inv_done", 10, "50.00")
	paid.Recon = model.ReconReconciled

	hints := Suggest(
		[]model.Transaction{reconciled, cash, openTx("tx_ok", 10, "-50.00")},
		[]model.Invoice{canceled, paid, openInv("inv_ok", 10, "50.00")},
		DefaultOptions(),
	)

	require.Len(t, hints, 1)
	assert.Equal(t, "tx_ok", hints[0].TxID)
	assert.Equal(t, "inv_ok", hints[0].InvoiceID)
}

func TestSuggestStoreScope(t *testing.T) {
	txOther := openTx("tx_other", 10, "-10.00")
	txOther.StoreID = "store2"
	txMine := openTx("tx_mine", 10, "-10.00")
	txMine.StoreID = "store1"
	txNone := openTx("tx_none", 10, "-10.00")

	opts := DefaultOptions()
	opts.StoreID = "store1"
	hints := Suggest([]model.Transaction{txOther, txMine, txNone}, []model.Invoice{openInv("inv_1", 10, "10.00")}, opts)

	var ids []string
	for _, h := range hints {
		ids = append(ids, h.TxID)
	}
	assert.ElementsMatch(t, []string{"tx_mine", "tx_none"}, ids)
}

func TestSuggestDateWindow(t *testing.T) {
	opts := DefaultOptions()
	opts.From = date(2024, 3, 5)
	opts.To = date(2024, 3, 15)

	hints := Suggest(
		[]model.Transaction{openTx("tx_in", 10, "-10.00"), openTx("tx_before", 1, "-10.00")},
		[]model.Invoice{openInv("inv_1", 10, "10.00")},
		opts,
	)
	require.Len(t, hints, 1)
	assert.Equal(t, "tx_in", hints[0].TxID)
}
