package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/cuadra-dev/cuadra/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestBuild(t *testing.T) {
	now := date(2024, 3, 31)

	accounts := []model.Account{
		{ID: "acc_1", OpeningBalance: dec("1000")},
		{ID: "acc_2", OpeningBalance: dec("500")},
	}
	txs := []model.Transaction{
		{ID: "tx_1", Kind: model.KindBank, AccountID: "acc_1", Date: date(2024, 3, 20),
			Amount: dec("100"), Recon: model.ReconOpen},
		{ID: "tx_2", Kind: model.KindBank, AccountID: "acc_2", Date: date(2024, 1, 5),
			Amount: dec("-50"), Recon: model.ReconReconciled},
		{ID: "tx_3", Kind: model.KindCash, StoreID: "store1", Date: date(2024, 3, 25),
			Amount: dec("20"), Recon: model.ReconOpen},
	}
	invoices := []model.Invoice{
		{ID: "inv_1", Payment: model.PaymentPending, Recon: model.ReconOpen},
		{ID: "inv_2", Payment: model.PaymentPaid, Recon: model.ReconReconciled},
		{ID: "inv_3", Payment: model.PaymentCanceled, Recon: model.ReconOpen},
	}
	closings := []model.CashClosing{
		{ID: "cls_1", StoreID: "store1", Date: date(2024, 3, 20),
			CashAmount: dec("200"), CardAmount: dec("100"), ExpenseAmount: dec("30")},
		{ID: "cls_2", StoreID: "store2", Date: date(2024, 3, 21),
			CashAmount: dec("80"), CardAmount: dec("20"), ExpenseAmount: dec("0")},
	}

	sum := Build(accounts, txs, invoices, closings, now)

	// 1000 + 100 on acc_1, 500 - 50 on acc_2; cash movement does not
	// touch account balances.
	assert.True(t, dec("1550").Equal(sum.TotalBalance), "got %s", sum.TotalBalance)
	assert.Equal(t, 2, sum.RecentMovements, "tx_2 is older than 30 days")
	assert.Equal(t, 2, sum.OpenMovements)
	assert.Equal(t, 1, sum.OpenInvoices, "paid and canceled invoices are not open")
	assert.True(t, dec("270").Equal(sum.CashByStore["store1"]))
	assert.True(t, dec("100").Equal(sum.CashByStore["store2"]))
	assert.Equal(t, []string{"store1", "store2"}, sum.Stores())
}

func TestBuildEmpty(t *testing.T) {
	sum := Build(nil, nil, nil, nil, date(2024, 1, 1))
	assert.True(t, sum.TotalBalance.IsZero())
	assert.Equal(t, 0, sum.OpenMovements)
	assert.Empty(t, sum.Stores())
}
