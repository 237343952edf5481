package recon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuadra-dev/cuadra/internal/model"
)

func TestBuildGroupComputesTotalsAndDifference(t *testing.T) {
	txs := []model.Transaction{
		openTx("tx_1", 10, "60.00"),
		openTx("tx_2", 11, "40.00"),
	}
	invoices := []model.Invoice{
		openInv("inv_1", 10, "50.00"),
		openInv("inv_2", 10, "45.00"),
	}

	plan, err := BuildGroup(Selection{
		MovementIDs: []string{"tx_1", "tx_2"},
		InvoiceIDs:  []string{"inv_1", "inv_2"},
	}, txs, invoices)
	require.NoError(t, err)

	assert.True(t, dec("100.00").Equal(plan.Group.MovementTotal))
	assert.True(t, dec("95.00").Equal(plan.Group.InvoiceTotal))
	assert.True(t, dec("5.00").Equal(plan.Group.Difference))
	assert.False(t, plan.Teardown)

	require.Len(t, plan.TxUpdates, 2)
	for _, u := range plan.TxUpdates {
		assert.Equal(t, model.ReconReconciled, u.Recon)
	}
	require.Len(t, plan.InvoiceUpdates, 2)
	for _, u := range plan.InvoiceUpdates {
		assert.Equal(t, model.ReconReconciled, u.Recon)
		assert.Equal(t, model.PaymentPaid, u.Payment)
	}
}

func TestBuildGroupRejectsEmptySelection(t *testing.T) {
	txs := []model.Transaction{openTx("tx_1", 10, "10.00")}
	invoices := []model.Invoice{openInv("inv_1", 10, "10.00")}

	_, err := BuildGroup(Selection{InvoiceIDs: []string{"inv_1"}}, txs, invoices)
	assert.ErrorIs(t, err, model.ErrSelectionInvalid)

	_, err = BuildGroup(Selection{MovementIDs: []string{"tx_1"}}, txs, invoices)
	assert.ErrorIs(t, err, model.ErrSelectionInvalid)
}

func TestBuildGroupRejectsUnknownOrClosedMembers(t *testing.T) {
	done := openTx("tx_done", 10, "10.00")
	done.Recon = model.ReconReconciled
	canceled := openInv("inv_void", 10, "10.00")
	canceled.Payment = model.PaymentCanceled

	txs := []model.Transaction{openTx("tx_1", 10, "10.00"), done}
	invoices := []model.Invoice{openInv("inv_1", 10, "10.00"), canceled}

	sel := Selection{MovementIDs: []string{"tx_missing"}, InvoiceIDs: []string{"inv_1"}}
	_, err := BuildGroup(sel, txs, invoices)
	assert.ErrorContains(t, err, "not found")

	sel = Selection{MovementIDs: []string{"tx_done"}, InvoiceIDs: []string{"inv_1"}}
	_, err = BuildGroup(sel, txs, invoices)
	assert.ErrorContains(t, err, "already reconciled")

	sel = Selection{MovementIDs: []string{"tx_1"}, InvoiceIDs: []string{"inv_void"}}
	_, err = BuildGroup(sel, txs, invoices)
	assert.ErrorContains(t, err, "canceled")
}

func TestTeardownIsExactInverse(t *testing.T) {
	txs := []model.Transaction{openTx("tx_1", 10, "100.00")}
	invoices := []model.Invoice{openInv("inv_1", 10, "95.00")}

	created, err := BuildGroup(Selection{
		MovementIDs: []string{"tx_1"},
		InvoiceIDs:  []string{"inv_1"},
	}, txs, invoices)
	require.NoError(t, err)

	down := TeardownGroup(created.Group)
	assert.True(t, down.Teardown)
	require.Len(t, down.TxUpdates, 1)
	assert.Equal(t, model.ReconOpen, down.TxUpdates[0].Recon)
	require.Len(t, down.InvoiceUpdates, 1)
	assert.Equal(t, model.ReconOpen, down.InvoiceUpdates[0].Recon)
	assert.Equal(t, model.PaymentPending, down.InvoiceUpdates[0].Payment)
}

func TestRecomputeMatchesStoredTotals(t *testing.T) {
	txs := []model.Transaction{openTx("tx_1", 10, "60.00"), openTx("tx_2", 11, "40.00")}
	invoices := []model.Invoice{openInv("inv_1", 10, "95.00")}

	plan, err := BuildGroup(Selection{
		MovementIDs: []string{"tx_1", "tx_2"},
		InvoiceIDs:  []string{"inv_1"},
	}, txs, invoices)
	require.NoError(t, err)

	mov, inv, diff, err := Recompute(plan.Group, txs, invoices)
	require.NoError(t, err)
	assert.True(t, plan.Group.MovementTotal.Equal(mov))
	assert.True(t, plan.Group.InvoiceTotal.Equal(inv))
	assert.True(t, plan.Group.Difference.Equal(diff))
}

func TestBuildGroupStoreScope(t *testing.T) {
	tx := openTx("tx_1", 10, "10.00")
	tx.StoreID = "store1"
	inv := openInv("inv_1", 10, "10.00")
	inv.StoreID = "store1"

	plan, err := BuildGroup(Selection{MovementIDs: []string{"tx_1"}, InvoiceIDs: []string{"inv_1"}},
		[]model.Transaction{tx}, []model.Invoice{inv})
	require.NoError(t, err)
	assert.Equal(t, "store1", plan.Group.StoreScope)

	inv2 := openInv("inv_2", 10, "10.00")
	inv2.StoreID = "store2"
	tx2 := openTx("tx_2", 10, "10.00")
	tx2.StoreID = "store1"
	plan, err = BuildGroup(Selection{MovementIDs: []string{"tx_2"}, InvoiceIDs: []string{"inv_2"}},
		[]model.Transaction{tx2}, []model.Invoice{inv2})
	require.NoError(t, err)
	assert.Equal(t, "", plan.Group.StoreScope, "mixed stores collapse to no scope")
}
