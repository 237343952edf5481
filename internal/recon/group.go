package recon

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cuadra-dev/cuadra/internal/id"
	"github.com/cuadra-dev/cuadra/internal/model"
)

// Selection is the operator-confirmed pair of id sets for a new group.
// It is an explicit value passed in by the caller; the engine holds no
// ambient selection state.
type Selection struct {
	MovementIDs []string
	InvoiceIDs  []string
}

// TxUpdate is an intended status change for one transaction.
type TxUpdate struct {
	ID    string
	Recon model.ReconStatus
}

// InvoiceUpdate is an intended status change for one invoice.
type InvoiceUpdate struct {
	ID      string
	Recon   model.ReconStatus
	Payment model.PaymentStatus
}

// GroupPlan is the full intended effect of creating or deleting a
// reconciliation group. The caller applies it atomically: either every
// update lands and the group record is created (or deleted), or none.
type GroupPlan struct {
	Group          model.ReconciliationGroup
	TxUpdates      []TxUpdate
	InvoiceUpdates []InvoiceUpdate
	Teardown       bool // true when the plan deletes the group
}

// BuildGroup validates a selection against the snapshot and computes
// the creation plan: group record with derived totals, every movement
// marked reconciled, every invoice marked reconciled and paid. A
// non-zero difference between the two totals is legal and simply
// reported on the group.
func BuildGroup(sel Selection, txs []model.Transaction, invoices []model.Invoice) (GroupPlan, error) {
	if len(sel.MovementIDs) == 0 || len(sel.InvoiceIDs) == 0 {
		return GroupPlan{}, model.ErrSelectionInvalid
	}

	txByID := make(map[string]model.Transaction, len(txs))
	for _, tx := range txs {
		txByID[tx.ID] = tx
	}
	invByID := make(map[string]model.Invoice, len(invoices))
	for _, inv := range invoices {
		invByID[inv.ID] = inv
	}

	movementTotal := decimal.Zero
	stores := map[string]bool{}
	for _, txID := range sel.MovementIDs {
		tx, ok := txByID[txID]
		if !ok {
			return GroupPlan{}, fmt.Errorf("movement %s not found", txID)
		}
		if tx.Recon != model.ReconOpen {
			return GroupPlan{}, fmt.Errorf("movement %s is already reconciled", txID)
		}
		movementTotal = movementTotal.Add(tx.Amount)
		stores[tx.StoreID] = true
	}

	invoiceTotal := decimal.Zero
	for _, invID := range sel.InvoiceIDs {
		inv, ok := invByID[invID]
		if !ok {
			return GroupPlan{}, fmt.Errorf("invoice %s not found", invID)
		}
		if inv.Recon != model.ReconOpen {
			return GroupPlan{}, fmt.Errorf("invoice %s is already reconciled", invID)
		}
		if inv.Payment == model.PaymentCanceled {
			return GroupPlan{}, fmt.Errorf("invoice %s is canceled", invID)
		}
		invoiceTotal = invoiceTotal.Add(inv.Total)
		stores[inv.StoreID] = true
	}

	group := model.ReconciliationGroup{
		ID:            id.New(id.KindGroup),
		MovementIDs:   append([]string(nil), sel.MovementIDs...),
		InvoiceIDs:    append([]string(nil), sel.InvoiceIDs...),
		MovementTotal: movementTotal,
		InvoiceTotal:  invoiceTotal,
		Difference:    movementTotal.Sub(invoiceTotal),
		StoreScope:    commonStore(stores),
	}

	plan := GroupPlan{Group: group}
	for _, txID := range sel.MovementIDs {
		plan.TxUpdates = append(plan.TxUpdates, TxUpdate{ID: txID, Recon: model.ReconReconciled})
	}
	for _, invID := range sel.InvoiceIDs {
		plan.InvoiceUpdates = append(plan.InvoiceUpdates, InvoiceUpdate{
			ID:      invID,
			Recon:   model.ReconReconciled,
			Payment: model.PaymentPaid,
		})
	}
	return plan, nil
}

// TeardownGroup computes the exact inverse of creation: every member
// movement back to open, every member invoice back to open and pending,
// and the group record removed.
func TeardownGroup(group model.ReconciliationGroup) GroupPlan {
	plan := GroupPlan{Group: group, Teardown: true}
	for _, txID := range group.MovementIDs {
		plan.TxUpdates = append(plan.TxUpdates, TxUpdate{ID: txID, Recon: model.ReconOpen})
	}
	for _, invID := range group.InvoiceIDs {
		plan.InvoiceUpdates = append(plan.InvoiceUpdates, InvoiceUpdate{
			ID:      invID,
			Recon:   model.ReconOpen,
			Payment: model.PaymentPending,
		})
	}
	return plan
}

// Recompute derives the group's totals from current member state. Used
// to verify stored totals have not drifted from live amounts.
func Recompute(group model.ReconciliationGroup, txs []model.Transaction, invoices []model.Invoice) (movementTotal, invoiceTotal, difference decimal.Decimal, err error) {
	txByID := make(map[string]model.Transaction, len(txs))
	for _, tx := range txs {
		txByID[tx.ID] = tx
	}
	invByID := make(map[string]model.Invoice, len(invoices))
	for _, inv := range invoices {
		invByID[inv.ID] = inv
	}

	movementTotal, invoiceTotal = decimal.Zero, decimal.Zero
	for _, txID := range group.MovementIDs {
		tx, ok := txByID[txID]
		if !ok {
			return decimal.Zero, decimal.Zero, decimal.Zero, fmt.Errorf("movement %s not found", txID)
		}
		movementTotal = movementTotal.Add(tx.Amount)
	}
	for _, invID := range group.InvoiceIDs {
		inv, ok := invByID[invID]
		if !ok {
			return decimal.Zero, decimal.Zero, decimal.Zero, fmt.Errorf("invoice %s not found", invID)
		}
		invoiceTotal = invoiceTotal.Add(inv.Total)
	}
	return movementTotal, invoiceTotal, movementTotal.Sub(invoiceTotal), nil
}

// commonStore returns the single store all members share, or "" when
// members span stores or carry none.
func commonStore(stores map[string]bool) string {
	if len(stores) != 1 {
		return ""
	}
	for s := range stores {
		return s
	}
	return ""
}
