package rules

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuadra-dev/cuadra/internal/model"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func tx(desc string, amount string) model.Transaction {
	return model.Transaction{Description: desc, Amount: dec(amount)}
}

func TestHigherPriorityWins(t *testing.T) {
	ruleSet := []model.Rule{
		{Needle: "uber", Category: "transport", Priority: 5, Direction: model.DirectionAny},
		{Needle: "uber eats", Category: "food", Priority: 10, Direction: model.DirectionAny},
	}

	got := Apply(tx("UBER EATS TRIP", "-12.50"), ruleSet)
	assert.Equal(t, "food", got.Category)
}

func TestDirectionFilter(t *testing.T) {
	in := model.Rule{Needle: "refund", Category: "income", Priority: 1, Direction: model.DirectionIn}
	out := model.Rule{Needle: "refund", Category: "expense", Priority: 1, Direction: model.DirectionOut}

	assert.False(t, Matches(in, tx("REFUND", "-5.00")))
	assert.True(t, Matches(in, tx("REFUND", "5.00")))
	assert.False(t, Matches(out, tx("REFUND", "5.00")))
	assert.True(t, Matches(out, tx("REFUND", "-5.00")))
	// Zero matches neither direction.
	assert.False(t, Matches(in, tx("REFUND", "0")))
	assert.False(t, Matches(out, tx("REFUND", "0")))
}

func TestStoreScope(t *testing.T) {
	r := model.Rule{Needle: "pos", Category: "sales", Priority: 1, StoreScope: "store1"}

	same := tx("POS SALE", "20")
	same.StoreID = "store1"
	other := tx("POS SALE", "20")
	other.StoreID = "store2"
	none := tx("POS SALE", "20")

	assert.True(t, Matches(r, same))
	assert.False(t, Matches(r, other), "scoped rule never matches a different store")
	assert.True(t, Matches(r, none), "scope only excludes a mismatched store")
}

func TestNoMatchPreservesExisting(t *testing.T) {
	existing := tx("GROCERIES", "-30.00")
	existing.Category = "manual-cat"
	existing.Party = "manual-party"

	got := Apply(existing, []model.Rule{{Needle: "uber", Category: "transport", Priority: 1}})
	assert.Equal(t, "manual-cat", got.Category)
	assert.Equal(t, "manual-party", got.Party)
}

func TestEmptyRuleFieldsDoNotClear(t *testing.T) {
	existing := tx("UBER TRIP", "-10")
	existing.Party = "kept"

	got := Apply(existing, []model.Rule{{Needle: "uber", Category: "transport", Priority: 1}})
	assert.Equal(t, "transport", got.Category)
	assert.Equal(t, "kept", got.Party)
}

func TestEqualPriorityEarlierRuleWins(t *testing.T) {
	ruleSet := []model.Rule{
		{Needle: "shop", Category: "first", Priority: 3},
		{Needle: "shop", Category: "second", Priority: 3},
	}
	best, ok := Best(tx("SHOP 42", "-1"), ruleSet)
	require.True(t, ok)
	assert.Equal(t, "first", best.Category)
}

func TestEmptyNeedleNeverMatches(t *testing.T) {
	assert.False(t, Matches(model.Rule{Needle: "  ", Category: "x"}, tx("anything", "1")))
}

func TestBulkApplyReportsOnlyRealChanges(t *testing.T) {
	a := tx("UBER TRIP", "-10")
	a.ID = "tx_a"
	b := tx("UBER TRIP", "-10")
	b.ID = "tx_b"
	b.Category = "transport"
	b.Party = "Uber"
	c := tx("UNMATCHED", "-10")
	c.ID = "tx_c"

	ruleSet := []model.Rule{{Needle: "uber", Category: "transport", Party: "Uber", Priority: 1}}
	changes := BulkApply([]model.Transaction{a, b, c}, ruleSet)

	require.Len(t, changes, 1)
	assert.Equal(t, "tx_a", changes[0].TxID)
	assert.Equal(t, "transport", changes[0].Category)
	assert.Equal(t, "Uber", changes[0].Party)
}
