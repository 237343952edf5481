// Package rules applies prioritized categorization rules to
// transactions. Matching is a pure function of (transaction, rule set);
// the same engine runs at import time and for bulk re-categorization.
package rules

import (
	"sort"
	"strings"

	"github.com/cuadra-dev/cuadra/internal/model"
)

// Matches reports whether r matches tx: needle is a case-insensitive
// substring of the description, the direction filter agrees with the
// amount sign, and a store scope only excludes a mismatched store (a
// transaction with no store is eligible for scoped rules).
func Matches(r model.Rule, tx model.Transaction) bool {
	needle := strings.ToLower(strings.TrimSpace(r.Needle))
	if needle == "" {
		return false
	}
	if !strings.Contains(strings.ToLower(tx.Description), needle) {
		return false
	}
	switch r.Direction {
	case model.DirectionIn:
		if !tx.Amount.IsPositive() {
			return false
		}
	case model.DirectionOut:
		if !tx.Amount.IsNegative() {
			return false
		}
	}
	if r.StoreScope != "" && tx.StoreID != "" && r.StoreScope != tx.StoreID {
		return false
	}
	return true
}

// Best returns the matching rule with the strictly highest priority.
// The scan is sort-then-stable so results never depend on the caller's
// rule ordering beyond the documented tie-break (earlier rule wins at
// equal priority).
func Best(tx model.Transaction, ruleSet []model.Rule) (model.Rule, bool) {
	sorted := make([]model.Rule, len(ruleSet))
	copy(sorted, ruleSet)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})

	for _, r := range sorted {
		if Matches(r, tx) {
			return r, true
		}
	}
	return model.Rule{}, false
}

// Apply returns tx with category and party from the best matching rule.
// No match, or empty rule fields, leave existing values untouched.
// Rules enrich, they never clear.
func Apply(tx model.Transaction, ruleSet []model.Rule) model.Transaction {
	best, ok := Best(tx, ruleSet)
	if !ok {
		return tx
	}
	if best.Category != "" {
		tx.Category = best.Category
	}
	if best.Party != "" {
		tx.Party = best.Party
	}
	return tx
}

// Change is an intended category/party update for one stored
// transaction, produced by BulkApply and persisted by the caller.
type Change struct {
	TxID     string
	Category string
	Party    string
}

// BulkApply runs the engine over stored transactions and returns a
// change per transaction whose category or party would actually move.
func BulkApply(txs []model.Transaction, ruleSet []model.Rule) []Change {
	var changes []Change
	for _, tx := range txs {
		next := Apply(tx, ruleSet)
		if next.Category != tx.Category || next.Party != tx.Party {
			changes = append(changes, Change{
				TxID:     tx.ID,
				Category: next.Category,
				Party:    next.Party,
			})
		}
	}
	return changes
}
