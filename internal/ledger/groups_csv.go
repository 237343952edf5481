package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cuadra-dev/cuadra/internal/model"
)

// GroupHeader is the CSV header for groups.csv. Member id sets are
// semicolon-separated inside their cell.
const GroupHeader = "id,movement_ids,invoice_ids,movement_total,invoice_total,difference,store_scope"

const (
	grpNumFields = 7
	grpColID     = 0
	grpColMovs   = 1
	grpColInvs   = 2
	grpColMovTot = 3
	grpColInvTot = 4
	grpColDiff   = 5
	grpColStore  = 6
)

const idSetSep = ";"

// ReadGroups reads all reconciliation groups from a groups.csv reader.
func ReadGroups(r io.Reader) ([]model.ReconciliationGroup, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = grpNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading groups CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var groups []model.ReconciliationGroup
	for i, rec := range records[1:] {
		g, err := unmarshalGroup(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// WriteGroups writes groups (including header).
func WriteGroups(w io.Writer, groups []model.ReconciliationGroup) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(GroupHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, g := range groups {
		if err := cw.Write(marshalGroup(g)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

func marshalGroup(g model.ReconciliationGroup) []string {
	row := make([]string, grpNumFields)
	row[grpColID] = g.ID
	row[grpColMovs] = strings.Join(g.MovementIDs, idSetSep)
	row[grpColInvs] = strings.Join(g.InvoiceIDs, idSetSep)
	row[grpColMovTot] = g.MovementTotal.String()
	row[grpColInvTot] = g.InvoiceTotal.String()
	row[grpColDiff] = g.Difference.String()
	row[grpColStore] = g.StoreScope
	return row
}

func unmarshalGroup(rec []string) (model.ReconciliationGroup, error) {
	movTot, err := decimal.NewFromString(rec[grpColMovTot])
	if err != nil {
		return model.ReconciliationGroup{}, fmt.Errorf("parsing movement total %q: %w", rec[grpColMovTot], err)
	}
	invTot, err := decimal.NewFromString(rec[grpColInvTot])
	if err != nil {
		return model.ReconciliationGroup{}, fmt.Errorf("parsing invoice total %q: %w", rec[grpColInvTot], err)
	}
	diff, err := decimal.NewFromString(rec[grpColDiff])
	if err != nil {
		return model.ReconciliationGroup{}, fmt.Errorf("parsing difference %q: %w", rec[grpColDiff], err)
	}

	movs := splitIDSet(rec[grpColMovs])
	invs := splitIDSet(rec[grpColInvs])
	if len(movs) == 0 || len(invs) == 0 {
		return model.ReconciliationGroup{}, fmt.Errorf("group %s has an empty member set", rec[grpColID])
	}

	return model.ReconciliationGroup{
		ID:            rec[grpColID],
		MovementIDs:   movs,
		InvoiceIDs:    invs,
		MovementTotal: movTot,
		InvoiceTotal:  invTot,
		Difference:    diff,
		StoreScope:    rec[grpColStore],
	}, nil
}

func splitIDSet(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, idSetSep)
}
