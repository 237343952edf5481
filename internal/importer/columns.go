package importer

import (
	"fmt"
	"strings"

	"github.com/cuadra-dev/cuadra/internal/model"
)

// Header keywords recognized per column, English and Spanish. A header
// matches when it contains any keyword as a substring.
var (
	dateHeaders   = []string{"date", "fecha", "f. valor", "valor"}
	amountHeaders = []string{"amount", "importe", "cantidad", "monto"}
	descHeaders   = []string{"description", "concepto", "detalle", "texto", "descripcion"}
)

// ColumnMap holds the indexes of the three required statement columns.
type ColumnMap struct {
	Date        int
	Amount      int
	Description int
}

// DetectColumns locates the date, amount, and description columns in a
// lower-cased header row. Missing any of the three makes the whole
// statement unusable (model.ErrInputMalformed).
func DetectColumns(headers []string) (ColumnMap, error) {
	date := findColumn(headers, dateHeaders)
	amount := findColumn(headers, amountHeaders)
	desc := findColumn(headers, descHeaders)

	if date < 0 || amount < 0 || desc < 0 {
		return ColumnMap{}, fmt.Errorf("headers %v: %w", headers, model.ErrInputMalformed)
	}
	return ColumnMap{Date: date, Amount: amount, Description: desc}, nil
}

func findColumn(headers, candidates []string) int {
	for i, h := range headers {
		for _, c := range candidates {
			if strings.Contains(h, c) {
				return i
			}
		}
	}
	return -1
}
