package importer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuadra-dev/cuadra/internal/model"
	"github.com/cuadra-dev/cuadra/internal/statement"
)

const spanishStatement = "Fecha;Importe;Concepto\n" +
	"31/01/2024;\"1.234,56\";NOMINA ENERO\n" +
	"01/02/2024;\"-45,90\";UBER EATS MADRID\n" +
	";10,00;SIN FECHA\n" +
	"02/02/2024;5,00;\n"

func TestRunSpanishStatement(t *testing.T) {
	res, err := Run(Request{AccountID: "acc_1", Raw: spanishStatement})
	require.NoError(t, err)

	require.Len(t, res.Accepted, 2)
	assert.Equal(t, 2, res.SkippedInvalid, "missing date and missing description rows")
	assert.Equal(t, 0, res.SkippedDuplicate)

	first := res.Accepted[0]
	assert.Equal(t, "2024-01-31", first.Date.Format("2006-01-02"))
	assert.True(t, decimal.RequireFromString("1234.56").Equal(first.Amount))
	assert.Equal(t, "NOMINA ENERO", first.Description)
	assert.Equal(t, model.KindBank, first.Kind)
	assert.Equal(t, model.ReconOpen, first.Recon)
	assert.NotEmpty(t, first.ID)
	assert.NotEmpty(t, first.Fingerprint)
}

func TestRunUnrecognizedColumnsAborts(t *testing.T) {
	_, err := Run(Request{AccountID: "acc_1", Raw: "foo,bar\n1,2\n"})
	assert.ErrorIs(t, err, model.ErrInputMalformed)
}

func TestReimportAddsNothing(t *testing.T) {
	first, err := Run(Request{AccountID: "acc_1", Raw: spanishStatement})
	require.NoError(t, err)
	require.Len(t, first.Accepted, 2)

	existing := make(map[string]bool)
	for _, tx := range first.Accepted {
		existing[tx.Fingerprint] = true
	}

	second, err := Run(Request{AccountID: "acc_1", Raw: spanishStatement, Existing: existing})
	require.NoError(t, err)
	assert.Empty(t, second.Accepted)
	assert.Equal(t, 2, second.SkippedDuplicate)
}

func TestReimportReorderedRowsAddsNothing(t *testing.T) {
	reordered := "Fecha;Importe;Concepto\n" +
		"01/02/2024;\"-45,90\";UBER EATS MADRID\n" +
		"31/01/2024;\"1.234,56\";NOMINA ENERO\n"

	first, err := Run(Request{AccountID: "acc_1", Raw: spanishStatement})
	require.NoError(t, err)
	existing := make(map[string]bool)
	for _, tx := range first.Accepted {
		existing[tx.Fingerprint] = true
	}

	second, err := Run(Request{AccountID: "acc_1", Raw: reordered, Existing: existing})
	require.NoError(t, err)
	assert.Empty(t, second.Accepted)
}

func TestDuplicateRowsInsideOneFile(t *testing.T) {
	raw := "date,amount,description\n" +
		"2024-01-05,10.00,SAME ROW\n" +
		"2024-01-05,10.00,SAME ROW\n"

	res, err := Run(Request{AccountID: "acc_1", Raw: raw})
	require.NoError(t, err)
	assert.Len(t, res.Accepted, 1)
	assert.Equal(t, 1, res.SkippedDuplicate)
}

func TestRunAppliesRules(t *testing.T) {
	raw := "date,amount,description\n2024-01-05,-12.00,UBER EATS TRIP\n"
	ruleSet := []model.Rule{
		{Needle: "uber", Category: "transport", Priority: 5, Direction: model.DirectionAny},
		{Needle: "uber eats", Category: "food", Party: "Uber Eats", Priority: 10, Direction: model.DirectionAny},
	}

	res, err := Run(Request{AccountID: "acc_1", Raw: raw, Rules: ruleSet})
	require.NoError(t, err)
	require.Len(t, res.Accepted, 1)
	assert.Equal(t, "food", res.Accepted[0].Category)
	assert.Equal(t, "Uber Eats", res.Accepted[0].Party)
}

func TestDetectColumns(t *testing.T) {
	cols, err := DetectColumns([]string{"f. valor", "importe (eur)", "concepto"})
	require.NoError(t, err)
	assert.Equal(t, ColumnMap{Date: 0, Amount: 1, Description: 2}, cols)

	_, err = DetectColumns([]string{"a", "b"})
	assert.ErrorIs(t, err, model.ErrInputMalformed)
}

func TestFingerprintStableAndBounded(t *testing.T) {
	d, ok := statement.NormalizeDate("2024-01-31")
	require.True(t, ok)
	a := decimal.RequireFromString("5.00")
	b := decimal.RequireFromString("5.0")

	fpA := Fingerprint("acc_1", d, a, " Coffee ")
	fpB := Fingerprint("acc_1", d, b, "Coffee")
	assert.Equal(t, fpA, fpB, "trailing zeros and padding must not split fingerprints")

	long := Fingerprint("acc_1", d, a, string(make([]byte, 1000)))
	assert.LessOrEqual(t, len(long), maxFingerprintLen)
}
