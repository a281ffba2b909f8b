package csvparser

import (
	"testing"

	"poupafin/extrato/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectMapping(t *testing.T) {
	tests := []struct {
		name     string
		headers  []string
		expected ColumnMapping
	}{
		{
			"Portuguese headers",
			[]string{"Data", "Valor", "Descricao"},
			ColumnMapping{Date: "Data", Amount: "Valor", Description: "Descricao"},
		},
		{
			"English headers with memo and type",
			[]string{"Date", "Amount", "Description", "Memo", "Type"},
			ColumnMapping{Date: "Date", Amount: "Amount", Description: "Description", Memo: "Memo", Type: "Type"},
		},
		{
			"Alternate Portuguese wording",
			[]string{"Dt Lancamento", "Vlr", "Historico", "Tipo"},
			ColumnMapping{Date: "Dt Lancamento", Amount: "Vlr", Description: "Historico", Type: "Tipo"},
		},
		{
			"Nothing recognized",
			[]string{"foo", "bar"},
			ColumnMapping{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, DetectMapping(tc.headers))
		})
	}
}

func TestDetectMappingFirstHeaderWins(t *testing.T) {
	mapping := DetectMapping([]string{"Data", "Data Contabil", "Valor", "Descricao"})
	assert.Equal(t, "Data", mapping.Date)
}

func TestColumnMappingComplete(t *testing.T) {
	assert.True(t, ColumnMapping{Date: "a", Amount: "b", Description: "c"}.Complete())
	assert.False(t, ColumnMapping{Date: "a", Amount: "b"}.Complete())
	assert.False(t, ColumnMapping{}.Complete())
}

func TestLift(t *testing.T) {
	doc := Document{
		Headers: []string{"Data", "Valor", "Descricao"},
		Rows: [][]string{
			{"05/01/2024", "200,50", "Salario"},
			{"06/01/2024", "-89,90", "Mercado Central"},
		},
	}

	result := Lift(doc, DetectMapping(doc.Headers))

	require.Len(t, result.Transactions, 2)
	assert.Equal(t, 0, result.Dropped)

	first := result.Transactions[0]
	assert.Equal(t, "csv-0", first.ID)
	assert.Equal(t, "2024-01-05", first.Date)
	assert.Equal(t, "200.5", first.Amount.String())
	assert.Equal(t, "Salario", first.Description)
	assert.Equal(t, models.SourceCSV, first.Source)

	second := result.Transactions[1]
	assert.Equal(t, "csv-1", second.ID)
	assert.Equal(t, "-89.9", second.Amount.String())
}

func TestLiftIncompleteMappingYieldsNothing(t *testing.T) {
	doc := Document{
		Headers: []string{"foo", "bar"},
		Rows:    [][]string{{"2024-01-05", "10.00"}},
	}

	result := Lift(doc, DetectMapping(doc.Headers))

	assert.Empty(t, result.Transactions)
	assert.Equal(t, 0, result.Dropped)
}

func TestLiftDropsMalformedRows(t *testing.T) {
	doc := Document{
		Headers: []string{"Data", "Valor", "Descricao"},
		Rows: [][]string{
			{"not-a-date", "10,00", "Bad date"},
			{"05/01/2024", "abc", "Bad amount"},
			{"05/01/2024", "10,00", ""},
			{"05/01/2024", "10,00", "Survivor"},
		},
	}

	result := Lift(doc, DetectMapping(doc.Headers))

	require.Len(t, result.Transactions, 1)
	assert.Equal(t, 3, result.Dropped)
	// Ids keep the raw row index, so overrides keyed on them stay stable
	// even when earlier rows are dropped.
	assert.Equal(t, "csv-3", result.Transactions[0].ID)
}

func TestLiftSignResolution(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		typeValue string
		expected  string
	}{
		{"Debit hint forces negative", "150,00", "Debito", "-150"},
		{"Debit hint on already negative", "-150,00", "D", "-150"},
		{"Credit hint forces positive", "-200,00", "Credito", "200"},
		{"Credit hint shorthand", "200,00", "c", "200"},
		{"No hint keeps raw minus", "-99,90", "", "-99.9"},
		{"No hint keeps positive", "99,90", "", "99.9"},
		{"Unrecognized hint falls back to sign", "-50,00", "whatever", "-50"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := Document{
				Headers: []string{"Data", "Valor", "Descricao", "Tipo"},
				Rows:    [][]string{{"05/01/2024", tc.amount, "Linha", tc.typeValue}},
			}

			result := Lift(doc, DetectMapping(doc.Headers))

			require.Len(t, result.Transactions, 1)
			assert.Equal(t, tc.expected, result.Transactions[0].Amount.String())
		})
	}
}

func TestLiftShortRows(t *testing.T) {
	doc := Document{
		Headers: []string{"Data", "Valor", "Descricao"},
		Rows:    [][]string{{"05/01/2024"}},
	}

	result := Lift(doc, DetectMapping(doc.Headers))

	assert.Empty(t, result.Transactions)
	assert.Equal(t, 1, result.Dropped)
}
