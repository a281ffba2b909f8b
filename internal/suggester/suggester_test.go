package suggester

import (
	"testing"

	"poupafin/extrato/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCategories = []models.Category{
	{ID: "cat-salario", Name: "Salário", Type: models.BaseIncome},
	{ID: "cat-outros-in", Name: "Outros", Type: models.BaseIncome},
	{ID: "cat-mercado", Name: "Mercado", Type: models.BaseExpense},
	{ID: "cat-transporte", Name: "Transporte", Type: models.BaseExpense},
	{ID: "cat-moradia", Name: "Moradia", Type: models.BaseExpense},
	{ID: "cat-transf", Name: "Transferências", Type: models.BaseExpense},
	{ID: "cat-invest", Name: "Investimentos", Type: models.BaseExpense},
	{ID: "cat-outros-out", Name: "Outros", Type: models.BaseExpense},
}

func tx(description string) models.RawTransaction {
	return models.RawTransaction{Description: description}
}

func TestSuggestByKeyword(t *testing.T) {
	s := New(testCategories)

	tests := []struct {
		name         string
		description  string
		baseType     models.BaseType
		semanticType models.SemanticType
		expected     string
	}{
		{"Salary", "Salario Empresa LTDA", models.BaseIncome, models.TypeIncome, "cat-salario"},
		{"Groceries", "Supermercado Pão de Açúcar", models.BaseExpense, models.TypeExpense, "cat-mercado"},
		{"Ride hailing", "Uber *Trip", models.BaseExpense, models.TypeExpense, "cat-transporte"},
		{"Rent", "Aluguel apartamento", models.BaseExpense, models.TypeExpense, "cat-moradia"},
		{"Utilities fall back to moradia", "Conta de luz Enel", models.BaseExpense, models.TypeExpense, "cat-moradia"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := s.Suggest(tx(tc.description), tc.baseType, tc.semanticType)
			require.NotNil(t, got)
			assert.Equal(t, tc.expected, *got)
		})
	}
}

func TestSuggestTransfers(t *testing.T) {
	s := New(testCategories)

	got := s.Suggest(tx("Transferencia enviada pelo Pix"), models.BaseExpense, models.TypeTransferOut)
	require.NotNil(t, got)
	assert.Equal(t, "cat-transf", *got)

	// Income side has no transfer category, so the income fallback wins.
	got = s.Suggest(tx("Transferencia recebida"), models.BaseIncome, models.TypeTransferIn)
	require.NotNil(t, got)
	assert.Equal(t, "cat-outros-in", *got)
}

func TestSuggestInvestments(t *testing.T) {
	s := New(testCategories)

	got := s.Suggest(tx("Aplicação RDB"), models.BaseExpense, models.TypeInvestmentOut)
	require.NotNil(t, got)
	assert.Equal(t, "cat-invest", *got)

	// Investment wording routes to the investment category even when the
	// semantic type stayed generic.
	got = s.Suggest(tx("Compra Tesouro Direto"), models.BaseExpense, models.TypeExpense)
	require.NotNil(t, got)
	assert.Equal(t, "cat-invest", *got)
}

func TestSuggestNothingFits(t *testing.T) {
	s := New(testCategories)

	got := s.Suggest(tx("Estabelecimento desconhecido"), models.BaseExpense, models.TypeExpense)
	assert.Nil(t, got)
}

func TestSuggestCandidateMustExist(t *testing.T) {
	// Only a health category list; grocery wording finds no home.
	s := New([]models.Category{{ID: "cat-saude", Name: "Saúde", Type: models.BaseExpense}})

	assert.Nil(t, s.Suggest(tx("Supermercado Big"), models.BaseExpense, models.TypeExpense))

	got := s.Suggest(tx("Farmacia Droga Raia"), models.BaseExpense, models.TypeExpense)
	require.NotNil(t, got)
	assert.Equal(t, "cat-saude", *got)
}

func TestSuggestEmptyCategories(t *testing.T) {
	s := New(nil)

	assert.Nil(t, s.Suggest(tx("Salario"), models.BaseIncome, models.TypeIncome))
	assert.Nil(t, s.Suggest(tx("Transferencia enviada"), models.BaseExpense, models.TypeTransferOut))
}

func TestSuggestAccentInsensitiveNames(t *testing.T) {
	s := New(testCategories)

	// "Salário" in the list matches the unaccented rule candidate "salario".
	got := s.Suggest(tx("Pagamento salario"), models.BaseIncome, models.TypeIncome)
	require.NotNil(t, got)
	assert.Equal(t, "cat-salario", *got)
}
