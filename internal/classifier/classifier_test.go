package classifier

import (
	"testing"

	"poupafin/extrato/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		description string
		memo        string
		amount      string
		expected    models.SemanticType
	}{
		{"Transfer sent", "Transferência enviada pelo Pix", "", "-100", models.TypeTransferOut},
		{"Transfer received", "Transferência recebida pelo Pix", "", "100", models.TypeTransferIn},
		{"Transfer received open banking", "Transferencia recebida pelo Pix via open banking", "", "50", models.TypeTransferIn},
		{"Investment income rendimento", "Rendimento RDB", "", "12.34", models.TypeInvestmentIncome},
		{"Investment income resgate", "Resgate Tesouro", "", "500", models.TypeInvestmentIncome},
		{"Market buy", "Compra de FII HGLG11", "", "-300", models.TypeMarketOut},
		{"Market income", "Venda cripto BTC", "", "300", models.TypeMarketIncome},
		{"Investment out", "Aplicação RDB", "", "-150", models.TypeInvestmentOut},
		{"Investment income by sign", "Aplicação RDB", "", "150", models.TypeInvestmentIncome},
		{"Keyword in memo", "Lancamento", "aplicacao cdb", "-80", models.TypeInvestmentOut},
		{"Plain expense", "Mercado Central", "", "-89.90", models.TypeExpense},
		{"Plain income", "Salario Empresa", "", "3500", models.TypeIncome},
		{"Zero is income", "Ajuste", "", "0", models.TypeIncome},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.description, tc.memo, amt(tc.amount), true)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestClassifyPrecedence(t *testing.T) {
	// A returned investment transfer mentions both transfer and investment
	// wording; the transfer rule must win.
	got := Classify("Transferência recebida pelo Pix", "resgate aplicacao", amt("250"), true)
	assert.Equal(t, models.TypeTransferIn, got)

	// Income wording beats the generic investment bucket for the same text.
	got = Classify("Rendimento aplicacao RDB", "", amt("10"), true)
	assert.Equal(t, models.TypeInvestmentIncome, got)
}

func TestClassifyAutoDetectDisabled(t *testing.T) {
	assert.Equal(t, models.TypeExpense, Classify("Aplicação RDB", "", amt("-150"), false))
	assert.Equal(t, models.TypeIncome, Classify("Aplicação RDB", "", amt("150"), false))
}

func TestClassifyAccentInsensitive(t *testing.T) {
	withAccents := Classify("Transferência Enviada", "", amt("-10"), true)
	withoutAccents := Classify("transferencia enviada", "", amt("-10"), true)
	assert.Equal(t, withAccents, withoutAccents)
	assert.Equal(t, models.TypeTransferOut, withAccents)
}

func TestResolvePaymentMethod(t *testing.T) {
	tests := []struct {
		name         string
		description  string
		semanticType models.SemanticType
		expected     string
	}{
		{"Pix transfer", "Transferencia enviada pelo Pix", models.TypeTransferOut, "pix"},
		{"Pix purchase", "Pagamento via PIX padaria", models.TypeExpense, "pix"},
		{"Card purchase", "Mercado Central", models.TypeExpense, "debit"},
		{"Plain transfer", "Transferencia enviada TED", models.TypeTransferOut, "debit"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolvePaymentMethod(tc.description, "", tc.semanticType, "debit")
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestInvestmentKeywords(t *testing.T) {
	assert.Contains(t, InvestmentKeywords(), "aplicacao")
	assert.Contains(t, InvestmentKeywords(), "tesouro")
}
