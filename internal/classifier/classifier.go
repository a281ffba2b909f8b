// Package classifier assigns each transaction a semantic type from a fixed
// keyword taxonomy plus a sign rule. The rules are an ordered table of
// (predicate, result) pairs evaluated first-match-wins over the normalized
// description text.
package classifier

import (
	"poupafin/extrato/internal/models"
	"poupafin/extrato/internal/textnorm"

	"github.com/shopspring/decimal"
)

// Keyword groups, already in normalized form. The wording of Brazilian bank
// statements overlaps heavily; rule order below resolves the ambiguity.
var (
	transferOutKeywords = []string{
		"transferencia enviada pelo pix",
		"transferencia enviada",
	}

	transferInKeywords = []string{
		"transferencia recebida pelo pix",
		"transferencia recebida pelo pix via open banking",
		"transferencia recebida",
	}

	investmentIncomeKeywords = []string{
		"devolucao",
		"rendimento",
		"resgate",
		"transferencia de saldo nuinvest",
	}

	marketKeywords = []string{
		"compra de fii",
		"fii",
		"compra de criptomoedas",
		"cripto",
		"btc",
	}

	investmentKeywords = []string{
		"aplicacao rdb",
		"aplicacao cdb",
		"aplicacao em investimento",
		"aplicacao",
		"investimento",
		"nuinvest",
		"transferencia de saldo nuinvest",
		"tesouro",
		"fundo",
		"rdb",
		"cdb",
	}
)

// instantPaymentMarker identifies Brazil's instant-payment channel in
// statement wording; it drives payment-method resolution for expenses.
const instantPaymentMarker = "pix"

// rule is one classification step: when the predicate matches, resolve wins.
type rule struct {
	match   func(normalized string) bool
	resolve func(amount decimal.Decimal) models.SemanticType
}

func keywordRule(keywords []string, resolve func(decimal.Decimal) models.SemanticType) rule {
	return rule{
		match:   func(normalized string) bool { return textnorm.HasKeyword(normalized, keywords) },
		resolve: resolve,
	}
}

func fixed(t models.SemanticType) func(decimal.Decimal) models.SemanticType {
	return func(decimal.Decimal) models.SemanticType { return t }
}

func signResolved(negative, nonNegative models.SemanticType) func(decimal.Decimal) models.SemanticType {
	return func(amount decimal.Decimal) models.SemanticType {
		if amount.IsNegative() {
			return negative
		}
		return nonNegative
	}
}

// rules is the precedence order. Transfer and investment-income keywords are
// checked before the generic investment and market buckets: a returned
// investment transfer must not be miscoded as a new investment outflow.
var rules = []rule{
	keywordRule(transferOutKeywords, fixed(models.TypeTransferOut)),
	keywordRule(transferInKeywords, fixed(models.TypeTransferIn)),
	keywordRule(investmentIncomeKeywords, fixed(models.TypeInvestmentIncome)),
	keywordRule(marketKeywords, signResolved(models.TypeMarketOut, models.TypeMarketIncome)),
	keywordRule(investmentKeywords, signResolved(models.TypeInvestmentOut, models.TypeInvestmentIncome)),
}

// Classify assigns the semantic type of a transaction. With autoDetect
// disabled it degenerates to the sign rule: non-negative means income.
// The description used for matching is the effective one: callers pass the
// overlay-resolved description so user corrections feed reclassification.
func Classify(description, memo string, amount decimal.Decimal, autoDetect bool) models.SemanticType {
	if !autoDetect {
		return signFallback(amount)
	}

	normalized := textnorm.Key(description, memo)
	for _, r := range rules {
		if r.match(normalized) {
			return r.resolve(amount)
		}
	}
	return signFallback(amount)
}

func signFallback(amount decimal.Decimal) models.SemanticType {
	if amount.IsNegative() {
		return models.TypeExpense
	}
	return models.TypeIncome
}

// ResolvePaymentMethod resolves the payment method recorded on an expense
// commit. Transfers sent over the instant-payment rail, or any wording that
// mentions it, resolve to "pix"; everything else uses the configured default.
func ResolvePaymentMethod(description, memo string, semanticType models.SemanticType, defaultMethod string) string {
	normalized := textnorm.Key(description, memo)
	if semanticType == models.TypeTransferOut && textnorm.HasKeyword(normalized, []string{instantPaymentMarker}) {
		return instantPaymentMarker
	}
	if textnorm.HasKeyword(normalized, []string{instantPaymentMarker}) {
		return instantPaymentMarker
	}
	return defaultMethod
}

// InvestmentKeywords exposes the investment keyword group for the category
// suggester, which maps keyword hits to the user's investment category.
func InvestmentKeywords() []string {
	return investmentKeywords
}
