// Package suggester proposes a best-guess category per transaction from the
// user's own category list. Suggestions are non-binding one-shot defaults:
// they are recomputed with the rows but never overwrite a user's override.
package suggester

import (
	"poupafin/extrato/internal/classifier"
	"poupafin/extrato/internal/models"
	"poupafin/extrato/internal/textnorm"
)

// nameRule maps a keyword set to candidate category names, scoped to a base
// type. The first rule whose keywords match AND whose candidate name exists
// in the user's categories wins.
type nameRule struct {
	baseType   models.BaseType
	keywords   []string
	candidates []string
}

// Category names are user data with no fixed ids, so rules carry candidate
// names and resolution happens against whatever the user actually created.
var nameRules = []nameRule{
	{models.BaseIncome, []string{"salario", "pagamento", "remuneracao"}, []string{"salario", "renda"}},
	{models.BaseIncome, []string{"juros", "rendimento"}, []string{"rendimentos", "investimentos"}},
	{models.BaseExpense, []string{"mercado", "supermercado", "atacadao", "hortifruti"}, []string{"mercado", "alimentacao"}},
	{models.BaseExpense, []string{"ifood", "restaurante", "lanchonete", "padaria"}, []string{"alimentacao", "restaurantes"}},
	{models.BaseExpense, []string{"uber", "99app", "99 ", "posto", "combustivel", "estacionamento"}, []string{"transporte"}},
	{models.BaseExpense, []string{"aluguel", "condominio", "iptu"}, []string{"moradia", "casa"}},
	{models.BaseExpense, []string{"farmacia", "drogaria", "consulta", "exame"}, []string{"saude"}},
	{models.BaseExpense, []string{"luz", "energia", "agua", "internet", "telefone", "celular"}, []string{"contas", "moradia"}},
	{models.BaseExpense, []string{"netflix", "spotify", "assinatura", "streaming"}, []string{"assinaturas", "lazer"}},
}

var (
	transferNames   = []string{"transferencias", "transferencia"}
	investmentNames = []string{"investimentos", "investimento"}
	fallbackNames   = []string{"outros"}
)

// Suggester resolves category names against one user's category list.
// Build it once per loaded list; the indexes are plain maps and cheap.
type Suggester struct {
	byType map[models.BaseType]map[string]string
}

// New builds a suggester over the user's categories, indexing normalized
// category names per base type.
func New(categories []models.Category) *Suggester {
	byType := map[models.BaseType]map[string]string{
		models.BaseIncome:  {},
		models.BaseExpense: {},
	}
	for _, category := range categories {
		index, ok := byType[category.Type]
		if !ok {
			continue
		}
		key := textnorm.Normalize(category.Name)
		if _, exists := index[key]; !exists {
			index[key] = category.ID
		}
	}
	return &Suggester{byType: byType}
}

// Suggest proposes a category id for a transaction, or nil when nothing
// fits. "No category" is a valid terminal state, not an error.
func (s *Suggester) Suggest(tx models.RawTransaction, baseType models.BaseType, semanticType models.SemanticType) *string {
	normalized := textnorm.Key(tx.Description, tx.Memo)

	if semanticType.IsTransfer() {
		return s.lookup(baseType, transferNames, fallbackNames)
	}

	if semanticType.IsReserveOut() ||
		semanticType == models.TypeInvestmentIncome || semanticType == models.TypeMarketIncome ||
		textnorm.HasKeyword(normalized, classifier.InvestmentKeywords()) {
		return s.lookup(baseType, investmentNames, fallbackNames)
	}

	for _, rule := range nameRules {
		if rule.baseType != baseType {
			continue
		}
		if !textnorm.HasKeyword(normalized, rule.keywords) {
			continue
		}
		if id := s.resolve(baseType, rule.candidates); id != nil {
			return id
		}
	}

	return nil
}

// lookup resolves the first existing name from primary, then from fallback.
func (s *Suggester) lookup(baseType models.BaseType, primary, fallback []string) *string {
	if id := s.resolve(baseType, primary); id != nil {
		return id
	}
	return s.resolve(baseType, fallback)
}

func (s *Suggester) resolve(baseType models.BaseType, names []string) *string {
	index := s.byType[baseType]
	for _, name := range names {
		if id, ok := index[name]; ok {
			resolved := id
			return &resolved
		}
	}
	return nil
}
