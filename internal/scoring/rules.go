package scoring

import (
	"sort"

	"nudge/internal/category"
	"nudge/internal/model"
)

// Product display names, used verbatim in catalog documents, push templates
// and the output table.
const (
	ProductTravelCard    = "Карта для путешествий"
	ProductPremiumCard   = "Премиальная карта"
	ProductCreditCard    = "Кредитная карта"
	ProductFXExchange    = "Обмен валют"
	ProductCashLoan      = "Кредит наличными"
	ProductDepositMulti  = "Депозит Мультивалютный"
	ProductDepositSaving = "Депозит Сберегательный"
	ProductDepositAccum  = "Депозит Накопительный"
	ProductInvestments   = "Инвестиции"
	ProductGoldBars      = "Золотые слитки"
)

// DefaultProduct is substituted by callers when no product scores positive
// for a client.
const DefaultProduct = ProductPremiumCard

// RuleFunc is one product's scoring rule: a pure function of a client's
// feature row and the product's catalog parameters. Results below zero are
// clamped by the engine.
type RuleFunc func(f *model.ClientFeatures, p Params) float64

// catalogOrder fixes the iteration order of the product catalog. Ranking is
// stable with respect to this order for equal scores.
var catalogOrder = []string{
	ProductTravelCard,
	ProductPremiumCard,
	ProductCreditCard,
	ProductFXExchange,
	ProductCashLoan,
	ProductDepositMulti,
	ProductDepositSaving,
	ProductDepositAccum,
	ProductInvestments,
	ProductGoldBars,
}

var rules = map[string]RuleFunc{
	ProductTravelCard:    scoreTravelCard,
	ProductPremiumCard:   scorePremiumCard,
	ProductCreditCard:    scoreCreditCard,
	ProductFXExchange:    scoreFXExchange,
	ProductCashLoan:      scoreCashLoan,
	ProductDepositMulti:  scoreDeposit,
	ProductDepositSaving: scoreDeposit,
	ProductDepositAccum:  scoreDeposit,
	ProductInvestments:   scoreInvestments,
	ProductGoldBars:      scoreGoldBars,
}

// scoreTravelCard estimates cashback on travel-adjacent spending.
func scoreTravelCard(f *model.ClientFeatures, p Params) float64 {
	spend := f.Spending("travel") + f.Spending("taxi") + f.Spending("hotels")
	if spend > p.value("min_threshold", 30000) {
		return spend * 0.04
	}
	return 0
}

// scorePremiumCard combines a capped balance benefit with cashback on
// restaurant and jewelry spending.
func scorePremiumCard(f *model.ClientFeatures, p Params) float64 {
	if f.AvgMonthlyBalance <= p.value("min_balance", 500000) {
		return 0
	}
	benefit := f.AvgMonthlyBalance * 0.04
	if benefit > 100000 {
		benefit = 100000
	}
	return benefit + (f.Spending("restaurants")+f.Spending("jewelry"))*0.02
}

// scoreCreditCard estimates cashback over the client's top-3 spending
// categories, for clients with enough activity to be credit-worthy signals.
func scoreCreditCard(f *model.ClientFeatures, p Params) float64 {
	top := TopSpendingCategories(f, 3)
	if len(top) == 0 || f.TransactionCount <= int(p.value("min_transactions", 10)) {
		return 0
	}
	var sum float64
	for _, tag := range top {
		sum += f.Spending(tag)
	}
	return sum * 0.1
}

// scoreFXExchange estimates spread savings on foreign exchange volume.
func scoreFXExchange(f *model.ClientFeatures, p Params) float64 {
	volume := f.TransferVolume("fx")
	if volume > p.value("min_volume", 100000) {
		return volume * 0.01
	}
	return 0
}

// scoreCashLoan flags clients spending well beyond their balance.
func scoreCashLoan(f *model.ClientFeatures, _ Params) float64 {
	if f.TotalSpent > f.AvgMonthlyBalance*2 {
		return 1000
	}
	return 0
}

// scoreDeposit estimates expected interest; shared by all three deposit
// variants.
func scoreDeposit(f *model.ClientFeatures, p Params) float64 {
	if f.AvgMonthlyBalance > p.value("min_balance", 500000) {
		return f.AvgMonthlyBalance * 0.15
	}
	return 0
}

func scoreInvestments(f *model.ClientFeatures, p Params) float64 {
	if f.TransferVolume("investment") > 0 || f.AvgMonthlyBalance > p.value("min_balance", 1000000) {
		return 5000
	}
	return 0
}

func scoreGoldBars(f *model.ClientFeatures, p Params) float64 {
	if f.TransferVolume("gold") > 0 || f.AvgMonthlyBalance > p.value("min_balance", 2000000) {
		return 3000
	}
	return 0
}

// TopSpendingCategories returns up to n canonical category tags ordered by
// summed spend, descending. Only tags from the fixed canonical list count;
// ties break by the list's enumeration order, so the result is deterministic
// regardless of event order.
func TopSpendingCategories(f *model.ClientFeatures, n int) []string {
	var tags []string
	for _, tag := range category.SpendingTags() {
		if _, ok := f.CategorySpending[tag]; ok {
			tags = append(tags, tag)
		}
	}

	sort.SliceStable(tags, func(i, j int) bool {
		a, b := f.Spending(tags[i]), f.Spending(tags[j])
		if a != b {
			return a > b
		}
		return category.Rank(tags[i]) < category.Rank(tags[j])
	})

	if len(tags) > n {
		tags = tags[:n]
	}
	return tags
}
