// Package category maps raw source labels onto canonical tags.
//
// The mapping tables are fixed at compile time: the upstream data uses a
// known set of Russian transaction categories and transfer type codes, and
// everything outside that set normalizes to TagOther. Both Normalize
// functions are pure and total.
package category

// TagOther is the canonical tag for any unrecognized category or type.
const TagOther = "other"

var categoryByLabel = map[string]string{
	"Одежда и обувь":         "fashion",
	"Продукты питания":       "groceries",
	"Кафе и рестораны":       "restaurants",
	"Медицина":               "healthcare",
	"Авто":                   "auto",
	"Спорт":                  "sports",
	"Развлечения":            "entertainment",
	"АЗС":                    "fuel",
	"Кино":                   "movies",
	"Питомцы":                "pets",
	"Книги":                  "books",
	"Цветы":                  "flowers",
	"Едим дома":              "food_delivery",
	"Смотрим дома":           "streaming",
	"Играем дома":            "gaming",
	"Косметика и Парфюмерия": "cosmetics",
	"Подарки":                "gifts",
	"Ремонт дома":            "home_improvement",
	"Мебель":                 "furniture",
	"Спа и массаж":           "spa",
	"Ювелирные украшения":    "jewelry",
	"Такси":                  "taxi",
	"Отели":                  "hotels",
	"Путешествия":            "travel",
}

var transferTagByType = map[string]string{
	"salary_in":               "income",
	"stipend_in":              "income",
	"family_in":               "income",
	"cashback_in":             "cashback",
	"refund_in":               "refund",
	"card_in":                 "transfer",
	"p2p_out":                 "transfer_out",
	"card_out":                "transfer_out",
	"atm_withdrawal":          "cash_withdrawal",
	"utilities_out":           "bills",
	"loan_payment_out":        "loan_payment",
	"cc_repayment_out":        "credit_card_payment",
	"installment_payment_out": "installment",
	"fx_buy":                  "fx",
	"fx_sell":                 "fx",
	"invest_out":              "investment",
	"invest_in":               "investment",
	"deposit_topup_out":       "deposit",
	"deposit_fx_topup_out":    "deposit_fx",
	"deposit_fx_withdraw_in":  "deposit_withdrawal",
	"gold_buy_out":            "gold",
	"gold_sell_in":            "gold",
}

// canonicalOrder is the fixed enumeration order of spending category tags.
// Ranking ties in "top spending categories" break by this order, so it must
// stay stable across releases.
var canonicalOrder = []string{
	"fashion", "groceries", "restaurants", "healthcare", "auto",
	"sports", "entertainment", "fuel", "movies", "pets", "books",
	"flowers", "food_delivery", "streaming", "gaming", "cosmetics",
	"gifts", "home_improvement", "furniture", "spa", "jewelry",
	"taxi", "hotels", "travel",
}

// Normalize maps a raw transaction category label to its canonical tag.
func Normalize(label string) string {
	if tag, ok := categoryByLabel[label]; ok {
		return tag
	}
	return TagOther
}

// NormalizeTransfer maps a raw transfer type code to its canonical tag.
func NormalizeTransfer(typeCode string) string {
	if tag, ok := transferTagByType[typeCode]; ok {
		return tag
	}
	return TagOther
}

// SpendingTags returns the canonical spending category tags in their fixed
// enumeration order. The returned slice is a copy; callers may reorder it.
func SpendingTags() []string {
	tags := make([]string, len(canonicalOrder))
	copy(tags, canonicalOrder)
	return tags
}

// Rank returns the position of a spending tag in the canonical enumeration
// order, or len(SpendingTags()) for tags outside it (including TagOther),
// so unknown tags always sort after known ones.
func Rank(tag string) int {
	for i, t := range canonicalOrder {
		if t == tag {
			return i
		}
	}
	return len(canonicalOrder)
}
