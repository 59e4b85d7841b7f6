package push

import "time"

// genericMonth is used when the month index falls outside the table.
const genericMonth = "этом месяце"

// monthLocative holds Russian month names in the locative case, as they
// appear after "в" in notification text.
var monthLocative = map[time.Month]string{
	time.January:   "январе",
	time.February:  "феврале",
	time.March:     "марте",
	time.April:     "апреле",
	time.May:       "мае",
	time.June:      "июне",
	time.July:      "июле",
	time.August:    "августе",
	time.September: "сентябре",
	time.October:   "октябре",
	time.November:  "ноябре",
	time.December:  "декабре",
}

func monthName(m time.Month) string {
	if name, ok := monthLocative[m]; ok {
		return name
	}
	return genericMonth
}

// categoryRU maps canonical category tags to their Russian display names
// for use inside notification text.
var categoryRU = map[string]string{
	"fashion":          "одежда",
	"groceries":        "продукты",
	"restaurants":      "рестораны",
	"healthcare":       "медицина",
	"auto":             "авто",
	"sports":           "спорт",
	"entertainment":    "развлечения",
	"fuel":             "АЗС",
	"movies":           "кино",
	"pets":             "питомцы",
	"books":            "книги",
	"flowers":          "цветы",
	"food_delivery":    "доставка еды",
	"streaming":        "стриминги",
	"gaming":           "игры",
	"cosmetics":        "косметика",
	"gifts":            "подарки",
	"home_improvement": "ремонт",
	"furniture":        "мебель",
	"spa":              "спа",
	"jewelry":          "украшения",
	"taxi":             "такси",
	"hotels":           "отели",
	"travel":           "путешествия",
}

func categoryDisplay(tag string) string {
	if name, ok := categoryRU[tag]; ok {
		return name
	}
	return tag
}
