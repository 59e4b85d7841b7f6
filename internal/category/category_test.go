package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{name: "groceries", label: "Продукты питания", want: "groceries"},
		{name: "taxi", label: "Такси", want: "taxi"},
		{name: "movies", label: "Кино", want: "movies"},
		{name: "jewelry", label: "Ювелирные украшения", want: "jewelry"},
		{name: "unknown label", label: "Что-то новое", want: TagOther},
		{name: "empty label", label: "", want: TagOther},
		{name: "case sensitive", label: "такси", want: TagOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.label))
		})
	}
}

func TestNormalizeTransfer(t *testing.T) {
	tests := []struct {
		name     string
		typeCode string
		want     string
	}{
		{name: "salary is income", typeCode: "salary_in", want: "income"},
		{name: "stipend is income", typeCode: "stipend_in", want: "income"},
		{name: "fx buy", typeCode: "fx_buy", want: "fx"},
		{name: "fx sell", typeCode: "fx_sell", want: "fx"},
		{name: "gold buy", typeCode: "gold_buy_out", want: "gold"},
		{name: "invest in", typeCode: "invest_in", want: "investment"},
		{name: "unknown code", typeCode: "crypto_out", want: TagOther},
		{name: "empty code", typeCode: "", want: TagOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTransfer(tt.typeCode))
		})
	}
}

func TestSpendingTags(t *testing.T) {
	tags := SpendingTags()
	assert.Len(t, tags, 24)
	assert.Equal(t, "fashion", tags[0])
	assert.Equal(t, "travel", tags[len(tags)-1])

	// Mutating the returned slice must not affect the canonical order.
	tags[0] = "mutated"
	assert.Equal(t, "fashion", SpendingTags()[0])
}

func TestRank(t *testing.T) {
	assert.Equal(t, 0, Rank("fashion"))
	assert.Equal(t, 1, Rank("groceries"))
	assert.Less(t, Rank("taxi"), Rank("travel"))
	assert.Equal(t, len(SpendingTags()), Rank(TagOther))
	assert.Equal(t, len(SpendingTags()), Rank("nope"))
}
