package push

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fixedRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestApplyTOV_CollapsesPunctuation(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "double bang", in: "Отлично!! Смотрите", want: "Отлично! Смотрите"},
		{name: "many bangs", in: "Вау!!!!", want: "Вау!"},
		{name: "double question", in: "Хотите?? Да??", want: "Хотите? Да?"},
		{name: "clean text untouched", in: "Всё хорошо! Правда?", want: "Всё хорошо! Правда?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Text without emoji keywords so randomness cannot interfere.
			assert.Equal(t, tt.want, applyTOV(tt.in, fixedRand()))
		})
	}
}

func TestApplyTOV_TruncatesLongText(t *testing.T) {
	long := strings.Repeat("слово ", 60)

	got := applyTOV(long, fixedRand())

	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, len([]rune(got)), truncateTo+3)
	// Truncation happens on word boundaries, so no half word before the marker.
	assert.NotContains(t, got, "слов...")
}

func TestApplyTOV_ShortTextKeptIntact(t *testing.T) {
	text := "Обычное сообщение без лишнего."
	assert.Equal(t, text, applyTOV(text, fixedRand()))
}

func TestApplyTOV_AtMostOneEmoji(t *testing.T) {
	// Text matching several emoji keywords; across many seeds the output
	// must never gain more than one emoji.
	text := "Оформите карту для путешествий с кешбэком за рестораны"
	for seed := int64(0); seed < 50; seed++ {
		got := applyTOV(text, rand.New(rand.NewSource(seed)))

		extra := len([]rune(got)) - len([]rune(text))
		assert.LessOrEqual(t, extra, 3, "seed %d produced %q", seed, got)
		assert.True(t, strings.HasPrefix(got, text))
	}
}

func TestApplyTOV_EmojiDeterministicPerSeed(t *testing.T) {
	text := "Инвестиции без комиссии"
	first := applyTOV(text, rand.New(rand.NewSource(7)))
	second := applyTOV(text, rand.New(rand.NewSource(7)))
	assert.Equal(t, first, second)
}
