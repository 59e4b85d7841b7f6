package push

import (
	"math/rand"
	"strings"
)

const (
	// maxLength is the hard budget for rendered notification text, in runes,
	// before the ellipsis marker.
	maxLength = 220
	// truncateTo is the safe budget targeted when a message runs over
	// maxLength and trailing words are dropped.
	truncateTo = 180
	// minWords keeps truncation from eating a whole message.
	minWords = 5
	// emojiProbability bounds how often a matching emoji is appended.
	emojiProbability = 0.3
)

// emojiRule pairs a lowercase keyword with the emoji it suggests. Rules are
// evaluated in order so emoji selection stays single-valued.
type emojiRule struct {
	keyword string
	emoji   string
}

var emojiRules = []emojiRule{
	{keyword: "путешестви", emoji: "✈️"},
	{keyword: "карт", emoji: "💳"},
	{keyword: "кешбэк", emoji: "💰"},
	{keyword: "ресторан", emoji: "🍽️"},
	{keyword: "инвест", emoji: "📈"},
	{keyword: "кредит", emoji: "🤝"},
}

// applyTOV normalizes rendered text against the tone-of-voice rules:
// repeated exclamation and question marks collapse, text over the length
// budget is truncated at a word boundary with an ellipsis marker, and at
// most one contextual emoji may be appended.
func applyTOV(text string, rng *rand.Rand) string {
	for strings.Contains(text, "!!") {
		text = strings.ReplaceAll(text, "!!", "!")
	}
	for strings.Contains(text, "??") {
		text = strings.ReplaceAll(text, "??", "?")
	}

	if len([]rune(text)) > maxLength {
		words := strings.Fields(text)
		for len([]rune(strings.Join(words, " "))) > truncateTo && len(words) > minWords {
			words = words[:len(words)-1]
		}
		text = strings.Join(words, " ") + "..."
	}

	lower := strings.ToLower(text)
	for _, rule := range emojiRules {
		if strings.Contains(lower, rule.keyword) && rng.Float64() < emojiProbability {
			text += " " + rule.emoji
			break
		}
	}

	return text
}
