// Package push renders personalized notification text for a recommended
// product.
//
// Rendering never fails: a missing template, a placeholder without a value
// or any other anomaly degrades to one of the canned fallback messages, so
// the caller always gets usable text.
package push

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"nudge/internal/model"
	"nudge/internal/scoring"
)

// placeholderPattern finds unresolved {placeholder} markers left after
// substitution.
var placeholderPattern = regexp.MustCompile(`\{[a-z0-9_]+\}`)

var fallbackFormats = []string{
	"%s, у нас есть специальное предложение по %s. Посмотреть детали?",
	"%s, подобрали для вас выгодный вариант — %s. Оформить сейчас?",
	"%s, персональное предложение: %s с преимуществами для вас. Узнать больше?",
}

// Renderer turns a winning product and client attributes into notification
// text. The randomness source is injectable so tests can pin the fallback
// choice and emoji inclusion.
type Renderer struct {
	catalog Catalog
	rng     *rand.Rand
	now     func() time.Time
}

// NewRenderer creates a renderer over the given template catalog. A nil rng
// gets a time-seeded source.
func NewRenderer(catalog Catalog, rng *rand.Rand) *Renderer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Renderer{
		catalog: catalog,
		rng:     rng,
		now:     time.Now,
	}
}

// Render produces the notification text for one client. Output is always
// non-empty and within the tone-of-voice length budget.
func (r *Renderer) Render(product string, f *model.ClientFeatures, client model.Client) string {
	tpl, ok := r.catalog[product]
	if !ok || tpl.Template == "" {
		return r.fallback(product, client.Name)
	}

	text := expand(tpl.Template, r.params(product, f, client))
	if placeholderPattern.MatchString(text) {
		return r.fallback(product, client.Name)
	}

	return applyTOV(text, r.rng)
}

// params builds the substitution set for a template: the client name and
// current month always, plus product-specific derived values.
func (r *Renderer) params(product string, f *model.ClientFeatures, client model.Client) map[string]string {
	params := map[string]string{
		"name":  client.Name,
		"month": monthName(r.now().Month()),
	}

	switch product {
	case scoring.ProductCreditCard:
		top := topCategoriesDisplay(f)
		params["cat1"] = top[0]
		params["cat2"] = top[1]
		params["cat3"] = top[2]
	case scoring.ProductFXExchange:
		params["fx_curr"] = mainCurrency(f)
	}

	return params
}

func (r *Renderer) fallback(product, clientName string) string {
	format := fallbackFormats[r.rng.Intn(len(fallbackFormats))]
	text := fmt.Sprintf(format, clientName, strings.ToLower(product))
	return applyTOV(text, r.rng)
}

// topCategoriesDisplay returns exactly three Russian category names for the
// client's top spending categories, padded with generic labels when the
// client has fewer than three.
func topCategoriesDisplay(f *model.ClientFeatures) [3]string {
	display := [3]string{"покупки", "услуги", "развлечения"}
	if f == nil {
		return display
	}
	for i, tag := range scoring.TopSpendingCategories(f, 3) {
		display[i] = categoryDisplay(tag)
	}
	return display
}

// mainCurrency names the currency a client most likely exchanges. The
// source data carries no per-currency transfer breakdown, so the label
// defaults to dollars.
func mainCurrency(_ *model.ClientFeatures) string {
	return "долларах"
}

// expand substitutes {key} markers with their values.
func expand(template string, params map[string]string) string {
	pairs := make([]string, 0, len(params)*2)
	for key, value := range params {
		pairs = append(pairs, "{"+key+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
