package push

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Template is one product's push template with named placeholders such as
// {name}, {month}, {cat1}..{cat3} and {fx_curr}.
type Template struct {
	Template string `yaml:"template"`
}

// Catalog maps product display names to their push templates.
type Catalog map[string]Template

// LoadCatalog reads the push template catalog from a YAML document.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template catalog %s: %w", path, err)
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse template catalog %s: %w", path, err)
	}

	return catalog, nil
}

// DefaultCatalog returns the built-in template set used when no catalog
// document is readable. It covers the products most commonly recommended;
// everything else goes through the canned fallback messages.
func DefaultCatalog() Catalog {
	return Catalog{
		"Карта для путешествий": {
			Template: "{name}, в {month} вы много путешествовали и ездили на такси. С картой для путешествий часть расходов вернулась бы кешбэком. Оформить карту?",
		},
		"Премиальная карта": {
			Template: "{name}, у вас стабильно высокий остаток на счёте. Премиальная карта даст до 4% кешбэка и бесплатные снятия. Оформить сейчас?",
		},
		"Кредитная карта": {
			Template: "{name}, ваши топ-категории в {month}: {cat1}, {cat2}, {cat3}. Кредитная карта вернёт до 10% в любимых категориях. Оформить карту?",
		},
		"Обмен валют": {
			Template: "{name}, вы часто меняете валюту. В приложении выгодный курс обмена в {fx_curr} без комиссии. Настроить обмен?",
		},
	}
}
