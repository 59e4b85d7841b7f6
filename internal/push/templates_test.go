package push

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "push_templates.yaml")
	content := `
"Карта для путешествий":
  template: "{name}, вы часто в поездках. Оформить карту?"
"Обмен валют":
  template: "{name}, курс в {fx_curr} стал выгоднее."
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	catalog, err := LoadCatalog(path)
	require.NoError(t, err)

	assert.Len(t, catalog, 2)
	assert.Contains(t, catalog["Карта для путешествий"].Template, "{name}")
	assert.Contains(t, catalog["Обмен валют"].Template, "{fx_curr}")
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()

	for _, product := range []string{"Карта для путешествий", "Премиальная карта", "Кредитная карта"} {
		tpl, ok := catalog[product]
		require.True(t, ok, product)
		assert.Contains(t, tpl.Template, "{name}")
	}
	assert.Contains(t, catalog["Кредитная карта"].Template, "{cat1}")
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "январе", monthName(1))
	assert.Equal(t, "декабре", monthName(12))
	assert.Equal(t, genericMonth, monthName(0))
	assert.Equal(t, genericMonth, monthName(13))
}
