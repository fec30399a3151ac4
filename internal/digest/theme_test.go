package digest

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frnietz/lettaearthnewsletterbist/internal/feed"
)

func newsItem(title, summary string) feed.Item {
	return feed.Item{
		Source:      "Test",
		Title:       title,
		Summary:     summary,
		Link:        "https://example.com/x",
		Fingerprint: feed.Fingerprint(title, "https://example.com/x"),
	}
}

func TestThemesEmptyInput(t *testing.T) {
	assert.Empty(t, Themes(nil, DefaultStopWords))
	assert.Empty(t, Themes([]feed.Item{}, DefaultStopWords))
}

func TestThemesCapAndFilters(t *testing.T) {
	items := []feed.Item{
		newsItem("enflasyon verisi enflasyon beklentisi", "enflasyon tahmini"),
		newsItem("dolar kuru dolar endeksi", "dolar hareketi"),
		newsItem("altın gümüş bakır nikel çinko kalay kurşun", "emtia fiyatları"),
		newsItem("borsa bugün yüzde hisse", "piyasa ile daha gibi"),
		newsItem("kar kâr net", "üç harfli kelimeler elenir"),
	}

	themes := Themes(items, DefaultStopWords)

	assert.LessOrEqual(t, len(themes), 6)
	for _, tok := range themes {
		assert.GreaterOrEqual(t, utf8.RuneCountInString(tok), 4, "token %q too short", tok)
		assert.NotContains(t, DefaultStopWords, tok)
	}
	assert.Equal(t, "enflasyon", themes[0], "most frequent token must rank first")
}

func TestThemesTieBreakIsFirstAppearance(t *testing.T) {
	items := []feed.Item{
		newsItem("tahvil getirisi", ""),
		newsItem("temettü ödemesi", ""),
	}

	themes := Themes(items, nil)

	require.True(t, len(themes) >= 4)
	assert.Equal(t, []string{"tahvil", "getirisi", "temettü", "ödemesi"}, themes)
}

func TestThemesStripsPunctuation(t *testing.T) {
	items := []feed.Item{
		newsItem("Şirket, %12'lik artışla rekor kırdı! (analiz)", ""),
	}

	themes := Themes(items, nil)

	assert.Contains(t, themes, "artışla")
	assert.Contains(t, themes, "rekor")
	for _, tok := range themes {
		assert.NotContains(t, tok, "%")
		assert.NotContains(t, tok, ",")
	}
}
