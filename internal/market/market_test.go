package market

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSymbol(t *testing.T) {
	assert.Equal(t, "THYAO.IS", NormalizeSymbol("  thyao.is "))
	assert.Equal(t, "", NormalizeSymbol("   "))
}

func TestSuffixHint(t *testing.T) {
	assert.Empty(t, SuffixHint("THYAO.IS"))
	assert.Empty(t, SuffixHint(""))
	assert.NotEmpty(t, SuffixHint("THYAO"))
	assert.Contains(t, SuffixHint("aselsan"), ".IS")
}

func TestChartEmbedURL(t *testing.T) {
	raw := ChartEmbedURL("ASELS.IS", "D", "light")
	require.NotEmpty(t, raw)

	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "s.tradingview.com", u.Host)
	assert.Equal(t, "BIST:ASELS", u.Query().Get("symbol"))
	assert.Equal(t, "D", u.Query().Get("interval"))
	assert.Equal(t, "light", u.Query().Get("theme"))
}

func TestChartEmbedURLEmptySymbol(t *testing.T) {
	assert.Empty(t, ChartEmbedURL("", "D", "light"))
	assert.Empty(t, ChartEmbedURL(".IS", "D", "light"))
}

func TestPresetsCarryBISTSuffix(t *testing.T) {
	for name, symbol := range Presets {
		assert.True(t, strings.HasSuffix(symbol, ".IS"), "preset %s has symbol %s", name, symbol)
	}
}

func TestParseReportList(t *testing.T) {
	raw := "https://lookerstudio.google.com/embed/reporting/abc\n" +
		"\n" +
		"  https://lookerstudio.google.com/embed/reporting/def  \n" +
		"http://insecure.example.com/report\n" +
		"not a url\n"

	urls := ParseReportList(raw)

	require.Len(t, urls, 2)
	assert.Equal(t, "https://lookerstudio.google.com/embed/reporting/abc", urls[0])
	assert.Equal(t, "https://lookerstudio.google.com/embed/reporting/def", urls[1])
}

func TestParseReportListEmpty(t *testing.T) {
	assert.Empty(t, ParseReportList(""))
	assert.Empty(t, ParseReportList("\n\n"))
}
