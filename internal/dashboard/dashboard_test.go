package dashboard

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderFullPage(t *testing.T) {
	page := Page{
		Title:       "Letta Earth — Borsa İstanbul (Daily)",
		GeneratedAt: "06.01.2025 10:00",
		Digest:      "### Borsa İstanbul — Günlük Piyasa Özeti",
		Rows: []Row{
			{Published: "2025-01-06 09:00", Source: "BloombergHT", Title: "Faiz kararı", Link: "https://example.com/faiz"},
			{Published: "", Source: "Bigpara", Title: "Linksiz başlık"},
		},
		Notices:      []Notice{{Source: "Foreks", Message: "context deadline exceeded"}},
		ChartSymbol:  "THYAO.IS",
		ChartURL:     "https://s.tradingview.com/widgetembed/?symbol=BIST%3ATHYAO",
		ReportURLs:   []string{"https://lookerstudio.google.com/embed/reporting/abc"},
		IframeHeight: 700,
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, page))
	out := buf.String()

	assert.Contains(t, out, "Günlük Piyasa Özeti")
	assert.Contains(t, out, `<a href="https://example.com/faiz">Faiz kararı</a>`)
	assert.Contains(t, out, "Linksiz başlık")
	assert.Contains(t, out, "Kaynak alınamadı: Foreks")
	assert.Contains(t, out, "THYAO.IS")
	assert.Contains(t, out, "lookerstudio.google.com")
	assert.Contains(t, out, `height="700"`)
}

func TestRenderEmptyState(t *testing.T) {
	page := Page{
		Title:       "Letta Earth — Borsa İstanbul (Daily)",
		GeneratedAt: "06.01.2025 10:00",
		Empty:       true,
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, page))
	out := buf.String()

	assert.Contains(t, out, "Filtreye göre haber bulunamadı")
	assert.NotContains(t, out, "Tüm Başlıklar")
}

func TestRenderEscapesMarkup(t *testing.T) {
	page := Page{
		Title:  "Panel",
		Digest: "özet",
		Rows:   []Row{{Source: "X", Title: `<script>alert("x")</script>`}},
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, page))

	assert.NotContains(t, buf.String(), "<script>alert")
}
