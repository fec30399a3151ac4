// Package market handles the stock chart and report embed collaborators:
// ticker hygiene, the TradingView widget URL and the Looker Studio report
// list. It performs no network calls of its own.
package market

import (
	"net/url"
	"strings"
)

// bistSuffix is the Yahoo-style suffix for Borsa İstanbul tickers.
const bistSuffix = ".IS"

// Presets maps well-known BIST names to their ticker symbols.
var Presets = map[string]string{
	"ASELSAN": "ASELS.IS",
	"THYAO":   "THYAO.IS",
	"KCHOL":   "KCHOL.IS",
	"BIMAS":   "BIMAS.IS",
	"GARAN":   "GARAN.IS",
	"AKBNK":   "AKBNK.IS",
	"TUPRS":   "TUPRS.IS",
	"EREGL":   "EREGL.IS",
	"FROTO":   "FROTO.IS",
	"SISE":    "SISE.IS",
}

// NormalizeSymbol trims and uppercases user ticker input.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// SuffixHint returns a user-facing note when the symbol is missing the
// BIST suffix. This is a hint only, never a hard failure.
func SuffixHint(symbol string) string {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" || strings.HasSuffix(symbol, bistSuffix) {
		return ""
	}
	return "BIST için genelde .IS uzantısı kullanılır (örn: THYAO.IS)."
}

// ChartEmbedURL builds the TradingView widget URL for a symbol, chart
// interval and color theme. The .IS suffix becomes the BIST: exchange
// prefix TradingView expects.
func ChartEmbedURL(symbol, interval, theme string) string {
	code := strings.TrimSuffix(NormalizeSymbol(symbol), bistSuffix)
	if code == "" {
		return ""
	}

	q := url.Values{}
	q.Set("symbol", "BIST:"+code)
	q.Set("interval", interval)
	q.Set("theme", theme)
	q.Set("hidesidetoolbar", "1")
	q.Set("locale", "tr")

	return "https://s.tradingview.com/widgetembed/?" + q.Encode()
}

// ParseReportList extracts embeddable report URLs from a newline-separated
// block. Blank lines and non-HTTPS entries are dropped.
func ParseReportList(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		u := strings.TrimSpace(line)
		if u == "" || !strings.HasPrefix(u, "https://") {
			continue
		}
		out = append(out, u)
	}
	return out
}
