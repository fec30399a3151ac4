package digest

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/frnietz/lettaearthnewsletterbist/internal/feed"
	"github.com/frnietz/lettaearthnewsletterbist/internal/metrics"
)

const (
	// defaultHighlights is how many linked headlines the digest lists.
	defaultHighlights = 8

	fallbackThemeLine  = "Genel piyasa akışı"
	fallbackSectorLine = "Sektörel dağılım net değil"
	fallbackHighlights = "_Listelenecek manşet bulunamadı._"
)

// Composer renders the Markdown market digest. The zero value is not
// usable; construct with NewComposer.
type Composer struct {
	stopWords   []string
	sectorWords map[string][]string
	highlights  int
	loc         *time.Location
}

func NewComposer(stopWords []string, sectorWords map[string][]string, highlights int, loc *time.Location) *Composer {
	if stopWords == nil {
		stopWords = DefaultStopWords
	}
	if sectorWords == nil {
		sectorWords = DefaultSectorKeywords
	}
	if highlights <= 0 {
		highlights = defaultHighlights
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Composer{
		stopWords:   stopWords,
		sectorWords: sectorWords,
		highlights:  highlights,
		loc:         loc,
	}
}

// Compose builds the digest document: date-stamped header, theme line,
// sector line, a fixed narrative paragraph and the highlighted headline
// list. Deterministic given identical items and now.
func (c *Composer) Compose(items []feed.Item, now time.Time) string {
	sorted := SortByPublished(items)

	themes := Themes(sorted, c.stopWords)
	sectors := Sectors(sorted, c.sectorWords)

	themeLine := fallbackThemeLine
	if len(themes) > 0 {
		top := themes
		if len(top) > 3 {
			top = top[:3]
		}
		themeLine = strings.Join(top, " / ")
	}

	sectorLine := fallbackSectorLine
	if len(sectors) > 0 {
		ranked := rankSectors(sectors)
		if len(ranked) > 3 {
			ranked = ranked[:3]
		}
		parts := make([]string, 0, len(ranked))
		for _, name := range ranked {
			parts = append(parts, fmt.Sprintf("%s(%d)", name, sectors[name]))
		}
		sectorLine = strings.Join(parts, ", ")
	}

	var links []string
	for _, it := range sorted {
		if len(links) >= c.highlights {
			break
		}
		if it.Link == "" {
			continue
		}
		links = append(links, fmt.Sprintf("- [%s] [%s](%s)", it.Source, it.Title, it.Link))
	}
	highlightBlock := fallbackHighlights
	if len(links) > 0 {
		highlightBlock = strings.Join(links, "\n")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "### Borsa İstanbul — Günlük Piyasa Özeti (%s)\n\n", now.In(c.loc).Format("02 Jan 2006"))
	fmt.Fprintf(&b, "**Günün Teması:** *%s*\n", themeLine)
	fmt.Fprintf(&b, "**Öne çıkan kümeler:** %s\n\n", sectorLine)
	fmt.Fprintf(&b, "Bugün haber akışında **%s** başlıkları öne çıktı. Manşet yoğunluğu özellikle **%s** etrafında toplandı. "+
		"Genel görünüm, haber bazında \"seçici\" bir fiyatlama ve sektörler arası rota değişimlerine işaret ediyor.\n\n",
		themeLine, sectorLine)
	b.WriteString("Haberler içinde tekrar eden ortak noktalar; politika/faiz beklentileri, şirket özelinde gelişmeler " +
		"(bilanço, yatırım, sözleşme), ve küresel risk iştahındaki dalgalanmalar. Aşağıda, sinyal gücü yüksek manşetlerin " +
		"kısa listesi yer alıyor.\n\n")
	b.WriteString("#### Öne Çıkanlar\n")
	b.WriteString(highlightBlock)
	b.WriteString("\n")

	metrics.Global.IncrementDigestsComposed()
	return b.String()
}

// SortByPublished orders newest first; items without a timestamp sort as
// oldest. The input slice is not modified.
func SortByPublished(items []feed.Item) []feed.Item {
	out := append([]feed.Item(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := out[i].Published, out[j].Published
		if ti == nil {
			return false
		}
		if tj == nil {
			return true
		}
		return ti.After(*tj)
	})
	return out
}
