package digest

import (
	"sort"
	"strings"

	"github.com/frnietz/lettaearthnewsletterbist/internal/feed"
)

// DefaultSectorKeywords buckets Borsa İstanbul news by coarse sector.
// Keywords are matched as lowercase substrings; stems like "bankac" catch
// the inflected forms.
var DefaultSectorKeywords = map[string][]string{
	"Bankacılık/Finans": {"banka", "bankac", "kredi", "faiz", "tcmb", "merkez bank", "tahvil"},
	"Sanayi":            {"sanayi", "çimento", "demir", "çelik", "otomotiv", "ihracat"},
	"Enerji":            {"enerji", "petrol", "doğalgaz", "elektrik", "yenilenebilir", "akaryakıt"},
	"Holding":           {"holding"},
	"GYO":               {"gyo", "gayrimenkul", "konut"},
	"Teknoloji":         {"teknoloji", "yazılım", "savunma", "havacılık"},
	"Perakende/Gıda":    {"gıda", "perakende", "tüketim", "içecek"},
}

// Sectors counts keyword matches per sector. An item can land in several
// buckets; buckets nobody matched are absent from the result.
func Sectors(items []feed.Item, keywords map[string][]string) map[string]int {
	counts := make(map[string]int)
	for _, it := range items {
		blob := strings.ToLower(it.Title + " " + it.Summary)
		for sector, kws := range keywords {
			for _, kw := range kws {
				if kw != "" && strings.Contains(blob, kw) {
					counts[sector]++
					break
				}
			}
		}
	}
	return counts
}

// rankSectors orders bucket names by count descending, name ascending on
// ties, so the sector line is deterministic.
func rankSectors(counts map[string]int) []string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}
