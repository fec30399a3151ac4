// Package scraper fetches a short lead paragraph for headlines whose feed
// entry arrived without a summary. Enrichment is best effort: failures are
// logged and the item keeps its empty summary.
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/frnietz/lettaearthnewsletterbist/internal/feed"
	"github.com/frnietz/lettaearthnewsletterbist/internal/logger"
	"github.com/frnietz/lettaearthnewsletterbist/internal/textutil"
)

// maxExcerptRunes bounds the stored excerpt.
const maxExcerptRunes = 240

// minParagraphLen skips bylines, timestamps and similar short nodes.
const minParagraphLen = 40

type Scraper struct {
	client    *http.Client
	userAgent string
}

func New(timeout time.Duration, userAgent string) *Scraper {
	return &Scraper{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Excerpt loads the article page and returns its first readable paragraph.
func (s *Scraper) Excerpt(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("load page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("http status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	for _, selector := range selectorsFor(pageURL) {
		var text string
		doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			candidate := textutil.Clean(sel.Text())
			if len(candidate) >= minParagraphLen {
				text = candidate
				return false
			}
			return true
		})
		if text != "" {
			return trimExcerpt(text), nil
		}
	}

	return "", fmt.Errorf("no readable paragraph")
}

// EnrichItems fills empty summaries for up to max linked items. The input
// slice is returned with copies updated in place.
func (s *Scraper) EnrichItems(ctx context.Context, items []feed.Item, max int) []feed.Item {
	enriched := 0
	for i := range items {
		if enriched >= max {
			break
		}
		if items[i].Summary != "" || items[i].Link == "" || items[i].IsError {
			continue
		}

		excerpt, err := s.Excerpt(ctx, items[i].Link)
		if err != nil {
			logger.Debug("excerpt fetch failed", "url", items[i].Link, "error", err)
			continue
		}
		items[i].Summary = excerpt
		enriched++
	}
	return items
}

// selectorsFor prefers site-specific article body selectors and falls back
// to the usual suspects.
func selectorsFor(pageURL string) []string {
	switch {
	case strings.Contains(pageURL, "bloomberght.com"):
		return []string{".article-body p", ".news-detail p", "article p"}
	case strings.Contains(pageURL, "bigpara"):
		return []string{".news-content p", ".detail-text p", "article p"}
	case strings.Contains(pageURL, "ekonomim.com"):
		return []string{".news-detail p", ".content-text p", "article p"}
	default:
		return []string{"article p", ".article p", ".content p", ".post-content p", "main p", "p"}
	}
}

// trimExcerpt cuts at a sentence boundary when one fits the budget.
func trimExcerpt(s string) string {
	if utf8.RuneCountInString(s) <= maxExcerptRunes {
		return s
	}

	runes := []rune(s)
	cut := runes[:maxExcerptRunes]
	if idx := strings.LastIndex(string(cut), ". "); idx > 0 {
		return string(cut)[:idx+1]
	}
	return string(cut) + "…"
}
