package feed

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/frnietz/lettaearthnewsletterbist/internal/logger"
	"github.com/frnietz/lettaearthnewsletterbist/internal/metrics"
	"github.com/frnietz/lettaearthnewsletterbist/internal/textutil"
)

// Fetcher retrieves and parses syndication feeds with a bounded timeout.
type Fetcher struct {
	parser  *gofeed.Parser
	timeout time.Duration
	limit   int
	loc     *time.Location
}

// NewFetcher builds a fetcher with its own HTTP client. The same timeout
// bounds both the network call and the overall parse.
func NewFetcher(timeout time.Duration, limit int, userAgent string, loc *time.Location) *Fetcher {
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent
	parser.Client = &http.Client{Timeout: timeout}

	return &Fetcher{
		parser:  parser,
		timeout: timeout,
		limit:   limit,
		loc:     loc,
	}
}

// Fetch retrieves one feed and maps its entries to items. Every failure
// mode (dial error, timeout, HTTP status, unparsable body) comes back as a
// single error item: one dead source must not abort the batch.
func (f *Fetcher) Fetch(ctx context.Context, src Source) []Item {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	parsed, err := f.parser.ParseURLWithContext(src.URL, ctx)
	if err != nil {
		logger.Warn("feed fetch failed", "source", src.Name, "url", src.URL, "error", err)
		metrics.Global.IncrementFetchErrors()
		return []Item{errorItem(src, err)}
	}

	metrics.Global.IncrementFeedsFetched()

	n := len(parsed.Items)
	if n > f.limit {
		n = f.limit
	}
	items := make([]Item, 0, n)
	for _, entry := range parsed.Items {
		if len(items) >= f.limit {
			break
		}
		items = append(items, f.convert(src, entry))
	}

	logger.Debug("feed fetched", "source", src.Name, "items", len(items))
	return items
}

func (f *Fetcher) convert(src Source, entry *gofeed.Item) Item {
	title := textutil.Clean(entry.Title)
	link := strings.TrimSpace(entry.Link)

	summary := textutil.Clean(entry.Description)
	if summary == "" {
		summary = textutil.Clean(entry.Content)
	}

	var published *time.Time
	switch {
	case entry.PublishedParsed != nil:
		t := entry.PublishedParsed.In(f.loc)
		published = &t
	case entry.UpdatedParsed != nil:
		t := entry.UpdatedParsed.In(f.loc)
		published = &t
	default:
		raw := entry.Published
		if raw == "" {
			raw = entry.Updated
		}
		if t, ok := ResolveTime(raw, f.loc); ok {
			published = &t
		}
	}

	return Item{
		Source:      src.Name,
		Title:       title,
		Link:        link,
		Summary:     summary,
		Published:   published,
		Fingerprint: Fingerprint(title, link),
	}
}

// errorItem synthesizes the placeholder for a failed source.
func errorItem(src Source, err error) Item {
	return Item{
		Source:      src.Name,
		Title:       fmt.Sprintf("[feed error] %s", src.Name),
		Link:        src.URL,
		Summary:     err.Error(),
		Fingerprint: Fingerprint(src.Name, src.URL),
		IsError:     true,
	}
}
