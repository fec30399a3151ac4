// Package app wires configuration, pipeline, digest and presentation into
// one render cycle.
package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/frnietz/lettaearthnewsletterbist/internal/cache"
	"github.com/frnietz/lettaearthnewsletterbist/internal/config"
	"github.com/frnietz/lettaearthnewsletterbist/internal/dashboard"
	"github.com/frnietz/lettaearthnewsletterbist/internal/digest"
	"github.com/frnietz/lettaearthnewsletterbist/internal/feed"
	"github.com/frnietz/lettaearthnewsletterbist/internal/logger"
	"github.com/frnietz/lettaearthnewsletterbist/internal/market"
	"github.com/frnietz/lettaearthnewsletterbist/internal/metrics"
	"github.com/frnietz/lettaearthnewsletterbist/internal/pipeline"
	"github.com/frnietz/lettaearthnewsletterbist/internal/scraper"
)

// App owns the long-lived pieces shared across renders: the fetch cache
// and the configured pipeline. Everything else is computed per render.
type App struct {
	cfg      *config.Config
	loc      *time.Location
	pipeline *pipeline.Pipeline
	scraper  *scraper.Scraper
	composer *digest.Composer
	now      func() time.Time
}

// Render is the outcome of one cycle, ready for presentation.
type Render struct {
	Digest      string
	Items       []feed.Item
	Errors      []feed.Item
	GeneratedAt time.Time
}

func New(cfg *config.Config) (*App, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("resolve timezone: %w", err)
	}

	fetcher := feed.NewFetcher(cfg.FetchTimeout, cfg.PerFeedLimit, cfg.UserAgent, loc)
	resultCache := cache.New(cfg.CacheTTL, time.Now)

	p := pipeline.New(fetcher, cfg.ActiveFeeds(), cfg.PerFeedLimit, cfg.OnlyToday, loc, resultCache, time.Now)

	var sc *scraper.Scraper
	if cfg.MaxExcerpts > 0 {
		sc = scraper.New(cfg.FetchTimeout, cfg.UserAgent)
	}

	return &App{
		cfg:      cfg,
		loc:      loc,
		pipeline: p,
		scraper:  sc,
		composer: digest.NewComposer(cfg.StopWords, cfg.SectorKeywords, cfg.Highlights, loc),
		now:      time.Now,
	}, nil
}

// Run performs one render cycle.
func (a *App) Run(ctx context.Context) Render {
	start := time.Now()
	defer func() {
		metrics.Global.RecordRenderTime(time.Since(start))
		metrics.Global.SetLastRun()
	}()

	res := a.pipeline.Collect(ctx)
	items := digest.SortByPublished(res.Items)

	if a.scraper != nil {
		items = a.scraper.EnrichItems(ctx, items, a.cfg.MaxExcerpts)
	}

	doc := a.composer.Compose(items, a.now())

	logger.Info("render complete", "items", len(items), "feed_errors", len(res.Errors))
	return Render{
		Digest:      doc,
		Items:       items,
		Errors:      res.Errors,
		GeneratedAt: a.now().In(a.loc),
	}
}

// Refresh drops cached fetch results so the next Run refetches everything.
func (a *App) Refresh() {
	a.pipeline.Invalidate()
	logger.Info("fetch cache invalidated")
}

// WriteDashboard renders r as the HTML dashboard page.
func (a *App) WriteDashboard(w io.Writer, r Render) error {
	rows := make([]dashboard.Row, 0, len(r.Items))
	for _, it := range r.Items {
		published := ""
		if it.Published != nil {
			published = it.Published.In(a.loc).Format("2006-01-02 15:04")
		}
		rows = append(rows, dashboard.Row{
			Published: published,
			Source:    it.Source,
			Title:     it.Title,
			Link:      it.Link,
		})
	}

	notices := make([]dashboard.Notice, 0, len(r.Errors))
	for _, it := range r.Errors {
		notices = append(notices, dashboard.Notice{Source: it.Source, Message: it.Summary})
	}

	symbol := market.NormalizeSymbol(a.cfg.Ticker)
	page := dashboard.Page{
		Title:        "Letta Earth — Borsa İstanbul (Daily)",
		GeneratedAt:  r.GeneratedAt.Format("02.01.2006 15:04"),
		Digest:       r.Digest,
		Rows:         rows,
		Notices:      notices,
		Empty:        len(r.Items) == 0,
		TickerHint:   market.SuffixHint(symbol),
		ChartSymbol:  symbol,
		ChartURL:     market.ChartEmbedURL(symbol, a.cfg.ChartInterval, a.cfg.ChartTheme),
		ReportURLs:   a.reportURLs(),
		IframeHeight: a.cfg.IframeHeight,
	}

	return dashboard.Render(w, page)
}

// reportURLs runs every configured entry through the embed-list filter, so
// a multi-line blob and individual entries both work.
func (a *App) reportURLs() []string {
	out := make([]string, 0, len(a.cfg.ReportURLs))
	for _, u := range a.cfg.ReportURLs {
		out = append(out, market.ParseReportList(u)...)
	}
	return out
}
