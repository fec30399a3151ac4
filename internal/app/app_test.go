package app

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frnietz/lettaearthnewsletterbist/internal/config"
	"github.com/frnietz/lettaearthnewsletterbist/internal/feed"
)

func feedBody(pubDate string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Yerel</title><link>https://example.com</link>
<item><title>Banka faiz kararını bekliyor</title><link>https://example.com/faiz</link>
<description>TCMB kararı öncesi bankacılık hisseleri yatay</description><pubDate>%s</pubDate></item>
</channel></rss>`, pubDate)
}

func testConfig(t *testing.T, feedURL string) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)

	cfg.Feeds = []feed.Source{{Name: "Yerel", URL: feedURL}}
	cfg.IncludeExtras = false
	cfg.OnlyToday = false
	cfg.MaxExcerpts = 0
	cfg.CacheTTL = time.Minute
	return cfg
}

func TestRunProducesDigestFromLiveFeed(t *testing.T) {
	pubDate := time.Now().UTC().Format(time.RFC1123Z)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, feedBody(pubDate))
	}))
	defer srv.Close()

	a, err := New(testConfig(t, srv.URL))
	require.NoError(t, err)

	render := a.Run(context.Background())

	require.Len(t, render.Items, 1)
	assert.Empty(t, render.Errors)
	assert.Contains(t, render.Digest, "Banka faiz kararını bekliyor")
	assert.Contains(t, render.Digest, "Bankacılık/Finans(1)")
}

func TestRunSurvivesDeadFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	a, err := New(testConfig(t, url))
	require.NoError(t, err)

	render := a.Run(context.Background())

	assert.Empty(t, render.Items)
	require.Len(t, render.Errors, 1)
	assert.Equal(t, url, render.Errors[0].Link)
	assert.Contains(t, render.Digest, "Genel piyasa akışı", "digest falls back instead of failing")
}

func TestRefreshForcesRefetch(t *testing.T) {
	var hits int
	pubDate := time.Now().UTC().Format(time.RFC1123Z)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprint(w, feedBody(pubDate))
	}))
	defer srv.Close()

	a, err := New(testConfig(t, srv.URL))
	require.NoError(t, err)

	a.Run(context.Background())
	a.Run(context.Background())
	assert.Equal(t, 1, hits, "second run is served from cache")

	a.Refresh()
	a.Run(context.Background())
	assert.Equal(t, 2, hits)
}

func TestWriteDashboard(t *testing.T) {
	pubDate := time.Now().UTC().Format(time.RFC1123Z)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, feedBody(pubDate))
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL)
	cfg.ReportURLs = []string{"https://lookerstudio.google.com/embed/reporting/abc"}

	a, err := New(cfg)
	require.NoError(t, err)

	render := a.Run(context.Background())

	var buf bytes.Buffer
	require.NoError(t, a.WriteDashboard(&buf, render))
	out := buf.String()

	assert.Contains(t, out, "Banka faiz kararını bekliyor")
	assert.Contains(t, out, "s.tradingview.com")
	assert.Contains(t, out, "lookerstudio.google.com")
}
