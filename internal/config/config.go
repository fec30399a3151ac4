package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/frnietz/lettaearthnewsletterbist/internal/feed"
)

type Config struct {
	// Feed settings
	Feeds         []feed.Source
	ExtraFeeds    []feed.Source
	IncludeExtras bool
	PerFeedLimit  int
	FetchTimeout  time.Duration
	OnlyToday     bool
	UserAgent     string

	// Digest settings
	Timezone       string
	StopWords      []string
	SectorKeywords map[string][]string
	Highlights     int

	// Chart widget settings
	Ticker        string
	ChartInterval string
	ChartTheme    string

	// Report embeds
	ReportURLs   []string
	IframeHeight int

	// Excerpt enrichment
	MaxExcerpts int

	// App settings
	HTTPAddr string
	CacheTTL time.Duration
	Debug    bool
}

// fileConfig is the optional YAML overlay. Only fields the file actually
// sets override the defaults.
type fileConfig struct {
	Feeds      []feed.Source       `yaml:"feeds"`
	ExtraFeeds []feed.Source       `yaml:"extra_feeds"`
	StopWords  []string            `yaml:"stop_words"`
	Sectors    map[string][]string `yaml:"sectors"`
	Reports    []string            `yaml:"reports"`
	Ticker     string              `yaml:"ticker"`
	Timezone   string              `yaml:"timezone"`
}

func defaults() *Config {
	return &Config{
		Feeds: []feed.Source{
			{Name: "BloombergHT", URL: "https://www.bloomberght.com/rss"},
			{Name: "Bigpara", URL: "https://bigpara.hurriyet.com.tr/rss/"},
			{Name: "Ekonomim", URL: "https://www.ekonomim.com/rss"},
		},
		ExtraFeeds: []feed.Source{
			{Name: "CNBC-e", URL: "https://www.cnbce.com/rss"},
			{Name: "Doviz.com", URL: "https://www.doviz.com/news/rss"},
			{Name: "Foreks", URL: "https://www.foreks.com/rss/"},
		},
		IncludeExtras: true,
		PerFeedLimit:  30,
		FetchTimeout:  10 * time.Second,
		OnlyToday:     true,
		UserAgent:     "lettabist/1.0 (+https://github.com/frnietz/lettaearthnewsletterbist)",
		Timezone:      "Europe/Istanbul",
		Highlights:    8,
		Ticker:        "THYAO.IS",
		ChartInterval: "D",
		ChartTheme:    "light",
		IframeHeight:  700,
		MaxExcerpts:   3,
		HTTPAddr:      ":8080",
		CacheTTL:      10 * time.Minute,
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// environment overrides, in that order.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var fc fileConfig
	if err := yaml.NewDecoder(f).Decode(&fc); err != nil {
		return err
	}

	if len(fc.Feeds) > 0 {
		c.Feeds = fc.Feeds
	}
	if len(fc.ExtraFeeds) > 0 {
		c.ExtraFeeds = fc.ExtraFeeds
	}
	if len(fc.StopWords) > 0 {
		c.StopWords = fc.StopWords
	}
	if len(fc.Sectors) > 0 {
		c.SectorKeywords = fc.Sectors
	}
	if len(fc.Reports) > 0 {
		c.ReportURLs = fc.Reports
	}
	if fc.Ticker != "" {
		c.Ticker = fc.Ticker
	}
	if fc.Timezone != "" {
		c.Timezone = fc.Timezone
	}
	return nil
}

func (c *Config) applyEnv() {
	c.IncludeExtras = getEnvBoolOrDefault("INCLUDE_EXTRA_FEEDS", c.IncludeExtras)
	c.OnlyToday = getEnvBoolOrDefault("ONLY_TODAY", c.OnlyToday)
	c.Debug = getEnvBoolOrDefault("DEBUG", c.Debug)

	c.PerFeedLimit = getEnvIntOrDefault("PER_FEED_LIMIT", c.PerFeedLimit)
	c.IframeHeight = getEnvIntOrDefault("IFRAME_HEIGHT", c.IframeHeight)
	c.MaxExcerpts = getEnvIntOrDefault("MAX_EXCERPTS", c.MaxExcerpts)
	c.Highlights = getEnvIntOrDefault("HIGHLIGHTS", c.Highlights)

	if v := getEnvIntOrDefault("FETCH_TIMEOUT_SECONDS", 0); v > 0 {
		c.FetchTimeout = time.Duration(v) * time.Second
	}
	if v := getEnvIntOrDefault("CACHE_TTL_MINUTES", 0); v > 0 {
		c.CacheTTL = time.Duration(v) * time.Minute
	}

	c.Timezone = getEnvOrDefault("DISPLAY_TIMEZONE", c.Timezone)
	c.UserAgent = getEnvOrDefault("USER_AGENT", c.UserAgent)
	c.Ticker = getEnvOrDefault("TICKER", c.Ticker)
	c.ChartInterval = getEnvOrDefault("CHART_INTERVAL", c.ChartInterval)
	c.ChartTheme = getEnvOrDefault("CHART_THEME", c.ChartTheme)
	c.HTTPAddr = getEnvOrDefault("HTTP_ADDR", c.HTTPAddr)
}

// ActiveFeeds applies the extras toggle.
func (c *Config) ActiveFeeds() []feed.Source {
	out := append([]feed.Source(nil), c.Feeds...)
	if c.IncludeExtras {
		out = append(out, c.ExtraFeeds...)
	}
	return out
}

// Location resolves the display timezone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

func (c *Config) Validate() error {
	if len(c.Feeds) == 0 {
		return fmt.Errorf("at least one feed is required")
	}
	for _, f := range c.ActiveFeeds() {
		if f.Name == "" || f.URL == "" {
			return fmt.Errorf("feed entries need both name and url (got %q / %q)", f.Name, f.URL)
		}
	}
	if c.PerFeedLimit <= 0 {
		return fmt.Errorf("PER_FEED_LIMIT must be positive")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive")
	}
	if c.IframeHeight < 200 || c.IframeHeight > 2000 {
		return fmt.Errorf("IFRAME_HEIGHT %d out of range", c.IframeHeight)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("unknown timezone %q: %w", c.Timezone, err)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
