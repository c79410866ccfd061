package config

import (
	"time"

	"golang-stock-dashboard/pkg/config"
)

// YahooFinance holds the configuration for the Yahoo Finance chart API.
type YahooFinance struct {
	BaseURL             string        `mapstructure:"base_url"`
	Range               string        `mapstructure:"range"`
	Interval            string        `mapstructure:"interval"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
}

// Market holds quote cache and warm job configuration.
type Market struct {
	QuoteCacheTTL  time.Duration `mapstructure:"quote_cache_ttl"`
	WarmCron       string        `mapstructure:"warm_cron"`
	HistoryCandles int           `mapstructure:"history_candles"`
	HistoryLimit   int           `mapstructure:"history_limit"`
}

// Suggest holds typeahead configuration.
type Suggest struct {
	MaxResults int           `mapstructure:"max_results"`
	CacheTTL   time.Duration `mapstructure:"cache_ttl"`
}

// News holds the news feed configuration.
type News struct {
	FeedBaseURL   string        `mapstructure:"feed_base_url"`
	MaxItems      int           `mapstructure:"max_items"`
	Timeout       time.Duration `mapstructure:"timeout"`
	EnrichSources bool          `mapstructure:"enrich_sources"`
}

// Recommendation holds the recommendation engine configuration.
type Recommendation struct {
	CacheTTL      time.Duration `mapstructure:"cache_ttl"`
	MaxConcurrent int           `mapstructure:"max_concurrent"`
}

// Stream holds the websocket price stream configuration.
type Stream struct {
	PushInterval time.Duration `mapstructure:"push_interval"`
}

// Config holds the full configuration for the dashboard service.
type Config struct {
	App            config.App      `mapstructure:"app"`
	Logger         config.Logger   `mapstructure:"logger"`
	Database       config.Database `mapstructure:"database"`
	Redis          config.Redis    `mapstructure:"redis"`
	API            config.API      `mapstructure:"api"`
	YahooFinance   YahooFinance    `mapstructure:"yahoo_finance"`
	Market         Market          `mapstructure:"market"`
	Suggest        Suggest         `mapstructure:"suggest"`
	News           News            `mapstructure:"news"`
	Recommendation Recommendation  `mapstructure:"recommendation"`
	Stream         Stream          `mapstructure:"stream"`
}

// Load loads the dashboard service configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.YahooFinance.BaseURL == "" {
		cfg.YahooFinance.BaseURL = "https://query1.finance.yahoo.com"
	}
	if cfg.YahooFinance.Range == "" {
		cfg.YahooFinance.Range = "3mo"
	}
	if cfg.YahooFinance.Interval == "" {
		cfg.YahooFinance.Interval = "1d"
	}
	if cfg.YahooFinance.Timeout == 0 {
		cfg.YahooFinance.Timeout = 10 * time.Second
	}
	if cfg.YahooFinance.MaxRequestPerMinute == 0 {
		cfg.YahooFinance.MaxRequestPerMinute = 60
	}
	if cfg.Market.QuoteCacheTTL == 0 {
		cfg.Market.QuoteCacheTTL = 2 * time.Minute
	}
	if cfg.Market.HistoryCandles == 0 {
		cfg.Market.HistoryCandles = 60
	}
	if cfg.Market.HistoryLimit == 0 {
		cfg.Market.HistoryLimit = 20
	}
	if cfg.Suggest.MaxResults == 0 {
		cfg.Suggest.MaxResults = 10
	}
	if cfg.Suggest.CacheTTL == 0 {
		cfg.Suggest.CacheTTL = 5 * time.Minute
	}
	if cfg.News.FeedBaseURL == "" {
		cfg.News.FeedBaseURL = "https://news.google.com/rss/search"
	}
	if cfg.News.MaxItems == 0 {
		cfg.News.MaxItems = 8
	}
	if cfg.News.Timeout == 0 {
		cfg.News.Timeout = 8 * time.Second
	}
	if cfg.Recommendation.CacheTTL == 0 {
		cfg.Recommendation.CacheTTL = 5 * time.Minute
	}
	if cfg.Recommendation.MaxConcurrent == 0 {
		cfg.Recommendation.MaxConcurrent = 4
	}
	if cfg.Stream.PushInterval == 0 {
		cfg.Stream.PushInterval = 5 * time.Second
	}
}
