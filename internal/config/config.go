
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"review-crawler/internal/crawler"
)

const EnvPrefix = "REVIEWS"

type Settings struct {
	AppEnv   string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	Scrape struct {
		BaseURL string        `mapstructure:"base_url"`
		Pages   int           `mapstructure:"pages"`
		Delay   time.Duration `mapstructure:"delay"`
	} `mapstructure:"scrape"`

	HTTP struct {
		UserAgent   string        `mapstructure:"user_agent"`
		Timeout     time.Duration `mapstructure:"timeout"`
		DialTimeout time.Duration `mapstructure:"dial_timeout"`
		SizeCap     int64         `mapstructure:"size_cap"`
	} `mapstructure:"http"`

	Output struct {
		CSV         string `mapstructure:"csv"`
		Chart       string `mapstructure:"chart"`
		Raw         string `mapstructure:"raw"`
		MetricsFile string `mapstructure:"metrics_file"`
	} `mapstructure:"output"`

	Analysis struct {
		TopN         int    `mapstructure:"top_n"`
		TaxonomyPath string `mapstructure:"taxonomy_path"`
		LexiconPath  string `mapstructure:"lexicon_path"`
	} `mapstructure:"analysis"`
}

func setDefaults(v *viper.Viper) {
	def := crawler.DefaultConfig()

	v.SetDefault("app_env", "dev")
	v.SetDefault("log_level", "info")

	v.SetDefault("scrape.base_url", "https://fr.trustpilot.com/review/www.cdiscount.com")
	v.SetDefault("scrape.pages", 160)
	v.SetDefault("scrape.delay", time.Second)

	v.SetDefault("http.user_agent", def.UserAgent)
	v.SetDefault("http.timeout", def.Timeout)
	v.SetDefault("http.dial_timeout", def.DialTimeout)
	v.SetDefault("http.size_cap", def.SizeCap)

	v.SetDefault("output.csv", "cdiscount_cleaned_reviews.csv")
	v.SetDefault("output.chart", "viz.png")
	v.SetDefault("output.raw", "raw_reviews.ndjson")
	v.SetDefault("output.metrics_file", "")

	v.SetDefault("analysis.top_n", 100)
	v.SetDefault("analysis.taxonomy_path", "")
	v.SetDefault("analysis.lexicon_path", "")
}

// Load reads settings from defaults, the optional YAML file at path and
// REVIEWS_* environment variables, in increasing priority. Nested keys
// map to env names with underscores, e.g. REVIEWS_SCRAPE_PAGES.
func Load(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) validate() error {
	switch {
	case s.Scrape.BaseURL == "":
		return fmt.Errorf("scrape.base_url must be set")
	case s.Scrape.Pages < 0:
		return fmt.Errorf("scrape.pages must not be negative, got %d", s.Scrape.Pages)
	case s.Scrape.Delay < 0:
		return fmt.Errorf("scrape.delay must not be negative, got %s", s.Scrape.Delay)
	case s.Analysis.TopN < 1:
		return fmt.Errorf("analysis.top_n must be at least 1, got %d", s.Analysis.TopN)
	case s.Output.CSV == "":
		return fmt.Errorf("output.csv must be set")
	}
	return nil
}

func (s *Settings) Crawler() crawler.Config {
	return crawler.Config{
		Timeout:     s.HTTP.Timeout,
		DialTimeout: s.HTTP.DialTimeout,
		SizeCap:     s.HTTP.SizeCap,
		UserAgent:   s.HTTP.UserAgent,
	}
}
