package pdufa

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/kmoroz/pdufa/date"
)

// Config is the YAML run configuration. ${VAR} references are expanded from
// the environment before parsing.
type Config struct {
	// ICSURLs is the list of calendar feeds to ingest. This is the one
	// piece of required structure: without it there is nothing to process.
	ICSURLs []string `yaml:"ics_urls" validate:"required,min=1,dive,url"`

	// Timezone is an IANA zone name used for "@today" resolution and for
	// coercing zoned event times into calendar dates. Empty means the
	// system local zone.
	Timezone string `yaml:"timezone"`

	// MinDate and MaxDate bound the batch by event date. Both accept the
	// dynamic syntax of date.Resolve. MinDate defaults to "@today".
	MinDate string `yaml:"min_date"`
	MaxDate string `yaml:"max_date"`

	// Debug surfaces per-event resolution traces and table samples.
	Debug bool `yaml:"debug"`

	// TickerPattern and Stopwords override the extraction heuristic, see
	// DefaultTickerPattern and DefaultStopwords.
	TickerPattern string   `yaml:"ticker_pattern"`
	Stopwords     []string `yaml:"stopwords"`
}

// LoadConfig reads a YAML config file, expands environment variables,
// applies defaults and validates. This is the only place where a failure is
// structural and therefore fatal to the run.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Expand ${VAR} environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config %q: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.TickerPattern == "" {
		c.TickerPattern = DefaultTickerPattern
	}
	if c.Stopwords == nil {
		c.Stopwords = DefaultStopwords
	}
}

// Validate checks the structural constraints declared on the struct tags.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// Bounds resolves the configured date expressions into the effective
// min/max bounds of the run. An absent or unresolvable min falls back to
// today in the configured zone; max may be empty.
func (c *Config) Bounds() (min, max string) {
	min = date.Resolve(c.MinDate, c.Timezone)
	if min == "" {
		min = date.Resolve("@today", c.Timezone)
	}
	max = date.Resolve(c.MaxDate, c.Timezone)
	return min, max
}
