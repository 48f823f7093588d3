// Package cmd implements the fdt CLI.
package cmd

import (
	"flag"
	"os"

	"github.com/google/subcommands"

	"github.com/kmoroz/pdufa"
	"github.com/kmoroz/pdufa/alphavantage"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&runCmd{}, "pipeline")

	c.Register(&resolveCmd{}, "debugging")
	c.Register(&searchCmd{}, "debugging")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "config/calendars.yaml", "Path to the calendars YAML configuration file")
var dataDir = flag.String("data", "data", "Path to the folder holding the persisted tables")

// newLookup builds the symbol lookup from the environment, or nil when no
// API key is configured (events then degrade to the overflow table).
func newLookup() pdufa.Lookup {
	key := os.Getenv(alphavantage.EnvAPIKey)
	if key == "" {
		return nil
	}
	return alphavantage.NewClient(key)
}

// newExtractor builds the extractor from a config, or from the defaults
// when cfg is nil.
func newExtractor(cfg *pdufa.Config) (*pdufa.Extractor, error) {
	pattern, stopwords := "", []string(nil)
	if cfg != nil {
		pattern, stopwords = cfg.TickerPattern, cfg.Stopwords
	}
	return pdufa.NewExtractor(pattern, stopwords, newLookup())
}
