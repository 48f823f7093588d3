package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/kmoroz/pdufa"
)

// resolveCmd runs the extractor on one summary string, showing which rule
// fired. Handy when tuning the stopword set.
type resolveCmd struct{}

func (*resolveCmd) Name() string     { return "resolve" }
func (*resolveCmd) Synopsis() string { return "resolves a single event summary to a ticker" }
func (*resolveCmd) Usage() string {
	return `fdt resolve <summary text>

  Runs the two-stage ticker extraction on the given text and prints the
  result and the rule that produced it. Uses the pattern and stopwords from
  the configuration file when it exists, the defaults otherwise.

Usage Examples:
$ fdt resolve ABCD PDUFA Date
$ fdt resolve FDA Decision for Example Therapeutics gene therapy
`
}

func (c *resolveCmd) SetFlags(f *flag.FlagSet) {}

func (c *resolveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: a summary text is required.")
		return subcommands.ExitUsageError
	}
	summary := strings.Join(f.Args(), " ")

	// the config is optional here: fall back to defaults when absent
	cfg, err := pdufa.LoadConfig(*configFile)
	if err != nil {
		cfg = nil
	}
	extractor, err := newExtractor(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	extractor.Debug = true

	ticker, rule := extractor.ExtractRule(summary)
	switch rule {
	case pdufa.RulePattern:
		fmt.Printf("%s (leading pattern)\n", ticker)
	case pdufa.RuleLookup:
		fmt.Printf("%s (symbol search)\n", ticker)
	default:
		fmt.Println("unresolved: this event would go to blank.csv")
	}
	return subcommands.ExitSuccess
}
