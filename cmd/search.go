package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/kmoroz/pdufa"
	"github.com/kmoroz/pdufa/alphavantage"
)

// searchCmd implements the "search" command: a raw symbol search with the
// scores the extractor would assign.
type searchCmd struct {
	apiKeyFlag string
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "searches for symbols on Alpha Vantage" }
func (*searchCmd) Usage() string {
	return `fdt search <query text>

  Sends the query to the Alpha Vantage SYMBOL_SEARCH endpoint and prints
  every candidate with the score the extractor would give it.

  Requires the ` + alphavantage.EnvAPIKey + ` environment variable to be set
  or passed as a flag.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.apiKeyFlag, "api-key", "", "Alpha Vantage API key. This flag takes precedence over the "+alphavantage.EnvAPIKey+" environment variable.")
}

// apiKey retrieves the API key from the command-line flag or the environment
// variable. It prioritizes the flag over the environment variable.
func (c *searchCmd) apiKey() string {
	if c.apiKeyFlag == "" {
		c.apiKeyFlag = os.Getenv(alphavantage.EnvAPIKey)
	}
	return c.apiKeyFlag
}

func (c *searchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: a search query is required.")
		return subcommands.ExitUsageError
	}
	query := strings.Join(f.Args(), " ")

	key := c.apiKey()
	if key == "" {
		fmt.Fprintf(os.Stderr, "Error: Alpha Vantage API key is not set. Use -api-key flag or %s environment variable\n", alphavantage.EnvAPIKey)
		return subcommands.ExitFailure
	}

	matches, err := alphavantage.NewClient(key).Search(query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error searching symbols: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(matches) == 0 {
		fmt.Printf("No results found for '%s'.\n", query)
		return subcommands.ExitSuccess
	}

	fmt.Printf("Found %d results for '%s':\n\n", len(matches), query)
	for _, m := range matches {
		fmt.Printf("➡️   %-8s score=%d\n", m.Symbol, pdufa.Score(query, m))
		fmt.Printf("    Name    : %s\n", m.Name)
		fmt.Printf("    Region  : %s, Currency: %s\n\n", m.Region, m.Currency)
	}
	return subcommands.ExitSuccess
}
