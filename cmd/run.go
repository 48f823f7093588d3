package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/kmoroz/pdufa"
	"github.com/kmoroz/pdufa/ics"
)

// runCmd implements the "run" command: one full fetch-resolve-merge cycle.
type runCmd struct{}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "fetches the calendar feeds and updates the tables" }
func (*runCmd) Usage() string {
	return `fdt run

  Fetches every configured ICS feed, resolves events to tickers, and merges
  the batch into pdufa_master.csv and blank.csv in the data folder. The run
  is read-modify-write: both tables are rewritten whole, and values already
  present are never overwritten.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {}

func (c *runCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := pdufa.LoadConfig(*configFile)
	if err != nil {
		// the one fatal condition: without feeds there is nothing to process
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	extractor, err := newExtractor(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	minDate, maxDate := cfg.Bounds()
	normalizer := pdufa.NewNormalizer(extractor, cfg.Timezone, cfg.Debug)
	events, _ := normalizer.FetchAll(ics.NewFeed(), cfg.ICSURLs, minDate, maxDate)

	if err := os.MkdirAll(*dataDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot create data folder %q: %v\n", *dataDir, err)
		return subcommands.ExitFailure
	}
	master, err := pdufa.LoadMaster(*dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	blanks, err := pdufa.LoadBlanks(*dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	resolved, unresolved := pdufa.Reconcile(events, master, blanks)

	if err := master.Persist(*dataDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := blanks.Persist(*dataDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := pdufa.WriteState(*dataDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Resolved: %d | Blanks: %d | Master rows: %d | min_date=%s | max_date=%s\n",
		resolved, unresolved, len(master.Rows), orNone(minDate), orNone(maxDate))

	if cfg.Debug {
		printSamples(master, blanks)
	}
	return subcommands.ExitSuccess
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}

// printSamples shows the head of both tables, debug mode only.
func printSamples(master *pdufa.MasterTable, blanks *pdufa.BlankTable) {
	const head = 12

	fmt.Println("[MASTER SAMPLE]")
	for i, r := range master.Rows {
		if i == head {
			break
		}
		fmt.Printf("  %-8s %s\n", r.Ticker, orNone(r.Date))
	}
	if len(blanks.Rows) > 0 {
		fmt.Println("[BLANK SAMPLE]")
		for i, r := range blanks.Rows {
			if i == head {
				break
			}
			fmt.Printf("  %-10s %q\n", orNone(r.Date), r.Summary)
		}
	}
}
