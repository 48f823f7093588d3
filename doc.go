// Package pdufa maintains a dataset of regulatory review dates (PDUFA
// dates) resolved to stock tickers, fed from shared calendar feeds.
//
// The core pipeline:
//   - Ticker Extraction: a two-stage heuristic turns free-text event
//     summaries into ticker symbols — a leading uppercase-letters pattern
//     guarded by a stopword set, then a scored symbol search over the whole
//     summary text.
//   - Normalization: raw calendar events become canonical
//     {ticker, date, summary} records, with time-of-day dropped and dates
//     coerced into the configured time zone; batches are date-bounded and
//     deduplicated.
//   - Reconciliation: each batch is folded into two persisted CSV tables, a
//     master table of resolved (ticker, date) pairs and an overflow table of
//     unresolved events. The merge only ever fills blank fields, so values
//     curated by hand survive every re-fetch.
//
// This package is the foundation of the `fdt` command-line tool; the
// alphavantage, ics and date subpackages provide the symbol lookup, the feed
// source and the dynamic date expressions it builds on.
package pdufa
