package pdufa

import "time"

// Event is one canonical calendar event: a regulatory review date resolved
// (or not) to a ticker symbol. An Event is immutable once created and is
// consumed exactly once by Reconcile.
type Event struct {
	Ticker  string // empty when no ticker could be resolved
	Date    string // ISO "YYYY-MM-DD", empty when the source date was missing or malformed
	Summary string
}

// Resolved reports whether the event carries a ticker.
func (e Event) Resolved() bool { return e.Ticker != "" }

// RawEvent is what a feed source yields before normalization.
type RawEvent struct {
	Summary  string
	Start    time.Time
	HasStart bool // false when the source event had no usable start field
	Zoned    bool // true when Start carries real zone information (not a floating or date-only value)
}

// Feed fetches raw events from a single source URL.
// Implementations report failures per source; the pipeline absorbs them.
type Feed interface {
	Events(url string) ([]RawEvent, error)
}
