package pdufa

import (
	"log"
	"strings"
	"time"

	"github.com/kmoroz/pdufa/date"
)

// Normalizer converts raw feed events into canonical Events: summary text,
// a plain calendar date, and a ticker resolved by the extractor.
type Normalizer struct {
	extractor *Extractor
	loc       *time.Location // target zone for date coercion, may be nil
	debug     bool
}

// NewNormalizer builds a Normalizer targeting the given zone name. An empty
// or unknown zone name means no zone conversion is applied.
func NewNormalizer(extractor *Extractor, tzname string, debug bool) *Normalizer {
	var loc *time.Location
	if tzname != "" {
		if l, err := time.LoadLocation(tzname); err == nil {
			loc = l
		} else {
			log.Printf("unknown timezone %q, keeping event dates as-is", tzname)
		}
	}
	extractor.Debug = debug
	return &Normalizer{extractor: extractor, loc: loc, debug: debug}
}

// Normalize converts one raw event. It never fails: a missing or malformed
// start field yields an empty date, an unresolvable summary an empty ticker.
func (n *Normalizer) Normalize(raw RawEvent) Event {
	summary := strings.TrimSpace(raw.Summary)
	ev := Event{
		Ticker:  n.extractor.Extract(summary),
		Date:    n.coerceDate(raw),
		Summary: summary,
	}
	if n.debug {
		log.Printf("[EVT] SUMMARY=%q -> ticker=%q | date=%q", ev.Summary, ev.Ticker, ev.Date)
	}
	return ev
}

// coerceDate drops the time-of-day and renders the start as an ISO calendar
// date, converting into the target zone only when the source value actually
// carried zone information.
func (n *Normalizer) coerceDate(raw RawEvent) string {
	if !raw.HasStart {
		return ""
	}
	t := raw.Start
	if raw.Zoned && n.loc != nil {
		t = t.In(n.loc)
	}
	return date.New(t.Date()).String()
}

// FetchAll runs the whole normalization of a fetch cycle: every source is
// fetched and normalized, then the batch is date-filtered and deduplicated.
// A source that fails to fetch or parse contributes zero events and is
// returned in failures; it never aborts the batch.
func (n *Normalizer) FetchAll(feed Feed, urls []string, minDate, maxDate string) (events []Event, failures []error) {
	for _, u := range urls {
		raws, err := feed.Events(u)
		if err != nil {
			log.Printf("fetch error for %s (source skipped): %v", u, err)
			failures = append(failures, err)
			continue
		}
		for _, raw := range raws {
			events = append(events, n.Normalize(raw))
		}
	}
	events = FilterByDate(events, minDate, maxDate)
	return Dedupe(events), failures
}

// FilterByDate drops events whose date, when parsable, falls strictly before
// min or strictly after max. Events with empty or unparsable dates are
// always kept: date bounds never filter out what they cannot read. Bounds
// that do not parse are ignored.
func FilterByDate(events []Event, minDate, maxDate string) []Event {
	min, minErr := date.Parse(minDate)
	max, maxErr := date.Parse(maxDate)
	if minErr != nil && maxErr != nil {
		return events
	}

	kept := events[:0]
	for _, ev := range events {
		d, err := date.Parse(ev.Date)
		if err != nil {
			kept = append(kept, ev)
			continue
		}
		if minErr == nil && d.Before(min) {
			continue
		}
		if maxErr == nil && d.After(max) {
			continue
		}
		kept = append(kept, ev)
	}
	return kept
}

// Dedupe collapses exact (ticker, date, summary) duplicates within one
// batch, keeping the first occurrence.
func Dedupe(events []Event) []Event {
	seen := make(map[Event]bool, len(events))
	kept := events[:0]
	for _, ev := range events {
		if seen[ev] {
			continue
		}
		seen[ev] = true
		kept = append(kept, ev)
	}
	return kept
}
