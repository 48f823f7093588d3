package pdufa

import (
	"errors"
	"testing"
	"time"
)

// stubFeed serves canned raw events per URL.
type stubFeed struct {
	events map[string][]RawEvent
	errs   map[string]error
}

func (s *stubFeed) Events(url string) ([]RawEvent, error) {
	if err := s.errs[url]; err != nil {
		return nil, err
	}
	return s.events[url], nil
}

func newNormalizer(t *testing.T, tzname string) *Normalizer {
	t.Helper()
	e, err := NewExtractor("", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	return NewNormalizer(e, tzname, false)
}

func TestNormalizeDateCoercion(t *testing.T) {
	n := newNormalizer(t, "America/New_York")

	// 02:00 UTC on March 1st is still February 28th in New York
	utc := time.Date(2026, 3, 1, 2, 0, 0, 0, time.UTC)
	ev := n.Normalize(RawEvent{Summary: "ABCD PDUFA Date", Start: utc, HasStart: true, Zoned: true})
	if ev.Date != "2026-02-28" {
		t.Errorf("zoned coercion gave %q, want 2026-02-28", ev.Date)
	}

	// a floating (unzoned) value keeps its calendar date
	ev = n.Normalize(RawEvent{Summary: "x", Start: utc, HasStart: true})
	if ev.Date != "2026-03-01" {
		t.Errorf("floating coercion gave %q, want 2026-03-01", ev.Date)
	}

	// missing start yields an empty date, not a failure
	ev = n.Normalize(RawEvent{Summary: "x"})
	if ev.Date != "" {
		t.Errorf("missing start gave %q, want empty", ev.Date)
	}
}

func TestNormalizeSummaryAndTicker(t *testing.T) {
	n := newNormalizer(t, "")
	ev := n.Normalize(RawEvent{Summary: "  ABCD PDUFA Date  "})
	if ev.Summary != "ABCD PDUFA Date" {
		t.Errorf("summary not trimmed: %q", ev.Summary)
	}
	if ev.Ticker != "ABCD" {
		t.Errorf("ticker = %q, want ABCD", ev.Ticker)
	}
}

func TestFilterByDate(t *testing.T) {
	events := []Event{
		{Ticker: "EARLY", Date: "2025-12-31"},
		{Ticker: "MIN", Date: "2026-01-01"},
		{Ticker: "MID", Date: "2026-06-15"},
		{Ticker: "MAX", Date: "2026-12-31"},
		{Ticker: "LATE", Date: "2027-01-01"},
		{Ticker: "BLANK", Date: ""},
		{Ticker: "BAD", Date: "sometime soon"},
	}
	got := FilterByDate(events, "2026-01-01", "2026-12-31")

	want := []string{"MIN", "MID", "MAX", "BLANK", "BAD"}
	if len(got) != len(want) {
		t.Fatalf("kept %d events, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Ticker != w {
			t.Errorf("kept[%d] = %s, want %s", i, got[i].Ticker, w)
		}
	}
}

func TestFilterByDateIgnoresBadBounds(t *testing.T) {
	events := []Event{{Ticker: "AAA", Date: "2026-01-01"}}
	if got := FilterByDate(events, "@garbage", ""); len(got) != 1 {
		t.Errorf("unparsable bounds must not filter, kept %d", len(got))
	}
	// only max set
	if got := FilterByDate(events, "", "2025-12-31"); len(got) != 0 {
		t.Errorf("max bound alone must still apply, kept %d", len(got))
	}
}

func TestDedupe(t *testing.T) {
	events := []Event{
		{Ticker: "ABCD", Date: "2026-01-01", Summary: "ABCD PDUFA Date"},
		{Ticker: "ABCD", Date: "2026-01-01", Summary: "ABCD PDUFA Date"},
		{Ticker: "", Date: "2026-01-01", Summary: "unknown one"},
		{Ticker: "", Date: "2026-01-01", Summary: "unknown two"}, // same date, different summary: kept
		{Ticker: "ABCD", Date: "2026-01-01", Summary: "ABCD PDUFA Date (again)"},
	}
	got := Dedupe(events)
	if len(got) != 4 {
		t.Fatalf("Dedupe kept %d events, want 4", len(got))
	}
}

func TestFetchAllAbsorbsSourceFailures(t *testing.T) {
	feed := &stubFeed{
		events: map[string][]RawEvent{
			"https://good.example/cal.ics": {
				{Summary: "ABCD PDUFA Date", Start: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), HasStart: true},
			},
		},
		errs: map[string]error{
			"https://bad.example/cal.ics": errors.New("connection refused"),
		},
	}
	n := newNormalizer(t, "")

	events, failures := n.FetchAll(feed, []string{"https://bad.example/cal.ics", "https://good.example/cal.ics"}, "2026-01-01", "")
	if len(failures) != 1 {
		t.Fatalf("failures = %d, want 1", len(failures))
	}
	if len(events) != 1 || events[0].Ticker != "ABCD" {
		t.Fatalf("events = %+v, want the one good event", events)
	}
}
