// Package ics fetches and parses iCalendar feeds into raw events for the
// normalization pipeline.
package ics

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/kmoroz/pdufa"
)

// Feed fetches ICS calendars over HTTP. It implements pdufa.Feed.
type Feed struct {
	client *http.Client
}

// NewFeed returns a Feed with a bounded per-fetch timeout.
func NewFeed() *Feed {
	return &Feed{client: &http.Client{Timeout: 30 * time.Second}}
}

// Events fetches one calendar and returns its VEVENTs as raw events. Any
// failure here is per-source: the caller skips the source and goes on.
func (f *Feed) Events(url string) ([]pdufa.RawEvent, error) {
	resp, err := f.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch calendar %q: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot fetch calendar %q: %v", url, resp.Status)
	}

	cal, err := ical.ParseCalendar(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cannot parse calendar %q: %w", url, err)
	}
	return rawEvents(cal), nil
}

// rawEvents converts every VEVENT of a parsed calendar.
func rawEvents(cal *ical.Calendar) []pdufa.RawEvent {
	events := cal.Events()
	raws := make([]pdufa.RawEvent, 0, len(events))
	for _, ve := range events {
		raw := pdufa.RawEvent{}
		if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
			raw.Summary = p.Value
		}
		// A start field that does not parse is the same as no start field:
		// the event is kept with an empty date downstream.
		if start, err := ve.GetStartAt(); err == nil {
			raw.Start, raw.HasStart = start, true
			raw.Zoned = zonedStart(ve)
		} else if start, err := ve.GetAllDayStartAt(); err == nil {
			raw.Start, raw.HasStart = start, true
		}
		raws = append(raws, raw)
	}
	return raws
}

// zonedStart reports whether DTSTART carries real zone information: a UTC
// timestamp or an explicit TZID. Date-only and floating values do not.
func zonedStart(ve *ical.VEvent) bool {
	p := ve.GetProperty(ical.ComponentPropertyDtStart)
	if p == nil {
		return false
	}
	if strings.HasSuffix(p.Value, "Z") {
		return true
	}
	_, ok := p.ICalParameters["TZID"]
	return ok
}
