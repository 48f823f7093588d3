package pdufa

import (
	"slices"
	"strings"

	"github.com/kmoroz/pdufa/date"
)

// FieldPolicy tells the upsert how an incoming field value is written into
// an existing row.
type FieldPolicy int

const (
	// OverwriteIfBlank writes the incoming value only when the existing
	// field is blank or whitespace-only and the incoming value is not.
	OverwriteIfBlank FieldPolicy = iota
	// NeverOverwrite leaves the existing field alone.
	NeverOverwrite
	// AlwaysOverwrite writes any non-blank incoming value.
	AlwaysOverwrite
)

// MergePolicy maps master columns to their merge behavior. Keeping this as
// an explicit table (instead of inline conditionals) keeps the merge rules
// auditable on their own.
type MergePolicy map[string]FieldPolicy

// DefaultMergePolicy protects previously recorded data: a re-fetch may fill
// blanks but never replaces a hand-edited value.
var DefaultMergePolicy = MergePolicy{
	colTicker: OverwriteIfBlank,
	colDate:   OverwriteIfBlank,
}

// apply writes incoming over existing according to the policy for col.
func (p MergePolicy) apply(col string, existing *string, incoming string) {
	if strings.TrimSpace(incoming) == "" {
		return // blank incoming values never erase anything
	}
	switch p[col] {
	case AlwaysOverwrite:
		*existing = incoming
	case NeverOverwrite:
		// keep
	default: // OverwriteIfBlank
		if strings.TrimSpace(*existing) == "" {
			*existing = incoming
		}
	}
}

// upsert folds one resolved event into the master rows. The key is
// (ticker, date) when the event has a date, ticker alone otherwise, so an
// event with an empty date can never duplicate an existing ticker's row.
func upsert(rows []MasterRow, ev Event, policy MergePolicy) []MasterRow {
	for i := range rows {
		if rows[i].Ticker != ev.Ticker {
			continue
		}
		if ev.Date != "" && rows[i].Date != ev.Date {
			continue
		}
		policy.apply(colTicker, &rows[i].Ticker, ev.Ticker)
		policy.apply(colDate, &rows[i].Date, ev.Date)
		return rows
	}
	return append(rows, MasterRow{Ticker: ev.Ticker, Date: ev.Date})
}

// Reconcile folds a normalized batch into the two persisted tables: resolved
// events are upserted into the master table, unresolved ones are unioned
// into the blank overflow table. Both tables come out fully sorted and
// deduplicated; callers rewrite them whole. Returns the resolved and
// unresolved counts for the run summary.
func Reconcile(batch []Event, master *MasterTable, blanks *BlankTable) (resolved, unresolved int) {
	return ReconcileWith(batch, master, blanks, DefaultMergePolicy)
}

// ReconcileWith is Reconcile with an explicit merge policy.
func ReconcileWith(batch []Event, master *MasterTable, blanks *BlankTable, policy MergePolicy) (resolved, unresolved int) {
	for _, ev := range batch {
		if ev.Resolved() {
			resolved++
			master.Rows = upsert(master.Rows, ev, policy)
		} else {
			unresolved++
			blanks.Rows = append(blanks.Rows, BlankRow{Summary: ev.Summary, Date: ev.Date})
		}
	}

	slices.SortStableFunc(master.Rows, func(a, b MasterRow) int {
		if c := compareDates(a.Date, b.Date); c != 0 {
			return c
		}
		return strings.Compare(a.Ticker, b.Ticker)
	})

	blanks.Rows = dedupeBlanks(blanks.Rows)
	slices.SortStableFunc(blanks.Rows, func(a, b BlankRow) int {
		if c := compareDates(a.Date, b.Date); c != 0 {
			return c
		}
		return strings.Compare(a.Summary, b.Summary)
	})
	return resolved, unresolved
}

// dedupeBlanks keeps the first occurrence of every (summary, date) pair.
func dedupeBlanks(rows []BlankRow) []BlankRow {
	seen := make(map[BlankRow]bool, len(rows))
	kept := rows[:0]
	for _, r := range rows {
		if seen[r] {
			continue
		}
		seen[r] = true
		kept = append(kept, r)
	}
	return kept
}

// compareDates orders ISO date strings ascending; blank or unparsable dates
// sort after every parsable one.
func compareDates(a, b string) int {
	da, errA := date.Parse(a)
	db, errB := date.Parse(b)
	switch {
	case errA != nil && errB != nil:
		return 0
	case errA != nil:
		return 1
	case errB != nil:
		return -1
	default:
		return da.Compare(db)
	}
}
