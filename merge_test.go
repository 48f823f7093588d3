package pdufa

import (
	"reflect"
	"testing"
)

func TestUpsertAppendsNewRow(t *testing.T) {
	master := &MasterTable{}
	blanks := &BlankTable{}
	resolved, unresolved := Reconcile([]Event{{Ticker: "ABCD", Date: "2026-01-01", Summary: "ABCD PDUFA Date"}}, master, blanks)
	if resolved != 1 || unresolved != 0 {
		t.Fatalf("counts = %d/%d, want 1/0", resolved, unresolved)
	}
	if len(master.Rows) != 1 || master.Rows[0] != (MasterRow{"ABCD", "2026-01-01"}) {
		t.Fatalf("master = %+v", master.Rows)
	}
}

func TestUpsertFillsBlankOnly(t *testing.T) {
	master := &MasterTable{Rows: []MasterRow{{Ticker: "ABCD", Date: "   "}}}
	Reconcile([]Event{{Ticker: "ABCD", Date: "2026-01-01"}}, master, &BlankTable{})

	if len(master.Rows) != 1 {
		t.Fatalf("expected in-place update, got %d rows", len(master.Rows))
	}
	if master.Rows[0].Date != "2026-01-01" {
		t.Errorf("blank date not filled: %q", master.Rows[0].Date)
	}
}

func TestUpsertNeverClobbers(t *testing.T) {
	// incoming has an empty date, so the key is ticker alone and it matches
	// the existing row; its non-blank date must survive
	master := &MasterTable{Rows: []MasterRow{{Ticker: "ABC", Date: "2026-01-01"}}}
	Reconcile([]Event{{Ticker: "ABC", Date: ""}}, master, &BlankTable{})

	if len(master.Rows) != 1 {
		t.Fatalf("empty-date event duplicated the ticker row: %+v", master.Rows)
	}
	if master.Rows[0].Date != "2026-01-01" {
		t.Errorf("existing date clobbered: %q", master.Rows[0].Date)
	}
}

func TestUpsertDistinctDatesAreDistinctRows(t *testing.T) {
	// a different non-empty date is a different key: a second row, not an update
	master := &MasterTable{Rows: []MasterRow{{Ticker: "ABC", Date: "2026-01-01"}}}
	Reconcile([]Event{{Ticker: "ABC", Date: "2026-09-01"}}, master, &BlankTable{})
	if len(master.Rows) != 2 {
		t.Fatalf("master = %+v, want two rows", master.Rows)
	}
}

func TestReconcileIdempotent(t *testing.T) {
	batch := []Event{
		{Ticker: "ZZZZ", Date: "2026-03-01", Summary: "ZZZZ PDUFA"},
		{Ticker: "AAAA", Date: "2026-01-01", Summary: "AAAA PDUFA"},
		{Summary: "no ticker here", Date: "2026-02-01"},
	}
	master := &MasterTable{Rows: []MasterRow{{Ticker: "AAAA", Date: ""}}}
	blanks := &BlankTable{}

	Reconcile(batch, master, blanks)
	once := struct {
		m []MasterRow
		b []BlankRow
	}{append([]MasterRow(nil), master.Rows...), append([]BlankRow(nil), blanks.Rows...)}

	Reconcile(batch, master, blanks)
	if !reflect.DeepEqual(master.Rows, once.m) {
		t.Errorf("master not idempotent:\nonce:  %+v\ntwice: %+v", once.m, master.Rows)
	}
	if !reflect.DeepEqual(blanks.Rows, once.b) {
		t.Errorf("blanks not idempotent:\nonce:  %+v\ntwice: %+v", once.b, blanks.Rows)
	}
}

func TestReconcileSortsBlankDatesLast(t *testing.T) {
	master := &MasterTable{Rows: []MasterRow{
		{Ticker: "NODATE", Date: ""},
		{Ticker: "BAD", Date: "tbd"},
		{Ticker: "JUN", Date: "2026-06-01"},
	}}
	Reconcile([]Event{{Ticker: "JAN", Date: "2026-01-01"}}, master, &BlankTable{})

	want := []string{"JAN", "JUN", "BAD", "NODATE"} // unparsable after parsable, then by ticker
	for i, w := range want {
		if master.Rows[i].Ticker != w {
			t.Fatalf("order = %+v, want %v", master.Rows, want)
		}
	}
}

func TestReconcileMergesBlanks(t *testing.T) {
	blanks := &BlankTable{Rows: []BlankRow{
		{Summary: "existing mystery", Date: "2026-05-01"},
	}}
	batch := []Event{
		{Summary: "existing mystery", Date: "2026-05-01"}, // exact duplicate of a persisted row
		{Summary: "new mystery", Date: "2026-04-01"},
		{Summary: "undated mystery", Date: ""},
	}
	_, unresolved := Reconcile(batch, &MasterTable{}, blanks)
	if unresolved != 3 {
		t.Fatalf("unresolved = %d, want 3", unresolved)
	}

	want := []BlankRow{
		{Summary: "new mystery", Date: "2026-04-01"},
		{Summary: "existing mystery", Date: "2026-05-01"},
		{Summary: "undated mystery", Date: ""},
	}
	if !reflect.DeepEqual(blanks.Rows, want) {
		t.Errorf("blanks = %+v\nwant    %+v", blanks.Rows, want)
	}
}

func TestReconcileBatchOrderBreaksKeyTies(t *testing.T) {
	// two incoming records racing for the same new ticker-only key: the
	// first one creates the row, the second fills nothing
	master := &MasterTable{}
	Reconcile([]Event{
		{Ticker: "RACE", Date: "2026-02-02"},
		{Ticker: "RACE", Date: ""},
	}, master, &BlankTable{})
	if len(master.Rows) != 1 || master.Rows[0].Date != "2026-02-02" {
		t.Fatalf("master = %+v", master.Rows)
	}
}

func TestMergePolicyApply(t *testing.T) {
	policy := MergePolicy{"a": OverwriteIfBlank, "b": NeverOverwrite, "c": AlwaysOverwrite}

	v := "kept"
	policy.apply("a", &v, "incoming")
	if v != "kept" {
		t.Errorf("OverwriteIfBlank overwrote a non-blank value")
	}
	v = "  "
	policy.apply("a", &v, "incoming")
	if v != "incoming" {
		t.Errorf("OverwriteIfBlank did not fill a whitespace-only value")
	}
	v = ""
	policy.apply("b", &v, "incoming")
	if v != "" {
		t.Errorf("NeverOverwrite wrote")
	}
	v = "old"
	policy.apply("c", &v, "new")
	if v != "new" {
		t.Errorf("AlwaysOverwrite did not write")
	}
	v = "old"
	policy.apply("c", &v, " ")
	if v != "old" {
		t.Errorf("blank incoming value erased data")
	}
}
