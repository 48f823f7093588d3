package pdufa

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// The two persisted tables are small CSV files meant to live in a git repo
// and to be hand-editable. A run loads a table, folds the new batch in, and
// rewrites the whole file: read-modify-write per run, not per row.

const (
	// MasterFilename holds resolved (ticker, date) pairs. Summary is
	// intentionally not persisted here.
	MasterFilename = "pdufa_master.csv"
	// BlankFilename holds unresolved events. It has no ticker column: a row
	// is here precisely because none was found.
	BlankFilename = "blank.csv"
)

const (
	colTicker  = "ticker"
	colDate    = "pdufa_date"
	colSummary = "summary"
)

var (
	masterColumns = []string{colTicker, colDate}
	blankColumns  = []string{colSummary, colDate}
)

// MasterRow is one resolved (ticker, date) pair. Ticker is never empty.
type MasterRow struct {
	Ticker string
	Date   string // ISO date or empty
}

// BlankRow is one unresolved event.
type BlankRow struct {
	Summary string
	Date    string
}

// MasterTable is the persisted resolved table.
type MasterTable struct{ Rows []MasterRow }

// BlankTable is the persisted overflow table.
type BlankTable struct{ Rows []BlankRow }

// LoadMaster reads the master table from dir. A missing file yields an empty
// table; missing columns are treated as present-but-empty.
func LoadMaster(dir string) (*MasterTable, error) {
	records, err := readTable(filepath.Join(dir, MasterFilename), masterColumns)
	if err != nil {
		return nil, err
	}
	t := &MasterTable{Rows: make([]MasterRow, 0, len(records))}
	for _, rec := range records {
		t.Rows = append(t.Rows, MasterRow{Ticker: rec[0], Date: rec[1]})
	}
	return t, nil
}

// Persist rewrites the whole master table in dir, atomically.
func (t *MasterTable) Persist(dir string) error {
	records := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		records = append(records, []string{r.Ticker, r.Date})
	}
	return writeTable(filepath.Join(dir, MasterFilename), masterColumns, records)
}

// LoadBlanks reads the overflow table from dir with the same tolerance as
// LoadMaster.
func LoadBlanks(dir string) (*BlankTable, error) {
	records, err := readTable(filepath.Join(dir, BlankFilename), blankColumns)
	if err != nil {
		return nil, err
	}
	t := &BlankTable{Rows: make([]BlankRow, 0, len(records))}
	for _, rec := range records {
		t.Rows = append(t.Rows, BlankRow{Summary: rec[0], Date: rec[1]})
	}
	return t, nil
}

// Persist rewrites the whole overflow table in dir, atomically.
func (t *BlankTable) Persist(dir string) error {
	records := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		records = append(records, []string{r.Summary, r.Date})
	}
	return writeTable(filepath.Join(dir, BlankFilename), blankColumns, records)
}

// readTable reads a CSV file and returns its records projected onto cols,
// in file order. Columns absent from the file come back empty, extra
// columns are ignored, so a hand-edited or older-schema file still loads.
func readTable(path string, cols []string) ([][]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open table %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate ragged rows

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read header of %q: %w", path, err)
	}

	// map wanted column -> position in the file, -1 when absent
	pos := make([]int, len(cols))
	for i, col := range cols {
		pos[i] = -1
		for j, h := range header {
			if h == col {
				pos[i] = j
				break
			}
		}
		if pos[i] == -1 {
			log.Printf("table %q has no %q column, loading it as empty", path, col)
		}
	}

	var records [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read row of %q: %w", path, err)
		}
		row := make([]string, len(cols))
		for i, p := range pos {
			if p >= 0 && p < len(rec) {
				row[i] = rec[p]
			}
		}
		records = append(records, row)
	}
	return records, nil
}

// writeTable rewrites a whole CSV table through a temp file and a rename, so
// a crash mid-write never leaves a truncated table behind.
func writeTable(path string, cols []string, records [][]string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("cannot create temp file for %q: %w", path, err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	w := csv.NewWriter(tmp)
	if err := w.Write(cols); err != nil {
		tmp.Close()
		return fmt.Errorf("cannot write header of %q: %w", path, err)
	}
	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			tmp.Close()
			return fmt.Errorf("cannot write row of %q: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("cannot flush %q: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cannot close temp file for %q: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("cannot replace table %q: %w", path, err)
	}
	return nil
}
