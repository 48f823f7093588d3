package pdufa

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const stateFilename = "state.json"

// WriteState drops a small provenance marker next to the tables on the
// first successful run: which kind of source fed the dataset and the master
// schema at the time. Existing markers are left untouched.
func WriteState(dir string) error {
	path := filepath.Join(dir, stateFilename)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot stat state file %q: %w", path, err)
	}

	state := struct {
		Source string   `json:"source"`
		Schema []string `json:"schema"`
	}{
		Source: "google-ics",
		Schema: masterColumns,
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal state: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("cannot write state file %q: %w", path, err)
	}
	return nil
}
