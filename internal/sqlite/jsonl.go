// This file provides JSONL read/write helpers for dishes.jsonl, the source
// of truth the SQLite table is rebuilt from.
package sqlite

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mesh-intelligence/dishes/internal/atomicfile"
)

// dishesJSONL is the JSONL file holding one dishRecord per line.
const dishesJSONL = "dishes.jsonl"

// dishRecord is the JSONL line format.
type dishRecord struct {
	Position int    `json:"position"`
	Name     string `json:"name"`
}

// readJSONL reads a JSONL file and returns each non-empty, parseable line as
// a dishRecord. Malformed lines are skipped. A missing file yields no records.
func readJSONL(path string) ([]dishRecord, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []dishRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec dishRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			// Skip malformed lines.
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, nil
}

// writeJSONL atomically replaces path with one record per dish.
func writeJSONL(path string, dishes []string) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	for i, name := range dishes {
		if err := enc.Encode(dishRecord{Position: i, Name: name}); err != nil {
			return fmt.Errorf("encoding record: %w", err)
		}
	}
	return atomicfile.Write(path, buf.Bytes(), 0o644)
}
