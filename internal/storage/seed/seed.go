// Package seed parses the bundled CSV roster used to populate an empty
// store on first boot.
//
// Format: comma-separated text, first line is a header and is skipped,
// each subsequent non-blank line needs at least seven fields mapped
// positionally to id, name, gender, gmail, program, year, university.
// The year field has all non-digit characters stripped and defaults
// to 1 when nothing is left. Short or blank lines are skipped, not
// treated as errors — the seed file is convenience data, not input to
// validate strictly.
package seed

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/aanand-mishra/sims/internal/types"
)

// ParseFile reads and parses the seed CSV at path.
func ParseFile(path string) ([]types.Student, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("seed: open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // row lengths vary; we check them ourselves
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("seed: parse %s: %w", path, err)
	}

	students := make([]types.Student, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		s, ok := parseRow(row)
		if !ok {
			continue
		}
		students = append(students, s)
	}

	return students, nil
}

// parseRow maps one CSV row to a Student. Rows with fewer than seven
// fields, or an empty id after trimming, are rejected.
func parseRow(row []string) (types.Student, bool) {
	if len(row) < 7 {
		return types.Student{}, false
	}

	id := strings.TrimSpace(row[0])
	if id == "" {
		return types.Student{}, false
	}

	return types.Student{
		ID:         id,
		Name:       strings.TrimSpace(row[1]),
		Gender:     strings.TrimSpace(row[2]),
		Gmail:      strings.TrimSpace(row[3]),
		Program:    strings.TrimSpace(row[4]),
		Year:       types.ParseYear(row[5]),
		University: strings.TrimSpace(row[6]),
	}, true
}
