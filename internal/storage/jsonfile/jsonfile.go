// Package jsonfile provides a flat-file implementation of the
// storage.Storage interface: the whole roster lives in a single JSON
// file that is read and rewritten wholesale on every mutation.
//
// There is no database here at all — just os.ReadFile, encoding/json,
// and os.WriteFile. A mutex serialises mutations so two handler
// goroutines cannot interleave a read-modify-write and lose an update.
// Sharing the file between processes is not supported.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	"github.com/aanand-mishra/sims/internal/storage"
	"github.com/aanand-mishra/sims/internal/storage/seed"
	"github.com/aanand-mishra/sims/internal/types"
)

// JSONFile is the concrete implementation of storage.Storage backed by a
// single JSON document on disk.
type JSONFile struct {
	mu   sync.Mutex
	path string
}

// New returns a store backed by the JSON file at path. The file is
// created lazily on the first write.
//
// If seedFile is non-empty and the store holds no records, the seed CSV
// is imported in bulk — a one-time boot convenience, never repeated once
// the store has data.
func New(path, seedFile string) (*JSONFile, error) {
	j := &JSONFile{path: path}

	students, err := j.read()
	if err != nil {
		return nil, err
	}

	if len(students) == 0 && seedFile != "" {
		seeded, err := seed.ParseFile(seedFile)
		if err != nil {
			return nil, fmt.Errorf("jsonfile.New: %w", err)
		}
		if len(seeded) > 0 {
			if err := j.write(seeded); err != nil {
				return nil, fmt.Errorf("jsonfile.New: seed: %w", err)
			}
			slog.Info("seeded store from csv",
				slog.String("file", seedFile),
				slog.Int("students", len(seeded)))
		}
	}

	return j, nil
}

// ListStudents returns every record in file order.
func (j *JSONFile) ListStudents() ([]types.Student, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.read()
}

// CreateStudent appends a record, rejecting duplicate ids.
func (j *JSONFile) CreateStudent(s types.Student) (types.Student, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	students, err := j.read()
	if err != nil {
		return types.Student{}, err
	}

	for _, existing := range students {
		if existing.ID == s.ID {
			return types.Student{}, storage.ErrDuplicateID
		}
	}

	students = append(students, s)
	if err := j.write(students); err != nil {
		return types.Student{}, err
	}

	return s, nil
}

// UpdateStudent merges the non-zero fields of s into the stored record.
func (j *JSONFile) UpdateStudent(id string, s types.Student) (types.Student, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	students, err := j.read()
	if err != nil {
		return types.Student{}, err
	}

	for i, existing := range students {
		if existing.ID != id {
			continue
		}
		updated := storage.Merge(existing, s)
		students[i] = updated
		if err := j.write(students); err != nil {
			return types.Student{}, err
		}
		return updated, nil
	}

	return types.Student{}, storage.ErrNotFound
}

// DeleteStudent removes the record with the given id.
func (j *JSONFile) DeleteStudent(id string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	students, err := j.read()
	if err != nil {
		return err
	}

	kept := students[:0]
	for _, s := range students {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	if len(kept) == len(students) {
		return storage.ErrNotFound
	}

	return j.write(kept)
}

// read loads the whole collection. A missing file is an empty store, not
// an error.
func (j *JSONFile) read() ([]types.Student, error) {
	data, err := os.ReadFile(j.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []types.Student{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("jsonfile: read %s: %w", j.path, err)
	}
	if len(data) == 0 {
		return []types.Student{}, nil
	}

	var students []types.Student
	if err := json.Unmarshal(data, &students); err != nil {
		return nil, fmt.Errorf("jsonfile: decode %s: %w", j.path, err)
	}
	if students == nil {
		students = []types.Student{}
	}
	return students, nil
}

// write replaces the whole collection on disk.
func (j *JSONFile) write(students []types.Student) error {
	data, err := json.MarshalIndent(students, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonfile: encode: %w", err)
	}
	if err := os.WriteFile(j.path, data, 0o644); err != nil {
		return fmt.Errorf("jsonfile: write %s: %w", j.path, err)
	}
	return nil
}
