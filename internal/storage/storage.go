// Package storage defines the Storage interface — the contract that any
// persistence backend must satisfy to work with this application.
//
// Handlers depend only on this interface, never on a concrete backend.
// Switching backends (flat JSON file vs. SQLite) is a config change plus
// one line in main.go; handler tests pass a fake that satisfies the
// interface and need no real database.
package storage

import (
	"errors"

	"github.com/aanand-mishra/sims/internal/types"
)

// Sentinel errors returned by Storage implementations. Handlers match
// them with errors.Is to pick the HTTP status; everything else is treated
// as a store failure (500).
var (
	// ErrDuplicateID is returned by CreateStudent when a record with the
	// same id already exists. The existing record is never altered.
	ErrDuplicateID = errors.New("student id already exists")

	// ErrNotFound is returned by UpdateStudent and DeleteStudent when no
	// record has the given id.
	ErrNotFound = errors.New("student not found")
)

// Storage is the database contract. Any concrete type implementing all
// of these methods satisfies the interface implicitly.
type Storage interface {
	// ListStudents returns every student in the store, in no particular
	// order. Returns an empty slice (not nil) when the store is empty.
	ListStudents() ([]types.Student, error)

	// CreateStudent persists a new record and returns it as stored.
	// Returns ErrDuplicateID if the id is already taken.
	CreateStudent(s types.Student) (types.Student, error)

	// UpdateStudent merges the non-zero fields of s into the record with
	// the given id and returns the updated record. The id field itself is
	// immutable and never overwritten. Returns ErrNotFound if the id does
	// not exist.
	UpdateStudent(id string, s types.Student) (types.Student, error)

	// DeleteStudent removes the record with the given id permanently.
	// Returns ErrNotFound if the id does not exist.
	DeleteStudent(id string) error
}

// Merge overlays the non-zero fields of in onto base and returns the
// result. The id is taken from base — edits cannot rename a record.
// Shared by both backends so update semantics cannot drift apart.
func Merge(base, in types.Student) types.Student {
	if in.Name != "" {
		base.Name = in.Name
	}
	if in.Gender != "" {
		base.Gender = in.Gender
	}
	if in.Gmail != "" {
		base.Gmail = in.Gmail
	}
	if in.Program != "" {
		base.Program = in.Program
	}
	if in.Year != 0 {
		base.Year = in.Year
	}
	if in.University != "" {
		base.University = in.University
	}
	return base
}
