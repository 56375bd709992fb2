// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using database/sql and mattn/go-sqlite3.
//
// Unlike the flat-file backend, duplicate-id detection here is not a
// lookup-then-insert pair: the id column is the PRIMARY KEY, so two
// concurrent inserts of the same id race only inside the database, which
// atomically rejects the loser. The constraint violation is translated
// to storage.ErrDuplicateID.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/aanand-mishra/sims/internal/storage"
	"github.com/aanand-mishra/sims/internal/types"

	"github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage. A single
// *sql.DB is a connection pool and is safe for concurrent use.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at path and creates the students table
// if it does not already exist.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			id         TEXT    PRIMARY KEY,
			name       TEXT    NOT NULL,
			gender     TEXT    NOT NULL,
			gmail      TEXT    NOT NULL,
			program    TEXT    NOT NULL,
			year       INTEGER NOT NULL,
			university TEXT    NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// ListStudents returns every student row.
func (s *SQLite) ListStudents() ([]types.Student, error) {
	rows, err := s.Db.Query(
		"SELECT id, name, gender, gmail, program, year, university FROM students",
	)
	if err != nil {
		return nil, fmt.Errorf("ListStudents: query: %w", err)
	}
	defer rows.Close()

	// Non-nil so an empty store encodes as [] rather than null.
	students := make([]types.Student, 0)

	for rows.Next() {
		var st types.Student
		if err := rows.Scan(
			&st.ID,
			&st.Name,
			&st.Gender,
			&st.Gmail,
			&st.Program,
			&st.Year,
			&st.University,
		); err != nil {
			return nil, fmt.Errorf("ListStudents: scan row: %w", err)
		}
		students = append(students, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListStudents: rows iteration: %w", err)
	}

	return students, nil
}

// CreateStudent inserts a new row. The primary key rejects duplicates.
func (s *SQLite) CreateStudent(st types.Student) (types.Student, error) {
	stmt, err := s.Db.Prepare(`
		INSERT INTO students (id, name, gender, gmail, program, year, university)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return types.Student{}, fmt.Errorf("CreateStudent: prepare: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(st.ID, st.Name, st.Gender, st.Gmail, st.Program,
		int(st.Year), st.University)
	if err != nil {
		if isConstraintViolation(err) {
			return types.Student{}, storage.ErrDuplicateID
		}
		return types.Student{}, fmt.Errorf("CreateStudent: exec: %w", err)
	}

	return st, nil
}

// UpdateStudent merges the non-zero fields of in into the stored record
// and returns the result.
func (s *SQLite) UpdateStudent(id string, in types.Student) (types.Student, error) {
	existing, err := s.getByID(id)
	if err != nil {
		return types.Student{}, err
	}

	updated := storage.Merge(existing, in)

	stmt, err := s.Db.Prepare(`
		UPDATE students
		SET name = ?, gender = ?, gmail = ?, program = ?, year = ?, university = ?
		WHERE id = ?
	`)
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudent: prepare: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(updated.Name, updated.Gender, updated.Gmail,
		updated.Program, int(updated.Year), updated.University, id)
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudent: exec: %w", err)
	}

	return updated, nil
}

// DeleteStudent removes a row by id.
func (s *SQLite) DeleteStudent(id string) error {
	stmt, err := s.Db.Prepare("DELETE FROM students WHERE id = ?")
	if err != nil {
		return fmt.Errorf("DeleteStudent: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(id)
	if err != nil {
		return fmt.Errorf("DeleteStudent: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteStudent: rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	return nil
}

func (s *SQLite) getByID(id string) (types.Student, error) {
	var st types.Student
	err := s.Db.QueryRow(`
		SELECT id, name, gender, gmail, program, year, university
		FROM students WHERE id = ? LIMIT 1
	`, id).Scan(
		&st.ID,
		&st.Name,
		&st.Gender,
		&st.Gmail,
		&st.Program,
		&st.Year,
		&st.University,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Student{}, storage.ErrNotFound
	}
	if err != nil {
		return types.Student{}, fmt.Errorf("getByID: scan: %w", err)
	}
	return st, nil
}

// isConstraintViolation reports whether err is a sqlite PRIMARY KEY or
// UNIQUE constraint failure.
func isConstraintViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code == sqlite3.ErrConstraint
}
