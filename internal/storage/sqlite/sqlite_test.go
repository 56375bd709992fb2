package sqlite

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/aanand-mishra/sims/internal/storage"
	"github.com/aanand-mishra/sims/internal/types"
)

func newStore(t *testing.T) *SQLite {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "students.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { s.Db.Close() })
	return s
}

func ada() types.Student {
	return types.Student{
		ID: "S001", Name: "Ada Lovelace", Gender: "Female",
		Gmail: "ada@x.com", Program: "CS", Year: 2, University: "Tech U",
	}
}

func TestRoundTrip(t *testing.T) {
	s := newStore(t)

	created, err := s.CreateStudent(ada())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created != ada() {
		t.Errorf("created = %+v, want %+v", created, ada())
	}

	students, err := s.ListStudents()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(students) != 1 || students[0] != ada() {
		t.Errorf("list = %+v, want [%+v]", students, ada())
	}
}

func TestListEmpty(t *testing.T) {
	s := newStore(t)
	students, err := s.ListStudents()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if students == nil {
		t.Error("empty store returned nil, want empty slice")
	}
}

func TestConstraintRejectsDuplicate(t *testing.T) {
	s := newStore(t)
	if _, err := s.CreateStudent(ada()); err != nil {
		t.Fatalf("create: %v", err)
	}

	dupe := ada()
	dupe.Name = "Impostor"
	_, err := s.CreateStudent(dupe)
	if !errors.Is(err, storage.ErrDuplicateID) {
		t.Fatalf("duplicate insert: got %v, want ErrDuplicateID", err)
	}

	students, _ := s.ListStudents()
	if len(students) != 1 || students[0].Name != "Ada Lovelace" {
		t.Errorf("existing record altered by rejected insert: %+v", students)
	}
}

func TestUpdate(t *testing.T) {
	s := newStore(t)
	if _, err := s.CreateStudent(ada()); err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := s.UpdateStudent("S001", types.Student{Program: "EE", Year: 3})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Program != "EE" || updated.Year != 3 {
		t.Errorf("merge failed: %+v", updated)
	}
	if updated.Name != "Ada Lovelace" || updated.ID != "S001" {
		t.Errorf("untouched fields changed: %+v", updated)
	}

	if _, err := s.UpdateStudent("S404", types.Student{Name: "Nobody"}); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("update missing: got %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	s := newStore(t)
	if _, err := s.CreateStudent(ada()); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := s.DeleteStudent("S001"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	students, _ := s.ListStudents()
	if len(students) != 0 {
		t.Errorf("record still listed after delete: %+v", students)
	}

	if err := s.DeleteStudent("S001"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second delete: got %v, want ErrNotFound", err)
	}
}
