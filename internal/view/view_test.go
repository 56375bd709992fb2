package view

import (
	"fmt"
	"testing"

	"github.com/aanand-mishra/sims/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roster() []types.Student {
	return []types.Student{
		{ID: "S001", Name: "Ada Lovelace", Gender: "Female", Gmail: "ada@x.com", Program: "CS", Year: 2, University: "Tech U"},
		{ID: "S002", Name: "Alan Turing", Gender: "Male", Gmail: "alan@x.com", Program: "Mathematics", Year: 3, University: "Tech U"},
		{ID: "S003", Name: "Grace Hopper", Gender: "Female", Gmail: "grace@x.com", Program: "CS", Year: 2, University: "Naval Academy"},
	}
}

func TestFilter(t *testing.T) {
	t.Run("search matches name case-insensitively", func(t *testing.T) {
		got := Filter(roster(), Query{Search: "ada"})
		require.Len(t, got, 1)
		assert.Equal(t, "Ada Lovelace", got[0].Name)
	})

	t.Run("search matches program too", func(t *testing.T) {
		got := Filter(roster(), Query{Search: "math"})
		require.Len(t, got, 1)
		assert.Equal(t, "Alan Turing", got[0].Name)
	})

	t.Run("predicates are conjunctive", func(t *testing.T) {
		// Female + year 2 keeps Ada and Grace; adding a search term
		// narrows to one.
		got := Filter(roster(), Query{Gender: "Female", Year: 2})
		assert.Len(t, got, 2)

		got = Filter(roster(), Query{Search: "grace", Gender: "Female", Year: 2})
		require.Len(t, got, 1)
		assert.Equal(t, "S003", got[0].ID)
	})

	t.Run("year filter excludes non-matching", func(t *testing.T) {
		got := Filter(roster(), Query{Year: 3})
		require.Len(t, got, 1)
		assert.Equal(t, "Alan Turing", got[0].Name)
	})

	t.Run("empty query keeps everything", func(t *testing.T) {
		assert.Len(t, Filter(roster(), Query{}), 3)
	})

	t.Run("input slice is not mutated", func(t *testing.T) {
		all := roster()
		Filter(all, Query{Search: "ada"})
		assert.Equal(t, roster(), all)
	})
}

func TestSort(t *testing.T) {
	t.Run("numeric ids compare numerically", func(t *testing.T) {
		students := []types.Student{{ID: "10"}, {ID: "9"}, {ID: "100"}}
		Sort(students, "id", false)
		assert.Equal(t, []string{"9", "10", "100"},
			[]string{students[0].ID, students[1].ID, students[2].ID})
	})

	t.Run("mixed ids fall back to lexicographic", func(t *testing.T) {
		students := []types.Student{{ID: "S010"}, {ID: "S002"}}
		Sort(students, "id", false)
		assert.Equal(t, "S002", students[0].ID)
	})

	t.Run("year sorts numerically descending", func(t *testing.T) {
		students := []types.Student{{Year: 9}, {Year: 10}, {Year: 2}}
		Sort(students, "year", true)
		assert.Equal(t, types.Year(10), students[0].Year)
		assert.Equal(t, types.Year(2), students[2].Year)
	})

	t.Run("name sorts lexicographically", func(t *testing.T) {
		students := roster()
		Sort(students, "name", false)
		assert.Equal(t, "Ada Lovelace", students[0].Name)
		assert.Equal(t, "Grace Hopper", students[2].Name)
	})

	t.Run("ties keep their order", func(t *testing.T) {
		students := []types.Student{
			{ID: "a", Year: 2},
			{ID: "b", Year: 2},
			{ID: "c", Year: 1},
		}
		Sort(students, "year", false)
		assert.Equal(t, []string{"c", "a", "b"},
			[]string{students[0].ID, students[1].ID, students[2].ID})
	})
}

func TestPaginate(t *testing.T) {
	many := func(n int) []types.Student {
		students := make([]types.Student, n)
		for i := range students {
			students[i] = types.Student{ID: fmt.Sprintf("S%03d", i+1)}
		}
		return students
	}

	t.Run("45 records at page size 20 make 3 pages", func(t *testing.T) {
		p := Paginate(many(45), 3, 20)
		assert.Equal(t, 3, p.TotalPages)
		assert.Equal(t, 45, p.TotalItems)
		require.Len(t, p.Students, 5)
		assert.Equal(t, "S041", p.Students[0].ID)
		assert.Equal(t, "S045", p.Students[4].ID)
		assert.Equal(t, 41, p.Start)
		assert.Equal(t, 45, p.End)
	})

	t.Run("pages concatenate to the full sequence exactly once", func(t *testing.T) {
		all := many(45)
		var rebuilt []types.Student
		for page := 1; page <= 3; page++ {
			rebuilt = append(rebuilt, Paginate(all, page, 20).Students...)
		}
		assert.Equal(t, all, rebuilt)
	})

	t.Run("out-of-range page clamps to 1", func(t *testing.T) {
		p := Paginate(many(45), 99, 20)
		assert.Equal(t, 1, p.Current)
		assert.Equal(t, "S001", p.Students[0].ID)

		p = Paginate(many(45), -1, 20)
		assert.Equal(t, 1, p.Current)
	})

	t.Run("empty roster shows 0-0 of 0", func(t *testing.T) {
		p := Paginate(nil, 1, 20)
		assert.Equal(t, 0, p.TotalItems)
		assert.Equal(t, 0, p.TotalPages)
		assert.Equal(t, 0, p.Start)
		assert.Equal(t, 0, p.End)
		assert.Empty(t, p.Students)
	})

	t.Run("zero per-page falls back to the default", func(t *testing.T) {
		p := Paginate(many(45), 1, 0)
		assert.Len(t, p.Students, DefaultPerPage)
	})
}

func TestApply(t *testing.T) {
	// The "ada" scenario: search term "ada", no other filters, on a
	// 3-record roster returns exactly the one Ada regardless of sort and
	// page settings.
	for _, q := range []Query{
		{Search: "ada"},
		{Search: "ada", SortBy: "year", Desc: true},
		{Search: "ada", Page: 7, PerPage: 5},
	} {
		p := Apply(roster(), q)
		if assert.Len(t, p.Students, 1) {
			assert.Equal(t, "Ada Lovelace", p.Students[0].Name)
		}
		assert.Equal(t, 1, p.TotalItems)
	}
}
