// Package view implements the roster display pipeline: filter → sort →
// paginate. Everything here is a pure function of the full roster and an
// explicit Query — no package-level state, no mutation of the input
// slice. The renderer consumes the resulting Page snapshot.
package view

import (
	"sort"
	"strconv"
	"strings"

	"github.com/aanand-mishra/sims/internal/types"
)

// DefaultPerPage is the page size used when the query does not set one.
const DefaultPerPage = 20

// Query captures every control that influences the visible page.
type Query struct {
	Search  string // matched against name and program, case-insensitive
	Gender  string // "" = any
	Year    int    // 0 = any
	SortBy  string // "id", "name", "year", "program", "university"; "" = no sort
	Desc    bool
	Page    int // 1-indexed; out of range clamps to 1
	PerPage int // 0 = DefaultPerPage
}

// Page is the pipeline output handed to the renderer.
type Page struct {
	Students   []types.Student // the visible slice
	TotalItems int             // records surviving the filter
	TotalPages int
	Current    int // clamped current page
	Start, End int // 1-based display range, 0-0 when empty
}

// Apply runs the full pipeline over the roster.
func Apply(students []types.Student, q Query) Page {
	filtered := Filter(students, q)
	Sort(filtered, q.SortBy, q.Desc)
	return Paginate(filtered, q.Page, q.PerPage)
}

// Filter keeps records matching all three predicates conjunctively:
// the search substring appears in name or program (case-insensitive),
// the gender matches (or no gender filter), and the year matches (or no
// year filter). It always returns a fresh slice.
func Filter(students []types.Student, q Query) []types.Student {
	search := strings.ToLower(q.Search)

	out := make([]types.Student, 0, len(students))
	for _, s := range students {
		if search != "" &&
			!strings.Contains(strings.ToLower(s.Name), search) &&
			!strings.Contains(strings.ToLower(s.Program), search) {
			continue
		}
		if q.Gender != "" && s.Gender != q.Gender {
			continue
		}
		if q.Year != 0 && int(s.Year) != q.Year {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Sort orders students in place by the given field. Year always compares
// numerically; id compares numerically when both values parse as
// integers (so "9" sorts before "10") and lexicographically otherwise.
// The sort is stable, so ties keep their filtered order.
func Sort(students []types.Student, field string, desc bool) {
	if field == "" {
		return
	}

	less := func(a, b types.Student) bool {
		switch field {
		case "id":
			return idLess(a.ID, b.ID)
		case "name":
			return a.Name < b.Name
		case "year":
			return a.Year < b.Year
		case "program":
			return a.Program < b.Program
		case "university":
			return a.University < b.University
		default:
			return false
		}
	}

	sort.SliceStable(students, func(i, j int) bool {
		if desc {
			return less(students[j], students[i])
		}
		return less(students[i], students[j])
	})
}

// idLess compares two ids numerically when both are integers,
// lexicographically otherwise.
func idLess(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}

// Paginate slices the filtered roster into pages of perPage records and
// returns the requested page. totalPages = ceil(N / perPage); a page
// outside [1, totalPages] clamps to 1.
func Paginate(students []types.Student, page, perPage int) Page {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	total := len(students)
	totalPages := (total + perPage - 1) / perPage

	if page < 1 || page > totalPages {
		page = 1
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	p := Page{
		Students:   students[start:end],
		TotalItems: total,
		TotalPages: totalPages,
		Current:    page,
	}
	if total > 0 {
		p.Start = start + 1
		p.End = end
	}
	return p
}
