// Package web serves the roster UI: one server-rendered page driven by
// query parameters, plus the static assets it needs.
//
// The page is a pure function of the store contents and the parsed
// query — the filter/sort/paginate work happens in internal/view and
// the template only draws the resulting snapshot. Mutations go through
// the JSON API (static/app.js) and finish with a full page reload, so
// the browser never holds roster state of its own.
package web

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"github.com/aanand-mishra/sims/internal/storage"
	"github.com/aanand-mishra/sims/internal/types"
	"github.com/aanand-mishra/sims/internal/view"
)

//go:embed templates static
var content embed.FS

var indexTmpl = template.Must(template.New("index.html.tmpl").
	Funcs(template.FuncMap{
		"until": func(n int) []int {
			pages := make([]int, n)
			for i := range pages {
				pages[i] = i + 1
			}
			return pages
		},
	}).
	ParseFS(content, "templates/index.html.tmpl"))

// pageData is everything the index template sees.
type pageData struct {
	Page       view.Page
	Query      view.Query
	TotalCount int            // roster size before filtering
	Edit       *types.Student // non-nil when the form is in edit mode
	Years      []int          // distinct years for the filter dropdown
}

// PageSizes are the options offered by the per-page dropdown.
func (pageData) PageSizes() []int {
	return []int{10, 20, 50, 100}
}

// PageURL builds the link for a page-number button, carrying every other
// control along unchanged.
func (d pageData) PageURL(page int) string {
	v := url.Values{}
	if d.Query.Search != "" {
		v.Set("search", d.Query.Search)
	}
	if d.Query.Gender != "" {
		v.Set("gender", d.Query.Gender)
	}
	if d.Query.Year != 0 {
		v.Set("year", strconv.Itoa(d.Query.Year))
	}
	v.Set("sort", d.Query.SortBy)
	if d.Query.Desc {
		v.Set("order", "desc")
	}
	v.Set("per_page", strconv.Itoa(d.Query.PerPage))
	v.Set("page", strconv.Itoa(page))
	return "/?" + v.Encode()
}

// Static returns the handler for /static/ assets.
func Static() http.Handler {
	return http.FileServer(http.FS(content))
}

// Index returns the handler for GET /: parse the query controls, run
// the view pipeline over a fresh roster fetch, render the page.
func Index(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		students, err := store.ListStudents()
		if err != nil {
			slog.Error("error rendering roster page", slog.String("error", err.Error()))
			http.Error(w, "store unavailable", http.StatusInternalServerError)
			return
		}

		q := parseQuery(r.URL.Query())

		data := pageData{
			Page:       view.Apply(students, q),
			Query:      q,
			TotalCount: len(students),
			Years:      distinctYears(students),
		}

		if editID := r.URL.Query().Get("edit"); editID != "" {
			for i := range students {
				if students[i].ID == editID {
					data.Edit = &students[i]
					break
				}
			}
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := indexTmpl.Execute(w, data); err != nil {
			slog.Error("error executing template", slog.String("error", err.Error()))
		}
	}
}

// parseQuery maps URL query parameters onto view.Query. Unparseable
// numbers fall back to the zero value, which the pipeline treats as
// "no filter" / defaults.
func parseQuery(values url.Values) view.Query {
	year, _ := strconv.Atoi(values.Get("year"))
	page, _ := strconv.Atoi(values.Get("page"))
	perPage, _ := strconv.Atoi(values.Get("per_page"))
	if perPage <= 0 {
		perPage = view.DefaultPerPage
	}

	sortBy := values.Get("sort")
	if sortBy == "" {
		sortBy = "id"
	}

	return view.Query{
		Search:  values.Get("search"),
		Gender:  values.Get("gender"),
		Year:    year,
		SortBy:  sortBy,
		Desc:    values.Get("order") == "desc",
		Page:    page,
		PerPage: perPage,
	}
}

func distinctYears(students []types.Student) []int {
	seen := map[int]bool{}
	var years []int
	for _, s := range students {
		if y := int(s.Year); !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	sort.Ints(years)
	return years
}
