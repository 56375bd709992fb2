// Package types holds the shared data structures used across the
// application. Keeping them in one place prevents import cycles —
// handlers, storage, view, and web can all import types without
// depending on each other.
package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Student is the single entity of the system. The id is supplied by the
// caller (e.g. "S001"), must be unique across the store, and is immutable
// after creation.
//
// Struct tags:
//
//  1. json:"..." — wire field names for the REST API.
//  2. validate:"..." — rules checked by go-playground/validator on
//     create. "required" rejects missing/zero fields; gender is
//     additionally restricted to the two values the UI offers.
type Student struct {
	ID         string `json:"id"         validate:"required"`
	Name       string `json:"name"       validate:"required"`
	Gender     string `json:"gender"     validate:"required,oneof=Male Female"`
	Gmail      string `json:"gmail"      validate:"required"`
	Program    string `json:"program"    validate:"required"`
	Year       Year   `json:"year"       validate:"required"`
	University string `json:"university" validate:"required"`
}

// Year is the student's year of study. Clients have historically sent it
// as either a JSON number or a numeric string ("2" vs 2), so decoding
// accepts both; encoding always emits a number. Sorting and validation
// treat it as an integer throughout — formatting as "2nd Year" happens
// only at render time (see Ordinal).
type Year int

// UnmarshalJSON accepts 2, "2", and strings with stray non-digit noise
// ("2nd"). An all-noise string decodes to 1, matching the seed importer's
// default.
func (y *Year) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*y = Year(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("year: expected number or string, got %s", data)
	}

	*y = ParseYear(s)
	return nil
}

// MarshalJSON emits the year as a plain number.
func (y Year) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(y))), nil
}

// Ordinal renders the year as a display label: "1st Year", "2nd Year",
// "3rd Year", "4th Year" — with the usual exceptions for 11–13.
func (y Year) Ordinal() string {
	n := int(y)
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
		// 11th, 12th, 13th
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s Year", n, suffix)
}

// ParseYear strips every non-digit character from s and parses what is
// left, defaulting to 1 when nothing remains. This is the seed-file rule:
// "2nd" → 2, "Year 3" → 3, "" → 1.
func ParseYear(s string) Year {
	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 1
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 1
	}
	return Year(n)
}
