package types

import (
	"encoding/json"
	"testing"
)

func TestYearOrdinal(t *testing.T) {
	cases := map[Year]string{
		1:  "1st Year",
		2:  "2nd Year",
		3:  "3rd Year",
		4:  "4th Year",
		11: "11th Year",
		12: "12th Year",
		13: "13th Year",
		21: "21st Year",
		22: "22nd Year",
		23: "23rd Year",
	}
	for year, want := range cases {
		if got := year.Ordinal(); got != want {
			t.Errorf("Year(%d).Ordinal() = %q, want %q", int(year), got, want)
		}
	}
}

func TestParseYear(t *testing.T) {
	cases := []struct {
		in   string
		want Year
	}{
		{"2", 2},
		{"2nd", 2},
		{"Year 3", 3},
		{" 4 ", 4},
		{"", 1},
		{"freshman", 1},
	}
	for _, tc := range cases {
		if got := ParseYear(tc.in); got != tc.want {
			t.Errorf("ParseYear(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestYearJSON(t *testing.T) {
	t.Run("accepts number and numeric string", func(t *testing.T) {
		for _, body := range []string{`{"year":2}`, `{"year":"2"}`, `{"year":"2nd"}`} {
			var s Student
			if err := json.Unmarshal([]byte(body), &s); err != nil {
				t.Fatalf("unmarshal %s: %v", body, err)
			}
			if s.Year != 2 {
				t.Errorf("unmarshal %s: year = %d, want 2", body, s.Year)
			}
		}
	})

	t.Run("always emits a number", func(t *testing.T) {
		data, err := json.Marshal(Student{Year: 3})
		if err != nil {
			t.Fatal(err)
		}
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			t.Fatal(err)
		}
		if string(raw["year"]) != "3" {
			t.Errorf("year encoded as %s, want 3", raw["year"])
		}
	})
}
