package event

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{"01.02.2026", true},
		{"31.12.2030", true},
		{"2026-02-01", false},
		{"32.01.2026", false},
		{"", false},
		{"morgen", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, ok := ParseDate(tt.input)
			if ok != tt.ok {
				t.Errorf("ParseDate(%q) ok = %v, expected %v", tt.input, ok, tt.ok)
			}
		})
	}
}

func TestSortDateSentinel(t *testing.T) {
	valid := SortDate("01.02.2026")
	invalid := SortDate("unbekannt")

	if !valid.Before(invalid) {
		t.Error("unparsable dates must map to the maximum sentinel")
	}
	if invalid.Year() != 9999 {
		t.Errorf("sentinel year = %d", invalid.Year())
	}
}

func TestFormatDateRoundTrip(t *testing.T) {
	want := "10.03.2026"
	parsed, ok := ParseDate(want)
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if got := FormatDate(parsed); got != want {
		t.Errorf("FormatDate = %q, expected %q", got, want)
	}
	if !parsed.Equal(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("parsed = %v", parsed)
	}
}
