package core

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   time.Time
		wantOK bool
	}{
		{"day month year", "21/05/2019", time.Date(2019, 5, 21, 0, 0, 0, 0, time.UTC), true},
		{"first of month", "01/02/2020", time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC), true},
		{"leap day", "29/02/2020", time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC), true},
		{"empty", "", time.Time{}, false},
		{"month day year rejected", "05/21/2019", time.Time{}, false},
		{"iso rejected", "2019-05-21", time.Time{}, false},
		{"single digit day rejected", "1/05/2019", time.Time{}, false},
		{"two digit year rejected", "21/05/19", time.Time{}, false},
		{"not a leap year", "29/02/2019", time.Time{}, false},
		{"surrounding whitespace rejected", " 21/05/2019", time.Time{}, false},
		{"garbage", "soon", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseDate(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatShortDate(t *testing.T) {
	got := FormatShortDate(time.Date(2019, 5, 21, 0, 0, 0, 0, time.UTC))
	if got != "05/21/2019" {
		t.Errorf("FormatShortDate() = %q, want %q", got, "05/21/2019")
	}
}

func TestParseReferenceDate(t *testing.T) {
	want := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, input := range []string{"2019-01-01", "01/01/2019", " 2019-01-01 "} {
		got, err := ParseReferenceDate(input)
		if err != nil {
			t.Fatalf("ParseReferenceDate(%q) error = %v", input, err)
		}
		if !got.Equal(want) {
			t.Errorf("ParseReferenceDate(%q) = %v, want %v", input, got, want)
		}
	}

	_, err := ParseReferenceDate("2019/01/01")
	var dateErr *DateError
	if !errors.As(err, &dateErr) {
		t.Fatalf("ParseReferenceDate() error = %v, want *DateError", err)
	}
	if dateErr.Input != "2019/01/01" {
		t.Errorf("DateError.Input = %q, want %q", dateErr.Input, "2019/01/01")
	}
}
