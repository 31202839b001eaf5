package utils

import (
	"testing"
	"time"
)

func TestFormatDate(t *testing.T) {
	cases := []struct {
		name string
		date time.Time
		want string
	}{
		{"zero time", time.Time{}, ""},
		{"midnight IST", time.Date(2025, 9, 5, 0, 0, 0, 0, invoiceLocation), "05-09-2025"},
		{"single digit day and month pad", time.Date(2025, 1, 2, 12, 0, 0, 0, invoiceLocation), "02-01-2025"},
		// 20:00 UTC is already past midnight in IST (+05:30).
		{"utc evening rolls to next IST day", time.Date(2025, 9, 5, 20, 0, 0, 0, time.UTC), "06-09-2025"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatDate(tc.date); got != tc.want {
				t.Errorf("FormatDate(%v) = %q, want %q", tc.date, got, tc.want)
			}
		})
	}
}

func TestFormatDatePtr(t *testing.T) {
	if got := FormatDatePtr(nil); got != "" {
		t.Errorf("FormatDatePtr(nil) = %q, want empty", got)
	}
	d := time.Date(2025, 9, 14, 0, 0, 0, 0, invoiceLocation)
	if got := FormatDatePtr(&d); got != "14-09-2025" {
		t.Errorf("FormatDatePtr = %q, want 14-09-2025", got)
	}
}
