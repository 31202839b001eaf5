package utils

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAmountToWords(t *testing.T) {
	cases := []struct {
		name   string
		amount string
		want   string
	}{
		{"zero", "0", "Zero Rupees Only"},
		{"negative", "-5", "Zero Rupees Only"},
		{"single digit", "7", "Seven Rupees Only"},
		{"teens", "14", "Fourteen Rupees Only"},
		{"round tens", "40", "Forty Rupees Only"},
		{"tens with units", "86", "Eighty Six Rupees Only"},
		{"round hundred", "100", "One Hundred Rupees Only"},
		{"hundred with remainder", "356", "Three Hundred Fifty Six Rupees Only"},
		{"round thousand", "1000", "One Thousand Rupees Only"},
		{"thousands grouped by two digits", "45000", "Forty Five Thousand Rupees Only"},
		{"thousand hundred mix", "2345", "Two Thousand Three Hundred Forty Five Rupees Only"},
		{"one lakh", "100000", "One Lakh Rupees Only"},
		{"lakh with remainder", "119840", "One Lakh Nineteen Thousand Eight Hundred Forty Rupees Only"},
		{"several lakh", "2550000", "Twenty Five Lakh Fifty Thousand Rupees Only"},
		{"one crore", "10000000", "One Crore Rupees Only"},
		{"crore mix", "12345678", "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight Rupees Only"},
		{"hundred crore recursion", "1000000000", "One Hundred Crore Rupees Only"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			amount, err := decimal.NewFromString(tc.amount)
			if err != nil {
				t.Fatalf("bad amount %q: %v", tc.amount, err)
			}
			got := AmountToWords(amount)
			if got != tc.want {
				t.Errorf("AmountToWords(%s) = %q, want %q", tc.amount, got, tc.want)
			}
		})
	}
}

// The words line describes whole rupees only. Paise never leak into the
// output, including amounts within a paisa of the next rupee.
func TestAmountToWordsDropsPaise(t *testing.T) {
	cases := []struct {
		amount string
		want   string
	}{
		{"1.50", "One Rupees Only"},
		{"99.99", "Ninety Nine Rupees Only"},
		{"0.75", "Zero Rupees Only"},
		{"119840.00", "One Lakh Nineteen Thousand Eight Hundred Forty Rupees Only"},
	}

	for _, tc := range cases {
		amount, err := decimal.NewFromString(tc.amount)
		if err != nil {
			t.Fatalf("bad amount %q: %v", tc.amount, err)
		}
		if got := AmountToWords(amount); got != tc.want {
			t.Errorf("AmountToWords(%s) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestAmountToWordsFormatting(t *testing.T) {
	// Spot check a spread of values for formatting defects rather than
	// exact wording: doubled spaces, stray separators, missing suffix.
	values := []int64{1, 19, 20, 99, 100, 101, 110, 999, 1000, 1001, 10010,
		99999, 100001, 909090, 9999999, 10000001, 123456789}

	for _, v := range values {
		got := AmountToWords(decimal.NewFromInt(v))
		if strings.Contains(got, "  ") {
			t.Errorf("AmountToWords(%d) = %q contains double space", v, got)
		}
		if !strings.HasSuffix(got, " Rupees Only") {
			t.Errorf("AmountToWords(%d) = %q missing suffix", v, got)
		}
		if strings.Contains(got, " and ") || strings.Contains(got, ",") {
			t.Errorf("AmountToWords(%d) = %q contains unexpected separator", v, got)
		}
	}
}
