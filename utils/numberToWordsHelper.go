package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

var onesWords = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy",
	"Eighty", "Ninety",
}

// AmountToWords spells a currency amount using the Indian numbering
// convention (hundred, thousand, lakh = 10^5, crore = 10^7). Grouping above
// the first three digits is by two digits, not three. Fractional paise are
// dropped: words always describe the whole-rupee part.
func AmountToWords(amount decimal.Decimal) string {
	rupees := amount.IntPart()
	if rupees <= 0 {
		return "Zero Rupees Only"
	}
	return indianNumberWords(rupees) + " Rupees Only"
}

func indianNumberWords(n int64) string {
	var parts []string

	// Amounts of 100 crore and above spell the crore count recursively
	// ("One Hundred Crore"), which keeps the two-digit grouping intact.
	if n >= 10000000 {
		parts = append(parts, indianNumberWords(n/10000000), "Crore")
		n %= 10000000
	}
	if n >= 100000 {
		parts = append(parts, twoDigitWords(n/100000), "Lakh")
		n %= 100000
	}
	if n >= 1000 {
		parts = append(parts, twoDigitWords(n/1000), "Thousand")
		n %= 1000
	}
	if n >= 100 {
		parts = append(parts, onesWords[n/100], "Hundred")
		n %= 100
	}
	if n > 0 {
		parts = append(parts, twoDigitWords(n))
	}
	return strings.Join(parts, " ")
}

func twoDigitWords(n int64) string {
	if n < 20 {
		return onesWords[n]
	}
	if n%10 == 0 {
		return tensWords[n/10]
	}
	return tensWords[n/10] + " " + onesWords[n%10]
}
