package utils

import "github.com/shopspring/decimal"

var decimalOneHundred = decimal.NewFromInt(100)

// InvoiceTotals is the derived money block of one invoice document.
type InvoiceTotals struct {
	Subtotal      decimal.Decimal
	CgstAmount    decimal.Decimal
	SgstAmount    decimal.Decimal
	GrandTotal    decimal.Decimal
	AmountInWords string
}

// CalculateInvoiceTotals applies the CGST/SGST percentages to a subtotal.
// No rounding happens here: callers format to two decimals at display time,
// so recomputing from the same inputs always reproduces the same totals.
func CalculateInvoiceTotals(subtotal decimal.Decimal, cgstRate decimal.Decimal, sgstRate decimal.Decimal) InvoiceTotals {
	cgstAmount := subtotal.Mul(cgstRate).Div(decimalOneHundred)
	sgstAmount := subtotal.Mul(sgstRate).Div(decimalOneHundred)
	grandTotal := subtotal.Add(cgstAmount).Add(sgstAmount)

	return InvoiceTotals{
		Subtotal:      subtotal,
		CgstAmount:    cgstAmount,
		SgstAmount:    sgstAmount,
		GrandTotal:    grandTotal,
		AmountInWords: AmountToWords(grandTotal),
	}
}
