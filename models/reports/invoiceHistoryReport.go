package reports

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/payinvoflow/billing_backend/models"
	"github.com/payinvoflow/billing_backend/utils"
)

var invoiceHistoryHeadings = []string{
	"InvoiceNumber", "InvoiceDate", "Client", "Company",
	"Subtotal", "CgstAmount", "SgstAmount", "GrandTotal", "Status",
}

// BuildInvoiceHistoryWorkbook lists every invoice matching the filter with
// its cached totals as one spreadsheet row. Invoices never rendered have no
// totals row yet; their money columns stay blank rather than showing zeros.
func BuildInvoiceHistoryWorkbook(ctx context.Context, filter *models.InvoiceFilter) (*excelize.File, error) {
	invoices, err := models.GetInvoices(ctx, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheetName := "Sheet1"
	if _, err := f.NewSheet(sheetName); err != nil {
		return nil, err
	}

	for col, heading := range invoiceHistoryHeadings {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheetName, cell, heading)
	}

	for i, invoice := range invoices {
		amount, err := models.GetInvoiceAmount(ctx, invoice.ID)
		if err != nil {
			return nil, err
		}

		row := i + 2
		f.SetCellValue(sheetName, "A"+fmt.Sprint(row), invoice.InvoiceNumber)
		f.SetCellValue(sheetName, "B"+fmt.Sprint(row), utils.FormatDate(invoice.InvoiceDate))
		f.SetCellValue(sheetName, "C"+fmt.Sprint(row), invoice.Client.Name)
		f.SetCellValue(sheetName, "D"+fmt.Sprint(row), invoice.Company.Name)
		if amount != nil {
			f.SetCellValue(sheetName, "E"+fmt.Sprint(row), amount.Subtotal.StringFixed(2))
			f.SetCellValue(sheetName, "F"+fmt.Sprint(row), amount.CgstAmount.StringFixed(2))
			f.SetCellValue(sheetName, "G"+fmt.Sprint(row), amount.SgstAmount.StringFixed(2))
			f.SetCellValue(sheetName, "H"+fmt.Sprint(row), amount.GrandTotal.StringFixed(2))
		}
		f.SetCellValue(sheetName, "I"+fmt.Sprint(row), string(invoice.Status))
	}

	return f, nil
}
