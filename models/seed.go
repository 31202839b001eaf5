package models

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/payinvoflow/billing_backend/config"
	"github.com/payinvoflow/billing_backend/utils"
)

func seedLogoDataURI(path string) string {
	if path == "" {
		return ""
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)
}

func seedDate(value string) time.Time {
	t, _ := time.Parse("2006-01-02", value)
	return t
}

func seedDatePtr(value string) *time.Time {
	t := seedDate(value)
	return &t
}

type seedItem struct {
	date        string
	particulars string
	vehicleNo   string
	invoiceNo   string
	quantity    int64
	rate        int64
	amount      int64
}

var seedItems = []seedItem{
	{"2025-09-01", "Transportation of goods from Pune to Mumbai", "MH12AB1234", "TR-2025-001", 10, 5000, 50000},
	{"2025-09-02", "Loading & Unloading Charges", "MH12AB5678", "TR-2025-002", 1, 6000, 6000},
	{"2025-09-03", "Transportation of steel coils from Nashik to Pune", "MH14CD4321", "TR-2025-003", 8, 4500, 36000},
	{"2025-09-04", "Driver Night Halt Charges", "MH12XY9876", "TR-2025-004", 1, 2000, 2000},
	{"2025-09-05", "Transportation of machinery from Aurangabad to Pune", "MH20ZZ1111", "TR-2025-005", 12, 5200, 62400},
	{"2025-09-06", "Packing and Handling Services", "MH21TT2233", "TR-2025-006", 1, 4500, 4500},
	{"2025-09-07", "Transportation of furniture from Pune to Bangalore", "KA01MN8899", "TR-2025-007", 15, 4800, 72000},
	{"2025-09-08", "Toll Charges", "MH12KL5566", "TR-2025-008", 1, 1200, 1200},
	{"2025-09-09", "Courier & Documentation Services", "MH12GH3344", "TR-2025-009", 1, 900, 900},
	{"2025-09-10", "Transportation of chemicals from Pune to Hyderabad", "TS09YY7654", "TR-2025-010", 20, 5500, 110000},
	{"2025-09-11", "Container Transportation Charges", "MH12CC9988", "TR-2025-011", 2, 15000, 30000},
	{"2025-09-12", "Transportation of textile goods from Surat to Pune", "GJ01HH4455", "TR-2025-012", 18, 4000, 72000},
	{"2025-09-13", "Insurance Charges for Shipment", "MH12PP7788", "TR-2025-013", 1, 3500, 3500},
	{"2025-09-14", "Transportation of electronics from Pune to Chennai", "TN09UU1122", "TR-2025-014", 25, 6000, 150000},
}

// SeedDemoData wipes the billing tables and loads one demo data set: the
// platform owner profile, one client, one issuing company, and a fully
// itemized invoice with its cached totals. Intended for fresh environments
// only.
func SeedDemoData(ctx context.Context) error {
	db := config.GetDB()

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&InvoiceAmount{}, &InvoiceItem{}, &Invoice{},
			&Company{}, &Client{}, &Business{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}

		business := Business{
			Name:        "PayInvoFlow",
			Email:       config.BusinessEmail(),
			OwnerName:   "Mangesh Kanawade",
			Contact:     "+91-9876543210",
			Description: "PayInvoFlow is a smart Payment Invoice Generator designed to simplify and automate invoice management for your business.",
			Logo:        seedLogoDataURI("public/images/payinvoflow.png"),
		}
		if err := tx.Create(&business).Error; err != nil {
			return err
		}

		client := Client{
			Name:      "HORA Industries",
			Address:   "123 Market Street, Pune",
			Email:     "contact@horaindustries.com",
			Phone:     "+91-9123456780",
			Gstin:     "27ABCDE1234F1Z5",
			State:     "Maharashtra",
			StateCode: "27",
		}
		if err := tx.Create(&client).Error; err != nil {
			return err
		}

		company := Company{
			Name:          "Ansh Enterpries",
			Address:       "Karegaon, Pune Maharashtra",
			Email:         "anshenterpries@gmail.com",
			Phone:         "+91-9988776655",
			Gstin:         "27XYZAB1234C1Z6",
			State:         "Maharashtra",
			StateCode:     "27",
			BankName:      "State Bank of India",
			BankBranch:    "Pune",
			AccountNumber: "123456789012",
			IfscCode:      "SBIN0001234",
			Logo:          seedLogoDataURI("public/images/logo.png"),
			CgstRate:      defaultGstRate,
			SgstRate:      defaultGstRate,
			Status:        CompanyStatusActive,
		}
		if err := tx.Create(&company).Error; err != nil {
			return err
		}

		invoice := Invoice{
			InvoiceNumber: "INV-2025-001",
			InvoiceDate:   seedDate("2025-09-05"),
			ClientId:      client.ID,
			CompanyId:     company.ID,
			CgstRate:      defaultGstRate,
			SgstRate:      defaultGstRate,
			Status:        InvoiceStatusDraft,
		}
		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}

		subtotal := decimal.Zero
		for _, item := range seedItems {
			row := InvoiceItem{
				InvoiceId:   invoice.ID,
				Date:        seedDatePtr(item.date),
				Particulars: item.particulars,
				VehicleNo:   item.vehicleNo,
				InvoiceNo:   item.invoiceNo,
				Quantity:    decimal.NewFromInt(item.quantity),
				Rate:        decimal.NewFromInt(item.rate),
				Amount:      decimal.NewFromInt(item.amount),
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			subtotal = subtotal.Add(row.Amount)
		}

		totals := utils.CalculateInvoiceTotals(subtotal, invoice.CgstRate, invoice.SgstRate)
		amount := InvoiceAmount{
			InvoiceId:     invoice.ID,
			Subtotal:      totals.Subtotal,
			CgstAmount:    totals.CgstAmount,
			SgstAmount:    totals.SgstAmount,
			GrandTotal:    totals.GrandTotal,
			AmountInWords: totals.AmountInWords,
		}
		if err := tx.Create(&amount).Error; err != nil {
			return err
		}

		fmt.Printf("seeded demo data: invoice %s with %d items\n", invoice.InvoiceNumber, len(seedItems))
		return nil
	})
}
