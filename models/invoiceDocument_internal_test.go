package models

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/payinvoflow/billing_backend/utils"
)

func TestGenerateInvoiceEmailHTML(t *testing.T) {
	company := &Company{
		Name:  "Ansh Enterpries",
		Email: "anshenterpries@gmail.com",
		Phone: "+91-9988776655",
	}
	client := &Client{Name: "HORA Industries"}
	business := &Business{
		Name:        "PayInvoFlow",
		Description: "Smart invoice generation",
	}

	invoiceDate := time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC)
	dueDate := invoiceDate.AddDate(0, 0, 30)
	amount := decimal.NewFromInt(119840)

	html := generateInvoiceEmailHTML(company, client, "INV-2025-001",
		invoiceDate, dueDate, amount, business)

	for _, want := range []string{
		"HORA Industries",
		"#INV-2025-001",
		"05-09-2025",
		"05-10-2025",
		"119840.00",
		"Ansh Enterpries",
		"anshenterpries@gmail.com",
		"PayInvoFlow",
		"Smart invoice generation",
		"This is an automated email",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("email body missing %q", want)
		}
	}
}

func TestGenerateInvoiceEmailHTMLOmitsEmptyPromotion(t *testing.T) {
	html := generateInvoiceEmailHTML(
		&Company{Name: "Co", Email: "co@x.in", Phone: "1"},
		&Client{Name: "Cl"},
		"N-1", time.Now(), time.Now(), decimal.Zero,
		&Business{},
	)
	if strings.Contains(html, "powered by") {
		t.Error("promotion block rendered without a business profile")
	}
}

func TestGenerateInvoiceEmailHTMLEscapesNames(t *testing.T) {
	html := generateInvoiceEmailHTML(
		&Company{Name: "Co", Email: "co@x.in", Phone: "1"},
		&Client{Name: `<script>alert("x")</script>`},
		"N-1", time.Now(), time.Now(), decimal.Zero,
		&Business{},
	)
	if strings.Contains(html, "<script>") {
		t.Error("client name not escaped in email body")
	}
}

func TestBuildItemRows(t *testing.T) {
	d := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	items := []*InvoiceItem{
		{Date: &d, Particulars: "Transport", Quantity: decimal.NewFromInt(10),
			Rate: decimal.NewFromInt(5000), Amount: decimal.NewFromInt(50000)},
		{Particulars: "Toll", Quantity: decimal.NewFromInt(1),
			Rate: decimal.NewFromInt(1200), Amount: decimal.NewFromInt(1200)},
	}

	rows := buildItemRows(items)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Sr != 1 || rows[1].Sr != 2 {
		t.Errorf("serial numbers not 1-indexed: %d, %d", rows[0].Sr, rows[1].Sr)
	}
	if rows[0].Amount != "50000.00" {
		t.Errorf("amount = %q, want 50000.00", rows[0].Amount)
	}
	if rows[1].Date != "" {
		t.Errorf("nil item date rendered as %q, want empty", rows[1].Date)
	}
}

func TestSumItemAmounts(t *testing.T) {
	items := []*InvoiceItem{
		{Amount: decimal.NewFromInt(500)},
		{Amount: decimal.NewFromInt(1500)},
	}
	if got := sumItemAmounts(items); !got.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("sum = %s, want 2000", got)
	}
	if got := sumItemAmounts(nil); !got.Equal(decimal.Zero) {
		t.Errorf("empty sum = %s, want 0", got)
	}
}

func TestNewInvoiceItemResolveAmount(t *testing.T) {
	explicit := decimal.NewFromInt(999)
	withAmount := &NewInvoiceItem{
		Quantity: decimal.NewFromInt(2),
		Rate:     decimal.NewFromInt(100),
		Amount:   &explicit,
	}
	if got := withAmount.resolveAmount(); !got.Equal(explicit) {
		t.Errorf("explicit amount overridden: %s", got)
	}

	derived := &NewInvoiceItem{
		Quantity: decimal.NewFromInt(2),
		Rate:     decimal.NewFromInt(100),
	}
	if got := derived.resolveAmount(); !got.Equal(decimal.NewFromInt(200)) {
		t.Errorf("derived amount = %s, want 200", got)
	}
}

func TestInvoiceDueDate(t *testing.T) {
	invoiceDate := time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC)

	unset := &Invoice{InvoiceDate: invoiceDate}
	want := time.Date(2025, 10, 5, 0, 0, 0, 0, time.UTC)
	if got := invoiceDueDate(unset); !got.Equal(want) {
		t.Errorf("fallback due date = %s, want %s", got, want)
	}
	// A re-send must produce the same due date, not one anchored to now.
	if first, second := invoiceDueDate(unset), invoiceDueDate(unset); !first.Equal(second) {
		t.Errorf("due date not stable across sends: %s vs %s", first, second)
	}

	stored := time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC)
	withDue := &Invoice{InvoiceDate: invoiceDate, DueDate: &stored}
	if got := invoiceDueDate(withDue); !got.Equal(stored) {
		t.Errorf("stored due date overridden: %s", got)
	}
}

func TestGetInvoiceDetailsRejectsInvalidId(t *testing.T) {
	for _, id := range []int{0, -1} {
		if _, err := GetInvoiceDetails(context.Background(), id); !errors.Is(err, utils.ErrorInvalidId) {
			t.Errorf("GetInvoiceDetails(%d) err = %v, want ErrorInvalidId", id, err)
		}
	}
}
