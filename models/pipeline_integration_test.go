package models_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/payinvoflow/billing_backend/config"
	"github.com/payinvoflow/billing_backend/models"
	"github.com/payinvoflow/billing_backend/utils"
)

func setupIntegration(t *testing.T) context.Context {
	t.Helper()
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires mysql)")
	}

	config.ConnectDatabaseWithRetry()
	models.MigrateTable()

	db := config.GetDB()
	t.Cleanup(func() {
		for _, table := range []string{
			"email_logs", "invoice_amounts", "invoice_items", "invoices",
			"companies", "clients", "businesses",
		} {
			db.Exec("DELETE FROM " + table)
		}
	})
	return context.Background()
}

func createInvoiceFixture(t *testing.T, ctx context.Context, number string, amounts ...int64) *models.Invoice {
	t.Helper()

	client, err := models.CreateClient(ctx, &models.NewClient{
		Name:      "HORA Industries",
		Address:   "123 Market Street, Pune",
		Email:     "contact@horaindustries.com",
		Phone:     "+91-9123456780",
		Gstin:     "27ABCDE1234F1Z5",
		State:     "Maharashtra",
		StateCode: "27",
	})
	if err != nil {
		t.Fatalf("CreateClient: %v", err)
	}

	company, err := models.CreateCompany(ctx, &models.NewCompany{
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
	})
	if err != nil {
		t.Fatalf("CreateCompany: %v", err)
	}

	items := make([]*models.NewInvoiceItem, 0, len(amounts))
	for _, a := range amounts {
		amount := decimal.NewFromInt(a)
		items = append(items, &models.NewInvoiceItem{
			Particulars: "Transportation",
			Quantity:    decimal.NewFromInt(1),
			Rate:        amount,
			Amount:      &amount,
		})
	}

	invoice, err := models.CreateInvoice(ctx, &models.NewInvoice{
		InvoiceNumber: number,
		InvoiceDate:   time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC),
		ClientId:      client.ID,
		CompanyId:     company.ID,
		Items:         items,
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	return invoice
}

func TestGetInvoiceDetailsComputesAndCachesTotals(t *testing.T) {
	ctx := setupIntegration(t)
	invoice := createInvoiceFixture(t, ctx, "INV-IT-001", 500, 1500)

	data, err := models.GetInvoiceDetails(ctx, invoice.ID)
	if err != nil {
		t.Fatalf("GetInvoiceDetails: %v", err)
	}

	// Company rates default to 6/6 and flow onto the invoice at creation.
	if data.Totals.Subtotal != "2000.00" {
		t.Errorf("Subtotal = %s, want 2000.00", data.Totals.Subtotal)
	}
	if data.Totals.CgstAmount != "120.00" || data.Totals.SgstAmount != "120.00" {
		t.Errorf("tax amounts = %s / %s, want 120.00 / 120.00",
			data.Totals.CgstAmount, data.Totals.SgstAmount)
	}
	if data.Totals.GrandTotal != "2240.00" {
		t.Errorf("GrandTotal = %s, want 2240.00", data.Totals.GrandTotal)
	}
	if data.Totals.AmountInWords != "Two Thousand Two Hundred Forty Rupees Only" {
		t.Errorf("AmountInWords = %q", data.Totals.AmountInWords)
	}
	if len(data.InvoiceItems) != 2 || data.InvoiceItems[0].Sr != 1 {
		t.Errorf("unexpected item rows: %+v", data.InvoiceItems)
	}

	amount, err := models.GetInvoiceAmount(ctx, invoice.ID)
	if err != nil {
		t.Fatalf("GetInvoiceAmount: %v", err)
	}
	if amount == nil {
		t.Fatal("totals row was not cached")
	}
	if amount.GrandTotal.StringFixed(2) != "2240.00" {
		t.Errorf("cached GrandTotal = %s", amount.GrandTotal.StringFixed(2))
	}
}

// The cache write is an upsert keyed by invoice: assembling the same invoice
// twice must leave exactly one row with unchanged values.
func TestGetInvoiceDetailsUpsertIsIdempotent(t *testing.T) {
	ctx := setupIntegration(t)
	invoice := createInvoiceFixture(t, ctx, "INV-IT-002", 500, 1500)

	first, err := models.GetInvoiceDetails(ctx, invoice.ID)
	if err != nil {
		t.Fatalf("first GetInvoiceDetails: %v", err)
	}
	second, err := models.GetInvoiceDetails(ctx, invoice.ID)
	if err != nil {
		t.Fatalf("second GetInvoiceDetails: %v", err)
	}

	if first.Totals != second.Totals {
		t.Errorf("totals changed across identical assemblies:\n%+v\n%+v",
			first.Totals, second.Totals)
	}

	var count int64
	db := config.GetDB()
	if err := db.Model(&models.InvoiceAmount{}).
		Where("invoice_id = ?", invoice.ID).Count(&count).Error; err != nil {
		t.Fatalf("count amounts: %v", err)
	}
	if count != 1 {
		t.Errorf("invoice has %d amount rows, want 1", count)
	}
}

func TestGetInvoiceDetailsZeroItems(t *testing.T) {
	ctx := setupIntegration(t)
	invoice := createInvoiceFixture(t, ctx, "INV-IT-003")

	data, err := models.GetInvoiceDetails(ctx, invoice.ID)
	if err != nil {
		t.Fatalf("GetInvoiceDetails: %v", err)
	}
	if data.Totals.GrandTotal != "0.00" {
		t.Errorf("GrandTotal = %s, want 0.00", data.Totals.GrandTotal)
	}
	if data.Totals.AmountInWords != "Zero Rupees Only" {
		t.Errorf("AmountInWords = %q", data.Totals.AmountInWords)
	}
	if len(data.InvoiceItems) != 0 {
		t.Errorf("got %d item rows, want 0", len(data.InvoiceItems))
	}
}

func TestGetInvoiceDetailsUnknownInvoice(t *testing.T) {
	ctx := setupIntegration(t)

	_, err := models.GetInvoiceDetails(ctx, 999999)
	if !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Errorf("err = %v, want ErrorRecordNotFound", err)
	}
}

func usePreviewPipeline(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "template.html")
	tmpl := `<html><body><h1>{{.Invoice.InvoiceNumber}}</h1>` +
		`<p>{{.Company.Name}}</p>{{range .InvoiceItems}}<div>{{.Particulars}}</div>{{end}}` +
		`<p>{{.Totals.GrandTotal}}</p></body></html>`
	if err := os.WriteFile(path, []byte(tmpl), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	t.Setenv("TEMPLATE_PATH", path)
	t.Setenv("ENCRYPTION_KEY", "integration-test-key")
	config.LoadPipelineConfig()
	t.Cleanup(config.LoadPipelineConfig)
	if err := utils.InitPreviewEncryptor(); err != nil {
		t.Fatalf("InitPreviewEncryptor: %v", err)
	}
}

// Preview is strictly read-only: no invoice, item, or totals rows may appear.
func TestPreviewInvoiceDocumentWritesNothing(t *testing.T) {
	ctx := setupIntegration(t)
	usePreviewPipeline(t)

	db := config.GetDB()
	countRows := func(model interface{}) int64 {
		var n int64
		if err := db.Model(model).Count(&n).Error; err != nil {
			t.Fatalf("count: %v", err)
		}
		return n
	}

	before := []int64{
		countRows(&models.Invoice{}),
		countRows(&models.InvoiceItem{}),
		countRows(&models.InvoiceAmount{}),
	}

	amount := decimal.NewFromInt(750)
	token, err := models.PreviewInvoiceDocument(ctx, &models.PreviewInvoiceInput{
		CompanyId: 999999,
		ClientId:  999999,
		Items: []*models.NewInvoiceItem{
			{Particulars: "Draft haul", Quantity: decimal.NewFromInt(1),
				Rate: amount, Amount: &amount},
		},
	})
	if err != nil {
		t.Fatalf("PreviewInvoiceDocument: %v", err)
	}

	html, err := utils.DecryptPreview(token)
	if err != nil {
		t.Fatalf("DecryptPreview: %v", err)
	}
	// Unresolved company and unsaved invoice render as masked placeholders.
	if !strings.Contains(html, "xxxx") {
		t.Errorf("preview missing placeholder markers: %s", html)
	}
	if !strings.Contains(html, "Draft haul") {
		t.Errorf("preview missing submitted item: %s", html)
	}

	after := []int64{
		countRows(&models.Invoice{}),
		countRows(&models.InvoiceItem{}),
		countRows(&models.InvoiceAmount{}),
	}
	if before[0] != after[0] || before[1] != after[1] || before[2] != after[2] {
		t.Errorf("preview persisted rows: before %v, after %v", before, after)
	}
}

type failingMailer struct{}

func (failingMailer) Send(to, subject, textBody, htmlBody string, attachments []utils.Attachment) error {
	return errors.New("smtp: connection refused")
}

func TestSendInvoiceEmailLogsFailure(t *testing.T) {
	ctx := setupIntegration(t)
	usePreviewPipeline(t)
	invoice := createInvoiceFixture(t, ctx, "INV-IT-004", 500, 1500)

	err := models.SendInvoiceEmail(ctx, invoice.ID, failingMailer{})
	if err == nil {
		t.Fatal("expected delivery error to surface")
	}

	logs, logErr := models.GetEmailLogs(ctx, &models.EmailLogFilter{
		Status: models.EmailStatusFailed,
	})
	if logErr != nil {
		t.Fatalf("GetEmailLogs: %v", logErr)
	}
	if len(logs) != 1 {
		t.Fatalf("got %d FAILED logs, want 1", len(logs))
	}

	entry := logs[0]
	if entry.To != "contact@horaindustries.com" {
		t.Errorf("recipient = %q", entry.To)
	}
	if entry.Subject != "Invoice #INV-IT-004 from Ansh Enterpries" {
		t.Errorf("subject = %q", entry.Subject)
	}
	if entry.ErrorMessage == "" {
		t.Error("FAILED log has no error message")
	}
	if len(entry.Attachments) != 1 || entry.Attachments[0] != "Invoice-INV-IT-004.pdf" {
		t.Errorf("attachments = %v", entry.Attachments)
	}
}

func TestSendInvoiceEmailUnknownInvoiceWritesNoLog(t *testing.T) {
	ctx := setupIntegration(t)

	err := models.SendInvoiceEmail(ctx, 999999, failingMailer{})
	if !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("err = %v, want ErrorRecordNotFound", err)
	}

	logs, logErr := models.GetEmailLogs(ctx, nil)
	if logErr != nil {
		t.Fatalf("GetEmailLogs: %v", logErr)
	}
	if len(logs) != 0 {
		t.Errorf("got %d log rows, want 0", len(logs))
	}
}
