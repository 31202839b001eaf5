package models

import (
	"context"
	"fmt"
	"html/template"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/payinvoflow/billing_backend/config"
	"github.com/payinvoflow/billing_backend/utils"
)

// InvoiceDocumentData is the flattened record the invoice template consumes.
// Every field is pre-formatted here so the template stays logic-less: dates
// as dd-MM-yyyy strings, money as two-decimal strings, item rows already
// numbered. Logo fields are template.URL because company logos may be
// data: URIs, which html/template would otherwise neutralize.
type InvoiceDocumentData struct {
	Company      CompanyBlock
	Client       ClientBlock
	Invoice      InvoiceBlock
	InvoiceItems []InvoiceItemRow
	Totals       TotalsBlock
	Business     BusinessBlock
}

type CompanyBlock struct {
	Name          string
	Gstin         string
	Address       string
	StateCode     string
	State         string
	Logo          template.URL
	BankName      string
	BankBranch    string
	AccountNumber string
	IfscCode      string
}

type ClientBlock struct {
	Name    string
	Gstin   string
	Address string
	State   string
}

type InvoiceBlock struct {
	InvoiceNumber string
	InvoiceDate   string
	Status        string
	CgstRate      string
	SgstRate      string
}

type InvoiceItemRow struct {
	Sr          int
	Date        string
	VehicleNo   string
	Particulars string
	InvoiceNo   string
	Quantity    string
	Rate        string
	Amount      string
}

type TotalsBlock struct {
	Subtotal      string
	CgstAmount    string
	SgstAmount    string
	GrandTotal    string
	AmountInWords string
}

type BusinessBlock struct {
	Name      string
	Email     string
	OwnerName string
	Contact   string
	Logo      template.URL
}

func buildItemRows(items []*InvoiceItem) []InvoiceItemRow {
	rows := make([]InvoiceItemRow, 0, len(items))
	for idx, item := range items {
		rows = append(rows, InvoiceItemRow{
			Sr:          idx + 1,
			Date:        utils.FormatDatePtr(item.Date),
			VehicleNo:   item.VehicleNo,
			Particulars: item.Particulars,
			InvoiceNo:   item.InvoiceNo,
			Quantity:    item.Quantity.String(),
			Rate:        item.Rate.StringFixed(2),
			Amount:      item.Amount.StringFixed(2),
		})
	}
	return rows
}

func sumItemAmounts(items []*InvoiceItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Amount)
	}
	return subtotal
}

// GetInvoiceDetails assembles the full document record for one invoice.
// The totals are recomputed from the current line items, written through the
// InvoiceAmount cache, then read back so the document always reflects the
// stored row. The amount-in-words line is rederived from the stored grand
// total rather than trusting the cached text.
func GetInvoiceDetails(ctx context.Context, invoiceId int) (*InvoiceDocumentData, error) {
	if invoiceId <= 0 {
		return nil, utils.ErrorInvalidId
	}

	var (
		invoice  *Invoice
		items    []*InvoiceItem
		business *Business
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		invoice, err = GetInvoice(groupCtx, invoiceId)
		return err
	})
	group.Go(func() error {
		var err error
		items, err = GetInvoiceItems(groupCtx, invoiceId)
		return err
	})
	group.Go(func() error {
		var err error
		business, err = GetBusinessProfile(groupCtx)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	totals := utils.CalculateInvoiceTotals(sumItemAmounts(items), invoice.CgstRate, invoice.SgstRate)

	stored, err := upsertInvoiceAmount(ctx, &InvoiceAmount{
		InvoiceId:     invoice.ID,
		Subtotal:      totals.Subtotal,
		CgstAmount:    totals.CgstAmount,
		SgstAmount:    totals.SgstAmount,
		GrandTotal:    totals.GrandTotal,
		AmountInWords: totals.AmountInWords,
	})
	if err != nil {
		return nil, err
	}

	data := &InvoiceDocumentData{
		Company: CompanyBlock{
			Name:          invoice.Company.Name,
			Gstin:         invoice.Company.Gstin,
			Address:       invoice.Company.Address,
			StateCode:     invoice.Company.StateCode,
			State:         invoice.Company.State,
			Logo:          template.URL(invoice.Company.Logo),
			BankName:      invoice.Company.BankName,
			BankBranch:    invoice.Company.BankBranch,
			AccountNumber: invoice.Company.AccountNumber,
			IfscCode:      invoice.Company.IfscCode,
		},
		Client: ClientBlock{
			Name:    invoice.Client.Name,
			Gstin:   invoice.Client.Gstin,
			Address: invoice.Client.Address,
			State:   invoice.Client.State,
		},
		Invoice: InvoiceBlock{
			InvoiceNumber: invoice.InvoiceNumber,
			InvoiceDate:   utils.FormatDate(invoice.InvoiceDate),
			Status:        string(invoice.Status),
			CgstRate:      invoice.CgstRate.String(),
			SgstRate:      invoice.SgstRate.String(),
		},
		InvoiceItems: buildItemRows(items),
		Totals: TotalsBlock{
			Subtotal:      stored.Subtotal.StringFixed(2),
			CgstAmount:    stored.CgstAmount.StringFixed(2),
			SgstAmount:    stored.SgstAmount.StringFixed(2),
			GrandTotal:    stored.GrandTotal.StringFixed(2),
			AmountInWords: utils.AmountToWords(stored.GrandTotal),
		},
		Business: BusinessBlock{
			Name:      business.Name,
			Email:     business.Email,
			OwnerName: business.OwnerName,
			Contact:   business.Contact,
			Logo:      template.URL(business.Logo),
		},
	}
	return data, nil
}

// ExportInvoicePDF renders the assembled document to a PDF buffer.
func ExportInvoicePDF(ctx context.Context, invoiceId int) ([]byte, error) {
	data, err := GetInvoiceDetails(ctx, invoiceId)
	if err != nil {
		return nil, err
	}

	html, err := utils.GenerateInvoiceHTML(data)
	if err != nil {
		return nil, err
	}
	return utils.GeneratePDF(ctx, html)
}

type PreviewInvoiceInput struct {
	CompanyId int               `json:"company_id"`
	ClientId  int               `json:"client_id"`
	Items     []*NewInvoiceItem `json:"items" binding:"required"`
}

// PreviewInvoiceDocument renders a draft document from unsaved form input
// and returns the encrypted HTML. Nothing is persisted: unresolved company
// or client fields fall back to masked placeholders, and the invoice header
// carries placeholder number and date because no invoice exists yet.
func PreviewInvoiceDocument(ctx context.Context, input *PreviewInvoiceInput) (string, error) {
	company, _ := GetCompany(ctx, input.CompanyId)
	client, _ := GetClient(ctx, input.ClientId)
	business, err := GetBusinessProfile(ctx)
	if err != nil {
		return "", err
	}

	cgstRate := decimal.Zero
	sgstRate := decimal.Zero
	companyBlock := CompanyBlock{
		Name:          "xxxxx xxxxx",
		Gstin:         "xxxxxxxxx",
		Address:       "xxxxxxxxxxxxx",
		StateCode:     "xx",
		State:         "xxxxxxxx",
		BankBranch:    "xxxxxxxxxxxxx",
		AccountNumber: "xxxxxxxxxxxx",
		IfscCode:      "xxxxxxxxx",
	}
	if company != nil {
		cgstRate = company.CgstRate
		sgstRate = company.SgstRate
		companyBlock = CompanyBlock{
			Name:          company.Name,
			Gstin:         company.Gstin,
			Address:       company.Address,
			StateCode:     company.StateCode,
			State:         company.State,
			Logo:          template.URL(company.Logo),
			BankName:      company.BankName,
			BankBranch:    company.BankBranch,
			AccountNumber: company.AccountNumber,
			IfscCode:      company.IfscCode,
		}
	}

	clientBlock := ClientBlock{
		Name:    "xxxxxxxx",
		Gstin:   "xxxxxxxxxx",
		Address: "xxxxxxxxxx",
		State:   "xxxxxxxxx",
	}
	if client != nil {
		clientBlock = ClientBlock{
			Name:    client.Name,
			Gstin:   client.Gstin,
			Address: client.Address,
			State:   client.State,
		}
	}

	subtotal := decimal.Zero
	rows := make([]InvoiceItemRow, 0, len(input.Items))
	for idx, item := range input.Items {
		amount := item.resolveAmount()
		subtotal = subtotal.Add(amount)
		rows = append(rows, InvoiceItemRow{
			Sr:          idx + 1,
			Date:        utils.FormatDatePtr(item.Date),
			VehicleNo:   item.VehicleNo,
			Particulars: item.Particulars,
			InvoiceNo:   item.InvoiceNo,
			Quantity:    item.Quantity.String(),
			Rate:        item.Rate.StringFixed(2),
			Amount:      amount.StringFixed(2),
		})
	}

	totals := utils.CalculateInvoiceTotals(subtotal, cgstRate, sgstRate)

	data := &InvoiceDocumentData{
		Company: companyBlock,
		Client:  clientBlock,
		Invoice: InvoiceBlock{
			InvoiceNumber: "xxxx",
			InvoiceDate:   "xx-xx-xxxx",
			CgstRate:      cgstRate.String(),
			SgstRate:      sgstRate.String(),
		},
		InvoiceItems: rows,
		Totals: TotalsBlock{
			Subtotal:      totals.Subtotal.StringFixed(2),
			CgstAmount:    totals.CgstAmount.StringFixed(2),
			SgstAmount:    totals.SgstAmount.StringFixed(2),
			GrandTotal:    totals.GrandTotal.StringFixed(2),
			AmountInWords: totals.AmountInWords,
		},
		Business: BusinessBlock{
			Name:      business.Name,
			Email:     business.Email,
			OwnerName: business.OwnerName,
			Contact:   business.Contact,
			Logo:      template.URL(business.Logo),
		},
	}

	html, err := utils.GenerateInvoiceHTML(data)
	if err != nil {
		return "", err
	}
	return utils.EncryptPreview(html)
}

const invoiceDueDays = 30

// invoiceDueDate returns the stored due date, or the issue date plus the
// default term when none was set. Anchoring the fallback to the invoice date
// keeps the due date stable across re-sends.
func invoiceDueDate(invoice *Invoice) time.Time {
	if invoice.DueDate != nil {
		return *invoice.DueDate
	}
	return invoice.InvoiceDate.AddDate(0, 0, invoiceDueDays)
}

// SendInvoiceEmail renders the invoice PDF and mails it to the client,
// recording the outcome in the email log. The audit row is written for both
// outcomes once the recipient is known; failures before the invoice resolves
// (unknown id) return without a log row because there is no recipient to
// attribute one to. The delivery error is returned after logging so the
// caller still sees the failure.
func SendInvoiceEmail(ctx context.Context, invoiceId int, mailer utils.Mailer) error {
	logger := config.GetLogger()

	invoice, err := GetInvoice(ctx, invoiceId)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Invoice #%s from %s", invoice.InvoiceNumber, invoice.Company.Name)
	textBody := "Please find attached your invoice."
	attachmentName := fmt.Sprintf("Invoice-%s.pdf", invoice.InvoiceNumber)

	logDelivery := func(status EmailStatus, deliveryErr error) {
		entry := &EmailLog{
			To:          invoice.Client.Email,
			Subject:     subject,
			Body:        textBody,
			Attachments: []string{attachmentName},
			SentAt:      time.Now(),
			Status:      status,
		}
		if deliveryErr != nil {
			entry.ErrorMessage = deliveryErr.Error()
		}
		if err := createEmailLog(ctx, entry); err != nil {
			config.LogError(logger, "models", "SendInvoiceEmail", "createEmailLog",
				map[string]interface{}{"invoiceId": invoiceId, "status": status}, err)
		}
	}

	pdfBuffer, err := ExportInvoicePDF(ctx, invoiceId)
	if err != nil {
		logDelivery(EmailStatusFailed, err)
		return err
	}

	dueDate := invoiceDueDate(invoice)

	business, err := GetBusinessProfile(ctx)
	if err != nil {
		logDelivery(EmailStatusFailed, err)
		return err
	}

	amount, err := GetInvoiceAmount(ctx, invoiceId)
	if err != nil {
		logDelivery(EmailStatusFailed, err)
		return err
	}
	grandTotal := decimal.Zero
	if amount != nil {
		grandTotal = amount.GrandTotal
	}

	htmlBody := generateInvoiceEmailHTML(&invoice.Company, &invoice.Client,
		invoice.InvoiceNumber, invoice.InvoiceDate, dueDate, grandTotal, business)

	err = mailer.Send(invoice.Client.Email, subject, textBody, htmlBody, []utils.Attachment{
		{Filename: attachmentName, Content: pdfBuffer},
	})
	if err != nil {
		config.LogError(logger, "models", "SendInvoiceEmail", "mailer.Send",
			map[string]interface{}{"invoiceId": invoiceId, "to": invoice.Client.Email}, err)
		logDelivery(EmailStatusFailed, err)
		return err
	}

	logger.WithField("invoiceId", strconv.Itoa(invoiceId)).
		WithField("to", invoice.Client.Email).
		Info("invoice email sent")
	logDelivery(EmailStatusSent, nil)
	return nil
}

// generateInvoiceEmailHTML builds the message body shown inline in the mail
// client, alongside the PDF attachment.
func generateInvoiceEmailHTML(company *Company, client *Client, invoiceNumber string,
	invoiceDate time.Time, dueDate time.Time, amount decimal.Decimal, business *Business) string {

	promotion := ""
	if business.Name != "" {
		description := ""
		if business.Description != "" {
			description = " – " + template.HTMLEscapeString(business.Description)
		}
		promotion = fmt.Sprintf(`
    <hr style="margin:20px 0; border:none; border-top:1px solid #ddd;"/>
    <p style="font-size:13px; color:#555;">
      This invoice is powered by <b>%s</b>%s
    </p>`, template.HTMLEscapeString(business.Name), description)
	}

	return fmt.Sprintf(`
  <div style="font-family: Arial, sans-serif; line-height:1.5; color:#333;">
    <p>Dear <b>%s</b>,</p>
    <p>
      Please find attached your invoice <b>#%s</b>
      dated <b>%s</b> with a due date of <b>%s</b>.
    </p>
    <p><b>Total Amount:</b> &#8377;%s</p>
    <p>If payment is already made, kindly ignore this email.</p>
    <p style="margin-top:20px;">Best regards,</p>
    <p><b>%s</b><br/>
    %s | %s</p>
    %s
    <p style="font-size:11px; color:#777; margin-top:20px;">
      This is an automated email. Please do not reply.
    </p>
  </div>`,
		template.HTMLEscapeString(client.Name),
		template.HTMLEscapeString(invoiceNumber),
		utils.FormatDate(invoiceDate),
		utils.FormatDate(dueDate),
		amount.StringFixed(2),
		template.HTMLEscapeString(company.Name),
		template.HTMLEscapeString(company.Email),
		template.HTMLEscapeString(company.Phone),
		promotion,
	)
}
