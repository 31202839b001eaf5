package models

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/payinvoflow/billing_backend/config"
)

// InvoiceAmount caches the computed totals of one invoice. One row per
// invoice; the document assembler upserts it on every read so the cache can
// never drift from the line items for longer than one render.
type InvoiceAmount struct {
	ID            int             `gorm:"primary_key" json:"id"`
	InvoiceId     int             `gorm:"uniqueIndex;not null" json:"invoice_id"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"subtotal"`
	CgstAmount    decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"cgst_amount"`
	SgstAmount    decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"sgst_amount"`
	GrandTotal    decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"grand_total"`
	AmountInWords string          `gorm:"size:500" json:"amount_in_words"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// upsertInvoiceAmount writes the totals row for the invoice, replacing any
// previous values, then re-reads it so callers see exactly what is stored.
func upsertInvoiceAmount(ctx context.Context, amount *InvoiceAmount) (*InvoiceAmount, error) {
	db := config.GetDB()

	if err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "invoice_id"}},
		UpdateAll: true,
	}).Create(amount).Error; err != nil {
		return nil, err
	}

	var stored InvoiceAmount
	if err := db.WithContext(ctx).Where("invoice_id = ?", amount.InvoiceId).First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// GetInvoiceAmount returns the cached totals row, or nil when the invoice
// has never been rendered.
func GetInvoiceAmount(ctx context.Context, invoiceId int) (*InvoiceAmount, error) {
	db := config.GetDB()

	var amount InvoiceAmount
	err := db.WithContext(ctx).Where("invoice_id = ?", invoiceId).First(&amount).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &amount, nil
}
