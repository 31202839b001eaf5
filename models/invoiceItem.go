package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/payinvoflow/billing_backend/config"
	"github.com/payinvoflow/billing_backend/utils"
)

// InvoiceItem is one line of an invoice. Amount is stored, not derived at
// read time, so the document assembler can sum lines without re-multiplying.
type InvoiceItem struct {
	ID          int             `gorm:"primary_key" json:"id"`
	InvoiceId   int             `gorm:"index;not null" json:"invoice_id"`
	Date        *time.Time      `json:"date"`
	Particulars string          `gorm:"size:255;not null" json:"particulars" binding:"required"`
	VehicleNo   string          `gorm:"size:20" json:"vehicle_no"`
	InvoiceNo   string          `gorm:"size:50" json:"invoice_no"`
	Quantity    decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"quantity"`
	Rate        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"rate"`
	Amount      decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewInvoiceItem struct {
	Date        *time.Time       `json:"date"`
	Particulars string           `json:"particulars" binding:"required"`
	VehicleNo   string           `json:"vehicle_no"`
	InvoiceNo   string           `json:"invoice_no"`
	Quantity    decimal.Decimal  `json:"quantity"`
	Rate        decimal.Decimal  `json:"rate"`
	Amount      *decimal.Decimal `json:"amount"`
}

// resolveAmount falls back to quantity x rate when the caller did not supply
// an explicit line amount.
func (input *NewInvoiceItem) resolveAmount() decimal.Decimal {
	if input.Amount != nil {
		return *input.Amount
	}
	return input.Quantity.Mul(input.Rate)
}

func (input *NewInvoiceItem) toItem(invoiceId int) InvoiceItem {
	return InvoiceItem{
		InvoiceId:   invoiceId,
		Date:        input.Date,
		Particulars: input.Particulars,
		VehicleNo:   input.VehicleNo,
		InvoiceNo:   input.InvoiceNo,
		Quantity:    input.Quantity,
		Rate:        input.Rate,
		Amount:      input.resolveAmount(),
	}
}

func AddInvoiceItem(ctx context.Context, invoiceId int, input *NewInvoiceItem) (*InvoiceItem, error) {
	db := config.GetDB()

	if err := utils.ValidateResourceId[Invoice](ctx, invoiceId); err != nil {
		return nil, err
	}

	item := input.toItem(invoiceId)
	if err := db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func UpdateInvoiceItem(ctx context.Context, id int, input *NewInvoiceItem) (*InvoiceItem, error) {
	db := config.GetDB()

	var item InvoiceItem
	if err := db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	item.Date = input.Date
	item.Particulars = input.Particulars
	item.VehicleNo = input.VehicleNo
	item.InvoiceNo = input.InvoiceNo
	item.Quantity = input.Quantity
	item.Rate = input.Rate
	item.Amount = input.resolveAmount()

	if err := db.WithContext(ctx).Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func RemoveInvoiceItem(ctx context.Context, id int) (*InvoiceItem, error) {
	db := config.GetDB()

	var item InvoiceItem
	if err := db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	if err := db.WithContext(ctx).Delete(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func GetInvoiceItems(ctx context.Context, invoiceId int) ([]*InvoiceItem, error) {
	db := config.GetDB()

	var items []*InvoiceItem
	if err := db.WithContext(ctx).
		Where("invoice_id = ?", invoiceId).
		Order("id").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ReplaceInvoiceItems swaps the full line set of an invoice in one
// transaction. The UI always submits the complete list, so delete-then-insert
// keeps row state identical to what the client sees.
func ReplaceInvoiceItems(ctx context.Context, invoiceId int, inputs []*NewInvoiceItem) ([]*InvoiceItem, error) {
	db := config.GetDB()

	if err := utils.ValidateResourceId[Invoice](ctx, invoiceId); err != nil {
		return nil, err
	}

	items := make([]*InvoiceItem, 0, len(inputs))
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", invoiceId).Delete(&InvoiceItem{}).Error; err != nil {
			return err
		}
		for _, input := range inputs {
			item := input.toItem(invoiceId)
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			items = append(items, &item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}
