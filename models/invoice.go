package models

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/payinvoflow/billing_backend/config"
	"github.com/payinvoflow/billing_backend/utils"
)

var errInvalidInvoiceStatus = errors.New("invalid invoice status")

type Invoice struct {
	ID            int             `gorm:"primary_key" json:"id"`
	InvoiceNumber string          `gorm:"size:50;unique;not null" json:"invoice_number" binding:"required"`
	InvoiceDate   time.Time       `gorm:"not null" json:"invoice_date" binding:"required"`
	DueDate       *time.Time      `json:"due_date"`
	ClientId      int             `gorm:"index;not null" json:"client_id" binding:"required"`
	Client        Client          `json:"client"`
	CompanyId     int             `gorm:"index;not null" json:"company_id" binding:"required"`
	Company       Company         `json:"company"`
	CgstRate      decimal.Decimal `gorm:"type:decimal(5,2);default:6.0" json:"cgst_rate"`
	SgstRate      decimal.Decimal `gorm:"type:decimal(5,2);default:6.0" json:"sgst_rate"`
	Status        InvoiceStatus   `gorm:"type:enum('Draft','Paid','Cancelled');default:'Draft'" json:"status"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewInvoice struct {
	InvoiceNumber string            `json:"invoice_number" binding:"required"`
	InvoiceDate   time.Time         `json:"invoice_date" binding:"required"`
	DueDate       *time.Time        `json:"due_date"`
	ClientId      int               `json:"client_id" binding:"required"`
	CompanyId     int               `json:"company_id" binding:"required"`
	CgstRate      *decimal.Decimal  `json:"cgst_rate"`
	SgstRate      *decimal.Decimal  `json:"sgst_rate"`
	Status        InvoiceStatus     `json:"status"`
	Items         []*NewInvoiceItem `json:"items"`
}

func (input *NewInvoice) validate(ctx context.Context, id int) error {
	if err := utils.ValidateResourceId[Client](ctx, input.ClientId); err != nil {
		return err
	}
	if err := utils.ValidateResourceId[Company](ctx, input.CompanyId); err != nil {
		return err
	}
	if err := utils.ValidateUnique[Invoice](ctx, "invoice_number", input.InvoiceNumber, id); err != nil {
		return err
	}
	if input.Status != "" && !input.Status.IsValid() {
		return errInvalidInvoiceStatus
	}
	return nil
}

// CreateInvoice inserts the invoice and its initial line items in one
// transaction. Tax rates left unset inherit the issuing company's rates at
// creation time, so later company edits do not retroactively change issued
// invoices.
func CreateInvoice(ctx context.Context, input *NewInvoice) (*Invoice, error) {
	db := config.GetDB()

	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	company, err := GetCompany(ctx, input.CompanyId)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = InvoiceStatusDraft
	}

	invoice := Invoice{
		InvoiceNumber: input.InvoiceNumber,
		InvoiceDate:   input.InvoiceDate,
		DueDate:       input.DueDate,
		ClientId:      input.ClientId,
		CompanyId:     input.CompanyId,
		CgstRate:      utils.DereferencePtr(input.CgstRate, company.CgstRate),
		SgstRate:      utils.DereferencePtr(input.SgstRate, company.SgstRate),
		Status:        status,
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}
		for _, itemInput := range input.Items {
			item := itemInput.toItem(invoice.ID)
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return GetInvoice(ctx, invoice.ID)
}

func UpdateInvoice(ctx context.Context, id int, input *NewInvoice) (*Invoice, error) {
	db := config.GetDB()

	var invoice Invoice
	if err := db.WithContext(ctx).First(&invoice, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	invoice.InvoiceNumber = input.InvoiceNumber
	invoice.InvoiceDate = input.InvoiceDate
	invoice.DueDate = input.DueDate
	invoice.ClientId = input.ClientId
	invoice.CompanyId = input.CompanyId
	invoice.CgstRate = utils.DereferencePtr(input.CgstRate, invoice.CgstRate)
	invoice.SgstRate = utils.DereferencePtr(input.SgstRate, invoice.SgstRate)
	if input.Status != "" {
		invoice.Status = input.Status
	}

	if err := db.WithContext(ctx).Save(&invoice).Error; err != nil {
		return nil, err
	}
	return GetInvoice(ctx, id)
}

// DeleteInvoice removes the invoice with its line items and cached totals
// in one transaction.
func DeleteInvoice(ctx context.Context, id int) (*Invoice, error) {
	db := config.GetDB()

	invoice, err := GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&InvoiceItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", id).Delete(&InvoiceAmount{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Invoice{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

func UpdateStatusInvoice(ctx context.Context, id int, status InvoiceStatus) (*Invoice, error) {
	db := config.GetDB()

	if !status.IsValid() {
		return nil, errInvalidInvoiceStatus
	}

	var invoice Invoice
	if err := db.WithContext(ctx).First(&invoice, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	if err := db.WithContext(ctx).Model(&invoice).Update("status", status).Error; err != nil {
		return nil, err
	}
	return GetInvoice(ctx, id)
}

func GetInvoice(ctx context.Context, id int) (*Invoice, error) {
	db := config.GetDB()

	var invoice Invoice
	err := db.WithContext(ctx).
		Preload("Client").
		Preload("Company").
		First(&invoice, id).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &invoice, nil
}

type InvoiceFilter struct {
	ClientId  int           `form:"client_id"`
	CompanyId int           `form:"company_id"`
	Status    InvoiceStatus `form:"status"`
	From      *time.Time    `form:"from" time_format:"2006-01-02"`
	To        *time.Time    `form:"to" time_format:"2006-01-02"`
}

func GetInvoices(ctx context.Context, filter *InvoiceFilter) ([]*Invoice, error) {
	db := config.GetDB()

	query := db.WithContext(ctx).Preload("Client").Preload("Company")
	if filter != nil {
		if filter.ClientId != 0 {
			query = query.Where("client_id = ?", filter.ClientId)
		}
		if filter.CompanyId != 0 {
			query = query.Where("company_id = ?", filter.CompanyId)
		}
		if filter.Status != "" {
			if !filter.Status.IsValid() {
				return nil, errInvalidInvoiceStatus
			}
			query = query.Where("status = ?", filter.Status)
		}
		if filter.From != nil {
			query = query.Where("invoice_date >= ?", filter.From)
		}
		if filter.To != nil {
			query = query.Where("invoice_date <= ?", filter.To)
		}
	}

	var invoices []*Invoice
	if err := query.Order("invoice_date DESC, id DESC").Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}
