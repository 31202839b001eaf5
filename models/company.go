package models

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/payinvoflow/billing_backend/config"
	"github.com/payinvoflow/billing_backend/utils"
)

var errCompanyInUse = errors.New("company is referenced by invoices")

// Company is the invoice issuer: the entity whose letterhead, banking
// details and tax rates the document carries. Logo bytes live in the blob
// store; the record owns only the reference (URL + object key).
type Company struct {
	ID            int             `gorm:"primary_key" json:"id"`
	Name          string          `gorm:"size:100;not null" json:"name" binding:"required"`
	Address       string          `gorm:"size:255;not null" json:"address" binding:"required"`
	Email         string          `gorm:"size:100;not null" json:"email" binding:"required,email"`
	Phone         string          `gorm:"size:20;not null" json:"phone" binding:"required"`
	Gstin         string          `gorm:"size:15;not null" json:"gstin" binding:"required,gstin"`
	State         string          `gorm:"size:50;not null" json:"state" binding:"required"`
	StateCode     string          `gorm:"size:2;not null" json:"state_code" binding:"required,len=2"`
	BankName      string          `gorm:"size:100;not null" json:"bank_name" binding:"required"`
	BankBranch    string          `gorm:"size:100;not null" json:"bank_branch" binding:"required"`
	AccountNumber string          `gorm:"size:30;not null" json:"account_number" binding:"required"`
	IfscCode      string          `gorm:"size:20;not null" json:"ifsc_code" binding:"required"`
	Logo          string          `gorm:"type:text" json:"logo"`
	LogoKey       string          `gorm:"size:255" json:"logo_key"`
	InvoicePrefix string          `gorm:"size:20" json:"invoice_prefix"`
	CgstRate      decimal.Decimal `gorm:"type:decimal(5,2);default:6.0" json:"cgst_rate"`
	SgstRate      decimal.Decimal `gorm:"type:decimal(5,2);default:6.0" json:"sgst_rate"`
	Status        CompanyStatus   `gorm:"type:enum('Active','Inactive');default:'Active'" json:"status"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewCompany struct {
	Name          string           `json:"name" binding:"required"`
	Address       string           `json:"address" binding:"required"`
	Email         string           `json:"email" binding:"required,email"`
	Phone         string           `json:"phone" binding:"required"`
	Gstin         string           `json:"gstin" binding:"required,gstin"`
	State         string           `json:"state" binding:"required"`
	StateCode     string           `json:"state_code" binding:"required,len=2"`
	BankName      string           `json:"bank_name" binding:"required"`
	BankBranch    string           `json:"bank_branch" binding:"required"`
	AccountNumber string           `json:"account_number" binding:"required"`
	IfscCode      string           `json:"ifsc_code" binding:"required"`
	InvoicePrefix string           `json:"invoice_prefix"`
	CgstRate      *decimal.Decimal `json:"cgst_rate"`
	SgstRate      *decimal.Decimal `json:"sgst_rate"`
	Status        CompanyStatus    `json:"status"`
}

var defaultGstRate = decimal.NewFromFloat(6.0)

func (input *NewCompany) validate(ctx context.Context, id int) error {
	if err := utils.ValidateUnique[Company](ctx, "gstin", input.Gstin, id); err != nil {
		return err
	}
	return nil
}

func CreateCompany(ctx context.Context, input *NewCompany) (*Company, error) {
	db := config.GetDB()

	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = CompanyStatusActive
	}

	company := Company{
		Name:          input.Name,
		Address:       input.Address,
		Email:         input.Email,
		Phone:         input.Phone,
		Gstin:         input.Gstin,
		State:         input.State,
		StateCode:     input.StateCode,
		BankName:      input.BankName,
		BankBranch:    input.BankBranch,
		AccountNumber: input.AccountNumber,
		IfscCode:      input.IfscCode,
		InvoicePrefix: input.InvoicePrefix,
		CgstRate:      utils.DereferencePtr(input.CgstRate, defaultGstRate),
		SgstRate:      utils.DereferencePtr(input.SgstRate, defaultGstRate),
		Status:        status,
	}
	if err := db.WithContext(ctx).Create(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func UpdateCompany(ctx context.Context, id int, input *NewCompany) (*Company, error) {
	db := config.GetDB()

	var company Company
	if err := db.WithContext(ctx).First(&company, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	company.Name = input.Name
	company.Address = input.Address
	company.Email = input.Email
	company.Phone = input.Phone
	company.Gstin = input.Gstin
	company.State = input.State
	company.StateCode = input.StateCode
	company.BankName = input.BankName
	company.BankBranch = input.BankBranch
	company.AccountNumber = input.AccountNumber
	company.IfscCode = input.IfscCode
	company.InvoicePrefix = input.InvoicePrefix
	company.CgstRate = utils.DereferencePtr(input.CgstRate, company.CgstRate)
	company.SgstRate = utils.DereferencePtr(input.SgstRate, company.SgstRate)
	if input.Status != "" {
		company.Status = input.Status
	}

	if err := db.WithContext(ctx).Save(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func DeleteCompany(ctx context.Context, id int) (*Company, error) {
	db := config.GetDB()

	var company Company
	if err := db.WithContext(ctx).First(&company, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	var invoiceCount int64
	if err := db.WithContext(ctx).Model(&Invoice{}).Where("company_id = ?", id).Count(&invoiceCount).Error; err != nil {
		return nil, err
	}
	if invoiceCount > 0 {
		return nil, errCompanyInUse
	}

	if err := db.WithContext(ctx).Delete(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func GetCompany(ctx context.Context, id int) (*Company, error) {
	db := config.GetDB()

	var company Company
	if err := db.WithContext(ctx).First(&company, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &company, nil
}

func GetAllCompanies(ctx context.Context) ([]*Company, error) {
	db := config.GetDB()

	var companies []*Company
	if err := db.WithContext(ctx).Order("name").Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// SetCompanyLogo stores the blob reference written by the upload handler.
func SetCompanyLogo(ctx context.Context, id int, logoURL string, logoKey string) (*Company, error) {
	db := config.GetDB()

	var company Company
	if err := db.WithContext(ctx).First(&company, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	company.Logo = logoURL
	company.LogoKey = logoKey
	if err := db.WithContext(ctx).Model(&company).Updates(map[string]interface{}{
		"logo":     logoURL,
		"logo_key": logoKey,
	}).Error; err != nil {
		return nil, err
	}
	return &company, nil
}
