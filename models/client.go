package models

import (
	"context"
	"errors"
	"time"

	"github.com/payinvoflow/billing_backend/config"
	"github.com/payinvoflow/billing_backend/utils"
)

var errClientInUse = errors.New("client is referenced by invoices")

// Client is the billing counterparty an invoice is addressed to.
type Client struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name" binding:"required"`
	Address   string    `gorm:"size:255;not null" json:"address" binding:"required"`
	Email     string    `gorm:"size:100;not null" json:"email" binding:"required,email"`
	Phone     string    `gorm:"size:20;not null" json:"phone" binding:"required"`
	Gstin     string    `gorm:"size:15;not null" json:"gstin" binding:"required,gstin"`
	State     string    `gorm:"size:50;not null" json:"state" binding:"required"`
	StateCode string    `gorm:"size:2;not null" json:"state_code" binding:"required,len=2"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewClient struct {
	Name      string `json:"name" binding:"required"`
	Address   string `json:"address" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
	Gstin     string `json:"gstin" binding:"required,gstin"`
	State     string `json:"state" binding:"required"`
	StateCode string `json:"state_code" binding:"required,len=2"`
}

func (input *NewClient) validate(ctx context.Context, id int) error {
	if err := utils.ValidateUnique[Client](ctx, "gstin", input.Gstin, id); err != nil {
		return err
	}
	return nil
}

func CreateClient(ctx context.Context, input *NewClient) (*Client, error) {
	db := config.GetDB()

	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	client := Client{
		Name:      input.Name,
		Address:   input.Address,
		Email:     input.Email,
		Phone:     input.Phone,
		Gstin:     input.Gstin,
		State:     input.State,
		StateCode: input.StateCode,
	}
	if err := db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func UpdateClient(ctx context.Context, id int, input *NewClient) (*Client, error) {
	db := config.GetDB()

	var client Client
	if err := db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	client.Name = input.Name
	client.Address = input.Address
	client.Email = input.Email
	client.Phone = input.Phone
	client.Gstin = input.Gstin
	client.State = input.State
	client.StateCode = input.StateCode

	if err := db.WithContext(ctx).Save(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func DeleteClient(ctx context.Context, id int) (*Client, error) {
	db := config.GetDB()

	var client Client
	if err := db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	var invoiceCount int64
	if err := db.WithContext(ctx).Model(&Invoice{}).Where("client_id = ?", id).Count(&invoiceCount).Error; err != nil {
		return nil, err
	}
	if invoiceCount > 0 {
		return nil, errClientInUse
	}

	if err := db.WithContext(ctx).Delete(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func GetClient(ctx context.Context, id int) (*Client, error) {
	db := config.GetDB()

	var client Client
	if err := db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &client, nil
}

func GetAllClients(ctx context.Context) ([]*Client, error) {
	db := config.GetDB()

	var clients []*Client
	if err := db.WithContext(ctx).Order("name").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}
