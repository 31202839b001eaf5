package models

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/payinvoflow/billing_backend/config"
)

// Business is the platform owner's profile, printed in the document footer
// ("Powered by ...") and used as the sender identity on outgoing mail. There
// is a single active profile, looked up by the configured business email.
type Business struct {
	ID          int       `gorm:"primary_key" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name" binding:"required"`
	Email       string    `gorm:"size:100;unique;not null" json:"email" binding:"required,email"`
	OwnerName   string    `gorm:"size:100" json:"owner_name"`
	Contact     string    `gorm:"size:20" json:"contact"`
	Description string    `gorm:"size:255" json:"description"`
	Logo        string    `gorm:"type:text" json:"logo"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewBusiness struct {
	Name        string `json:"name" binding:"required"`
	OwnerName   string `json:"owner_name"`
	Contact     string `json:"contact"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
}

const businessCacheTTL = 10 * time.Minute

func businessCacheKey(email string) string {
	return "BusinessProfile:" + email
}

// GetBusinessProfile returns the owner profile for the configured business
// email. A missing row is not an error: documents render with an empty
// footer block until the profile is created.
func GetBusinessProfile(ctx context.Context) (*Business, error) {
	email := config.BusinessEmail()

	var cached Business
	if found, err := config.GetRedisObject(businessCacheKey(email), &cached); err == nil && found {
		return &cached, nil
	}

	db := config.GetDB()
	var business Business
	err := db.WithContext(ctx).Where("email = ?", email).First(&business).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &Business{Email: email}, nil
		}
		return nil, err
	}

	_ = config.SetRedisObject(businessCacheKey(email), business, businessCacheTTL)
	return &business, nil
}

// UpsertBusinessProfile creates or updates the single profile row keyed by
// the configured business email, then drops the cache entry.
func UpsertBusinessProfile(ctx context.Context, input *NewBusiness) (*Business, error) {
	email := config.BusinessEmail()
	db := config.GetDB()

	var business Business
	err := db.WithContext(ctx).Where("email = ?", email).First(&business).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	business.Email = email
	business.Name = input.Name
	business.OwnerName = input.OwnerName
	business.Contact = input.Contact
	business.Description = input.Description
	business.Logo = input.Logo

	if err := db.WithContext(ctx).Save(&business).Error; err != nil {
		return nil, err
	}

	_ = config.RemoveRedisKey(businessCacheKey(email))
	return &business, nil
}
