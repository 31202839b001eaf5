package models

import (
	"context"
	"time"

	"github.com/payinvoflow/billing_backend/config"
)

// EmailLog is an append-only audit trail of outgoing invoice mail. Rows are
// written for both outcomes: SENT after the transport accepts the message,
// FAILED with the transport error when it does not.
type EmailLog struct {
	ID           int         `gorm:"primary_key" json:"id"`
	To           string      `gorm:"column:recipient;size:100;not null" json:"to"`
	Subject      string      `gorm:"size:255;not null" json:"subject"`
	Body         string      `gorm:"type:text" json:"body"`
	Attachments  []string    `gorm:"serializer:json" json:"attachments"`
	SentAt       time.Time   `gorm:"not null" json:"sent_at"`
	Status       EmailStatus `gorm:"type:enum('SENT','FAILED');not null" json:"status"`
	ErrorMessage string      `gorm:"type:text" json:"error_message"`
	CreatedAt    time.Time   `gorm:"autoCreateTime" json:"created_at"`
}

func createEmailLog(ctx context.Context, entry *EmailLog) error {
	db := config.GetDB()
	return db.WithContext(ctx).Create(entry).Error
}

type EmailLogFilter struct {
	Status EmailStatus `form:"status"`
	To     string      `form:"to"`
}

func GetEmailLogs(ctx context.Context, filter *EmailLogFilter) ([]*EmailLog, error) {
	db := config.GetDB()

	query := db.WithContext(ctx).Model(&EmailLog{})
	if filter != nil {
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.To != "" {
			query = query.Where("recipient = ?", filter.To)
		}
	}

	var logs []*EmailLog
	if err := query.Order("sent_at DESC, id DESC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
