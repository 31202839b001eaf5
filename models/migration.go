package models

import (
	"log"

	"github.com/payinvoflow/billing_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Business{}, &Client{}, &Company{},
		&Invoice{}, &InvoiceItem{}, &InvoiceAmount{},
		&EmailLog{},
		&User{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
