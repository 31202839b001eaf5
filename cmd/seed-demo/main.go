package main

import (
	"context"
	"log"

	"github.com/payinvoflow/billing_backend/config"
	"github.com/payinvoflow/billing_backend/models"
)

// seed-demo resets the billing tables and loads the demo data set. Run it
// against a fresh database only.
func main() {
	config.LoadPipelineConfig()
	config.ConnectDatabaseWithRetry()

	models.MigrateTable()

	if err := models.SeedDemoData(context.Background()); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("seeding completed")
}
