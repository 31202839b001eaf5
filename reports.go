package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/payinvoflow/billing_backend/models"
	"github.com/payinvoflow/billing_backend/models/reports"
)

func exportInvoiceReportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter models.InvoiceFilter
		if err := c.ShouldBindQuery(&filter); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		f, err := reports.BuildInvoiceHistoryWorkbook(c.Request.Context(), &filter)
		if err != nil {
			respondError(c, err)
			return
		}

		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", `attachment; filename="invoices.xlsx"`)
		if err := f.Write(c.Writer); err != nil {
			c.Error(err)
		}
	}
}
