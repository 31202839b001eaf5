package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/payinvoflow/billing_backend/models"
)

func listEmailLogsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter models.EmailLogFilter
		if err := c.ShouldBindQuery(&filter); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		logs, err := models.GetEmailLogs(c.Request.Context(), &filter)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, logs)
	}
}
