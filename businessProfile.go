package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/payinvoflow/billing_backend/models"
)

func getBusinessProfileHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		business, err := models.GetBusinessProfile(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, business)
	}
}

func upsertBusinessProfileHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewBusiness
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		business, err := models.UpsertBusinessProfile(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, business)
	}
}
