package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/payinvoflow/billing_backend/config"
	"github.com/payinvoflow/billing_backend/models"
	"github.com/payinvoflow/billing_backend/utils"
)

const maxLogoSizeBytes int64 = 5 * 1024 * 1024
const logoThumbnailWidth = 300

var logoMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// uploadCompanyLogoHandler accepts a multipart logo image, scales it down to
// a print-friendly size, stores it in the bucket, and records the public URL
// on the company.
func uploadCompanyLogoHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		id, ok := parseIdParam(c, "id")
		if !ok {
			return
		}

		fileHeader, err := c.FormFile("logo")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "logo file is required"})
			return
		}
		if fileHeader.Size > maxLogoSizeBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file size exceeds 5MB limit"})
			return
		}

		mimeType := fileHeader.Header.Get("Content-Type")
		if !logoMimeTypes[mimeType] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image type"})
			return
		}

		company, err := models.GetCompany(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read upload"})
			return
		}
		defer file.Close()

		img, err := imaging.Decode(file, imaging.AutoOrientation(true))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image data"})
			return
		}
		if img.Bounds().Dx() > logoThumbnailWidth {
			img = imaging.Resize(img, logoThumbnailWidth, 0, imaging.Lanczos)
		}

		format := imaging.PNG
		ext := ".png"
		if mimeType == "image/jpeg" {
			format = imaging.JPEG
			ext = ".jpg"
		}
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, img, format); err != nil {
			config.LogError(logger, "uploads.go", "uploadCompanyLogoHandler", "imaging.Encode",
				map[string]interface{}{"companyId": id}, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not process image"})
			return
		}

		objectKey := path.Join("company-logos",
			fmt.Sprintf("%d-%s-%d%s", id, uuid.NewString(), time.Now().Unix(), ext))

		uploadCtx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		logoURL, err := utils.UploadObjectToGCS(uploadCtx, objectKey, mimeType, &buf)
		if err != nil {
			config.LogError(logger, "uploads.go", "uploadCompanyLogoHandler", "UploadObjectToGCS",
				map[string]interface{}{"companyId": id, "objectKey": objectKey}, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
			return
		}

		// Drop the previous object once the replacement is stored.
		if company.LogoKey != "" && !strings.EqualFold(company.LogoKey, objectKey) {
			if err := utils.DeleteObjectFromGCS(uploadCtx, company.LogoKey); err != nil {
				config.LogError(logger, "uploads.go", "uploadCompanyLogoHandler", "DeleteObjectFromGCS",
					map[string]interface{}{"companyId": id, "objectKey": company.LogoKey}, err)
			}
		}

		updated, err := models.SetCompanyLogo(c.Request.Context(), id, logoURL, objectKey)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}
