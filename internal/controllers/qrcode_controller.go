package controllers

import (
	"net/http"

	"snaplink/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
)

type QRCodeController struct {
	urlService service.URLService
	baseURL    string
}

func NewQRCodeController(urlService service.URLService, baseURL string) *QRCodeController {
	return &QRCodeController{
		urlService: urlService,
		baseURL:    baseURL,
	}
}

// GenerateQRCode handles GET /api/v1/qrcode/:shortCode - generates a QR
// code PNG for an existing short URL
func (qc *QRCodeController) GenerateQRCode(c *gin.Context) {
	shortCode := c.Param("shortCode")

	// Only encode codes that actually exist
	if _, err := qc.urlService.Stats(shortCode); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "URL not found",
		})
		return
	}

	shortURL := qc.baseURL + "/" + shortCode

	// 256x256 pixels, medium error recovery
	pngData, err := qrcode.Encode(shortURL, qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate QR code",
		})
		return
	}

	c.Header("Content-Disposition", "inline; filename=qrcode.png")
	c.Data(http.StatusOK, "image/png", pngData)
}
