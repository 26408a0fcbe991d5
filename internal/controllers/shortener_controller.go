package controllers

import (
	"errors"
	"net/http"

	"snaplink/internal/models"
	"snaplink/internal/service"

	"github.com/gin-gonic/gin"
)

type ShortenerController struct {
	urlService service.URLService
	baseURL    string
}

func NewShortenerController(urlService service.URLService, baseURL string) *ShortenerController {
	return &ShortenerController{
		urlService: urlService,
		baseURL:    baseURL,
	}
}

// CreateShortURL handles POST /api/v1/shorten
func (sc *ShortenerController) CreateShortURL(c *gin.Context) {
	var req models.CreateURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	record, err := sc.urlService.Create(&req)
	if err != nil {
		if service.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, models.NewURLResponse(record, sc.baseURL))
}

// RedirectToURL handles GET /:shortCode - redirects to the original URL
// and records the click
func (sc *ShortenerController) RedirectToURL(c *gin.Context) {
	shortCode := c.Param("shortCode")

	record, err := sc.urlService.Lookup(shortCode)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Short URL not found or expired",
		})
		return
	}

	// Fire-and-forget: a failed click write must never block the redirect
	referrer := c.Request.Referer()
	userAgent := c.Request.UserAgent()
	go sc.urlService.RecordClick(shortCode, referrer, userAgent) //nolint:errcheck

	// 302, not 301: a cached permanent redirect would bypass click
	// recording and outlive the record's expiry.
	c.Redirect(http.StatusFound, record.OriginalURL)
}

// GetOriginalURLPublic handles GET /api/v1/redirect/:shortCode - returns
// the original URL as JSON (public, no auth)
func (sc *ShortenerController) GetOriginalURLPublic(c *gin.Context) {
	shortCode := c.Param("shortCode")

	record, err := sc.urlService.Lookup(shortCode)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Short URL not found or expired",
		})
		return
	}

	go sc.urlService.RecordClick(shortCode, c.Request.Referer(), c.Request.UserAgent()) //nolint:errcheck

	c.JSON(http.StatusOK, gin.H{
		"original_url": record.OriginalURL,
	})
}

// GetURLStats handles GET /api/v1/url/:shortCode - returns the record with
// its full click history, expired records included
func (sc *ShortenerController) GetURLStats(c *gin.Context) {
	shortCode := c.Param("shortCode")

	record, err := sc.urlService.Stats(shortCode)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "URL not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.NewURLStatsResponse(record, sc.baseURL))
}

// ListURLs handles GET /api/v1/urls - returns every stored record
// regardless of expiration
func (sc *ShortenerController) ListURLs(c *gin.Context) {
	records := sc.urlService.ListAll()

	responses := make([]models.URLResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, models.NewURLResponse(record, sc.baseURL))
	}

	c.JSON(http.StatusOK, responses)
}

// DeleteURL handles DELETE /api/v1/url/:id - deletes a record by id.
// Deletion is idempotent, so an unknown id still succeeds.
func (sc *ShortenerController) DeleteURL(c *gin.Context) {
	sc.urlService.Delete(c.Param("id"))

	c.JSON(http.StatusOK, gin.H{
		"message": "URL deleted successfully",
	})
}
