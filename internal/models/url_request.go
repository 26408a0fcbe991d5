package models

// CreateURLRequest represents the request body for creating a short URL
type CreateURLRequest struct {
	OriginalURL       string  `json:"original_url" binding:"required"`
	CustomShortURL    *string `json:"custom_short_url,omitempty"`    // Optional custom short code
	ValidUntilMinutes *int    `json:"valid_until_minutes,omitempty"` // Optional lifetime; positive values set the expiry
}
