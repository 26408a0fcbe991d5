package models

import (
	"time"

	"snaplink/internal/entities"
)

// URLResponse represents a URL record as returned by the API
type URLResponse struct {
	ID             string     `json:"id"`
	ShortCode      string     `json:"short_code"`
	OriginalURL    string     `json:"original_url"`
	ShortURL       string     `json:"short_url"` // Full short URL (base URL + short code)
	CustomShortURL *string    `json:"custom_short_url,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	ClickCount     int        `json:"click_count"`
}

// URLStatsResponse adds the full click history to a URL record
type URLStatsResponse struct {
	URLResponse
	Clicks []entities.Click `json:"clicks"`
}

// NewURLResponse converts a URL entity to its API representation
func NewURLResponse(u *entities.URL, baseURL string) URLResponse {
	return URLResponse{
		ID:             u.ID,
		ShortCode:      u.ShortCode,
		OriginalURL:    u.OriginalURL,
		ShortURL:       baseURL + "/" + u.ShortCode,
		CustomShortURL: u.CustomShortURL,
		CreatedAt:      u.CreatedAt,
		ExpiresAt:      u.ExpiresAt,
		ClickCount:     u.ClickCount,
	}
}

// NewURLStatsResponse converts a URL entity to its statistics representation
func NewURLStatsResponse(u *entities.URL, baseURL string) URLStatsResponse {
	return URLStatsResponse{
		URLResponse: NewURLResponse(u, baseURL),
		Clicks:      u.Clicks,
	}
}
