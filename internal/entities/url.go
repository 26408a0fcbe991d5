package entities

import "time"

// URL represents a shortened URL record in the persisted collection
type URL struct {
	ID                string     `json:"id"` // UUID, used as the deletion/update key
	OriginalURL       string     `json:"original_url"`
	ShortCode         string     `json:"short_code"`
	CustomShortURL    *string    `json:"custom_short_url,omitempty"` // Raw user input when the code was custom (kept for display/audit)
	CreatedAt         time.Time  `json:"created_at"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`          // Pointer allows nil (no expiration)
	ValidUntilMinutes *int       `json:"valid_until_minutes,omitempty"` // Creation input only, not consulted after creation
	ClickCount        int        `json:"click_count"`
	Clicks            []Click    `json:"clicks"`
}

// Click represents a single visit to a short URL.
// IPAddress and Location hold mocked values; real resolution is out of scope.
type Click struct {
	Timestamp time.Time `json:"timestamp"`
	Referrer  string    `json:"referrer"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	Location  string    `json:"location"`
}

// Expired reports whether the record is past its expiration at the given time.
// Records without an expiration never expire.
func (u *URL) Expired(now time.Time) bool {
	return u.ExpiresAt != nil && now.After(*u.ExpiresAt)
}
