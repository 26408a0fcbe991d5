package models

// LoginResponse represents the response after successful authentication
type LoginResponse struct {
	Email string `json:"email"`
	Token string `json:"token"` // JWT session token
}
