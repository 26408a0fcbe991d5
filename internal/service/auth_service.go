package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"snaplink/internal/jwt"
)

// CredentialVerifier verifies an email/password pair and returns a session
// token. The interface is the seam where a real identity provider would be
// substituted; the shipped implementation knows exactly one account.
type CredentialVerifier interface {
	Verify(email, password string) (string, error)
}

type staticVerifier struct {
	email        string
	passwordHash []byte
	jwtService   *jwt.JWTService
}

// NewStaticVerifier creates a verifier for the single configured account.
// The password is hashed immediately so the plaintext is not retained.
func NewStaticVerifier(email, password string, jwtService *jwt.JWTService) (CredentialVerifier, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return &staticVerifier{
		email:        email,
		passwordHash: hash,
		jwtService:   jwtService,
	}, nil
}

// Verify checks the credential pair and issues a signed session token
func (v *staticVerifier) Verify(email, password string) (string, error) {
	if email != v.email {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(v.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := v.jwtService.GenerateToken(email)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return token, nil
}
