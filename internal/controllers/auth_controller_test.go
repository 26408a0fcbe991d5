package controllers

import (
	"net/http"
	"testing"
	"time"

	"snaplink/internal/jwt"
	"snaplink/internal/models"
	"snaplink/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthEnv(t *testing.T) *testEnv {
	t.Helper()

	jwtService := jwt.NewJWTService("test-secret", time.Hour)
	verifier, err := service.NewStaticVerifier("user@example.com", "password123", jwtService)
	require.NoError(t, err)

	router := gin.New()
	router.POST("/api/v1/auth/login", NewAuthController(verifier).Login)

	return &testEnv{router: router}
}

func TestLogin_Success(t *testing.T) {
	env := newAuthEnv(t)

	w := env.do(http.MethodPost, "/api/v1/auth/login", models.LoginRequest{
		Email:    "user@example.com",
		Password: "password123",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "token")
	assert.Contains(t, w.Body.String(), "user@example.com")
}

func TestLogin_InvalidCredentials(t *testing.T) {
	env := newAuthEnv(t)

	w := env.do(http.MethodPost, "/api/v1/auth/login", models.LoginRequest{
		Email:    "user@example.com",
		Password: "wrong-password",
	})

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password")
}

func TestLogin_MalformedRequest(t *testing.T) {
	env := newAuthEnv(t)

	w := env.do(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email": "not-an-email",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
