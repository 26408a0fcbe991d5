package controllers

import (
	"net/http"

	"snaplink/internal/models"
	"snaplink/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	verifier service.CredentialVerifier
}

func NewAuthController(verifier service.CredentialVerifier) *AuthController {
	return &AuthController{
		verifier: verifier,
	}
}

// Login handles POST /api/v1/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	token, err := ac.verifier.Verify(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid email or password",
		})
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		Email: req.Email,
		Token: token,
	})
}
