package handler

import (
	"net/http"

	"github.com/JoseManuelPR/aduanas-app-sub001/backend/config"
	"github.com/JoseManuelPR/aduanas-app-sub001/backend/middleware"
	"github.com/JoseManuelPR/aduanas-app-sub001/backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	config *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{config: cfg}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	Aduana    string `json:"aduana"`
	Role      string `json:"role"`
}

// Login handles user login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user := h.config.FindUser(req.Username)
	if user == nil || !user.CheckPassword(req.Password) {
		logger.Warn(c.Request.Context(), "login failed", "username", req.Username)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}
	if user.Aduana == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "User has no aduana assigned"})
		return
	}

	token, expiresAt, err := middleware.GenerateToken(user.Username, user.Aduana, user.Role, &h.config.Auth)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	logger.Info(c.Request.Context(), "login succeeded", "username", user.Username, "aduana", user.Aduana)
	c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Format("2006-01-02T15:04:05Z07:00"),
		Username:  user.Username,
		Name:      user.Name,
		Aduana:    user.Aduana,
		Role:      user.Role,
	})
}

// GetCurrentUser returns the current user info
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	username := middleware.GetUsername(c)

	name := ""
	if user := h.config.FindUser(username); user != nil {
		name = user.Name
	}

	c.JSON(http.StatusOK, gin.H{
		"username": username,
		"name":     name,
		"aduana":   middleware.GetAduana(c),
		"role":     middleware.GetRole(c),
	})
}
