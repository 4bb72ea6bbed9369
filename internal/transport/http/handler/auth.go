package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"firesafety-backend/internal/app"
	"firesafety-backend/internal/transport/http/middleware"
)

const authCookieMaxAge = 24 * 60 * 60

type AuthHandler struct {
	auth       *app.AuthService
	cookieName string
}

type registerRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func NewAuthHandler(auth *app.AuthService, cookieName string) *AuthHandler {
	return &AuthHandler{auth: auth, cookieName: cookieName}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request payload"})
		return
	}

	result, err := h.auth.Register(c.Request.Context(), app.RegisterInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrNameRequired):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Name is required"})
		case errors.Is(err, app.ErrPhoneRequired):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Phone number is required"})
		case errors.Is(err, app.ErrInvalidPhone):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid phone number format. Use international format (e.g., +233201234567)"})
		case errors.Is(err, app.ErrPasswordTooShort):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Password must be at least 6 characters long"})
		case errors.Is(err, app.ErrPhoneInUse):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Phone already in use"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to register user"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"token":   result.Token,
		"user": gin.H{
			"id":       result.User.ID,
			"name":     result.User.Name,
			"phone":    result.User.Phone,
			"email":    result.User.Email,
			"role":     result.User.Role,
			"isActive": result.User.IsActive,
		},
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request payload"})
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Phone, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrPhoneRequired):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Phone number is required"})
		case errors.Is(err, app.ErrPasswordRequired):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Password is required"})
		case errors.Is(err, app.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		case errors.Is(err, app.ErrInvalidCredential):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to login"})
		}
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, result.Token, authCookieMaxAge, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{
		"token": result.Token,
		"user": gin.H{
			"id":          result.User.ID,
			"name":        result.User.Name,
			"phone":       result.User.Phone,
			"email":       result.User.Email,
			"role":        result.User.Role,
			"isActive":    result.User.IsActive,
			"lastLoginAt": result.User.LastLoginAt,
		},
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully",
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userIDAny, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}
	userID, ok := userIDAny.(string)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token payload"})
		return
	}

	user, err := h.auth.GetUserByID(c.Request.Context(), userID)
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          user.ID,
		"name":        user.Name,
		"phone":       user.Phone,
		"email":       user.Email,
		"role":        user.Role,
		"isActive":    user.IsActive,
		"lastLoginAt": user.LastLoginAt,
	})
}
