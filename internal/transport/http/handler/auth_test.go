package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firesafety-backend/internal/app"
	"firesafety-backend/internal/model"
	"firesafety-backend/internal/transport/http/middleware"
)

type memoryUserStore struct {
	users map[string]*model.User
}

func (s *memoryUserStore) Create(_ context.Context, user *model.User) error {
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *memoryUserStore) GetByPhone(_ context.Context, phone string) (*model.User, error) {
	for _, u := range s.users {
		if u.Phone == phone {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memoryUserStore) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (s *memoryUserStore) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	if u, ok := s.users[id]; ok {
		u.LastLoginAt = &at
	}
	return nil
}

const testCookieName = "user_token"

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	store := &memoryUserStore{users: map[string]*model.User{}}
	svc := app.NewAuthService(store, "test-secret", time.Hour)
	h := NewAuthHandler(svc, testCookieName)

	r := gin.New()
	auth := r.Group("/api/v1/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
	auth.POST("/logout", h.Logout)
	auth.GET("/me",
		middleware.AuthJWT("test-secret", testCookieName),
		h.Me)
	return r
}

func TestRegisterHandler(t *testing.T) {
	r := authRouter()

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", gin.H{
		"name":     "Kofi Mensah",
		"phone":    "+233201234567",
		"email":    "kofi@example.com",
		"password": "secret123",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "User created successfully", body["message"])
	assert.NotEmpty(t, body["token"])

	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Kofi Mensah", user["name"])
	assert.Equal(t, "user", user["role"])
	assert.Equal(t, true, user["isActive"])
	assert.NotContains(t, user, "password")
}

func TestRegisterHandlerInvalidPhone(t *testing.T) {
	w := doJSON(t, authRouter(), http.MethodPost, "/api/v1/auth/register", gin.H{
		"name":     "Ama",
		"phone":    "not-a-phone",
		"password": "secret123",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t,
		"Invalid phone number format. Use international format (e.g., +233201234567)",
		decodeBody(t, w)["message"])
}

func TestLoginHandlerSetsCookie(t *testing.T) {
	r := authRouter()
	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", gin.H{
		"name": "Ama", "phone": "+233201234567", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", gin.H{
		"phone": "+233201234567", "password": "secret123",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.NotEmpty(t, body["token"])

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	var authCookie *http.Cookie
	for _, ck := range cookies {
		if ck.Name == testCookieName {
			authCookie = ck
		}
	}
	require.NotNil(t, authCookie)
	assert.NotEmpty(t, authCookie.Value)
	assert.True(t, authCookie.HttpOnly)
}

func TestLoginHandlerUnknownUser(t *testing.T) {
	w := doJSON(t, authRouter(), http.MethodPost, "/api/v1/auth/login", gin.H{
		"phone": "+233999999999", "password": "secret123",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", decodeBody(t, w)["message"])
}

func TestLoginHandlerWrongPassword(t *testing.T) {
	r := authRouter()
	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", gin.H{
		"name": "Ama", "phone": "+233201234567", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", gin.H{
		"phone": "+233201234567", "password": "wrong-pass",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", decodeBody(t, w)["message"])
}

func TestMeHandlerWithBearerToken(t *testing.T) {
	r := authRouter()
	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", gin.H{
		"name": "Ama", "phone": "+233201234567", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	token := decodeBody(t, w)["token"].(string)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Ama", body["name"])
	assert.Equal(t, "+233201234567", body["phone"])
}

func TestMeHandlerRequiresAuth(t *testing.T) {
	w := doJSON(t, authRouter(), http.MethodGet, "/api/v1/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutHandlerClearsCookie(t *testing.T) {
	w := doJSON(t, authRouter(), http.MethodPost, "/api/v1/auth/logout", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Logged out successfully", body["message"])

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, testCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.True(t, cookies[0].MaxAge < 0)
}
