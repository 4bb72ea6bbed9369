package app

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"firesafety-backend/internal/model"
	"firesafety-backend/internal/pkg/jwtutil"
)

var (
	ErrNameRequired      = errors.New("name is required")
	ErrPhoneRequired     = errors.New("phone number is required")
	ErrInvalidPhone      = errors.New("invalid phone number format")
	ErrPasswordTooShort  = errors.New("password must be at least 6 characters long")
	ErrPasswordRequired  = errors.New("password is required")
	ErrPhoneInUse        = errors.New("phone already in use")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidCredential = errors.New("invalid credentials")
)

// international format, e.g. +233201234567
var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByPhone(ctx context.Context, phone string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}

type AuthService struct {
	users         UserStore
	jwtSecret     string
	jwtExpiration time.Duration
}

type RegisterInput struct {
	Name     string
	Phone    string
	Email    string
	Password string
	Role     string
}

type AuthResult struct {
	Token string
	User  *model.User
}

func NewAuthService(users UserStore, jwtSecret string, jwtExpiration time.Duration) *AuthService {
	return &AuthService{
		users:         users,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)

	if name == "" {
		return nil, ErrNameRequired
	}
	if phone == "" {
		return nil, ErrPhoneRequired
	}
	if !phonePattern.MatchString(normalizePhone(phone)) {
		return nil, ErrInvalidPhone
	}
	if len(input.Password) < 6 {
		return nil, ErrPasswordTooShort
	}

	existing, err := s.users.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPhoneInUse
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	role := strings.ToLower(strings.TrimSpace(input.Role))
	if role != model.RoleUser && role != model.RoleSuperAdmin {
		role = model.RoleUser
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Phone:        phone,
		Email:        strings.TrimSpace(strings.ToLower(input.Email)),
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Login(ctx context.Context, phone, password string) (*AuthResult, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, ErrPhoneRequired
	}
	if strings.TrimSpace(password) == "" {
		return nil, ErrPasswordRequired
	}

	user, err := s.users.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredential
	}

	now := time.Now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLoginAt = &now

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrUserNotFound
	}
	return s.users.GetByID(ctx, id)
}

func normalizePhone(phone string) string {
	replacer := strings.NewReplacer(" ", "", "-", "")
	return replacer.Replace(phone)
}
