package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/models"
	"marketplace/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Domain errors for auth flows.
var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidToken    = errors.New("invalid token")
	ErrEmailTaken      = errors.New("email already registered")
)

// TokenClaims is the JWT payload: the user's id (hex) and email.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
	Email  string `json:"email"`
}

// AuthService handles signup, login and token parsing.
type AuthService struct {
	users      repository.Users
	events     repository.Events
	signingKey []byte
	tokenTTL   time.Duration
	rec        recorder
}

func NewAuthService(users repository.Users, events repository.Events, cfg Config) *AuthService {
	return &AuthService{
		users:      users,
		events:     events,
		signingKey: []byte(cfg.JWTSecret),
		tokenTTL:   cfg.TokenTTL,
		rec:        recorder{events: events, log: cfg.Log},
	}
}

// SignUp hashes the password and creates the user. A duplicate email maps to
// ErrEmailTaken whether it is caught by the lookup or by the unique index.
func (s *AuthService) SignUp(ctx context.Context, userName, email, password string) (string, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return "", ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return "", fmt.Errorf("invalid password: %w", err)
	}

	id, err := s.users.Create(ctx, &models.User{
		UserName: userName,
		Email:    email,
		Password: hash,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return "", ErrEmailTaken
		}
		return "", err
	}

	s.rec.record(ctx, models.EventSignup, "user signed up", map[string]string{"user": id.Hex()})
	return id.Hex(), nil
}

// GenerateToken validates credentials and returns a signed JWT.
func (s *AuthService) GenerateToken(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	if err := verifyPassword(u.Password, password); err != nil {
		return "", ErrInvalidPassword
	}

	return s.issueToken(u.ID.Hex(), u.Email)
}

// ParseToken verifies signature and expiry and returns the claims.
// Unverified decoding is deliberately not offered.
func (s *AuthService) ParseToken(accessToken string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(accessToken, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// CurrentUser resolves the user carried by a token. Used by the curruser
// route, which receives the token in the request body rather than a header.
func (s *AuthService) CurrentUser(ctx context.Context, accessToken string) (*models.User, error) {
	claims, err := s.ParseToken(accessToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Email == "" {
		return nil, ErrInvalidToken
	}

	u, err := s.users.GetByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed JWT for a user
func (s *AuthService) issueToken(userID, email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
		Email:  email,
	})
	return token.SignedString(s.signingKey)
}
