// Package auth issues and validates admin access tokens
package auth

import (
	"errors"
	"kumpisahko/internal/config"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidToken indicates the token is invalid
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired indicates the token has expired
	ErrTokenExpired = errors.New("token expired")
	// ErrInvalidCredentials indicates the admin password did not match
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrLoginDisabled indicates no admin password hash is configured
	ErrLoginDisabled = errors.New("admin login disabled")
)

const adminSubject = "admin"

// Service provides authentication functionality
type Service struct {
	secret            []byte
	expiration        time.Duration
	adminPasswordHash string
	now               func() time.Time
}

// NewService creates a new authentication service
func NewService(cfg config.AuthConfig) *Service {
	return &Service{
		secret:            []byte(cfg.JWTSecret),
		expiration:        time.Duration(cfg.JWTExpiration) * time.Hour,
		adminPasswordHash: cfg.AdminPasswordHash,
		now:               time.Now,
	}
}

// Login checks the admin password and issues an access token
func (s *Service) Login(password string) (string, time.Duration, error) {
	if s.adminPasswordHash == "" {
		return "", 0, ErrLoginDisabled
	}
	if err := ComparePasswords(s.adminPasswordHash, password); err != nil {
		return "", 0, ErrInvalidCredentials
	}

	token, err := s.GenerateAdminToken()
	if err != nil {
		return "", 0, err
	}
	return token, s.expiration, nil
}

// GenerateAdminToken generates a signed JWT carrying the admin claim
func (s *Service) GenerateAdminToken() (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":      adminSubject,
		"is_admin": true,
		"iat":      now.Unix(),
		"exp":      now.Add(s.expiration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken validates a JWT token and returns the claims
func (s *Service) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// IsAdmin reports whether the claims grant admin access
func IsAdmin(claims jwt.MapClaims) bool {
	isAdmin, ok := claims["is_admin"].(bool)
	return ok && isAdmin
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// ComparePasswords compares a hashed password with a plain text password
func ComparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
