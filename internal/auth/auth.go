// Package auth verifies administrator credentials and manages the admin
// session token. The token is an HS256 JWT carried in an httpOnly cookie.
package auth

import (
	"fmt"
	"net/http"
	"time"

	"fresh-kart/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// CookieName is the cookie that carries the admin session token.
const CookieName = "admin_token"

// Manager checks admin credentials and issues/verifies session tokens.
type Manager struct {
	username     string
	passwordHash string
	secret       []byte
	ttl          time.Duration
}

// NewManager creates a manager from the admin configuration.
func NewManager(cfg config.AdminConfig) *Manager {
	return &Manager{
		username:     cfg.Username,
		passwordHash: cfg.PasswordHash,
		secret:       []byte(cfg.JWTSecret),
		ttl:          time.Duration(cfg.TokenTTL) * time.Second,
	}
}

// VerifyCredentials reports whether the given username and password match the
// configured administrator. Password comparison uses bcrypt.
func (m *Manager) VerifyCredentials(username, password string) bool {
	if username != m.username {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(m.passwordHash), []byte(password)) == nil
}

// IssueToken creates a signed admin session token.
func (m *Manager) IssueToken(username string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   username,
		"admin": true,
		"iat":   now.Unix(),
		"exp":   now.Add(m.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign admin token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates a session token and returns the admin username.
func (m *Manager) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid admin token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid admin token claims")
	}

	if isAdmin, _ := claims["admin"].(bool); !isAdmin {
		return "", fmt.Errorf("token does not carry admin claim")
	}

	sub, _ := claims["sub"].(string)
	return sub, nil
}

// TTL returns the configured token lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// SessionCookie builds the cookie carrying the given token.
func (m *Manager) SessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

// ExpiredCookie builds a cookie that clears the admin session.
func (m *Manager) ExpiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}
