package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieTokenService signs the session cookie value: a compact JWT whose
// subject is the gateway session ID. The token expiry is only a backstop;
// the session idle timeout in the store governs the real lifetime.
type CookieTokenService struct {
	secret []byte
}

var _ CookieTokenizer = (*CookieTokenService)(nil)

// NewCookieTokenService creates a CookieTokenService.
func NewCookieTokenService(secret string) *CookieTokenService {
	return &CookieTokenService{secret: []byte(secret)}
}

// Generate creates a signed cookie token for a session ID.
func (s *CookieTokenService) Generate(sessionID string) (string, error) {
	if sessionID == "" {
		return "", fmt.Errorf("session ID cannot be empty")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": sessionID,                      // Subject (standard claim)
		"iss": "trackventory-gateway",         // Issuer (standard claim)
		"exp": now.Add(24 * time.Hour).Unix(), // Backstop expiry
		"iat": now.Unix(),                     // Issued at
		"nbf": now.Unix(),                     // Not before
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Validate verifies a cookie token and returns the session ID it carries.
func (s *CookieTokenService) Validate(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Check the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}
	sessionID, ok := claims["sub"].(string)
	if !ok || sessionID == "" {
		return "", fmt.Errorf("invalid token claims")
	}
	return sessionID, nil
}
