package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims are carried by the signed session cookie. The session itself lives
// server-side; the token only proves the cookie was issued by us.
type SessionClaims struct {
	SessionID string `json:"sid"`
	UserID    int    `json:"user_id"`
	jwt.RegisteredClaims
}

// SessionTokenUtil signs and validates session cookie tokens
type SessionTokenUtil struct {
	secretKey       string
	expirationHours int64
}

// NewSessionTokenUtil creates a new SessionTokenUtil
func NewSessionTokenUtil(secretKey string, expirationHours int64) *SessionTokenUtil {
	return &SessionTokenUtil{secretKey: secretKey, expirationHours: expirationHours}
}

// TTL is how long an issued session stays valid
func (su *SessionTokenUtil) TTL() time.Duration {
	return time.Hour * time.Duration(su.expirationHours)
}

// GenerateToken signs a token bound to a server-side session id
func (su *SessionTokenUtil) GenerateToken(sessionID string, userID int) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		SessionID: sessionID,
		UserID:    userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(su.TTL())),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        sessionID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(su.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken validates the token signature and expiry
func (su *SessionTokenUtil) ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(su.secretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid && claims.SessionID != "" {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
