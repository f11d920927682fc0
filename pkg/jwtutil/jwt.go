package jwtutil

import (
	"errors"
	"time"

	"leave-service/pkg/config"

	"github.com/golang-jwt/jwt/v4"
)

var (
	secret         = []byte("secret-key")
	accessLifetime = time.Hour
	refreshLifetime = 24 * time.Hour
)

// ErrNotRefreshToken is returned when an access token is presented where
// a refresh token is required.
var ErrNotRefreshToken = errors.New("token is not a refresh token")

// Token type claim values
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// UserClaims represents the JWT claims for user authentication
type UserClaims struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role,omitempty"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// Initialize configures the signing key and token lifetimes
func Initialize(cfg *config.JWTConfig) {
	if cfg.SigningKey != "" {
		secret = []byte(cfg.SigningKey)
	}
	if cfg.AccessExpirationMins > 0 {
		accessLifetime = time.Duration(cfg.AccessExpirationMins) * time.Minute
	}
	if cfg.RefreshExpirationHrs > 0 {
		refreshLifetime = time.Duration(cfg.RefreshExpirationHrs) * time.Hour
	}
}

// GenerateAccessToken creates a short-lived access token carrying the
// user's identity and role
func GenerateAccessToken(userID uint, username, email, role string) (string, error) {
	return generate(userID, username, email, role, TokenTypeAccess, accessLifetime)
}

// GenerateRefreshToken creates a longer-lived refresh token. It carries
// no role: the role is re-resolved when the token is redeemed.
func GenerateRefreshToken(userID uint, username, email string) (string, error) {
	return generate(userID, username, email, "", TokenTypeRefresh, refreshLifetime)
}

func generate(userID uint, username, email, role, tokenType string, lifetime time.Duration) (string, error) {
	claims := UserClaims{
		UserID:    userID,
		Username:  username,
		Email:     email,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(lifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken validates and parses the JWT token
func ValidateToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}

// ValidateRefreshToken validates the token and additionally requires the
// refresh token type
func ValidateRefreshToken(tokenString string) (*UserClaims, error) {
	claims, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeRefresh {
		return nil, ErrNotRefreshToken
	}
	return claims, nil
}
