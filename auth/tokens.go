package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// TypeAccess marks tokens accepted by the API middleware.
	TypeAccess = "access"
	// TypeRefresh marks tokens accepted only by the refresh endpoint.
	TypeRefresh = "refresh"
)

// ErrInvalidToken is returned when a token fails validation
var ErrInvalidToken = errors.New("invalid token")

// TokenIssuer signs and verifies HS256 JWTs carrying a user id.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenIssuer creates a new token issuer
func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Access issues a short-lived access token for the user.
func (t *TokenIssuer) Access(userID int64) (string, error) {
	return t.issue(userID, TypeAccess, t.accessTTL)
}

// Refresh issues a long-lived refresh token for the user.
func (t *TokenIssuer) Refresh(userID int64) (string, error) {
	return t.issue(userID, TypeRefresh, t.refreshTTL)
}

func (t *TokenIssuer) issue(userID int64, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		Audience:  jwt.ClaimStrings{tokenType},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Parse verifies the token signature, expiry and type, and returns the user id.
func (t *TokenIssuer) Parse(tokenString, tokenType string) (int64, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}

			return t.secret, nil
		},
		jwt.WithExpirationRequired(),
		jwt.WithAudience(tokenType),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}

	return userID, nil
}
