package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores everything past 72 bytes, so the upper bound matches it.
const (
	minPasswordLength = 8
	maxPasswordLength = 72
)

// ErrPasswordLength is returned when a password is outside the allowed length range
var ErrPasswordLength = errors.New("password must be between 8 and 72 characters")

// HashPassword validates the password length and returns its bcrypt hash.
func HashPassword(password string) (string, error) {
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return "", ErrPasswordLength
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// CheckPassword reports whether the password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
