package password

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default bcrypt cost
	DefaultCost = 12

	// ExternalAuthSentinel marks accounts created through an external
	// identity provider. Such accounts have no usable local password.
	ExternalAuthSentinel = "!external-auth"
)

// Hash hashes a password using bcrypt
func Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify compares a password with a hash
func Verify(password, hash string) bool {
	if hash == ExternalAuthSentinel {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// IsExternal reports whether the stored hash is the external-auth sentinel
func IsExternal(hash string) bool {
	return hash == ExternalAuthSentinel
}

// HashToken hashes a token using SHA256 (for refresh tokens)
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// ValidatePassword checks if password meets requirements
func ValidatePassword(password string) bool {
	// Minimum 8 characters
	if len(password) < 8 {
		return false
	}
	return true
}
