package authn

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLength     = 16
	hashIterations = 100000
	hashKeyLength  = 32
)

// NewSalt returns a fresh random salt for password hashing.
func NewSalt() ([]byte, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("could not generate salt: %w", err)
	}
	return salt, nil
}

// HashPassword derives the stored hash for a password and salt.
func HashPassword(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, hashIterations, hashKeyLength, sha256.New)
}

// VerifyPassword checks a candidate password against stored material in
// constant time.
func VerifyPassword(password string, salt, hash []byte) bool {
	candidate := HashPassword(password, salt)
	return subtle.ConstantTimeCompare(candidate, hash) == 1
}
