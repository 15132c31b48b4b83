package hash

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt hashes embed their salt in the first 29 characters
// ($2a$cost$ + 22 chars of salt).
const saltLen = 29

// Generate derives a salted bcrypt hash for the plaintext and returns
// the per-identity salt alongside the full hash. Both are stored on the
// identity; Compare only needs the hash.
func Generate(plaintext string) (salt, hash string, err error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", "", fmt.Errorf("generate password hash: %w", err)
	}
	h := string(b)
	return h[:saltLen], h, nil
}

// Compare reports whether the plaintext matches the stored bcrypt hash.
func Compare(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
