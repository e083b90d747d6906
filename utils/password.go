package utils

import (
	"fmt"
	"strings"

	"github.com/matthewhartstonge/argon2"
	"golang.org/x/crypto/bcrypt"
)

const (
	HasherBcrypt = "bcrypt"
	HasherArgon2 = "argon2"
)

// HashPassword hashes with the named algorithm; unknown names fall back to bcrypt.
func HashPassword(password, hasher string) (string, error) {
	if hasher == HasherArgon2 {
		argon := argon2.DefaultConfig()
		encoded, err := argon.HashEncoded([]byte(password))
		if err != nil {
			return "", fmt.Errorf("argon2 hash: %w", err)
		}
		return string(encoded), nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword picks the algorithm from the encoded hash, so switching
// hashers keeps existing accounts working.
func VerifyPassword(encodedHash, password string) bool {
	if strings.HasPrefix(encodedHash, "$argon2") {
		ok, err := argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
		return err == nil && ok
	}
	return bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)) == nil
}
