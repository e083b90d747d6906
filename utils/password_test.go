package utils

import (
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	for _, hasher := range []string{HasherBcrypt, HasherArgon2} {
		t.Run(hasher, func(t *testing.T) {
			hash, err := HashPassword("AwesomeCatering", hasher)
			if err != nil {
				t.Fatalf("HashPassword: %v", err)
			}
			if hash == "AwesomeCatering" {
				t.Fatal("password stored in clear text")
			}
			if !VerifyPassword(hash, "AwesomeCatering") {
				t.Error("correct password rejected")
			}
			if VerifyPassword(hash, "wrong") {
				t.Error("wrong password accepted")
			}
		})
	}
}

func TestArgon2HashIsRecognised(t *testing.T) {
	hash, err := HashPassword("secret", HasherArgon2)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2") {
		t.Fatalf("unexpected argon2 encoding %q", hash)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	if VerifyPassword("not-a-hash", "anything") {
		t.Fatal("garbage hash verified")
	}
}
