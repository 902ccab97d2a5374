// Package auth covers credential handling for the control plane: password
// hashing, session-backed route guards, and first-run admin seeding.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters. Stored hashes embed their salt, so these can only be
// raised together with a rehash-on-login migration.
const (
	scryptN      = 16384
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 64
	saltLen      = 16
)

// HashPassword derives an scrypt hash and returns it as "hash.salt", both
// hex encoded.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return "", fmt.Errorf("derive key: %w", err)
	}
	return hex.EncodeToString(key) + "." + hex.EncodeToString(salt), nil
}

// VerifyPassword checks a candidate password against a stored "hash.salt"
// value in constant time.
func VerifyPassword(password, stored string) (bool, error) {
	hashHex, saltHex, ok := strings.Cut(stored, ".")
	if !ok {
		return false, fmt.Errorf("stored password is not in hash.salt form")
	}
	wantKey, err := hex.DecodeString(hashHex)
	if err != nil {
		return false, fmt.Errorf("decode stored hash: %w", err)
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false, fmt.Errorf("decode stored salt: %w", err)
	}
	gotKey, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return false, fmt.Errorf("derive key: %w", err)
	}
	if len(gotKey) != len(wantKey) {
		return false, nil
	}
	return subtle.ConstantTimeCompare(gotKey, wantKey) == 1, nil
}
