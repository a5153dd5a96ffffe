// Package password derives and verifies salted password hashes using
// PBKDF2-HMAC-SHA256. The encoded form carries the algorithm, iteration
// count and salt, so verification needs nothing beyond the stored string:
//
//	pbkdf2:sha256:600000$<hex salt>$<hex derived key>
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	algorithm  = "pbkdf2:sha256"
	iterations = 600000
	saltBytes  = 16
	keyBytes   = 32

	// minSaltLen rejects encoded hashes whose salt is suspiciously short.
	minSaltLen = 8
)

// Hash derives a salted hash from the plaintext with a fresh random salt.
func Hash(plaintext string) (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	saltHex := hex.EncodeToString(salt)

	key := pbkdf2.Key([]byte(plaintext), []byte(saltHex), iterations, keyBytes, sha256.New)
	return fmt.Sprintf("%s:%d$%s$%s", algorithm, iterations, saltHex, hex.EncodeToString(key)), nil
}

// Verify reports whether the plaintext matches the encoded hash. Malformed
// input never causes an error or panic; it simply fails verification.
func Verify(encoded, plaintext string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 {
		return false
	}
	header, salt, keyHex := parts[0], parts[1], parts[2]

	if !strings.HasPrefix(header, algorithm+":") {
		return false
	}
	iters, err := strconv.Atoi(strings.TrimPrefix(header, algorithm+":"))
	if err != nil || iters < 1 {
		return false
	}
	if len(salt) < minSaltLen {
		return false
	}
	expected, err := hex.DecodeString(keyHex)
	if err != nil || len(expected) == 0 {
		return false
	}

	derived := pbkdf2.Key([]byte(plaintext), []byte(salt), iters, len(expected), sha256.New)
	return subtle.ConstantTimeCompare(derived, expected) == 1
}
