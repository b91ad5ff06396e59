package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default bcrypt cost
	DefaultCost = 12
	// bcryptMaxBytes is bcrypt's input limit; longer passwords are pre-digested
	bcryptMaxBytes = 72
	// APIKeyPrefix marks generated keys so they are recognizable in logs and diffs
	APIKeyPrefix = "wr_"
	// apiKeyEntropyBytes is the random payload size of a generated key
	apiKeyEntropyBytes = 32
)

var (
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	randomRead                 = rand.Read
)

// HashPassword hashes a password using bcrypt. Passwords longer than bcrypt's
// 72-byte limit are first reduced to a sha256 hex digest so no security-relevant
// bytes are silently truncated. The pre-digest is deterministic, so
// CheckPassword can reproduce it.
func HashPassword(password string) (string, error) {
	if len(password) > bcryptMaxBytes {
		password = sha256Hex([]byte(password))
	}
	bytes, err := bcryptGenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// CheckPassword compares a password with a bcrypt hash. For over-limit
// passwords it retries with the sha256 pre-digest, which keeps hashes created
// before the pre-digest step verifiable alongside new ones.
func CheckPassword(password, hash string) bool {
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil {
		return true
	}
	if len(password) > bcryptMaxBytes {
		digest := sha256Hex([]byte(password))
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(digest)) == nil
	}
	return false
}

// HashAPIKey hashes an API key using sha256. Keys are high-entropy random
// tokens, so bcrypt's adaptive cost buys nothing on the per-request lookup
// path, and sha256 has no input-length limit.
func HashAPIKey(apiKey string) string {
	return sha256Hex([]byte(apiKey))
}

// VerifyAPIKey recomputes the digest and compares in constant time.
func VerifyAPIKey(apiKey, keyHash string) bool {
	computed := HashAPIKey(apiKey)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(keyHash)) == 1
}

// GenerateAPIKey produces a new plaintext API key: the fixed prefix followed by
// 32 bytes of cryptographically random material, URL-safe encoded.
func GenerateAPIKey() (string, error) {
	bytes := make([]byte, apiKeyEntropyBytes)
	if _, err := randomRead(bytes); err != nil {
		return "", fmt.Errorf("failed to generate api key: %w", err)
	}
	return APIKeyPrefix + base64.RawURLEncoding.EncodeToString(bytes), nil
}

func sha256Hex(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
