package entities

import (
	"time"
)

// ApiKey represents a persisted API key credential. Only the sha256 digest of
// the key material is stored; the plaintext exists exactly once, in the
// issuance response.
type ApiKey struct {
	ID         uint       `json:"id"`
	KeyHash    string     `json:"-"`
	Name       string     `json:"name"`
	IsActive   bool       `json:"isActive"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	DeletedAt  *time.Time `json:"-"`
}

// IsExpired reports whether the key is past its expiry. Keys without an expiry
// never expire.
func (k *ApiKey) IsExpired(now time.Time) bool {
	if k.ExpiresAt == nil {
		return false
	}
	return k.ExpiresAt.Before(now)
}

// CreateApiKeyInput represents input for issuing a new API key
type CreateApiKeyInput struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	ExpiresDays *int   `json:"expiresDays,omitempty"`
}

// CreateApiKeyResponse carries the plaintext key back to the operator. This is
// the only place the plaintext ever appears.
type CreateApiKeyResponse struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	ApiKey    string     `json:"apiKey"`
	CreatedAt time.Time  `json:"createdAt"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}
