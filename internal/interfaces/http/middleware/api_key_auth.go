package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"warranty-register.backend/internal/domain/entities"
	domainerrors "warranty-register.backend/internal/domain/errors"
	"warranty-register.backend/internal/interfaces/http/response"
)

// ApiKeyContextKey is the context key holding the authenticated credential
const ApiKeyContextKey = "apiKey"

// ApiKeyVerifier authenticates the raw header value and returns the matching
// credential
type ApiKeyVerifier interface {
	VerifyKey(ctx context.Context, headerValue string) (*entities.ApiKey, error)
}

// ApiKeyAuthMiddleware guards machine-facing endpoints with API key
// authentication. The header name is configurable (API_KEY_HEADER, default
// X-API-Key). Every verification outcome is recorded in metrics; metrics may
// be nil.
func ApiKeyAuthMiddleware(headerName string, verifier ApiKeyVerifier, metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		key, err := verifier.VerifyKey(c.Request.Context(), c.GetHeader(headerName))
		metrics.RecordVerification(verificationOutcome(err), time.Since(start))
		if err != nil {
			response.AbortError(c, err)
			return
		}

		c.Set(ApiKeyContextKey, key)
		c.Next()
	}
}

// GetApiKey gets the authenticated credential from context
func GetApiKey(c *gin.Context) (*entities.ApiKey, bool) {
	v, exists := c.Get(ApiKeyContextKey)
	if !exists {
		return nil, false
	}
	key, ok := v.(*entities.ApiKey)
	return key, ok
}

func verificationOutcome(err error) string {
	switch {
	case err == nil:
		return "allowed"
	case errors.Is(err, domainerrors.ErrMissingCredential):
		return "missing"
	case errors.Is(err, domainerrors.ErrInvalidCredential):
		return "invalid"
	case errors.Is(err, domainerrors.ErrKeyDeactivated):
		return "deactivated"
	case errors.Is(err, domainerrors.ErrKeyExpired):
		return "expired"
	default:
		return "error"
	}
}
