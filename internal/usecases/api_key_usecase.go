package usecases

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"warranty-register.backend/internal/domain/entities"
	domainerrors "warranty-register.backend/internal/domain/errors"
	"warranty-register.backend/internal/domain/repositories"
	"warranty-register.backend/pkg/crypto"
	"warranty-register.backend/pkg/logger"
)

var apiKeyNow = func() time.Time { return time.Now().UTC() }

// ApiKeyUsecase covers both sides of the API key subsystem: request-time
// verification and administrative lifecycle management.
type ApiKeyUsecase struct {
	apiKeyRepo repositories.ApiKeyRepository
}

func NewApiKeyUsecase(apiKeyRepo repositories.ApiKeyRepository) *ApiKeyUsecase {
	return &ApiKeyUsecase{apiKeyRepo: apiKeyRepo}
}

// IssueKey generates a new API key, stores its hash and returns the plaintext
// exactly once. The plaintext is never logged and cannot be recovered from the
// stored record.
func (u *ApiKeyUsecase) IssueKey(ctx context.Context, input *entities.CreateApiKeyInput) (*entities.CreateApiKeyResponse, error) {
	plaintext, err := crypto.GenerateAPIKey()
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	var expiresAt *time.Time
	if input.ExpiresDays != nil {
		t := apiKeyNow().AddDate(0, 0, *input.ExpiresDays)
		expiresAt = &t
	}

	entity := &entities.ApiKey{
		KeyHash:   crypto.HashAPIKey(plaintext),
		Name:      input.Name,
		IsActive:  true,
		ExpiresAt: expiresAt,
	}
	if err := u.apiKeyRepo.Create(ctx, entity); err != nil {
		return nil, err
	}

	logger.Info(ctx, "api key issued",
		zap.Uint("apiKeyId", entity.ID),
		zap.String("name", entity.Name),
	)

	return &entities.CreateApiKeyResponse{
		ID:        entity.ID,
		Name:      entity.Name,
		ApiKey:    plaintext, // shown once
		CreatedAt: entity.CreatedAt,
		ExpiresAt: entity.ExpiresAt,
	}, nil
}

// VerifyKey decides whether an inbound request is authenticated, given the raw
// header value. On success the matching credential is returned as the
// authenticated principal and its last-used timestamp is updated best-effort.
// Exactly one write happens per successful verification, none on failure.
func (u *ApiKeyUsecase) VerifyKey(ctx context.Context, headerValue string) (*entities.ApiKey, error) {
	if headerValue == "" {
		return nil, domainerrors.ForbiddenWith("API key is required.", domainerrors.ErrMissingCredential)
	}

	keyHash := crypto.HashAPIKey(headerValue)
	key, err := u.apiKeyRepo.FindByKeyHash(ctx, keyHash)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			// unknown, inactive and deleted keys all collapse here so
			// responses carry no key-enumeration signal
			return nil, domainerrors.ForbiddenWith("Invalid API key.", domainerrors.ErrInvalidCredential)
		}
		return nil, domainerrors.StoreUnavailable(err)
	}

	// the store already filters inactive rows; kept as defense in depth
	if !key.IsActive {
		return nil, domainerrors.ForbiddenWith("API key has been deactivated.", domainerrors.ErrKeyDeactivated)
	}

	if key.IsExpired(apiKeyNow()) {
		return nil, domainerrors.ForbiddenWith("API key has expired.", domainerrors.ErrKeyExpired)
	}

	// advisory telemetry: a failed write must not fail the authentication
	if err := u.apiKeyRepo.TouchLastUsed(ctx, key.ID); err != nil {
		logger.Warn(ctx, "failed to record api key usage",
			zap.Uint("apiKeyId", key.ID),
			zap.Error(err),
		)
	}

	return key, nil
}

// List returns stored credentials, never including plaintext
func (u *ApiKeyUsecase) List(ctx context.Context, includeInactive bool) ([]*entities.ApiKey, error) {
	return u.apiKeyRepo.List(ctx, includeInactive)
}

// Deactivate disables a key by id. Disabling an already-inactive key is a
// no-op, not an error.
func (u *ApiKeyUsecase) Deactivate(ctx context.Context, id uint) (*entities.ApiKey, error) {
	return u.setActive(ctx, id, false)
}

// Activate re-enables a key by id
func (u *ApiKeyUsecase) Activate(ctx context.Context, id uint) (*entities.ApiKey, error) {
	return u.setActive(ctx, id, true)
}

func (u *ApiKeyUsecase) setActive(ctx context.Context, id uint, active bool) (*entities.ApiKey, error) {
	key, err := u.apiKeyRepo.SetActive(ctx, id, active)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("API key not found")
		}
		return nil, err
	}

	logger.Info(ctx, "api key state changed",
		zap.Uint("apiKeyId", id),
		zap.Bool("isActive", active),
	)
	return key, nil
}

// Delete soft-deletes a key. The record stays behind for audit but is excluded
// from every lookup from here on.
func (u *ApiKeyUsecase) Delete(ctx context.Context, id uint) (*entities.ApiKey, error) {
	key, err := u.apiKeyRepo.SoftDelete(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("API key not found")
		}
		return nil, err
	}

	logger.Info(ctx, "api key deleted", zap.Uint("apiKeyId", id))
	return key, nil
}
