package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"warranty-register.backend/internal/domain/entities"
	domainerrors "warranty-register.backend/internal/domain/errors"
	"warranty-register.backend/internal/usecases"
)

type apiKeyRepoStub struct {
	createFn    func(ctx context.Context, apiKey *entities.ApiKey) error
	listFn      func(ctx context.Context, includeInactive bool) ([]*entities.ApiKey, error)
	setActiveFn func(ctx context.Context, id uint, active bool) (*entities.ApiKey, error)
	deleteFn    func(ctx context.Context, id uint) (*entities.ApiKey, error)
}

func (s *apiKeyRepoStub) Create(ctx context.Context, apiKey *entities.ApiKey) error {
	if s.createFn != nil {
		return s.createFn(ctx, apiKey)
	}
	apiKey.ID = 1
	apiKey.CreatedAt = time.Now().UTC()
	return nil
}

func (s *apiKeyRepoStub) FindByKeyHash(context.Context, string) (*entities.ApiKey, error) {
	return nil, errors.New("unused")
}

func (s *apiKeyRepoStub) FindByID(context.Context, uint) (*entities.ApiKey, error) {
	return nil, errors.New("unused")
}

func (s *apiKeyRepoStub) List(ctx context.Context, includeInactive bool) ([]*entities.ApiKey, error) {
	if s.listFn != nil {
		return s.listFn(ctx, includeInactive)
	}
	return []*entities.ApiKey{}, nil
}

func (s *apiKeyRepoStub) SetActive(ctx context.Context, id uint, active bool) (*entities.ApiKey, error) {
	if s.setActiveFn != nil {
		return s.setActiveFn(ctx, id, active)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *apiKeyRepoStub) TouchLastUsed(context.Context, uint) error { return nil }

func (s *apiKeyRepoStub) SoftDelete(ctx context.Context, id uint) (*entities.ApiKey, error) {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}

func newApiKeyRouter(repo *apiKeyRepoStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewApiKeyHandler(usecases.NewApiKeyUsecase(repo))
	r := gin.New()
	r.POST("/api-keys", h.CreateApiKey)
	r.GET("/api-keys", h.ListApiKeys)
	r.POST("/api-keys/:id/deactivate", h.DeactivateApiKey)
	r.POST("/api-keys/:id/activate", h.ActivateApiKey)
	r.DELETE("/api-keys/:id", h.DeleteApiKey)
	return r
}

func TestApiKeyHandler_Create(t *testing.T) {
	var storedHash string
	repo := &apiKeyRepoStub{
		createFn: func(_ context.Context, apiKey *entities.ApiKey) error {
			storedHash = apiKey.KeyHash
			apiKey.ID = 12
			apiKey.CreatedAt = time.Now().UTC()
			return nil
		},
	}
	r := newApiKeyRouter(repo)

	req := httptest.NewRequest(http.MethodPost, "/api-keys", strings.NewReader(`{"name":"Reseller portal","expiresDays":30}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"apiKey":"wr_`)
	assert.Contains(t, body, `"id":12`)
	assert.Contains(t, body, `"expiresAt"`)

	// only the digest reaches the store
	require.Len(t, storedHash, 64)
	assert.NotContains(t, body, storedHash)
}

func TestApiKeyHandler_Create_InvalidBody(t *testing.T) {
	r := newApiKeyRouter(&apiKeyRepoStub{})

	req := httptest.NewRequest(http.MethodPost, "/api-keys", strings.NewReader(`{"name":""}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApiKeyHandler_List(t *testing.T) {
	var gotIncludeInactive bool
	repo := &apiKeyRepoStub{
		listFn: func(_ context.Context, includeInactive bool) ([]*entities.ApiKey, error) {
			gotIncludeInactive = includeInactive
			return []*entities.ApiKey{
				{ID: 1, Name: "Key A", IsActive: true},
				{ID: 2, Name: "Key B", IsActive: true},
			}, nil
		},
	}
	r := newApiKeyRouter(repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api-keys", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, gotIncludeInactive)
	assert.Contains(t, w.Body.String(), `"total":2`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api-keys?includeInactive=true", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, gotIncludeInactive)
}

func TestApiKeyHandler_DeactivateActivate(t *testing.T) {
	repo := &apiKeyRepoStub{
		setActiveFn: func(_ context.Context, id uint, active bool) (*entities.ApiKey, error) {
			return &entities.ApiKey{ID: id, Name: "Key A", IsActive: active}, nil
		},
	}
	r := newApiKeyRouter(repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api-keys/3/deactivate", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isActive":false`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api-keys/3/activate", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isActive":true`)
}

func TestApiKeyHandler_NotFoundAndBadID(t *testing.T) {
	r := newApiKeyRouter(&apiKeyRepoStub{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api-keys/99/deactivate", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api-keys/abc/deactivate", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApiKeyHandler_Delete(t *testing.T) {
	repo := &apiKeyRepoStub{
		deleteFn: func(_ context.Context, id uint) (*entities.ApiKey, error) {
			return &entities.ApiKey{ID: id, IsActive: false}, nil
		},
	}
	r := newApiKeyRouter(repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api-keys/5", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "deleted successfully")
}
