package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"warranty-register.backend/internal/domain/entities"
	domainerrors "warranty-register.backend/internal/domain/errors"
	"warranty-register.backend/internal/interfaces/http/response"
	"warranty-register.backend/internal/usecases"
)

// ApiKeyHandler exposes the administrative API key lifecycle. All routes are
// mounted behind AuthMiddleware + RequireAdmin.
type ApiKeyHandler struct {
	apiKeyUsecase *usecases.ApiKeyUsecase
}

func NewApiKeyHandler(apiKeyUsecase *usecases.ApiKeyUsecase) *ApiKeyHandler {
	return &ApiKeyHandler{apiKeyUsecase: apiKeyUsecase}
}

// CreateApiKey issues a new API key. The response carries the plaintext key;
// it is shown here and never again.
// POST /api/v1/admin/api-keys
func (h *ApiKeyHandler) CreateApiKey(c *gin.Context) {
	var input entities.CreateApiKeyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.apiKeyUsecase.IssueKey(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// ListApiKeys lists stored keys without plaintext or hashes.
// GET /api/v1/admin/api-keys?includeInactive=true
func (h *ApiKeyHandler) ListApiKeys(c *gin.Context) {
	includeInactive := c.Query("includeInactive") == "true"

	keys, err := h.apiKeyUsecase.List(c.Request.Context(), includeInactive)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"apiKeys": keys,
		"total":   len(keys),
	})
}

// DeactivateApiKey disables a key without destroying it.
// POST /api/v1/admin/api-keys/:id/deactivate
func (h *ApiKeyHandler) DeactivateApiKey(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	key, err := h.apiKeyUsecase.Deactivate(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, key)
}

// ActivateApiKey re-enables a previously deactivated key.
// POST /api/v1/admin/api-keys/:id/activate
func (h *ApiKeyHandler) ActivateApiKey(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	key, err := h.apiKeyUsecase.Activate(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, key)
}

// DeleteApiKey soft-deletes a key; the record remains for audit.
// DELETE /api/v1/admin/api-keys/:id
func (h *ApiKeyHandler) DeleteApiKey(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if _, err := h.apiKeyUsecase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "API key deleted successfully"})
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid ID parameter"))
		return 0, false
	}
	return uint(id), true
}
