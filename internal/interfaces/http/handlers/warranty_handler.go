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

// WarrantyHandler handles device warranty registration endpoints
type WarrantyHandler struct {
	warrantyUsecase *usecases.WarrantyUsecase
}

func NewWarrantyHandler(warrantyUsecase *usecases.WarrantyUsecase) *WarrantyHandler {
	return &WarrantyHandler{warrantyUsecase: warrantyUsecase}
}

// RegisterWarranty registers a device for warranty tracking. Mounted behind
// API key auth and the idempotency middleware.
// POST /api/v1/warranties
func (h *WarrantyHandler) RegisterWarranty(c *gin.Context) {
	var input entities.CreateWarrantyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	warranty, err := h.warrantyUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, warranty)
}

// ListWarranties lists warranties with optional filters
// GET /api/v1/warranties?skip=0&limit=100&status=Active&department=IT&category=Laptop
func (h *WarrantyHandler) ListWarranties(c *gin.Context) {
	filters := entities.WarrantyFilters{
		Skip:       queryInt(c, "skip", 0),
		Limit:      queryInt(c, "limit", 100),
		Status:     c.Query("status"),
		Department: c.Query("department"),
		Category:   c.Query("category"),
	}

	warranties, err := h.warrantyUsecase.List(c.Request.Context(), filters)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"warranties": warranties,
		"total":      len(warranties),
	})
}

// GetWarranty returns a single warranty by id
// GET /api/v1/warranties/:id
func (h *WarrantyHandler) GetWarranty(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	warranty, err := h.warrantyUsecase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, warranty)
}

// UpdateWarranty applies a partial update
// PATCH /api/v1/warranties/:id
func (h *WarrantyHandler) UpdateWarranty(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input entities.UpdateWarrantyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	warranty, err := h.warrantyUsecase.Update(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, warranty)
}

// DeleteWarranty soft-deletes a warranty
// DELETE /api/v1/warranties/:id
func (h *WarrantyHandler) DeleteWarranty(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.warrantyUsecase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Warranty deleted successfully"})
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 0 {
		return fallback
	}
	return val
}
