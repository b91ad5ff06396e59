package response

import (
	"errors"

	"github.com/gin-gonic/gin"
	domainerrors "warranty-register.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response. Non-AppError values fall back to a generic
// 500 so internal detail never reaches the client.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		appErr = domainerrors.InternalError(err)
	}

	c.JSON(appErr.Status, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}

// AbortError sends an error response and stops the handler chain; for use from
// middleware.
func AbortError(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
