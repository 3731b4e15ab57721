package apperrors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandleError writes an error response. Unknown error types become an
// opaque 500 so internals never leak to clients.
func HandleError(c *gin.Context, err error) {
	var appErr *AppError
	if As(err, &appErr) {
		c.JSON(appErr.HTTPCode, gin.H{"error": appErr})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error": gin.H{
			"code":    CodeInternalError,
			"message": "Internal server error",
		},
	})
}
