package handler

import (
	"net/http"

	"github.com/HARSHSHRI12/Nogen-Backend/pkg/apperr"
	"github.com/gin-gonic/gin"
)

// writeError maps an application error to an HTTP response. Unknown errors
// become opaque 500s so internals never leak to clients.
func writeError(c *gin.Context, err error) {
	var status int
	message := "Server error"

	if appErr, ok := apperr.As(err); ok {
		message = appErr.Message
		switch appErr.Code {
		case apperr.CodeInvalidArgument:
			status = http.StatusBadRequest
		case apperr.CodeUnauthenticated:
			status = http.StatusUnauthorized
		case apperr.CodePermissionDenied:
			status = http.StatusForbidden
		case apperr.CodeNotFound:
			status = http.StatusNotFound
		case apperr.CodeAlreadyExists:
			status = http.StatusConflict
		default:
			status = http.StatusInternalServerError
			message = "Server error"
		}
	} else {
		status = http.StatusInternalServerError
	}

	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": message,
	})
}
