package rest

import (
	"errors"
	"net/http"

	"credchain/src/apperrors"

	"github.com/gin-gonic/gin"
)

// OK writes the canonical success envelope. Extra fields are merged next to
// "success" so every handler returns the same shape.
func OK(c *gin.Context, fields gin.H) {
	body := gin.H{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

func Created(c *gin.Context, fields gin.H) {
	body := gin.H{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(http.StatusCreated, body)
}

// Fail maps an error to the canonical failure envelope. AppError codes carry
// their HTTP status; anything else is an opaque 500 with no internals leaked.
func Fail(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	body := gin.H{"error": appErr.Message}
	if appErr.Cause != nil && appErr.Code == apperrors.CodeUpstream {
		body["details"] = appErr.Cause.Error()
	}
	c.JSON(statusFor(appErr.Code), body)
}

// Abort is Fail for middleware: it also stops the handler chain.
func Abort(c *gin.Context, err error) {
	Fail(c, err)
	c.Abort()
}

func statusFor(code apperrors.Code) int {
	switch code {
	case apperrors.CodeInvalidArgument:
		return http.StatusBadRequest
	case apperrors.CodeUnauthenticated:
		return http.StatusUnauthorized
	case apperrors.CodePermissionDenied:
		return http.StatusForbidden
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	case apperrors.CodeAlreadyExists, apperrors.CodeFailedPrecondition:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
