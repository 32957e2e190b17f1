package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskly-be/internal/apperror"
	"taskly-be/internal/models"
	"taskly-be/internal/validation"
)

const msgInternal = "Internal server error"

// respondError renders err in the error envelope. Internal failures are
// logged and never shown to the client.
func respondError(c *gin.Context, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) || appErr.Kind == apperror.KindInternal {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: msgInternal})
		return
	}

	c.JSON(appErr.Kind.HTTPStatus(), models.ErrorResponse{
		Message: appErr.Message,
		Errors:  appErr.Fields,
	})
}

// bindJSON decodes the request body into req, answering 422 on malformed input.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Message: "Invalid request body",
			Errors:  map[string]string{"body": validation.InvalidDataMessage},
		})
		return false
	}
	return true
}
