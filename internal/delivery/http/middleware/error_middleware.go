package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"recruitment-platform/internal/delivery/http/response"
	"recruitment-platform/pkg/apperror"
	"recruitment-platform/pkg/logger"
	"recruitment-platform/pkg/validation"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			response.Error(c, http.StatusBadRequest, "Validation failed", validation.FormatValidationErrors(verrs))
			return
		}

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				logger.Log.Error("Request failed",
					"error", appErr.Err,
					"path", c.Request.URL.Path,
					"request_id", c.GetString("RequestID"),
				)
			}
			response.Error(c, appErr.Code, appErr.Message, nil)
			return
		}

		// Never expose internal error details to clients
		logger.Log.Error("Internal Server Error",
			"error", err,
			"path", c.Request.URL.Path,
			"request_id", c.GetString("RequestID"),
		)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
