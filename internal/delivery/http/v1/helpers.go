package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"recruitment-platform/internal/authz"
	"recruitment-platform/internal/delivery/http/middleware"
	"recruitment-platform/internal/domain"
	"recruitment-platform/pkg/apperror"
)

// Gate builds the role check for one operation.
type Gate func(op authz.Operation) gin.HandlerFunc

func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return 0, false
	}
	return id, true
}

func identity(c *gin.Context) (domain.Identity, bool) {
	who, ok := middleware.IdentityFrom(c)
	if !ok {
		c.Error(apperror.Unauthorized("Unauthorized"))
	}
	return who, ok
}

func bindError(err error) error {
	return apperror.New(http.StatusBadRequest, "Invalid request body", err)
}

// optional turns an empty string into nil.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
