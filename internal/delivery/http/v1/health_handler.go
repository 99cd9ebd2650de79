package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"recruitment-platform/internal/delivery/http/response"
)

// HealthChecker reports per-dependency status.
type HealthChecker interface {
	Check(ctx context.Context) (map[string]string, bool)
}

type HealthHandler struct {
	checker HealthChecker
}

func NewHealthHandler(r *gin.RouterGroup, checker HealthChecker) {
	handler := &HealthHandler{checker: checker}
	r.GET("/health", handler.Health)
}

// Health godoc
// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	if h.checker == nil {
		response.Success(c, http.StatusOK, "System operational", nil)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status, healthy := h.checker.Check(ctx)
	if !healthy {
		response.Error(c, http.StatusServiceUnavailable, "System degraded", status)
		return
	}
	response.Success(c, http.StatusOK, "System operational", status)
}
