package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"recruitment-platform/internal/authz"
	"recruitment-platform/internal/delivery/http/response"
	"recruitment-platform/internal/domain"
	"recruitment-platform/pkg/security"
	"recruitment-platform/pkg/token"
)

// TokenValidator checks a bearer token and returns its claims.
type TokenValidator interface {
	Validate(tokenString string) (*token.Claims, error)
}

// ExtractToken reads the bearer token from the Authorization header, falling
// back to the token query parameter used by WebSocket clients.
func ExtractToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if strings.HasPrefix(h, "Bearer ") {
			return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		}
		return ""
	}
	return c.Query("token")
}

// AuthMiddleware validates the bearer token ahead of every protected handler.
// The identity is taken from the token alone; no database lookup is made.
func AuthMiddleware(validator TokenValidator, secLogger *security.SecurityLogger) gin.HandlerFunc {
	if secLogger == nil {
		secLogger = security.DefaultLogger()
	}
	return func(c *gin.Context) {
		raw := ExtractToken(c)
		if raw == "" {
			Unauthorized(c, secLogger, "missing_token")
			return
		}

		claims, err := validator.Validate(raw)
		if err != nil {
			Unauthorized(c, secLogger, "invalid_token")
			return
		}

		who := domain.Identity{
			UserID:   claims.UserID,
			Username: claims.Username(),
			Role:     domain.Role(claims.Role),
		}
		setIdentity(c, who)
		c.Next()
	}
}

// Unauthorized is the single entry point for rejected authentication.
func Unauthorized(c *gin.Context, secLogger *security.SecurityLogger, reason string) {
	secLogger.LogUnauthorizedAccess(c.Request.Context(), requestInfo(c), reason)
	response.Error(c, http.StatusUnauthorized, "Unauthorized: full authentication is required to access this resource", nil)
	c.Abort()
}

// RequirePermission rejects callers whose role may not perform op.
func RequirePermission(op authz.Operation, secLogger *security.SecurityLogger) gin.HandlerFunc {
	if secLogger == nil {
		secLogger = security.DefaultLogger()
	}
	return func(c *gin.Context) {
		who, ok := IdentityFrom(c)
		if !ok {
			Unauthorized(c, secLogger, "missing_identity")
			return
		}
		if !authz.Allowed(who.Role, op) {
			secLogger.LogForbiddenAccess(c.Request.Context(), who.UserID, string(who.Role), string(op), requestInfo(c))
			response.Error(c, http.StatusForbidden, "Access denied", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

func setIdentity(c *gin.Context, who domain.Identity) {
	c.Set(string(domain.KeyUserID), who.UserID)
	c.Set(string(domain.KeyUsername), who.Username)
	c.Set(string(domain.KeyUserRole), who.Role)

	ctx := context.WithValue(c.Request.Context(), domain.KeyUserID, who.UserID)
	ctx = context.WithValue(ctx, domain.KeyUsername, who.Username)
	ctx = context.WithValue(ctx, domain.KeyUserRole, who.Role)
	c.Request = c.Request.WithContext(ctx)
}

// IdentityFrom returns the identity set by AuthMiddleware.
func IdentityFrom(c *gin.Context) (domain.Identity, bool) {
	id, ok := c.Get(string(domain.KeyUserID))
	if !ok {
		return domain.Identity{}, false
	}
	userID, ok := id.(int64)
	if !ok || userID == 0 {
		return domain.Identity{}, false
	}
	role, _ := c.Get(string(domain.KeyUserRole))
	r, _ := role.(domain.Role)
	return domain.Identity{
		UserID:   userID,
		Username: c.GetString(string(domain.KeyUsername)),
		Role:     r,
	}, true
}

func requestInfo(c *gin.Context) security.RequestInfo {
	return security.RequestInfo{
		IP:        c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
		RequestID: c.GetString("RequestID"),
		Method:    c.Request.Method,
		Path:      c.Request.URL.Path,
	}
}
