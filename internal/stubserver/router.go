// Package stubserver is a development stand-in for the production API: it
// serves the same JSON envelope contract the client speaks, backed by an
// in-memory store.
package stubserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const userIDContextKey = "userID"

// UserIDFromContext returns the authenticated user id set by RequireAuth.
func UserIDFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(userIDContextKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// RequireAuth validates the Bearer token and stores the user id on the
// request context.
func RequireAuth(cfg TokenConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			respondError(c, http.StatusUnauthorized, "missing bearer token")
			c.Abort()
			return
		}
		claims, err := VerifyToken(parts[1], cfg)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "invalid token")
			c.Abort()
			return
		}
		c.Set(userIDContextKey, claims.UserID)
		c.Next()
	}
}

// NewRouter wires the envelope endpoints. Paths match the client's endpoint
// table.
func NewRouter(store *Store, cfg TokenConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	h := &Handler{Store: store, TokenConfig: cfg}

	r.POST("/auth/login", h.Login)
	r.POST("/auth/register", h.Register)
	r.POST("/user/forgot_password", h.ForgotPassword)

	protected := r.Group("/")
	protected.Use(RequireAuth(cfg))
	protected.GET("/user/profile", h.GetProfile)
	protected.POST("/user/update_profile", h.UpdateProfile)
	protected.GET("/notifications", h.ListNotifications)
	protected.POST("/notifications/mark_read", h.MarkNotificationRead)

	return r
}
