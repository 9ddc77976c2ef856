package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/go-petr/promo-ledger/pkg/web"
)

// AdminIDKey is the gin context key under which the admin id is stored.
const AdminIDKey = "admin_id"

// AdminIDHeader carries the admin identity resolved by the upstream gateway.
const AdminIDHeader = "X-Admin-ID"

// ErrAdminHeaderNotFound indicates a request without an admin identity.
var ErrAdminHeaderNotFound = errors.New("X-Admin-ID header is required")

// AdminAuth requires the admin identity header on moderation routes.
// Authentication itself happens upstream; the service only records who acted.
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID := strings.TrimSpace(c.Request.Header.Get(AdminIDHeader))
		if adminID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(ErrAdminHeaderNotFound))
			return
		}

		c.Set(AdminIDKey, adminID)
		c.Next()
	}
}
