package middlewares

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/parlor-billing/utils"
)

const (
	TenantHeader = "X-Tenant-ID"
	TenantIDKey  = "tenant_id"
)

// TenantMiddleware resolves the tenant from X-Tenant-ID, falling back to
// defaultTenant when the header is absent.
func TenantMiddleware(defaultTenant uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := defaultTenant
		if raw := c.GetHeader(TenantHeader); raw != "" {
			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil || id == 0 {
				utils.RespondErrorCode(c, http.StatusBadRequest, "invalid_tenant", errors.New("invalid X-Tenant-ID header"))
				c.Abort()
				return
			}
			tenantID = uint(id)
		}
		c.Set(TenantIDKey, tenantID)
		c.Next()
	}
}

// TenantID returns the tenant resolved by TenantMiddleware.
func TenantID(c *gin.Context) uint {
	if v, ok := c.Get(TenantIDKey); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
