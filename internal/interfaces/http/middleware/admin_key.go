package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"nick-exchange.backend/pkg/crypto"
)

// AdminKeyHeader is the header carrying the operator key
const AdminKeyHeader = "X-Admin-Key"

// AdminKeyMiddleware guards operator endpoints with a pre-shared key. Only
// the bcrypt hash of the key is configured on the server.
func AdminKeyMiddleware(keyHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if keyHash == "" {
			log.Printf("[AdminKeyMiddleware] Request to %s rejected: no admin key configured", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Admin access is not configured",
			})
			return
		}

		key := c.GetHeader(AdminKeyHeader)
		if key == "" || !crypto.CheckKey(key, keyHash) {
			log.Printf("[AdminKeyMiddleware] Request to %s failed: invalid admin key", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid admin key",
			})
			return
		}

		c.Next()
	}
}
