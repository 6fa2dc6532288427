// support_only.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SupportOnly gates endpoints that read orders across customers.
func SupportOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("userSupport") {
			c.JSON(http.StatusForbidden, gin.H{"error": "support privileges required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
