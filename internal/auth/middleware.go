package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireUpdateKey guards destructive routes behind the shared data-update
// key, passed as the secret_key query parameter.
func RequireUpdateKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Query("secret_key") != key {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Unauthorized",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
