package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Public paths that never require the API key
var publicPaths = map[string]bool{
	"/up":           true,
	"/":             true,
	"/health":       true,
	"/docs":         true,
	"/redoc":        true,
	"/openapi.json": true,
}

var publicPrefixes = []string{
	"/docs/",
	"/uploads/",
}

// IsPublicPath reports whether a request path bypasses the API-key gate
func IsPublicPath(path string) bool {
	if publicPaths[path] {
		return true
	}
	for _, p := range publicPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// APIKey returns a middleware that rejects any request whose X-API-Key
// header does not match the configured key, except the public allow-list
// and CORS preflight requests.
func APIKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || IsPublicPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		if c.GetHeader("X-API-Key") != key {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"detail": "Invalid or missing API key",
			})
			return
		}

		c.Next()
	}
}
