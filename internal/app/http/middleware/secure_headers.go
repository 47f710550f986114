package middleware

import "github.com/gin-gonic/gin"

// SecureHeaders sets the content-security policy for every rendered page.
// Scripts may come from the site itself and the two CDNs the views use.
func SecureHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Security-Policy",
			"script-src 'self' code.jquery.com cdn.jsdelivr.net")
		c.Next()
	}
}
