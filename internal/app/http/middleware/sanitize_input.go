package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

// SanitizeFormInput cleans every submitted form value with bluemonday before
// a handler sees it, so redisplayed values are safe to render.
func SanitizeFormInput() gin.HandlerFunc {
	policy := bluemonday.StrictPolicy()
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		if err := c.Request.ParseForm(); err != nil {
			c.String(http.StatusBadRequest, "Invalid form body")
			c.Abort()
			return
		}
		for key, values := range c.Request.PostForm {
			for i, v := range values {
				values[i] = policy.Sanitize(v)
			}
			c.Request.PostForm[key] = values
		}

		c.Next()
	}
}
