// Package render holds the error-view helpers shared by the workflow
// handler packages.
package render

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ServerError logs err with request context and renders the generic error
// page. Store failures are never retried; they terminate the request here.
func ServerError(c *gin.Context, logger *slog.Logger, err error) {
	logger.Error(err.Error(),
		slog.String("request_method", c.Request.Method),
		slog.String("request_url", c.Request.URL.String()),
	)
	c.HTML(http.StatusInternalServerError, "error.tmpl", gin.H{
		"title":   "Error",
		"message": "The server encountered a problem and could not process your request.",
	})
}

// NotFound renders the error page with a 404 status and the given message.
func NotFound(c *gin.Context, message string) {
	c.HTML(http.StatusNotFound, "error.tmpl", gin.H{
		"title":   "Error",
		"message": message,
	})
}
