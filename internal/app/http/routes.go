package routes

import (
	"local-library/internal/api/authors"
	"local-library/internal/api/bookinstances"
	"local-library/internal/api/books"
	"local-library/internal/api/genres"
	"local-library/internal/api/pages"
	"local-library/internal/api/render"
	"local-library/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers bundles the per-entity workflow handlers for registration.
type Handlers struct {
	Pages         *pages.Handler
	Authors       *authors.Handler
	Books         *books.Handler
	Genres        *genres.Handler
	BookInstances *bookinstances.Handler
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.Use(middleware.SecureHeaders(), middleware.RateLimit())

	r.NoRoute(func(c *gin.Context) {
		render.NotFound(c, "Page not found")
	})

	r.GET("/", h.Pages.Index)

	catalog := r.Group("/catalog")
	catalog.Use(middleware.SanitizeFormInput())

	catalog.GET("/books", h.Books.List)
	catalog.GET("/book/create", h.Books.CreateGet)
	catalog.POST("/book/create", h.Books.CreatePost)
	catalog.GET("/book/:id", h.Books.Detail)
	catalog.GET("/book/:id/delete", h.Books.DeleteGet)
	catalog.POST("/book/:id/delete", h.Books.DeletePost)
	catalog.GET("/book/:id/update", h.Books.UpdateGet)
	catalog.POST("/book/:id/update", h.Books.UpdatePost)

	catalog.GET("/authors", h.Authors.List)
	catalog.GET("/author/create", h.Authors.CreateGet)
	catalog.POST("/author/create", h.Authors.CreatePost)
	catalog.GET("/author/:id", h.Authors.Detail)
	catalog.GET("/author/:id/delete", h.Authors.DeleteGet)
	catalog.POST("/author/:id/delete", h.Authors.DeletePost)
	catalog.GET("/author/:id/update", h.Authors.UpdateGet)
	catalog.POST("/author/:id/update", h.Authors.UpdatePost)

	catalog.GET("/genres", h.Genres.List)
	catalog.GET("/genre/create", h.Genres.CreateGet)
	catalog.POST("/genre/create", h.Genres.CreatePost)
	catalog.GET("/genre/:id", h.Genres.Detail)
	catalog.GET("/genre/:id/delete", h.Genres.DeleteGet)
	catalog.POST("/genre/:id/delete", h.Genres.DeletePost)
	catalog.GET("/genre/:id/update", h.Genres.UpdateGet)
	catalog.POST("/genre/:id/update", h.Genres.UpdatePost)

	catalog.GET("/bookinstances", h.BookInstances.List)
	catalog.GET("/bookinstance/create", h.BookInstances.CreateGet)
	catalog.POST("/bookinstance/create", h.BookInstances.CreatePost)
	catalog.GET("/bookinstance/:id", h.BookInstances.Detail)
	catalog.GET("/bookinstance/:id/delete", h.BookInstances.DeleteGet)
	catalog.POST("/bookinstance/:id/delete", h.BookInstances.DeletePost)
	catalog.GET("/bookinstance/:id/update", h.BookInstances.UpdateGet)
	catalog.POST("/bookinstance/:id/update", h.BookInstances.UpdatePost)
}
