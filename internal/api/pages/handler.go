// Package pages serves the dashboard at the site root.
package pages

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"local-library/internal/api/render"
)

// Counter reports how many documents a collection holds.
type Counter interface {
	CountAll(ctx context.Context) (int64, error)
}

// InstanceCounter additionally reports how many copies are available.
type InstanceCounter interface {
	Counter
	CountAvailable(ctx context.Context) (int64, error)
}

type Handler struct {
	logger    *slog.Logger
	books     Counter
	instances InstanceCounter
	authors   Counter
	genres    Counter
}

func NewHandler(logger *slog.Logger, books Counter, instances InstanceCounter, authors Counter, genres Counter) *Handler {
	return &Handler{logger: logger, books: books, instances: instances, authors: authors, genres: genres}
}

// Index handles GET /. The five counts are independent and fetched in
// parallel.
func (h *Handler) Index(c *gin.Context) {
	var bookCount, instanceCount, availableCount, authorCount, genreCount int64

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		bookCount, err = h.books.CountAll(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		instanceCount, err = h.instances.CountAll(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		availableCount, err = h.instances.CountAvailable(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		authorCount, err = h.authors.CountAll(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		genreCount, err = h.genres.CountAll(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		render.ServerError(c, h.logger, err)
		return
	}

	c.HTML(http.StatusOK, "index.tmpl", gin.H{
		"title":                         "Local Library Home",
		"book_count":                    bookCount,
		"book_instance_count":           instanceCount,
		"book_instance_available_count": availableCount,
		"author_count":                  authorCount,
		"genre_count":                   genreCount,
	})
}
