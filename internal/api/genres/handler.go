// Package genres implements the genre workflows. Genre names are unique by
// value: creating or renaming to an existing name redirects to that genre
// instead of storing a duplicate. A genre referenced by any book cannot be
// deleted.
package genres

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"local-library/internal/api/render"
	"local-library/internal/domain/catalog"
	"local-library/internal/store"
)

// GenreStore is the slice of the store layer this package reads and writes.
type GenreStore interface {
	All(ctx context.Context) ([]catalog.Genre, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*catalog.Genre, error)
	ByName(ctx context.Context, name string) (*catalog.Genre, error)
	Insert(ctx context.Context, g *catalog.Genre) (primitive.ObjectID, error)
	Replace(ctx context.Context, id primitive.ObjectID, g *catalog.Genre) error
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}

// BookFinder resolves the books whose genre list contains a genre.
type BookFinder interface {
	ByGenre(ctx context.Context, id primitive.ObjectID) ([]catalog.Book, error)
}

type Handler struct {
	logger *slog.Logger
	genres GenreStore
	books  BookFinder
}

func NewHandler(logger *slog.Logger, genres GenreStore, books BookFinder) *Handler {
	return &Handler{logger: logger, genres: genres, books: books}
}

// List handles GET /catalog/genres.
func (h *Handler) List(c *gin.Context) {
	all, err := h.genres.All(c.Request.Context())
	if err != nil {
		render.ServerError(c, h.logger, err)
		return
	}
	c.HTML(http.StatusOK, "genre_list.tmpl", gin.H{
		"title":      "Genre List",
		"genre_list": all,
	})
}

// Detail handles GET /catalog/genre/:id.
func (h *Handler) Detail(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		render.NotFound(c, "Genre not found")
		return
	}

	genre, books, err := h.genreWithBooks(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			render.NotFound(c, "Genre not found")
			return
		}
		render.ServerError(c, h.logger, err)
		return
	}

	c.HTML(http.StatusOK, "genre_detail.tmpl", gin.H{
		"title":       "Genre Detail",
		"genre":       genre,
		"genre_books": books,
	})
}

// CreateGet handles GET /catalog/genre/create.
func (h *Handler) CreateGet(c *gin.Context) {
	c.HTML(http.StatusOK, "genre_form.tmpl", gin.H{"title": "Create Genre"})
}

// CreatePost handles POST /catalog/genre/create. A pre-existing genre with
// exactly the same name wins: the request redirects to it and nothing new is
// stored.
func (h *Handler) CreatePost(c *gin.Context) {
	form := parseForm(c)
	v := form.validate()

	genre := form.model()
	if !v.Valid() {
		c.HTML(http.StatusOK, "genre_form.tmpl", gin.H{
			"title":  "Create Genre",
			"genre":  genre,
			"errors": v.Errors,
		})
		return
	}

	existing, err := h.genres.ByName(c.Request.Context(), form.Name)
	if err == nil {
		c.Redirect(http.StatusFound, existing.URL())
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		render.ServerError(c, h.logger, err)
		return
	}

	id, err := h.genres.Insert(c.Request.Context(), &genre)
	if err != nil {
		render.ServerError(c, h.logger, err)
		return
	}
	genre.ID = id
	c.Redirect(http.StatusFound, genre.URL())
}

// DeleteGet handles GET /catalog/genre/:id/delete.
func (h *Handler) DeleteGet(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		render.NotFound(c, "Genre not found")
		return
	}

	genre, books, err := h.genreWithBooks(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			render.NotFound(c, "Genre not found")
			return
		}
		render.ServerError(c, h.logger, err)
		return
	}

	c.HTML(http.StatusOK, "genre_delete.tmpl", gin.H{
		"title": "Delete Genre",
		"genre": genre,
		"books": books,
	})
}

// DeletePost handles POST /catalog/genre/:id/delete. While any book lists
// the genre the confirmation page is redisplayed and nothing is deleted.
func (h *Handler) DeletePost(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		render.NotFound(c, "Genre not found")
		return
	}

	genre, books, err := h.genreWithBooks(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			render.NotFound(c, "Genre not found")
			return
		}
		render.ServerError(c, h.logger, err)
		return
	}

	if len(books) > 0 {
		c.HTML(http.StatusOK, "genre_delete.tmpl", gin.H{
			"title": "Delete Genre",
			"genre": genre,
			"books": books,
		})
		return
	}

	targetID, err := primitive.ObjectIDFromHex(c.PostForm("genreid"))
	if err == nil {
		if err := h.genres.DeleteByID(c.Request.Context(), targetID); err != nil {
			render.ServerError(c, h.logger, err)
			return
		}
	}
	c.Redirect(http.StatusFound, "/catalog/genres")
}

// UpdateGet handles GET /catalog/genre/:id/update.
func (h *Handler) UpdateGet(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		render.NotFound(c, "Genre not found")
		return
	}

	genre, err := h.genres.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			render.NotFound(c, "Genre not found")
			return
		}
		render.ServerError(c, h.logger, err)
		return
	}

	c.HTML(http.StatusOK, "genre_form.tmpl", gin.H{
		"title": "Update Genre",
		"genre": genre,
	})
}

// UpdatePost handles POST /catalog/genre/:id/update. Renaming to a name that
// already exists redirects to the existing genre, same as create.
func (h *Handler) UpdatePost(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		render.NotFound(c, "Genre not found")
		return
	}

	form := parseForm(c)
	v := form.validate()

	genre := form.model()
	genre.ID = id
	if !v.Valid() {
		c.HTML(http.StatusOK, "genre_form.tmpl", gin.H{
			"title":  "Update Genre",
			"genre":  genre,
			"errors": v.Errors,
		})
		return
	}

	existing, err := h.genres.ByName(c.Request.Context(), form.Name)
	if err == nil {
		c.Redirect(http.StatusFound, existing.URL())
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		render.ServerError(c, h.logger, err)
		return
	}

	if err := h.genres.Replace(c.Request.Context(), id, &genre); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			render.NotFound(c, "Genre not found")
			return
		}
		render.ServerError(c, h.logger, err)
		return
	}
	c.Redirect(http.StatusFound, genre.URL())
}

// genreWithBooks loads a genre and the books listing it in parallel.
func (h *Handler) genreWithBooks(ctx context.Context, id primitive.ObjectID) (*catalog.Genre, []catalog.Book, error) {
	var (
		genre *catalog.Genre
		books []catalog.Book
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		genre, err = h.genres.FindByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		books, err = h.books.ByGenre(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return genre, books, nil
}
