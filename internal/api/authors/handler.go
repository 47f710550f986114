// Package authors implements the author workflows: list, detail, create,
// update and delete. An author referenced by any book cannot be deleted;
// the confirmation page is redisplayed with the blocking books instead.
package authors

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

// AuthorStore is the slice of the store layer this package reads and writes.
type AuthorStore interface {
	All(ctx context.Context) ([]catalog.Author, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*catalog.Author, error)
	Insert(ctx context.Context, a *catalog.Author) (primitive.ObjectID, error)
	Replace(ctx context.Context, id primitive.ObjectID, a *catalog.Author) error
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}

// BookFinder resolves the books referencing an author.
type BookFinder interface {
	ByAuthor(ctx context.Context, id primitive.ObjectID) ([]catalog.Book, error)
}

type Handler struct {
	logger  *slog.Logger
	authors AuthorStore
	books   BookFinder
}

func NewHandler(logger *slog.Logger, authors AuthorStore, books BookFinder) *Handler {
	return &Handler{logger: logger, authors: authors, books: books}
}

// List handles GET /catalog/authors.
func (h *Handler) List(c *gin.Context) {
	all, err := h.authors.All(c.Request.Context())
	if err != nil {
		render.ServerError(c, h.logger, err)
		return
	}
	c.HTML(http.StatusOK, "author_list.tmpl", gin.H{
		"title":       "Author List",
		"author_list": all,
	})
}

// Detail handles GET /catalog/author/:id. The author and their books are
// fetched in parallel; the two reads are independent snapshots.
func (h *Handler) Detail(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		render.NotFound(c, "Author not found")
		return
	}

	author, books, err := h.authorWithBooks(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			render.NotFound(c, "Author not found")
			return
		}
		render.ServerError(c, h.logger, err)
		return
	}

	c.HTML(http.StatusOK, "author_detail.tmpl", gin.H{
		"title":        "Author Detail",
		"author":       author,
		"author_books": books,
	})
}

// CreateGet handles GET /catalog/author/create.
func (h *Handler) CreateGet(c *gin.Context) {
	c.HTML(http.StatusOK, "author_form.tmpl", gin.H{"title": "Create Author"})
}

// CreatePost handles POST /catalog/author/create. On validation failure the
// form is redisplayed with the submitted values and the error list; this is
// a user-correctable condition, so the response status stays 200.
func (h *Handler) CreatePost(c *gin.Context) {
	form := parseForm(c)
	v := form.validate()

	author := form.model()
	if !v.Valid() {
		c.HTML(http.StatusOK, "author_form.tmpl", gin.H{
			"title":  "Create Author",
			"author": author,
			"errors": v.Errors,
		})
		return
	}

	id, err := h.authors.Insert(c.Request.Context(), &author)
	if err != nil {
		render.ServerError(c, h.logger, err)
		return
	}
	author.ID = id
	c.Redirect(http.StatusFound, author.URL())
}

// DeleteGet handles GET /catalog/author/:id/delete. An unknown id redirects
// back to the author list.
func (h *Handler) DeleteGet(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/catalog/authors")
		return
	}

	author, books, err := h.authorWithBooks(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.Redirect(http.StatusFound, "/catalog/authors")
			return
		}
		render.ServerError(c, h.logger, err)
		return
	}

	c.HTML(http.StatusOK, "author_delete.tmpl", gin.H{
		"title":        "Delete Author",
		"author":       author,
		"author_books": books,
	})
}

// DeletePost handles POST /catalog/author/:id/delete. While any book still
// references the author the confirmation page is redisplayed with the
// blocking list and nothing is deleted.
func (h *Handler) DeletePost(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/catalog/authors")
		return
	}

	author, books, err := h.authorWithBooks(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.Redirect(http.StatusFound, "/catalog/authors")
			return
		}
		render.ServerError(c, h.logger, err)
		return
	}

	if len(books) > 0 {
		c.HTML(http.StatusOK, "author_delete.tmpl", gin.H{
			"title":        "Delete Author",
			"author":       author,
			"author_books": books,
		})
		return
	}

	// The delete form submits the target id as a hidden field.
	targetID, err := primitive.ObjectIDFromHex(c.PostForm("authorid"))
	if err == nil {
		if err := h.authors.DeleteByID(c.Request.Context(), targetID); err != nil {
			render.ServerError(c, h.logger, err)
			return
		}
	}
	c.Redirect(http.StatusFound, "/catalog/authors")
}

// UpdateGet handles GET /catalog/author/:id/update.
func (h *Handler) UpdateGet(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		render.NotFound(c, "Author not found")
		return
	}

	author, err := h.authors.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			render.NotFound(c, "Author not found")
			return
		}
		render.ServerError(c, h.logger, err)
		return
	}

	c.HTML(http.StatusOK, "author_form.tmpl", gin.H{
		"title":  "Update Author",
		"author": author,
	})
}

// UpdatePost handles POST /catalog/author/:id/update. The stored document is
// replaced wholesale with the submitted fields.
func (h *Handler) UpdatePost(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		render.NotFound(c, "Author not found")
		return
	}

	form := parseForm(c)
	v := form.validateForUpdate()

	author := form.model()
	author.ID = id
	if !v.Valid() {
		c.HTML(http.StatusOK, "author_form.tmpl", gin.H{
			"title":  "Update Author",
			"author": author,
			"errors": v.Errors,
		})
		return
	}

	if err := h.authors.Replace(c.Request.Context(), id, &author); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			render.NotFound(c, "Author not found")
			return
		}
		render.ServerError(c, h.logger, err)
		return
	}
	c.Redirect(http.StatusFound, author.URL())
}

// authorWithBooks loads an author and the books referencing them in parallel.
func (h *Handler) authorWithBooks(ctx context.Context, id primitive.ObjectID) (*catalog.Author, []catalog.Book, error) {
	var (
		author *catalog.Author
		books  []catalog.Book
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		author, err = h.authors.FindByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		books, err = h.books.ByAuthor(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return author, books, nil
}
