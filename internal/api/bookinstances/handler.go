// Package bookinstances implements the workflows for book copies. Deleting a
// copy is always permitted; the update POST is an explicit not-implemented
// stub.
package bookinstances

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"local-library/internal/api/render"
	"local-library/internal/domain/catalog"
	"local-library/internal/store"
)

// InstanceStore is the slice of the store layer this package reads and writes.
type InstanceStore interface {
	All(ctx context.Context) ([]catalog.BookInstance, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*catalog.BookInstance, error)
	Insert(ctx context.Context, bi *catalog.BookInstance) (primitive.ObjectID, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}

// BookFinder resolves book references.
type BookFinder interface {
	All(ctx context.Context) ([]catalog.Book, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*catalog.Book, error)
}

type Handler struct {
	logger    *slog.Logger
	instances InstanceStore
	books     BookFinder
}

func NewHandler(logger *slog.Logger, instances InstanceStore, books BookFinder) *Handler {
	return &Handler{logger: logger, instances: instances, books: books}
}

// instanceRow is a list entry with the book reference resolved.
type instanceRow struct {
	Instance  catalog.BookInstance
	BookTitle string
}

// List handles GET /catalog/bookinstances.
func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	all, err := h.instances.All(ctx)
	if err != nil {
		render.ServerError(c, h.logger, err)
		return
	}
	books, err := h.books.All(ctx)
	if err != nil {
		render.ServerError(c, h.logger, err)
		return
	}

	titles := make(map[primitive.ObjectID]string, len(books))
	for _, b := range books {
		titles[b.ID] = b.Title
	}
	rows := make([]instanceRow, 0, len(all))
	for _, bi := range all {
		rows = append(rows, instanceRow{Instance: bi, BookTitle: titles[bi.Book]})
	}

	c.HTML(http.StatusOK, "bookinstance_list.tmpl", gin.H{
		"title":             "Book Instance List",
		"bookinstance_list": rows,
	})
}

// Detail handles GET /catalog/bookinstance/:id.
func (h *Handler) Detail(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		render.NotFound(c, "Book copy not found")
		return
	}
	ctx := c.Request.Context()

	bi, err := h.instances.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			render.NotFound(c, "Book copy not found")
			return
		}
		render.ServerError(c, h.logger, err)
		return
	}

	book, err := h.books.FindByID(ctx, bi.Book)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		render.ServerError(c, h.logger, err)
		return
	}

	c.HTML(http.StatusOK, "bookinstance_detail.tmpl", gin.H{
		"title":        "Book:",
		"bookinstance": bi,
		"book":         book,
	})
}

// CreateGet handles GET /catalog/bookinstance/create.
func (h *Handler) CreateGet(c *gin.Context) {
	books, err := h.books.All(c.Request.Context())
	if err != nil {
		render.ServerError(c, h.logger, err)
		return
	}
	c.HTML(http.StatusOK, "bookinstance_form.tmpl", gin.H{
		"title":     "Create BookInstance",
		"book_list": books,
	})
}

// CreatePost handles POST /catalog/bookinstance/create.
func (h *Handler) CreatePost(c *gin.Context) {
	ctx := c.Request.Context()
	form := parseForm(c)
	v := form.validate()

	bi := form.model()
	if !v.Valid() {
		books, err := h.books.All(ctx)
		if err != nil {
			render.ServerError(c, h.logger, err)
			return
		}
		c.HTML(http.StatusOK, "bookinstance_form.tmpl", gin.H{
			"title":         "Create BookInstance",
			"book_list":     books,
			"selected_book": bi.Book,
			"bookinstance":  bi,
			"errors":        v.Errors,
		})
		return
	}

	id, err := h.instances.Insert(ctx, &bi)
	if err != nil {
		render.ServerError(c, h.logger, err)
		return
	}
	bi.ID = id
	c.Redirect(http.StatusFound, bi.URL())
}

// DeleteGet handles GET /catalog/bookinstance/:id/delete.
func (h *Handler) DeleteGet(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		render.NotFound(c, "Book copy not found")
		return
	}
	ctx := c.Request.Context()

	bi, err := h.instances.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			render.NotFound(c, "Book copy not found")
			return
		}
		render.ServerError(c, h.logger, err)
		return
	}

	book, err := h.books.FindByID(ctx, bi.Book)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		render.ServerError(c, h.logger, err)
		return
	}

	c.HTML(http.StatusOK, "bookinstance_delete.tmpl", gin.H{
		"title":        "Delete Book Instance",
		"bookinstance": bi,
		"book":         book,
	})
}

// DeletePost handles POST /catalog/bookinstance/:id/delete. Copies have no
// dependents, so deletion is unconditional.
func (h *Handler) DeletePost(c *gin.Context) {
	targetID, err := primitive.ObjectIDFromHex(c.PostForm("bookinstanceid"))
	if err == nil {
		if err := h.instances.DeleteByID(c.Request.Context(), targetID); err != nil {
			render.ServerError(c, h.logger, err)
			return
		}
	}
	c.Redirect(http.StatusFound, "/catalog/bookinstances")
}

// UpdateGet handles GET /catalog/bookinstance/:id/update.
func (h *Handler) UpdateGet(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		render.NotFound(c, "Book copy not found")
		return
	}
	ctx := c.Request.Context()

	books, err := h.books.All(ctx)
	if err != nil {
		render.ServerError(c, h.logger, err)
		return
	}
	bi, err := h.instances.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			render.NotFound(c, "Book copy not found")
			return
		}
		render.ServerError(c, h.logger, err)
		return
	}

	c.HTML(http.StatusOK, "bookinstance_form.tmpl", gin.H{
		"title":        "Update BookInstance",
		"bookinstance": bi,
		"book_list":    books,
	})
}

// UpdatePost handles POST /catalog/bookinstance/:id/update. Persisting copy
// updates is not implemented.
func (h *Handler) UpdatePost(c *gin.Context) {
	c.String(http.StatusOK, "NOT IMPLEMENTED: BookInstance update POST")
}
