// Package books implements the book workflows. References to the author and
// genres are joined explicitly: the primary document is fetched first, then
// the referenced entities by id, keeping the two phases visible.
package books

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

// BookStore is the slice of the store layer this package reads and writes.
type BookStore interface {
	All(ctx context.Context) ([]catalog.Book, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*catalog.Book, error)
	Insert(ctx context.Context, b *catalog.Book) (primitive.ObjectID, error)
	Replace(ctx context.Context, id primitive.ObjectID, b *catalog.Book) error
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}

// AuthorFinder resolves author references.
type AuthorFinder interface {
	All(ctx context.Context) ([]catalog.Author, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*catalog.Author, error)
}

// GenreFinder resolves genre references.
type GenreFinder interface {
	All(ctx context.Context) ([]catalog.Genre, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*catalog.Genre, error)
}

// InstanceFinder resolves the copies of a book.
type InstanceFinder interface {
	ByBook(ctx context.Context, id primitive.ObjectID) ([]catalog.BookInstance, error)
}

type Handler struct {
	logger    *slog.Logger
	books     BookStore
	authors   AuthorFinder
	genres    GenreFinder
	instances InstanceFinder
}

func NewHandler(logger *slog.Logger, books BookStore, authors AuthorFinder, genres GenreFinder, instances InstanceFinder) *Handler {
	return &Handler{logger: logger, books: books, authors: authors, genres: genres, instances: instances}
}

// bookRow is a list entry with the author reference resolved.
type bookRow struct {
	Book       catalog.Book
	AuthorName string
}

// genreOption is a form checkbox entry, checked when the book already lists
// the genre.
type genreOption struct {
	Genre   catalog.Genre
	Checked bool
}

// List handles GET /catalog/books.
func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	all, err := h.books.All(ctx)
	if err != nil {
		render.ServerError(c, h.logger, err)
		return
	}
	authors, err := h.authors.All(ctx)
	if err != nil {
		render.ServerError(c, h.logger, err)
		return
	}

	byID := make(map[primitive.ObjectID]catalog.Author, len(authors))
	for _, a := range authors {
		byID[a.ID] = a
	}

	rows := make([]bookRow, 0, len(all))
	for _, b := range all {
		rows = append(rows, bookRow{Book: b, AuthorName: byID[b.Author].Name()})
	}

	c.HTML(http.StatusOK, "book_list.tmpl", gin.H{
		"title":     "Book List",
		"book_list": rows,
	})
}

// Detail handles GET /catalog/book/:id. The book and its copies are fetched
// in parallel, then the author and genre references are resolved.
func (h *Handler) Detail(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		render.NotFound(c, "Book not found")
		return
	}
	ctx := c.Request.Context()

	book, instances, err := h.bookWithInstances(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			render.NotFound(c, "Book not found")
			return
		}
		render.ServerError(c, h.logger, err)
		return
	}

	author, err := h.authors.FindByID(ctx, book.Author)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		render.ServerError(c, h.logger, err)
		return
	}
	genres := make([]catalog.Genre, 0, len(book.Genre))
	for _, gid := range book.Genre {
		g, err := h.genres.FindByID(ctx, gid)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			render.ServerError(c, h.logger, err)
			return
		}
		genres = append(genres, *g)
	}

	c.HTML(http.StatusOK, "book_detail.tmpl", gin.H{
		"title":          book.Title,
		"book":           book,
		"author":         author,
		"genres":         genres,
		"book_instances": instances,
	})
}

// CreateGet handles GET /catalog/book/create.
func (h *Handler) CreateGet(c *gin.Context) {
	authors, genres, err := h.formChoices(c.Request.Context())
	if err != nil {
		render.ServerError(c, h.logger, err)
		return
	}
	c.HTML(http.StatusOK, "book_form.tmpl", gin.H{
		"title":   "Create Book",
		"authors": authors,
		"genres":  markChecked(genres, nil),
	})
}

// CreatePost handles POST /catalog/book/create. On validation failure the
// form is redisplayed with the submitted values, the error list and the
// already-chosen genres re-marked.
func (h *Handler) CreatePost(c *gin.Context) {
	ctx := c.Request.Context()
	form := parseForm(c)
	v := form.validate()

	book := form.model()
	if !v.Valid() {
		authors, genres, err := h.formChoices(ctx)
		if err != nil {
			render.ServerError(c, h.logger, err)
			return
		}
		c.HTML(http.StatusOK, "book_form.tmpl", gin.H{
			"title":   "Create Book",
			"authors": authors,
			"genres":  markChecked(genres, &book),
			"book":    book,
			"errors":  v.Errors,
		})
		return
	}

	id, err := h.books.Insert(ctx, &book)
	if err != nil {
		render.ServerError(c, h.logger, err)
		return
	}
	book.ID = id
	c.Redirect(http.StatusFound, book.URL())
}

// DeleteGet handles GET /catalog/book/:id/delete.
func (h *Handler) DeleteGet(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		render.NotFound(c, "Book not found")
		return
	}

	book, instances, err := h.bookWithInstances(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			render.NotFound(c, "Book not found")
			return
		}
		render.ServerError(c, h.logger, err)
		return
	}

	c.HTML(http.StatusOK, "book_delete.tmpl", gin.H{
		"title":          book.Title,
		"book":           book,
		"book_instances": instances,
	})
}

// DeletePost handles POST /catalog/book/:id/delete. While any copy of the
// book exists the confirmation page is redisplayed and nothing is deleted.
func (h *Handler) DeletePost(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		render.NotFound(c, "Book not found")
		return
	}

	book, instances, err := h.bookWithInstances(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			render.NotFound(c, "Book not found")
			return
		}
		render.ServerError(c, h.logger, err)
		return
	}

	if len(instances) > 0 {
		c.HTML(http.StatusOK, "book_delete.tmpl", gin.H{
			"title":          "Delete Book",
			"book":           book,
			"book_instances": instances,
		})
		return
	}

	targetID, err := primitive.ObjectIDFromHex(c.PostForm("bookid"))
	if err == nil {
		if err := h.books.DeleteByID(c.Request.Context(), targetID); err != nil {
			render.ServerError(c, h.logger, err)
			return
		}
	}
	c.Redirect(http.StatusFound, "/catalog/books")
}

// UpdateGet handles GET /catalog/book/:id/update.
func (h *Handler) UpdateGet(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		render.NotFound(c, "Book not found")
		return
	}
	ctx := c.Request.Context()

	var (
		book    *catalog.Book
		authors []catalog.Author
		genres  []catalog.Genre
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		book, err = h.books.FindByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		authors, err = h.authors.All(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		genres, err = h.genres.All(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			render.NotFound(c, "Book not found")
			return
		}
		render.ServerError(c, h.logger, err)
		return
	}

	c.HTML(http.StatusOK, "book_form.tmpl", gin.H{
		"title":   "Update Book",
		"authors": authors,
		"genres":  markChecked(genres, book),
		"book":    book,
	})
}

// UpdatePost handles POST /catalog/book/:id/update. The stored document is
// replaced wholesale with the submitted fields.
func (h *Handler) UpdatePost(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		render.NotFound(c, "Book not found")
		return
	}
	ctx := c.Request.Context()

	form := parseForm(c)
	v := form.validate()

	book := form.model()
	book.ID = id
	if !v.Valid() {
		authors, genres, err := h.formChoices(ctx)
		if err != nil {
			render.ServerError(c, h.logger, err)
			return
		}
		c.HTML(http.StatusOK, "book_form.tmpl", gin.H{
			"title":   "Update Book",
			"authors": authors,
			"genres":  markChecked(genres, &book),
			"book":    book,
			"errors":  v.Errors,
		})
		return
	}

	if err := h.books.Replace(ctx, id, &book); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			render.NotFound(c, "Book not found")
			return
		}
		render.ServerError(c, h.logger, err)
		return
	}
	c.Redirect(http.StatusFound, book.URL())
}

// bookWithInstances loads a book and its copies in parallel.
func (h *Handler) bookWithInstances(ctx context.Context, id primitive.ObjectID) (*catalog.Book, []catalog.BookInstance, error) {
	var (
		book      *catalog.Book
		instances []catalog.BookInstance
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		book, err = h.books.FindByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		instances, err = h.instances.ByBook(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return book, instances, nil
}

// formChoices loads the author and genre lists the book form offers,
// in parallel.
func (h *Handler) formChoices(ctx context.Context) ([]catalog.Author, []catalog.Genre, error) {
	var (
		authors []catalog.Author
		genres  []catalog.Genre
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		authors, err = h.authors.All(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		genres, err = h.genres.All(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return authors, genres, nil
}

func markChecked(genres []catalog.Genre, book *catalog.Book) []genreOption {
	opts := make([]genreOption, 0, len(genres))
	for _, g := range genres {
		checked := book != nil && book.HasGenre(g.ID)
		opts = append(opts, genreOption{Genre: g, Checked: checked})
	}
	return opts
}
