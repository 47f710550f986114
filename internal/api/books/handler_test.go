package books

import (
	"context"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"local-library/internal/domain/catalog"
	"local-library/internal/store"
)

type fakeBookStore struct {
	items []catalog.Book
}

func (f *fakeBookStore) All(ctx context.Context) ([]catalog.Book, error) {
	return f.items, nil
}

func (f *fakeBookStore) FindByID(ctx context.Context, id primitive.ObjectID) (*catalog.Book, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			b := f.items[i]
			return &b, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeBookStore) Insert(ctx context.Context, b *catalog.Book) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *b
	stored.ID = id
	f.items = append(f.items, stored)
	return id, nil
}

func (f *fakeBookStore) Replace(ctx context.Context, id primitive.ObjectID, b *catalog.Book) error {
	for i := range f.items {
		if f.items[i].ID == id {
			stored := *b
			stored.ID = id
			f.items[i] = stored
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeBookStore) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	kept := f.items[:0]
	for _, b := range f.items {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	f.items = kept
	return nil
}

type fakeAuthorFinder struct {
	items []catalog.Author
}

func (f *fakeAuthorFinder) All(ctx context.Context) ([]catalog.Author, error) {
	return f.items, nil
}

func (f *fakeAuthorFinder) FindByID(ctx context.Context, id primitive.ObjectID) (*catalog.Author, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			a := f.items[i]
			return &a, nil
		}
	}
	return nil, store.ErrNotFound
}

type fakeGenreFinder struct {
	items []catalog.Genre
}

func (f *fakeGenreFinder) All(ctx context.Context) ([]catalog.Genre, error) {
	return f.items, nil
}

func (f *fakeGenreFinder) FindByID(ctx context.Context, id primitive.ObjectID) (*catalog.Genre, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			g := f.items[i]
			return &g, nil
		}
	}
	return nil, store.ErrNotFound
}

type fakeInstanceFinder struct {
	items []catalog.BookInstance
}

func (f *fakeInstanceFinder) ByBook(ctx context.Context, id primitive.ObjectID) ([]catalog.BookInstance, error) {
	var out []catalog.BookInstance
	for _, bi := range f.items {
		if bi.Book == id {
			out = append(out, bi)
		}
	}
	return out, nil
}

type fixtures struct {
	books     *fakeBookStore
	authors   *fakeAuthorFinder
	genres    *fakeGenreFinder
	instances *fakeInstanceFinder
}

func newTestRouter(t *testing.T, fx fixtures) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()

	views := map[string]string{
		"book_list.tmpl":   `{{range .book_list}}{{.Book.Title}} ({{.AuthorName}});{{end}}`,
		"book_detail.tmpl": `{{.book.Title}}|{{with .author}}{{.Name}}{{end}}|genres={{len .genres}}|copies={{len .book_instances}}`,
		"book_form.tmpl":   `{{.title}}|{{with .book}}{{.Title}},{{.Summary}},{{.ISBN}}{{end}}|{{range .genres}}{{.Genre.ID.Hex}}={{.Checked}};{{end}}|{{range $f, $m := .errors}}{{$f}}={{$m}};{{end}}`,
		"book_delete.tmpl": `{{.title}}|blocking={{len .book_instances}}`,
		"error.tmpl":       `{{.message}}`,
	}
	tmpl := template.New("")
	for name, body := range views {
		template.Must(tmpl.New(name).Parse(body))
	}
	r.SetHTMLTemplate(tmpl)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(logger, fx.books, fx.authors, fx.genres, fx.instances)

	r.GET("/catalog/books", h.List)
	r.GET("/catalog/book/create", h.CreateGet)
	r.POST("/catalog/book/create", h.CreatePost)
	r.GET("/catalog/book/:id", h.Detail)
	r.GET("/catalog/book/:id/delete", h.DeleteGet)
	r.POST("/catalog/book/:id/delete", h.DeletePost)
	r.GET("/catalog/book/:id/update", h.UpdateGet)
	r.POST("/catalog/book/:id/update", h.UpdatePost)
	return r
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateBook(t *testing.T) {
	author := catalog.Author{ID: primitive.NewObjectID(), FirstName: "Ursula", FamilyName: "LeGuin"}
	genre := catalog.Genre{ID: primitive.NewObjectID(), Name: "Fantasy"}
	fx := fixtures{
		books:     &fakeBookStore{},
		authors:   &fakeAuthorFinder{items: []catalog.Author{author}},
		genres:    &fakeGenreFinder{items: []catalog.Genre{genre}},
		instances: &fakeInstanceFinder{},
	}
	r := newTestRouter(t, fx)

	w := postForm(r, "/catalog/book/create", url.Values{
		"title":   {"A Wizard of Earthsea"},
		"author":  {author.ID.Hex()},
		"summary": {"Ged's schooling as a wizard."},
		"isbn":    {"9780547773742"},
		"genre":   {genre.ID.Hex()},
	})

	require.Equal(t, http.StatusFound, w.Code)
	require.Len(t, fx.books.items, 1)
	b := fx.books.items[0]
	assert.Equal(t, "A Wizard of Earthsea", b.Title)
	assert.Equal(t, author.ID, b.Author)
	assert.Equal(t, []primitive.ObjectID{genre.ID}, b.Genre)
	assert.Equal(t, b.URL(), w.Header().Get("Location"))
}

func TestCreateBookValidationFailure(t *testing.T) {
	author := catalog.Author{ID: primitive.NewObjectID(), FirstName: "Ursula", FamilyName: "LeGuin"}
	genre := catalog.Genre{ID: primitive.NewObjectID(), Name: "Fantasy"}
	fx := fixtures{
		books:     &fakeBookStore{},
		authors:   &fakeAuthorFinder{items: []catalog.Author{author}},
		genres:    &fakeGenreFinder{items: []catalog.Genre{genre}},
		instances: &fakeInstanceFinder{},
	}
	r := newTestRouter(t, fx)

	w := postForm(r, "/catalog/book/create", url.Values{
		"title":   {""},
		"author":  {author.ID.Hex()},
		"summary": {"Ged's schooling as a wizard."},
		"isbn":    {"9780547773742"},
		"genre":   {genre.ID.Hex()},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, fx.books.items)
	body := w.Body.String()
	assert.Contains(t, body, "title=Title must not be empty.")
	// The submitted values come back, with the chosen genre still checked.
	assert.Contains(t, body, "Ged's schooling as a wizard.")
	assert.Contains(t, body, "9780547773742")
	assert.Contains(t, body, genre.ID.Hex()+"=true")
}

func TestCreateBookWithoutGenres(t *testing.T) {
	author := catalog.Author{ID: primitive.NewObjectID(), FirstName: "Ursula", FamilyName: "LeGuin"}
	fx := fixtures{
		books:     &fakeBookStore{},
		authors:   &fakeAuthorFinder{items: []catalog.Author{author}},
		genres:    &fakeGenreFinder{},
		instances: &fakeInstanceFinder{},
	}
	r := newTestRouter(t, fx)

	w := postForm(r, "/catalog/book/create", url.Values{
		"title":   {"A Wizard of Earthsea"},
		"author":  {author.ID.Hex()},
		"summary": {"Ged's schooling as a wizard."},
		"isbn":    {"9780547773742"},
	})

	require.Equal(t, http.StatusFound, w.Code)
	require.Len(t, fx.books.items, 1)
	// An omitted genre field stores an empty list, never a nil one.
	assert.NotNil(t, fx.books.items[0].Genre)
	assert.Empty(t, fx.books.items[0].Genre)
}

func TestBookDetailJoinsReferences(t *testing.T) {
	author := catalog.Author{ID: primitive.NewObjectID(), FirstName: "Ursula", FamilyName: "LeGuin"}
	genre := catalog.Genre{ID: primitive.NewObjectID(), Name: "Fantasy"}
	book := catalog.Book{
		ID:     primitive.NewObjectID(),
		Title:  "A Wizard of Earthsea",
		Author: author.ID,
		Genre:  []primitive.ObjectID{genre.ID},
	}
	fx := fixtures{
		books:   &fakeBookStore{items: []catalog.Book{book}},
		authors: &fakeAuthorFinder{items: []catalog.Author{author}},
		genres:  &fakeGenreFinder{items: []catalog.Genre{genre}},
		instances: &fakeInstanceFinder{items: []catalog.BookInstance{
			{ID: primitive.NewObjectID(), Book: book.ID, Status: catalog.StatusAvailable},
		}},
	}
	r := newTestRouter(t, fx)

	w := get(r, book.URL())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "A Wizard of Earthsea|LeGuin, Ursula|genres=1|copies=1", w.Body.String())
}

func TestDeleteBookBlockedByInstances(t *testing.T) {
	book := catalog.Book{ID: primitive.NewObjectID(), Title: "A Wizard of Earthsea"}
	fx := fixtures{
		books:   &fakeBookStore{items: []catalog.Book{book}},
		authors: &fakeAuthorFinder{},
		genres:  &fakeGenreFinder{},
		instances: &fakeInstanceFinder{items: []catalog.BookInstance{
			{ID: primitive.NewObjectID(), Book: book.ID, Status: catalog.StatusLoaned},
		}},
	}
	r := newTestRouter(t, fx)

	w := postForm(r, "/catalog/book/"+book.ID.Hex()+"/delete", url.Values{
		"bookid": {book.ID.Hex()},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "blocking=1")
	assert.Len(t, fx.books.items, 1, "store must be unchanged")
}

func TestDeleteBookWithoutInstances(t *testing.T) {
	book := catalog.Book{ID: primitive.NewObjectID(), Title: "A Wizard of Earthsea"}
	fx := fixtures{
		books:     &fakeBookStore{items: []catalog.Book{book}},
		authors:   &fakeAuthorFinder{},
		genres:    &fakeGenreFinder{},
		instances: &fakeInstanceFinder{},
	}
	r := newTestRouter(t, fx)

	w := postForm(r, "/catalog/book/"+book.ID.Hex()+"/delete", url.Values{
		"bookid": {book.ID.Hex()},
	})

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/catalog/books", w.Header().Get("Location"))
	assert.Empty(t, fx.books.items)
}

func TestUpdateBookReplacesDocument(t *testing.T) {
	oldAuthor := catalog.Author{ID: primitive.NewObjectID(), FirstName: "Ursula", FamilyName: "LeGuin"}
	newAuthor := catalog.Author{ID: primitive.NewObjectID(), FirstName: "Jane", FamilyName: "Austen"}
	genre := catalog.Genre{ID: primitive.NewObjectID(), Name: "Fantasy"}
	book := catalog.Book{
		ID:      primitive.NewObjectID(),
		Title:   "A Wizard of Earthsea",
		Author:  oldAuthor.ID,
		Summary: "Ged's schooling as a wizard.",
		ISBN:    "9780547773742",
		Genre:   []primitive.ObjectID{genre.ID},
	}
	fx := fixtures{
		books:     &fakeBookStore{items: []catalog.Book{book}},
		authors:   &fakeAuthorFinder{items: []catalog.Author{oldAuthor, newAuthor}},
		genres:    &fakeGenreFinder{items: []catalog.Genre{genre}},
		instances: &fakeInstanceFinder{},
	}
	r := newTestRouter(t, fx)

	// The submitted fields replace the stored document wholesale: the genre
	// field is omitted, so the stored genre list is cleared.
	w := postForm(r, "/catalog/book/"+book.ID.Hex()+"/update", url.Values{
		"title":   {"Emma"},
		"author":  {newAuthor.ID.Hex()},
		"summary": {"A comedy of manners."},
		"isbn":    {"9780141439587"},
	})

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/catalog/book/"+book.ID.Hex(), w.Header().Get("Location"))

	got := fx.books.items[0]
	assert.Equal(t, book.ID, got.ID)
	assert.Equal(t, "Emma", got.Title)
	assert.Equal(t, newAuthor.ID, got.Author)
	assert.Equal(t, "A comedy of manners.", got.Summary)
	assert.Empty(t, got.Genre)
}

func TestBookDetailNotFound(t *testing.T) {
	fx := fixtures{
		books:     &fakeBookStore{},
		authors:   &fakeAuthorFinder{},
		genres:    &fakeGenreFinder{},
		instances: &fakeInstanceFinder{},
	}
	r := newTestRouter(t, fx)

	w := get(r, "/catalog/book/"+primitive.NewObjectID().Hex())
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Book not found")
}
