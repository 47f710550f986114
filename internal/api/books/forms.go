package books

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"local-library/internal/domain/catalog"
	"local-library/internal/validator"
)

type bookForm struct {
	Title   string
	Author  string
	Summary string
	ISBN    string
	Genre   []string
}

// parseForm reads the submitted fields. PostFormArray already normalizes a
// single genre value or a sequence of them into one slice.
func parseForm(c *gin.Context) bookForm {
	return bookForm{
		Title:   strings.TrimSpace(c.PostForm("title")),
		Author:  strings.TrimSpace(c.PostForm("author")),
		Summary: strings.TrimSpace(c.PostForm("summary")),
		ISBN:    strings.TrimSpace(c.PostForm("isbn")),
		Genre:   c.PostFormArray("genre"),
	}
}

func (f bookForm) validate() *validator.Validator {
	v := validator.New()
	v.Check(validator.NotBlank(f.Title), "title", "Title must not be empty.")
	v.Check(validator.NotBlank(f.Author), "author", "Author must not be empty.")
	v.Check(validator.NotBlank(f.Summary), "summary", "Summary must not be empty.")
	v.Check(validator.NotBlank(f.ISBN), "isbn", "ISBN must not be empty")
	return v
}

// model builds the unsaved entity. The author reference is trusted from the
// form and not resolved here; malformed ids come out as the nil ObjectID.
// Genre references are deduplicated.
func (f bookForm) model() catalog.Book {
	b := catalog.Book{
		Title:   f.Title,
		Summary: f.Summary,
		ISBN:    f.ISBN,
		Genre:   []primitive.ObjectID{},
	}
	if id, err := primitive.ObjectIDFromHex(f.Author); err == nil {
		b.Author = id
	}
	seen := make(map[primitive.ObjectID]bool)
	for _, raw := range f.Genre {
		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
		if err != nil || seen[id] {
			continue
		}
		seen[id] = true
		b.Genre = append(b.Genre, id)
	}
	return b
}
