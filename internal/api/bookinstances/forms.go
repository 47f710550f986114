package bookinstances

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"local-library/internal/domain/catalog"
	"local-library/internal/validator"
)

type instanceForm struct {
	Book    string
	Imprint string
	Status  string
	DueBack string
}

func parseForm(c *gin.Context) instanceForm {
	return instanceForm{
		Book:    strings.TrimSpace(c.PostForm("book")),
		Imprint: strings.TrimSpace(c.PostForm("imprint")),
		Status:  strings.TrimSpace(c.PostForm("status")),
		DueBack: strings.TrimSpace(c.PostForm("due_back")),
	}
}

func (f instanceForm) validate() *validator.Validator {
	v := validator.New()
	v.Check(validator.NotBlank(f.Book), "book", "Book must be specified")
	v.Check(validator.NotBlank(f.Imprint), "imprint", "Imprint must be specified")
	if f.Status != "" {
		v.Check(catalog.IsValidStatus(catalog.Status(f.Status)), "status", "Invalid status")
	}
	if f.DueBack != "" {
		if _, ok := validator.ISODate(f.DueBack); !ok {
			v.AddError("due_back", "Invalid date")
		}
	}
	return v
}

// model builds the unsaved entity. An omitted status defaults to Maintenance
// and an omitted due-back date defaults to the creation time.
func (f instanceForm) model() catalog.BookInstance {
	bi := catalog.BookInstance{
		Imprint: f.Imprint,
		Status:  catalog.StatusMaintenance,
		DueBack: time.Now(),
	}
	if id, err := primitive.ObjectIDFromHex(f.Book); err == nil {
		bi.Book = id
	}
	if f.Status != "" {
		bi.Status = catalog.Status(f.Status)
	}
	if t, ok := validator.ISODate(f.DueBack); ok {
		bi.DueBack = t
	}
	return bi
}
