package genres

import (
	"strings"

	"github.com/gin-gonic/gin"

	"local-library/internal/domain/catalog"
	"local-library/internal/validator"
)

type genreForm struct {
	Name string
}

func parseForm(c *gin.Context) genreForm {
	return genreForm{Name: strings.TrimSpace(c.PostForm("name"))}
}

func (f genreForm) validate() *validator.Validator {
	v := validator.New()
	v.Check(validator.MinChars(f.Name, 3), "name", "Genre name must contain at least 3 characters")
	v.Check(validator.MaxChars(f.Name, 100), "name", "Genre name must be at most 100 characters")
	return v
}

func (f genreForm) model() catalog.Genre {
	return catalog.Genre{Name: f.Name}
}
