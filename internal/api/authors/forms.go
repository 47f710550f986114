package authors

import (
	"strings"

	"github.com/gin-gonic/gin"

	"local-library/internal/domain/catalog"
	"local-library/internal/validator"
)

type authorForm struct {
	FirstName   string
	FamilyName  string
	DateOfBirth string
	DateOfDeath string
}

func parseForm(c *gin.Context) authorForm {
	return authorForm{
		FirstName:   strings.TrimSpace(c.PostForm("first_name")),
		FamilyName:  strings.TrimSpace(c.PostForm("family_name")),
		DateOfBirth: strings.TrimSpace(c.PostForm("date_of_birth")),
		DateOfDeath: strings.TrimSpace(c.PostForm("date_of_death")),
	}
}

// validate applies the create-form rules. Every rule runs; the first failure
// per field is the one reported.
func (f authorForm) validate() *validator.Validator {
	v := validator.New()

	v.Check(validator.NotBlank(f.FirstName), "first_name", "First name must be specified.")
	v.Check(validator.Matches(f.FirstName, validator.AlphanumericRX), "first_name", "First name has non-alphanumeric characters.")
	v.Check(validator.MaxChars(f.FirstName, 100), "first_name", "First name must be at most 100 characters.")

	v.Check(validator.NotBlank(f.FamilyName), "family_name", "Family name must be specified.")
	v.Check(validator.Matches(f.FamilyName, validator.AlphanumericRX), "family_name", "Family name has non-alphanumeric characters.")
	v.Check(validator.MaxChars(f.FamilyName, 100), "family_name", "Family name must be at most 100 characters.")

	f.checkDates(v)
	return v
}

// validateForUpdate applies the update-form rules, which require all four
// fields to be present.
func (f authorForm) validateForUpdate() *validator.Validator {
	v := validator.New()
	v.Check(validator.NotBlank(f.FirstName), "first_name", "First name must not be empty.")
	v.Check(validator.NotBlank(f.FamilyName), "family_name", "Family name must not be empty.")
	v.Check(validator.NotBlank(f.DateOfBirth), "date_of_birth", "Date of birth must not be empty.")
	v.Check(validator.NotBlank(f.DateOfDeath), "date_of_death", "date of death must not be empty")
	f.checkDates(v)
	return v
}

func (f authorForm) checkDates(v *validator.Validator) {
	if f.DateOfBirth != "" {
		if _, ok := validator.ISODate(f.DateOfBirth); !ok {
			v.AddError("date_of_birth", "Invalid date of birth")
		}
	}
	if f.DateOfDeath != "" {
		if _, ok := validator.ISODate(f.DateOfDeath); !ok {
			v.AddError("date_of_death", "Invalid date of death")
		}
	}
}

// model builds the unsaved entity from the submitted values. Unparseable
// dates stay unset.
func (f authorForm) model() catalog.Author {
	a := catalog.Author{
		FirstName:  f.FirstName,
		FamilyName: f.FamilyName,
	}
	if t, ok := validator.ISODate(f.DateOfBirth); ok {
		a.DateOfBirth = &t
	}
	if t, ok := validator.ISODate(f.DateOfDeath); ok {
		a.DateOfDeath = &t
	}
	return a
}
