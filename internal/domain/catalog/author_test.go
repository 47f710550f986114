package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestAuthorName(t *testing.T) {
	tests := []struct {
		name   string
		author Author
		want   string
	}{
		{"both parts", Author{FirstName: "Jane", FamilyName: "Austen"}, "Austen, Jane"},
		{"missing first name", Author{FamilyName: "Austen"}, ""},
		{"missing family name", Author{FirstName: "Jane"}, ""},
		{"empty", Author{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.author.Name())
		})
	}
}

func TestAuthorURL(t *testing.T) {
	id, err := primitive.ObjectIDFromHex("65b3c1f2e4a0d9b8c7a61234")
	assert.NoError(t, err)
	a := Author{ID: id}
	assert.Equal(t, "/catalog/author/65b3c1f2e4a0d9b8c7a61234", a.URL())
}

func TestAuthorDatesFormatted(t *testing.T) {
	a := Author{
		FirstName:   "Jane",
		FamilyName:  "Austen",
		DateOfBirth: date(1775, time.December, 16),
		DateOfDeath: date(1817, time.July, 18),
	}
	assert.Equal(t, "Dec 16, 1775", a.DateOfBirthFormatted())
	assert.Equal(t, "Jul 18, 1817", a.DateOfDeathFormatted())
	assert.Equal(t, "1775-12-16", a.DateOfBirthISO())
	assert.Equal(t, "1817-07-18", a.DateOfDeathISO())
}

func TestAuthorDatesMissing(t *testing.T) {
	a := Author{FirstName: "Jane", FamilyName: "Austen"}

	assert.Equal(t, "", a.DateOfBirthFormatted())
	assert.Equal(t, "", a.DateOfDeathFormatted())

	// The ISO getters have no missing-date guard and render the zero time.
	assert.Equal(t, "0001-01-01", a.DateOfBirthISO())
	assert.Equal(t, "0001-01-01", a.DateOfDeathISO())
}

func TestAuthorLifeSpan(t *testing.T) {
	birth := date(1775, time.December, 16)
	death := date(1817, time.July, 18)

	a := Author{DateOfBirth: birth, DateOfDeath: death}
	years, ok := a.LifeSpan()
	assert.True(t, ok)

	// Lifetime in seconds divided by the mean seconds-per-year, to 1 decimal.
	want := death.Sub(*birth).Seconds() / 31556952
	assert.InDelta(t, want, years, 0.05)
	assert.Equal(t, 41.6, years)
}

func TestAuthorLifeSpanUndefined(t *testing.T) {
	for _, a := range []Author{
		{},
		{DateOfBirth: date(1775, time.December, 16)},
		{DateOfDeath: date(1817, time.July, 18)},
	} {
		_, ok := a.LifeSpan()
		assert.False(t, ok)
		assert.Equal(t, "", a.LifeSpanFormatted())
	}
}

func TestAuthorLifeSpanFormatted(t *testing.T) {
	a := Author{
		DateOfBirth: date(1775, time.December, 16),
		DateOfDeath: date(1817, time.July, 18),
	}
	assert.Equal(t, "41.6", a.LifeSpanFormatted())
}
