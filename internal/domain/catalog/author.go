package catalog

import (
	"math"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// secondsPerYear is the mean length of a year (365.2425 days) in seconds.
const secondsPerYear = 31556952

type Author struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	FirstName   string             `bson:"first_name"`
	FamilyName  string             `bson:"family_name"`
	DateOfBirth *time.Time         `bson:"date_of_birth,omitempty"`
	DateOfDeath *time.Time         `bson:"date_of_death,omitempty"`
}

// Name returns "family_name, first_name", or "" when either part is missing.
func (a Author) Name() string {
	if a.FirstName == "" || a.FamilyName == "" {
		return ""
	}
	return a.FamilyName + ", " + a.FirstName
}

// URL is the canonical detail-page path for this author.
func (a Author) URL() string {
	return "/catalog/author/" + a.ID.Hex()
}

func (a Author) DateOfBirthFormatted() string {
	return mediumDate(a.DateOfBirth)
}

func (a Author) DateOfDeathFormatted() string {
	return mediumDate(a.DateOfDeath)
}

// The ISO getters have no missing-date guard, unlike their formatted
// siblings; a nil date comes out as the zero time's ISO form.
func (a Author) DateOfBirthISO() string {
	return isoDate(a.DateOfBirth)
}

func (a Author) DateOfDeathISO() string {
	return isoDate(a.DateOfDeath)
}

// LifeSpan returns the author's lifetime in years rounded to one decimal.
// The second return value is false when either date is missing.
func (a Author) LifeSpan() (float64, bool) {
	if a.DateOfBirth == nil || a.DateOfDeath == nil {
		return 0, false
	}
	years := a.DateOfDeath.Sub(*a.DateOfBirth).Seconds() / secondsPerYear
	return math.Round(years*10) / 10, true
}

// LifeSpanFormatted is LifeSpan for the views: the rounded value as a
// string, or "" when undefined.
func (a Author) LifeSpanFormatted() string {
	years, ok := a.LifeSpan()
	if !ok {
		return ""
	}
	return strconv.FormatFloat(years, 'f', -1, 64)
}
