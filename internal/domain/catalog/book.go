// Package catalog holds the four persisted entity kinds and their derived,
// never-stored values (names, URLs, formatted dates). Derived values are
// plain methods so they always reflect the stored fields.
package catalog

import "go.mongodb.org/mongo-driver/bson/primitive"

type Book struct {
	ID      primitive.ObjectID   `bson:"_id,omitempty"`
	Title   string               `bson:"title"`
	Author  primitive.ObjectID   `bson:"author"`
	Summary string               `bson:"summary"`
	ISBN    string               `bson:"isbn"`
	Genre   []primitive.ObjectID `bson:"genre"`
}

// URL is the canonical detail-page path for this book.
func (b Book) URL() string {
	return "/catalog/book/" + b.ID.Hex()
}

// HasGenre reports whether id is among the book's genre references.
func (b Book) HasGenre(id primitive.ObjectID) bool {
	for _, g := range b.Genre {
		if g == id {
			return true
		}
	}
	return false
}
