package catalog

import "go.mongodb.org/mongo-driver/bson/primitive"

type Genre struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

// URL is the canonical detail-page path for this genre.
func (g Genre) URL() string {
	return "/catalog/genre/" + g.ID.Hex()
}
