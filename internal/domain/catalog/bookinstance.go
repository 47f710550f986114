package catalog

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status is the loan state of a single physical copy.
type Status string

const (
	StatusAvailable   Status = "Available"
	StatusMaintenance Status = "Maintenance"
	StatusLoaned      Status = "Loaned"
	StatusReserved    Status = "Reserved"
)

var validStatuses = map[Status]bool{
	StatusAvailable:   true,
	StatusMaintenance: true,
	StatusLoaned:      true,
	StatusReserved:    true,
}

func IsValidStatus(s Status) bool {
	return validStatuses[s]
}

type BookInstance struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Book    primitive.ObjectID `bson:"book"`
	Imprint string             `bson:"imprint"`
	Status  Status             `bson:"status"`
	DueBack time.Time          `bson:"due_back"`
}

// URL is the canonical detail-page path for this copy.
func (bi BookInstance) URL() string {
	return "/catalog/bookinstance/" + bi.ID.Hex()
}

func (bi BookInstance) DueBackFormatted() string {
	return mediumDate(&bi.DueBack)
}

// DueBackYYYYMMDD renders due_back as an ISO date-only string.
func (bi BookInstance) DueBackYYYYMMDD() string {
	return isoDate(&bi.DueBack)
}
