// internal/domain/models/announcement.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessageMaxLen is the maximum length of an announcement message.
const MessageMaxLen = 500

// Announcement is a school-wide message visible for a bounded window of
// calendar dates.
//
// StartDate and ExpirationDate are stored as "YYYY-MM-DD" strings, not
// time.Time. That format sorts lexicographically in chronological order,
// and the active-window queries compare the raw strings; keep it that way.
// An empty StartDate means "visible immediately".
type Announcement struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Message        string             `bson:"message" json:"message"`
	StartDate      string             `bson:"start_date,omitempty" json:"start_date,omitempty"`
	ExpirationDate string             `bson:"expiration_date" json:"expiration_date"`
	CreatedBy      string             `bson:"created_by" json:"created_by"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}
