// internal/domain/models/teacher.go
package models

import "time"

// Teacher is an authenticated-user record in the teacher directory.
// The username is the document key, so directory lookups are a plain
// _id fetch. This service only reads teachers; it never creates them
// outside of seeding and test fixtures.
type Teacher struct {
	Username    string    `bson:"_id" json:"username"`
	DisplayName string    `bson:"display_name" json:"display_name"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
