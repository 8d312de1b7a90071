// internal/app/store/teachers/teacherstore.go
package teacherstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/schoolhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrDuplicateUsername is returned when creating a teacher whose
// username is already taken.
var ErrDuplicateUsername = errors.New("a teacher with this username already exists")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("teachers")}
}

// Exists reports whether a teacher document with the given username
// exists. This is the whole authentication check for the API: presence
// in the directory.
func (s *Store) Exists(ctx context.Context, username string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"_id": username}).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, err
}

// GetByUsername loads a teacher by username. Returns mongo.ErrNoDocuments
// if not found.
func (s *Store) GetByUsername(ctx context.Context, username string) (*models.Teacher, error) {
	var t models.Teacher
	if err := s.c.FindOne(ctx, bson.M{"_id": username}).Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a new teacher record. Used by seeding and test
// fixtures; the API itself never writes to the directory.
func (s *Store) Create(ctx context.Context, t models.Teacher) (models.Teacher, error) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	if _, err := s.c.InsertOne(ctx, t); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Teacher{}, ErrDuplicateUsername
		}
		return models.Teacher{}, err
	}
	return t, nil
}
