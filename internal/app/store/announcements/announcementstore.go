// internal/app/store/announcements/announcementstore.go
package announcementstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/schoolhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no announcement matches the given ID.
var ErrNotFound = errors.New("announcement not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("announcements")}
}

// GetActive returns announcements whose visibility window contains today
// ("YYYY-MM-DD"). The window is inclusive on both ends: an announcement
// is still active on its expiration date.
//
// The query narrows on expiration_date >= today; the start-date check is
// applied here because start_date is optional and an absent field means
// "visible immediately". Date strings compare lexicographically in
// chronological order, both here and in the $gte below.
func (s *Store) GetActive(ctx context.Context, today string) ([]models.Announcement, error) {
	cur, err := s.c.Find(ctx, bson.M{"expiration_date": bson.M{"$gte": today}})
	if err != nil {
		return nil, err
	}

	var candidates []models.Announcement
	if err := cur.All(ctx, &candidates); err != nil {
		return nil, err
	}

	active := make([]models.Announcement, 0, len(candidates))
	for _, a := range candidates {
		if a.StartDate == "" || a.StartDate <= today {
			active = append(active, a)
		}
	}
	return active, nil
}

// GetAll returns every announcement, newest first.
func (s *Store) GetAll(ctx context.Context) ([]models.Announcement, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	var out []models.Announcement
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID loads a single announcement. Returns ErrNotFound if no
// document matches.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Announcement, error) {
	var a models.Announcement
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Create inserts a new announcement, assigning its ID and creation time.
// CreatedBy and the date fields must already be set by the caller.
func (s *Store) Create(ctx context.Context, a models.Announcement) (models.Announcement, error) {
	a.ID = primitive.NewObjectID()
	a.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.Announcement{}, err
	}
	return a, nil
}

// Update holds the mutable fields of an announcement. ID, CreatedBy, and
// CreatedAt never change after creation.
type Update struct {
	Message        string
	StartDate      string
	ExpirationDate string
}

// UpdateByID overwrites the mutable fields in place and returns the
// updated document. An empty StartDate clears any stored start date,
// making the announcement immediately visible.
func (s *Store) UpdateByID(ctx context.Context, id primitive.ObjectID, upd Update) (*models.Announcement, error) {
	set := bson.M{
		"message":         upd.Message,
		"expiration_date": upd.ExpirationDate,
	}
	change := bson.M{"$set": set}
	if upd.StartDate != "" {
		set["start_date"] = upd.StartDate
	} else {
		change["$unset"] = bson.M{"start_date": ""}
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, change)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}

	return s.GetByID(ctx, id)
}

// DeleteByID permanently removes an announcement. Returns ErrNotFound
// when nothing was deleted, so a second delete of the same ID fails.
func (s *Store) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
