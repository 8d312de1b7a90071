package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/schoolhub/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// UniqueUsername returns a username that will not collide across tests.
func UniqueUsername(prefix string) string {
	return prefix + "-" + uuid.New().String()[:8]
}

// CreateTeacher creates a teacher directory record with the given
// username and returns it.
func (f *Fixtures) CreateTeacher(ctx context.Context, username, displayName string) models.Teacher {
	f.t.Helper()

	teacher := models.Teacher{
		Username:    username,
		DisplayName: displayName,
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := f.db.Collection("teachers").InsertOne(ctx, teacher); err != nil {
		f.t.Fatalf("failed to create test teacher: %v", err)
	}
	return teacher
}

// CreateAnnouncement inserts an announcement with the given visibility
// window. Pass startDate == "" for an announcement with no start date.
func (f *Fixtures) CreateAnnouncement(ctx context.Context, message, startDate, expirationDate, createdBy string) models.Announcement {
	f.t.Helper()

	ann := models.Announcement{
		ID:             primitive.NewObjectID(),
		Message:        message,
		StartDate:      startDate,
		ExpirationDate: expirationDate,
		CreatedBy:      createdBy,
		CreatedAt:      time.Now().UTC(),
	}

	if _, err := f.db.Collection("announcements").InsertOne(ctx, ann); err != nil {
		f.t.Fatalf("failed to create test announcement: %v", err)
	}
	return ann
}
