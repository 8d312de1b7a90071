// Package testutil provides shared helpers for tests that need a real
// MongoDB, plus fixtures and HTTP request helpers.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TestMongoEnv names the environment variable holding the URI of a
// MongoDB instance for store tests. When unset, store tests are skipped
// so the suite still passes on machines without a local Mongo.
const TestMongoEnv = "SCHOOLHUB_TEST_MONGO_URI"

// SetupTestDB connects to the test MongoDB and returns a database unique
// to this test. The database is dropped and the client disconnected via
// t.Cleanup. Skips the test when TestMongoEnv is not set.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv(TestMongoEnv)
	if uri == "" {
		t.Skipf("%s not set; skipping test that needs MongoDB", TestMongoEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connecting to test MongoDB: %v", err)
	}

	dbName := fmt.Sprintf("schoolhub_test_%s", uuid.New().String()[:8])
	db := client.Database(dbName)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	return db
}

// TestContext returns a context with a generous timeout for test
// database operations.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}
