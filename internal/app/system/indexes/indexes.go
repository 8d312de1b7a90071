// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	var problems []string

	if err := ensureAnnouncements(ctx, db, logger); err != nil {
		problems = append(problems, "announcements: "+err.Error())
	}
	if err := ensureAuditEvents(ctx, db, logger); err != nil {
		problems = append(problems, "audit_events: "+err.Error())
	}
	// teachers needs no secondary indexes: the username is the _id.

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// ensureAnnouncements backs the two read paths: the active-window query
// narrows on expiration_date, and the authenticated list sorts by
// created_at descending.
func ensureAnnouncements(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	return ensureIndexSet(ctx, db.Collection("announcements"), logger, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expiration_date", Value: 1}},
			Options: options.Index().SetName("expiration_date_1"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("created_at_-1"),
		},
	})
}

func ensureAuditEvents(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	return ensureIndexSet(ctx, db.Collection("audit_events"), logger, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("timestamp_-1"),
		},
		{
			Keys: bson.D{
				{Key: "actor", Value: 1},
				{Key: "timestamp", Value: -1},
			},
			Options: options.Index().SetName("actor_1_timestamp_-1"),
		},
		{
			Keys: bson.D{
				{Key: "category", Value: 1},
				{Key: "event_type", Value: 1},
				{Key: "timestamp", Value: -1},
			},
			Options: options.Index().SetName("category_1_event_type_1_timestamp_-1"),
		},
	})
}

// ensureIndexSet creates the desired indexes for one collection.
// CreateMany is idempotent when names and key patterns match what
// already exists; a same-keys index under a different name surfaces as
// an IndexOptionsConflict, which we report rather than force-drop.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, logger *zap.Logger, models []mongo.IndexModel) error {
	start := time.Now()

	names, err := coll.Indexes().CreateMany(ctx, models)
	if err != nil {
		logger.Error("ensuring indexes failed",
			zap.String("collection", coll.Name()),
			zap.Error(err))
		return err
	}

	logger.Info("indexes ensured",
		zap.String("collection", coll.Name()),
		zap.Strings("names", names),
		zap.String("took", time.Since(start).String()))
	return nil
}
