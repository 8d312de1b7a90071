// internal/app/features/announcements/handler.go
package announcements

import (
	"context"
	"time"

	announcementstore "github.com/dalemusser/schoolhub/internal/app/store/announcements"
	"github.com/dalemusser/schoolhub/internal/app/system/auditlog"
	"github.com/dalemusser/schoolhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Store is the announcement persistence surface the handlers need.
// *announcementstore.Store satisfies it; handler tests inject fakes.
type Store interface {
	GetActive(ctx context.Context, today string) ([]models.Announcement, error)
	GetAll(ctx context.Context) ([]models.Announcement, error)
	Create(ctx context.Context, a models.Announcement) (models.Announcement, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, upd announcementstore.Update) (*models.Announcement, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}

// Handler owns all Announcements handlers.
type Handler struct {
	Store Store
	Audit *auditlog.Logger
	Log   *zap.Logger

	// Now supplies the current time for the active-window check.
	// Overridable in tests; defaults to time.Now.
	Now func() time.Time
}

// NewHandler constructs an Announcements Handler backed by MongoDB.
func NewHandler(db *mongo.Database, auditLog *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Store: announcementstore.New(db),
		Audit: auditLog,
		Log:   logger,
		Now:   time.Now,
	}
}
