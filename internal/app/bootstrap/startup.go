// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"time"

	teacherstore "github.com/dalemusser/schoolhub/internal/app/store/teachers"
	"github.com/dalemusser/schoolhub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. It is the
// place to warm caches or perform any app-wide setup that depends on config
// and backends. SchoolHub uses it to ensure the bootstrap teacher exists so
// a fresh deployment has at least one identity that can manage announcements.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	logger.Info("schoolhub starting",
		zap.String("base_url", appCfg.BaseURL),
		zap.String("audit_log_admin", appCfg.AuditLogAdmin))

	if appCfg.BootstrapTeacher != "" {
		if err := ensureBootstrapTeacher(ctx, deps, appCfg.BootstrapTeacher, appCfg.BootstrapTeacherName, logger); err != nil {
			return err
		}
	}

	return nil
}

// ensureBootstrapTeacher creates the configured teacher if the directory
// does not already have them. An existing entry is left untouched.
func ensureBootstrapTeacher(ctx context.Context, deps DBDeps, username, displayName string, logger *zap.Logger) error {
	store := teacherstore.New(deps.SchoolHubMongoDatabase)

	_, err := store.Create(ctx, models.Teacher{
		Username:    username,
		DisplayName: displayName,
		CreatedAt:   time.Now().UTC(),
	})
	if errors.Is(err, teacherstore.ErrDuplicateUsername) {
		logger.Info("bootstrap teacher already present", zap.String("username", username))
		return nil
	}
	if err != nil {
		logger.Error("bootstrap teacher creation failed", zap.Error(err))
		return err
	}

	logger.Info("bootstrap teacher created", zap.String("username", username))
	return nil
}
