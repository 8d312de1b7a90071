// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	announcementsfeature "github.com/dalemusser/schoolhub/internal/app/features/announcements"
	healthfeature "github.com/dalemusser/schoolhub/internal/app/features/health"
	auditstore "github.com/dalemusser/schoolhub/internal/app/store/audit"
	teacherstore "github.com/dalemusser/schoolhub/internal/app/store/teachers"
	"github.com/dalemusser/schoolhub/internal/app/system/auditlog"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// SchoolHub builds the stores over the Mongo database, wires the audit
// logger per config, and mounts the announcements and health feature
// routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.SchoolHubMongoDatabase

	teachers := teacherstore.New(db)
	auditLog := auditlog.New(auditstore.New(db), logger, auditlog.Config{Admin: appCfg.AuditLogAdmin})

	announcementsHandler := announcementsfeature.NewHandler(db, auditLog, logger)
	healthHandler := healthfeature.NewHandler(deps.SchoolHubMongoClient, logger)

	r := chi.NewRouter()

	r.Mount("/announcements", announcementsfeature.Routes(announcementsHandler, teachers, logger))
	r.Mount("/health", healthfeature.Routes(healthHandler))

	return r, nil
}
