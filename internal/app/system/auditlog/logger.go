// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"

	"github.com/dalemusser/schoolhub/internal/app/store/audit"
	"go.uber.org/zap"
)

// Config holds audit logging configuration.
type Config struct {
	// Admin controls logging for announcement mutation events.
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Admin string
}

// Logger provides convenience methods for logging audit events.
// It logs to both MongoDB (via audit.Store) and structured logs (via zap).
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

// ClientIP extracts the client IP from the request.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.String("actor", event.Actor),
		zap.String("ip", event.IP),
	}
	if event.TargetID != "" {
		fields = append(fields, zap.String("target_id", event.TargetID))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	l.zapLog.Info("audit event", fields...)
}

// Log records an audit event based on configuration. If the logger is
// nil, this is a no-op (allows tests to use a nil audit logger). Audit
// writes are best-effort: a failed store write is logged and never
// fails the request that triggered it.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	setting := l.config.Admin
	if setting == "off" {
		return
	}

	if setting == "all" || setting == "log" || setting == "" {
		l.logToZap(event)
	}

	if (setting == "all" || setting == "db" || setting == "") && l.store != nil {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("audit event write failed",
				zap.Error(err),
				zap.String("event_type", event.EventType))
		}
	}
}

// AnnouncementEvent builds an admin event for an announcement mutation.
func AnnouncementEvent(r *http.Request, eventType, actor, targetID string) audit.Event {
	return audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: eventType,
		Actor:     actor,
		TargetID:  targetID,
		IP:        ClientIP(r),
		UserAgent: r.UserAgent(),
	}
}
