// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//   - Database connection timeouts
//
// AppConfig is where you put everything specific to YOUR application.
// Add fields here as the application grows; the struct is passed to
// most lifecycle hooks.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Audit logging configuration
	AuditLogAdmin string // Admin event logging: "all" (db+log), "db", "log", or "off"

	// Teacher directory bootstrap
	BootstrapTeacher     string // Username of a teacher ensured to exist on startup (blank disables)
	BootstrapTeacherName string // Display name for the bootstrap teacher

	// Base URL the service is reachable at (used in logs and by deploy tooling)
	BaseURL string // e.g., "https://announcements.example.edu" or "http://localhost:8080"
}
