// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports, TLS,
// logging, CORS, body limits); AppConfig is where everything specific to
// TeacherHub lives. The struct is passed to most lifecycle hooks, so any
// configuration needed during startup, request handling, or shutdown
// belongs here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connections in the driver pool
	MongoMinPoolSize uint64 // Min connections kept warm in the pool

	// Teacher code generation policy: "random" mints 10-digit numeric
	// codes, "sequential" derives prefix+counter codes from the live
	// teacher count.
	TeacherCodePolicy string

	// Position code prefix for auto-generated position codes (e.g., "POS"
	// yields POS001, POS002, ...).
	PositionCodePrefix string

	// Base URL the service is reachable at, used in startup logging.
	BaseURL string
}
