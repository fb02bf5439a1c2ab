// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"

	"github.com/dalemusser/teacherhub/internal/app/system/codegen"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for TeacherHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, teacher_code_policy, etc.
//   - Environment variables: TEACHERHUB_MONGO_URI, TEACHERHUB_TEACHER_CODE_POLICY, etc.
//   - Command-line flags: --mongo_uri, --teacher_code_policy, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "teacher_hub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "teacher_code_policy", Default: "random", Desc: "Teacher code policy: 'random' or 'sequential'"},
	{Name: "position_code_prefix", Default: "POS", Desc: "Prefix for auto-generated position codes"},

	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL the service is reachable at"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, TEACHERHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "TEACHERHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		TeacherCodePolicy:  strings.ToLower(appValues.String("teacher_code_policy")),
		PositionCodePrefix: appValues.String("position_code_prefix"),

		BaseURL: appValues.String("base_url"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// TeacherHub validates the MongoDB URI format and the code policy to
// catch configuration errors before attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if !codegen.ValidPolicy(appCfg.TeacherCodePolicy) {
		return fmt.Errorf("teacher_code_policy must be %q or %q, got %q",
			codegen.PolicyRandom, codegen.PolicySequential, appCfg.TeacherCodePolicy)
	}

	if appCfg.PositionCodePrefix == "" {
		return fmt.Errorf("position_code_prefix must not be empty")
	}

	return nil
}
