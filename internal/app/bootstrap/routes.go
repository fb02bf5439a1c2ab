// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	apirootfeature "github.com/dalemusser/teacherhub/internal/app/features/apiroot"
	healthfeature "github.com/dalemusser/teacherhub/internal/app/features/health"
	positionsfeature "github.com/dalemusser/teacherhub/internal/app/features/positions"
	teachersfeature "github.com/dalemusser/teacherhub/internal/app/features/teachers"
	usersfeature "github.com/dalemusser/teacherhub/internal/app/features/users"
	"github.com/dalemusser/teacherhub/internal/app/system/requestid"
	"github.com/dalemusser/teacherhub/internal/app/system/webapi"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. TeacherHub mounts the JSON API feature
// routers and the health endpoint, with request-id and panic-recovery
// middleware applied to everything.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	r := chi.NewRouter()

	r.Use(requestid.Middleware(logger))
	r.Use(webapi.Recoverer(logger))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.TeacherHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// API index. Registered directly rather than mounted so unmatched
	// paths fall through to the JSON NotFound handler below.
	apirootHandler := apirootfeature.NewHandler()
	r.Get("/", apirootHandler.Serve)

	usersHandler := usersfeature.NewHandler(deps.TeacherHubMongoDatabase, logger)
	r.Mount("/api/users", usersfeature.Routes(usersHandler))

	teachersHandler := teachersfeature.NewHandler(
		deps.TeacherHubMongoDatabase,
		deps.TeacherHubMongoClient,
		appCfg.TeacherCodePolicy,
		logger,
	)
	r.Mount("/api/teachers", teachersfeature.Routes(teachersHandler))

	positionsHandler := positionsfeature.NewHandler(deps.TeacherHubMongoDatabase, appCfg.PositionCodePrefix, logger)
	r.Mount("/api/teacher-positions", positionsfeature.Routes(positionsHandler))

	r.NotFound(webapi.NotFoundHandler)

	return r, nil
}
