// Package teachers implements the /api/teachers endpoints, including the
// orchestrated creation workflow: cross-entity validation, code
// generation, the write, and the joined read-back.
package teachers

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Sequential-policy settings for teacher codes. The random policy mints
// 10-digit numeric strings instead; config teacher_code_policy selects.
const (
	codePrefix = "TCH"
	codeWidth  = 4
)

// Handler is the feature-level entry point for Teachers.
type Handler struct {
	DB         *mongo.Database
	Client     *mongo.Client // session transactions for the paired create
	CodePolicy string        // codegen.PolicyRandom | codegen.PolicySequential
	Log        *zap.Logger
}

// NewHandler constructs a Teachers handler. codePolicy comes from config
// and is validated at startup.
func NewHandler(db *mongo.Database, client *mongo.Client, codePolicy string, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Client:     client,
		CodePolicy: codePolicy,
		Log:        logger,
	}
}
