// Package positions implements the /api/teacher-positions endpoints.
//
// Position codes may be supplied by the client or minted by the
// sequential generator (prefix + zero-padded counter over the live
// count) when omitted.
package positions

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Code generation settings for auto-assigned position codes.
const codeWidth = 3

// Handler is the feature-level entry point for Teacher Positions.
type Handler struct {
	DB         *mongo.Database
	CodePrefix string
	Log        *zap.Logger
}

// NewHandler constructs a Positions handler. codePrefix is the prefix
// for generated codes (config position_code_prefix, default "POS").
func NewHandler(db *mongo.Database, codePrefix string, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		CodePrefix: codePrefix,
		Log:        logger,
	}
}
