// Package indexes declares the MongoDB indexes TeacherHub relies on and
// creates them at startup.
//
// Uniqueness rules apply only among non-deleted documents, so the unique
// indexes are partial on {is_deleted: false}. Soft-deleting a record
// frees its email/identity/code for reuse while the document itself
// stays in the collection.
//
// The partial unique index on teachers.user_id is the storage-level
// backstop for the "one live teacher per user" rule: two concurrent
// creates can both pass the read-side check, but only one insert wins.
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EnsureAll creates every index, aggregating problems so startup can
// fail fast with all of them visible. Each ensure call is idempotent.
func EnsureAll(ctx context.Context, db *mongo.Database, log *zap.Logger) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureTeachers(ctx, db); err != nil {
		problems = append(problems, "teachers: "+err.Error())
	}
	if err := ensurePositions(ctx, db); err != nil {
		problems = append(problems, "teacher_positions: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	if log != nil {
		log.Info("indexes ensured",
			zap.Strings("collections", []string{"users", "teachers", "teacher_positions"}))
	}
	return nil
}

// notDeleted is the partial filter scoping unique indexes to live documents.
var notDeleted = bson.M{"is_deleted": false}

func uniqueLive(keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{
		Keys: keys,
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(notDeleted),
	}
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return createAll(ctx, db.Collection("users"), []mongo.IndexModel{
		uniqueLive(bson.D{{Key: "email", Value: 1}}),
		uniqueLive(bson.D{{Key: "identity", Value: 1}}),
		{Keys: bson.D{{Key: "role", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
}

func ensureTeachers(ctx context.Context, db *mongo.Database) error {
	return createAll(ctx, db.Collection("teachers"), []mongo.IndexModel{
		uniqueLive(bson.D{{Key: "code", Value: 1}}),
		uniqueLive(bson.D{{Key: "user_id", Value: 1}}),
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
}

func ensurePositions(ctx context.Context, db *mongo.Database) error {
	return createAll(ctx, db.Collection("teacher_positions"), []mongo.IndexModel{
		uniqueLive(bson.D{{Key: "code", Value: 1}}),
		uniqueLive(bson.D{{Key: "name_ci", Value: 1}}),
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
}

func createAll(ctx context.Context, c *mongo.Collection, models []mongo.IndexModel) error {
	for _, m := range models {
		if _, err := c.Indexes().CreateOne(ctx, m); err != nil {
			// An index with the same keys under a different name or with
			// different options already exists; leave it in place.
			if isOptionsConflict(err) {
				continue
			}
			return err
		}
	}
	return nil
}

func isOptionsConflict(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "IndexOptionsConflict") ||
		strings.Contains(s, "IndexKeySpecsConflict")
}
