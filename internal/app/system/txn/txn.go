// Package txn runs multi-document write sequences inside a MongoDB
// transaction when the deployment supports one (replica set or mongos).
// Standalone servers reject sessions/transactions; IsNotSupported lets
// callers detect that and fall back to sequential writes with an explicit
// compensating action.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// Run executes fn inside a causally-consistent session transaction.
// fn receives a session-bound context and must use it for every
// operation that should commit or abort together.
func Run(ctx context.Context, client *mongo.Client, fn func(ctx context.Context) error) error {
	session, err := client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	return err
}

// Server error codes indicating transactions are unavailable on this
// deployment (standalone mongod, old wire versions, DocumentDB).
var notSupportedCodes = map[int32]bool{
	20:  true, // IllegalOperation: "Transaction numbers are only allowed on a replica set member"
	51:  true, // IllegalOperation variants
	263: true, // OperationNotSupportedInTransaction
}

// IsNotSupported reports whether err indicates the server cannot run
// multi-document transactions at all, as opposed to a transaction that
// failed and could be retried.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) && notSupportedCodes[ce.Code] {
		return true
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "illegal operation") {
		return true
	}
	if strings.Contains(s, "transaction") &&
		(strings.Contains(s, "replica set") || strings.Contains(s, "session")) {
		return true
	}
	if strings.Contains(s, "session") && strings.Contains(s, "not supported") {
		return true
	}
	return false
}
