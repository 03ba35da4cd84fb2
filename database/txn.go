package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// TxnRunner executes a function inside a single transactional boundary. The
// rental lifecycle engine runs each multi-document transition through one so a
// failure partway cannot leave rental, vehicle, customer and payment documents
// disagreeing.
type TxnRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// MongoTxnRunner runs the function inside a MongoDB session transaction.
// Repository methods called with the session context participate in it.
type MongoTxnRunner struct{}

func (MongoTxnRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	sess, err := MongoClient.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return err
	}
	return nil
}
