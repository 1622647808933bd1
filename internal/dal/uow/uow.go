package uow

import (
	"context"
	"fmt"

	"github.com/corray333/backend-labs/admin/internal/dal/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
)

// Transactor runs a group of repository calls inside a single MongoDB
// transaction.
type Transactor struct {
	client *mongodb.Client
}

func NewTransactor(client *mongodb.Client) *Transactor {
	return &Transactor{client: client}
}

// WithinTransaction executes fn inside a transaction. The context passed to
// fn carries the session, so repository calls made with it join the
// transaction and commit or abort together.
func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := t.client.Mongo().StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	if err != nil {
		return fmt.Errorf("failed to execute transaction: %w", err)
	}

	return nil
}
