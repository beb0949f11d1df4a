package repository

import "context"

// TxManager runs a function within a database transaction. Repository
// calls made with the context passed to fn join the same transaction;
// returning an error rolls everything back.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
