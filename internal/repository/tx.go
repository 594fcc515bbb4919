package repository

import "context"

// TxManager runs a function inside one database transaction. Repositories
// pick the transaction up from the context, so service code composes
// multi-row writes (vehicle status + rental row, order + stock counter)
// without knowing about database handles.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error
}
