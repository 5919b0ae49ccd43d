package repositories

import "context"

// TxFn runs with a context that carries the open transaction
type TxFn func(ctx context.Context) error

// TransactionManager runs a unit of work atomically. Repositories called with
// the context handed to fn participate in the same transaction; any error
// returned from fn rolls everything back.
type TransactionManager interface {
	ExecTx(ctx context.Context, fn TxFn) error
}
