package repositories

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager runs a group of repository calls atomically.
// Either every statement inside fn commits or none does.
type TransactionManager interface {
	ExecTx(ctx context.Context, fn TxFn) error
}
