package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Hotel-api/internal/domain/repository"
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool        *pgxpool.Pool
	timeout     time.Duration
	lockTimeout time.Duration
}

// TxOption configura el TxRunner.
type TxOption func(*TxRunner)

// WithTimeout límite total de cada transacción.
func WithTimeout(d time.Duration) TxOption {
	return func(r *TxRunner) { r.timeout = d }
}

// WithLockTimeout límite de espera por un lock de fila (SET LOCAL lock_timeout).
func WithLockTimeout(d time.Duration) TxOption {
	return func(r *TxRunner) { r.lockTimeout = d }
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool, opts ...TxOption) *TxRunner {
	r := &TxRunner{pool: pool}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewRepos repositorios sobre pool o tx.
func NewRepos(q Querier) repository.Repos {
	return repository.Repos{
		Rooms:       NewRoomRepository(q),
		Clients:     NewClientRepository(q),
		Assignments: NewAssignmentRepository(q),
		Transitions: NewRoomTransitionRepository(q),
	}
}

// Repos repositorios fuera de transacción.
func (r *TxRunner) Repos() repository.Repos {
	return NewRepos(r.pool)
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Timeouts, deadlocks y fallas de serialización se devuelven como domain.ErrTransient.
func (r *TxRunner) Run(ctx context.Context, fn func(repository.Repos) error) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return asTransient("begin transaction", fmt.Errorf("begin transaction: %w", err))
	}
	defer func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }()

	if r.lockTimeout > 0 {
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return asTransient("lock_timeout", fmt.Errorf("set lock_timeout: %w", err))
		}
	}

	if err := fn(NewRepos(tx)); err != nil {
		return asTransient("transaction", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return asTransient("commit", fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}
