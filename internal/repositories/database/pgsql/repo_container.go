package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/swisspay/swisspay_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgsql repositories against one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo: NewPgxAccountRepository(dbPool),
		LedgerRepo:  NewPgxLedgerRepository(dbPool),
		CardRepo:    NewPgxCardRepository(dbPool),
	}
}
