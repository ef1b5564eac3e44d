package pgsql

import (
	portsrepo "github.com/contalibre/contalibre_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider bundles the PostgreSQL repositories for the service
// container.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		BookRepo:    NewBookRepository(pool),
		AccountRepo: NewAccountRepository(pool),
		EntryRepo:   NewEntryRepository(pool),
	}
}
