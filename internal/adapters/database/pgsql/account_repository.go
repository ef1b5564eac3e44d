package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/contalibre/contalibre_backend/internal/apperrors"
	"github.com/contalibre/contalibre_backend/internal/core/domain"
	portsrepo "github.com/contalibre/contalibre_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new repository for chart-of-accounts data.
func NewAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &accountRepository{pool: pool}
}

const accountColumns = `account_id, book_id, code, name, kind, normal_side, is_header, parent_account_id, statement_group, is_contra, description, is_active, created_at, created_by, last_updated_at, last_updated_by`

const insertAccountQuery = `
	INSERT INTO accounts (account_id, book_id, code, name, kind, normal_side, is_header, parent_account_id, statement_group, is_contra, description, is_active, created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
`

func accountArgs(account domain.Account) []any {
	// NULL rather than empty string keeps the self-referencing FK honest.
	var parentID *string
	if account.ParentAccountID != "" {
		parentID = &account.ParentAccountID
	}
	return []any{
		account.AccountID,
		account.BookID,
		account.Code,
		account.Name,
		account.Kind,
		account.NormalSide,
		account.IsHeader,
		parentID,
		account.StatementGroup,
		account.IsContra,
		account.Description,
		account.IsActive,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	}
}

func scanAccount(row pgx.Row) (domain.Account, error) {
	var acc domain.Account
	var parentID *string
	err := row.Scan(
		&acc.AccountID,
		&acc.BookID,
		&acc.Code,
		&acc.Name,
		&acc.Kind,
		&acc.NormalSide,
		&acc.IsHeader,
		&parentID,
		&acc.StatementGroup,
		&acc.IsContra,
		&acc.Description,
		&acc.IsActive,
		&acc.CreatedAt,
		&acc.CreatedBy,
		&acc.LastUpdatedAt,
		&acc.LastUpdatedBy,
	)
	if parentID != nil {
		acc.ParentAccountID = *parentID
	}
	return acc, err
}

func (r *accountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	if _, err := r.pool.Exec(ctx, insertAccountQuery, accountArgs(account)...); err != nil {
		return fmt.Errorf("failed to save account %s: %w", account.AccountID, err)
	}
	return nil
}

func (r *accountRepository) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	batch := &pgx.Batch{}
	for _, account := range accounts {
		batch.Queue(insertAccountQuery, accountArgs(account)...)
	}
	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()
	for range accounts {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to save account batch: %w", err)
		}
	}
	return nil
}

func (r *accountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $3, statement_group = $4, is_contra = $5, description = $6, last_updated_at = $7, last_updated_by = $8
		WHERE book_id = $1 AND account_id = $2;
	`
	tag, err := r.pool.Exec(ctx, query,
		account.BookID,
		account.AccountID,
		account.Name,
		account.StatementGroup,
		account.IsContra,
		account.Description,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", account.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *accountRepository) DeactivateAccount(ctx context.Context, bookID string, accountID string, updatedBy string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $3, last_updated_by = $4
		WHERE book_id = $1 AND account_id = $2;
	`
	tag, err := r.pool.Exec(ctx, query, bookID, accountID, now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *accountRepository) FindAccountByID(ctx context.Context, bookID string, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE book_id = $1 AND account_id = $2;`
	acc, err := scanAccount(r.pool.QueryRow(ctx, query, bookID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return &acc, nil
}

func (r *accountRepository) FindAccountsByIDs(ctx context.Context, bookID string, accountIDs []string) (map[string]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE book_id = $1 AND account_id = ANY($2);`
	rows, err := r.pool.Query(ctx, query, bookID, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find accounts by IDs: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		out[acc.AccountID] = acc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return out, nil
}

func (r *accountRepository) ListAccounts(ctx context.Context, bookID string) ([]domain.Account, error) {
	// created_at order keeps duplicate-code resolution deterministic in the
	// hierarchy builder.
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE book_id = $1 ORDER BY created_at, account_id;`
	rows, err := r.pool.Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}
