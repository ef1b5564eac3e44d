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

type entryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new repository for journal entry data.
func NewEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryFacade {
	return &entryRepository{pool: pool}
}

func (r *entryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for entry %s: %w", entry.EntryID, err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	entryQuery := `
		INSERT INTO entries (entry_id, book_id, entry_date, memo, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	if _, err := tx.Exec(ctx, entryQuery,
		entry.EntryID,
		entry.BookID,
		entry.EntryDate,
		entry.Memo,
		entry.Status,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	); err != nil {
		return fmt.Errorf("failed to save entry %s: %w", entry.EntryID, err)
	}

	lineQuery := `
		INSERT INTO entry_lines (line_id, entry_id, account_id, line_order, debit, credit, description, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	batch := &pgx.Batch{}
	for i, line := range entry.Lines {
		batch.Queue(lineQuery,
			line.LineID,
			entry.EntryID,
			line.AccountID,
			i,
			line.Debit,
			line.Credit,
			line.Description,
			line.CreatedAt,
			line.CreatedBy,
			line.LastUpdatedAt,
			line.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	for range entry.Lines {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("failed to save lines for entry %s: %w", entry.EntryID, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close line batch for entry %s: %w", entry.EntryID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit entry %s: %w", entry.EntryID, err)
	}
	return nil
}

func (r *entryRepository) UpdateEntryStatus(ctx context.Context, bookID string, entryID string, status domain.EntryStatus, updatedBy string, now time.Time) error {
	query := `
		UPDATE entries
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE book_id = $1 AND entry_id = $2;
	`
	tag, err := r.pool.Exec(ctx, query, bookID, entryID, status, now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update status of entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *entryRepository) FindEntryByID(ctx context.Context, bookID string, entryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT entry_id, book_id, entry_date, memo, status, created_at, created_by, last_updated_at, last_updated_by
		FROM entries
		WHERE book_id = $1 AND entry_id = $2;
	`
	var entry domain.JournalEntry
	err := r.pool.QueryRow(ctx, query, bookID, entryID).Scan(
		&entry.EntryID,
		&entry.BookID,
		&entry.EntryDate,
		&entry.Memo,
		&entry.Status,
		&entry.CreatedAt,
		&entry.CreatedBy,
		&entry.LastUpdatedAt,
		&entry.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry by ID %s: %w", entryID, err)
	}

	lines, err := r.findLines(ctx, []string{entry.EntryID})
	if err != nil {
		return nil, err
	}
	entry.Lines = lines[entry.EntryID]
	return &entry, nil
}

func (r *entryRepository) ListEntries(ctx context.Context, bookID string, filter portsrepo.EntryFilter) ([]domain.JournalEntry, error) {
	// Filters compose positionally; zero time bounds mean unbounded.
	query := `
		SELECT entry_id, book_id, entry_date, memo, status, created_at, created_by, last_updated_at, last_updated_by
		FROM entries
		WHERE book_id = $1
	`
	args := []any{bookID}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		query += fmt.Sprintf(" AND entry_date >= $%d", len(args))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		query += fmt.Sprintf(" AND entry_date <= $%d", len(args))
	}
	if !filter.IncludeReversals {
		args = append(args, domain.Reversed)
		query += fmt.Sprintf(" AND status <> $%d", len(args))
	}
	query += " ORDER BY entry_date, entry_id"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	var entryIDs []string
	for rows.Next() {
		var entry domain.JournalEntry
		if err := rows.Scan(
			&entry.EntryID,
			&entry.BookID,
			&entry.EntryDate,
			&entry.Memo,
			&entry.Status,
			&entry.CreatedAt,
			&entry.CreatedBy,
			&entry.LastUpdatedAt,
			&entry.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, entry)
		entryIDs = append(entryIDs, entry.EntryID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}
	if len(entries) == 0 {
		return entries, nil
	}

	lines, err := r.findLines(ctx, entryIDs)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Lines = lines[entries[i].EntryID]
	}
	return entries, nil
}

// findLines fetches lines for a set of entries in their in-entry order.
func (r *entryRepository) findLines(ctx context.Context, entryIDs []string) (map[string][]domain.EntryLine, error) {
	query := `
		SELECT line_id, entry_id, account_id, debit, credit, description, created_at, created_by, last_updated_at, last_updated_by
		FROM entry_lines
		WHERE entry_id = ANY($1)
		ORDER BY entry_id, line_order;
	`
	rows, err := r.pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entry lines: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.EntryLine, len(entryIDs))
	for rows.Next() {
		var line domain.EntryLine
		if err := rows.Scan(
			&line.LineID,
			&line.EntryID,
			&line.AccountID,
			&line.Debit,
			&line.Credit,
			&line.Description,
			&line.CreatedAt,
			&line.CreatedBy,
			&line.LastUpdatedAt,
			&line.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan entry line row: %w", err)
		}
		out[line.EntryID] = append(out[line.EntryID], line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry line rows: %w", err)
	}
	return out, nil
}
