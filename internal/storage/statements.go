package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Statement is one uploaded statement file. The file hash prevents
// re-processing of a byte-identical upload.
type Statement struct {
	ID               uuid.UUID
	Filename         string
	FileHash         string
	UploadedAt       time.Time
	TransactionCount int
}

// StatementRepository handles the statements table.
type StatementRepository struct {
	db *pgxpool.Pool
}

func NewStatementRepository(db *pgxpool.Pool) *StatementRepository {
	return &StatementRepository{db: db}
}

// Create records a new statement upload. When a statement with the same
// file hash already exists, the existing row is returned with created
// false.
func (r *StatementRepository) Create(ctx context.Context, filename, fileHash string) (*Statement, bool, error) {
	stmt := &Statement{
		ID:       uuid.New(),
		Filename: filename,
		FileHash: fileHash,
	}

	query := squirrel.Insert("statements").
		Columns("id", "filename", "file_hash").
		Values(stmt.ID, stmt.Filename, stmt.FileHash).
		Suffix("ON CONFLICT (file_hash) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("storage: build statement insert: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return nil, false, fmt.Errorf("storage: insert statement: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return stmt, true, nil
	}

	existing, err := r.GetByHash(ctx, fileHash)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// GetByHash finds a statement by its file hash, or returns nil when none
// exists.
func (r *StatementRepository) GetByHash(ctx context.Context, fileHash string) (*Statement, error) {
	query := squirrel.Select("id", "filename", "file_hash", "uploaded_at", "transaction_count").
		From("statements").
		Where(squirrel.Eq{"file_hash": fileHash}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("storage: build statement select: %w", err)
	}

	var stmt Statement
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&stmt.ID, &stmt.Filename, &stmt.FileHash, &stmt.UploadedAt, &stmt.TransactionCount,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: select statement by hash: %w", err)
	}
	return &stmt, nil
}

// UpdateCount records how many transactions a statement yielded.
func (r *StatementRepository) UpdateCount(ctx context.Context, id uuid.UUID, count int) error {
	query := squirrel.Update("statements").
		Set("transaction_count", count).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("storage: build statement update: %w", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("storage: update statement count: %w", err)
	}
	return nil
}
