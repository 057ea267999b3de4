package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Transaction is one persisted ledger row. Amount is always positive; the
// credit flag carries the original sign.
type Transaction struct {
	ID          int64
	PostedDate  time.Time
	Amount      float64
	Credit      bool
	Description string
	Merchant    string
	Category    string
	StatementID *uuid.UUID
	DedupeHash  string
}

// CategoryTotal is one row of the per-category monthly breakdown.
type CategoryTotal struct {
	Category string
	Total    float64
}

// MerchantTotal is one row of the per-merchant monthly breakdown.
type MerchantTotal struct {
	Merchant string
	Total    float64
}

// TransactionRepository handles the transactions table.
type TransactionRepository struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// InsertIfNew inserts a transaction unless one with the same dedupe hash
// already exists. The unique constraint makes the check-and-insert atomic
// with respect to concurrent callers: exactly one insert wins, the others
// see inserted=false and no error.
func (r *TransactionRepository) InsertIfNew(ctx context.Context, tx *Transaction) (bool, error) {
	query := squirrel.Insert("transactions").
		Columns("posted_date", "amount", "credit", "description", "merchant", "category", "statement_id", "dedupe_hash").
		Values(tx.PostedDate, tx.Amount, tx.Credit, tx.Description, nullable(tx.Merchant), nullable(tx.Category), tx.StatementID, tx.DedupeHash).
		Suffix("ON CONFLICT (dedupe_hash) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("storage: build transaction insert: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("storage: insert transaction: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListUncategorized returns transactions without an assigned category, in
// insertion order.
func (r *TransactionRepository) ListUncategorized(ctx context.Context) ([]*Transaction, error) {
	query := selectTransactions().
		Where(squirrel.Or{
			squirrel.Eq{"category": nil},
			squirrel.Eq{"category": ""},
		}).
		OrderBy("id")

	return r.queryTransactions(ctx, query)
}

// UpdateCategory assigns a category to a stored transaction.
func (r *TransactionRepository) UpdateCategory(ctx context.Context, id int64, category string) error {
	query := squirrel.Update("transactions").
		Set("category", category).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("storage: build category update: %w", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("storage: update category: %w", err)
	}
	return nil
}

// AvailableMonths lists the YYYY-MM months that have transactions.
func (r *TransactionRepository) AvailableMonths(ctx context.Context) ([]string, error) {
	sql := `SELECT DISTINCT to_char(posted_date, 'YYYY-MM') AS month
		FROM transactions ORDER BY month`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("storage: query months: %w", err)
	}
	defer rows.Close()

	var months []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, fmt.Errorf("storage: scan month: %w", err)
		}
		months = append(months, m)
	}
	return months, rows.Err()
}

// CategoryTotals returns spending per category for one month, largest
// first. Rows without a category are reported as "Uncategorized".
func (r *TransactionRepository) CategoryTotals(ctx context.Context, year, month int) ([]CategoryTotal, error) {
	sql := `SELECT COALESCE(NULLIF(category, ''), 'Uncategorized'), SUM(amount)
		FROM transactions
		WHERE date_part('year', posted_date) = $1 AND date_part('month', posted_date) = $2
		GROUP BY 1 ORDER BY 2 DESC`

	rows, err := r.db.Query(ctx, sql, year, month)
	if err != nil {
		return nil, fmt.Errorf("storage: query category totals: %w", err)
	}
	defer rows.Close()

	var totals []CategoryTotal
	for rows.Next() {
		var t CategoryTotal
		if err := rows.Scan(&t.Category, &t.Total); err != nil {
			return nil, fmt.Errorf("storage: scan category total: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// MerchantTotals returns spending per merchant for one month, largest
// first. Rows without a merchant are reported as "Unknown".
func (r *TransactionRepository) MerchantTotals(ctx context.Context, year, month int) ([]MerchantTotal, error) {
	sql := `SELECT COALESCE(NULLIF(merchant, ''), 'Unknown'), SUM(amount)
		FROM transactions
		WHERE date_part('year', posted_date) = $1 AND date_part('month', posted_date) = $2
		GROUP BY 1 ORDER BY 2 DESC`

	rows, err := r.db.Query(ctx, sql, year, month)
	if err != nil {
		return nil, fmt.Errorf("storage: query merchant totals: %w", err)
	}
	defer rows.Close()

	var totals []MerchantTotal
	for rows.Next() {
		var t MerchantTotal
		if err := rows.Scan(&t.Merchant, &t.Total); err != nil {
			return nil, fmt.Errorf("storage: scan merchant total: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// TopTransactions returns the month's largest transactions by amount.
func (r *TransactionRepository) TopTransactions(ctx context.Context, year, month, limit int) ([]*Transaction, error) {
	query := selectTransactions().
		Where(squirrel.Expr("date_part('year', posted_date) = ?", year)).
		Where(squirrel.Expr("date_part('month', posted_date) = ?", month)).
		OrderBy("amount DESC").
		Limit(uint64(limit))

	return r.queryTransactions(ctx, query)
}

// MonthlyTotal returns total spending and transaction count for one month.
func (r *TransactionRepository) MonthlyTotal(ctx context.Context, year, month int) (float64, int, error) {
	sql := `SELECT COALESCE(SUM(amount), 0), COUNT(*)
		FROM transactions
		WHERE date_part('year', posted_date) = $1 AND date_part('month', posted_date) = $2`

	var total float64
	var count int
	if err := r.db.QueryRow(ctx, sql, year, month).Scan(&total, &count); err != nil {
		return 0, 0, fmt.Errorf("storage: query monthly total: %w", err)
	}
	return total, count, nil
}

func selectTransactions() squirrel.SelectBuilder {
	return squirrel.Select(
		"id", "posted_date", "amount", "credit", "description",
		"COALESCE(merchant, '')", "COALESCE(category, '')",
		"statement_id", "dedupe_hash",
	).
		From("transactions").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *TransactionRepository) queryTransactions(ctx context.Context, query squirrel.SelectBuilder) ([]*Transaction, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("storage: build transaction select: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: query transactions: %w", err)
	}
	defer rows.Close()

	var txns []*Transaction
	for rows.Next() {
		var tx Transaction
		if err := rows.Scan(
			&tx.ID, &tx.PostedDate, &tx.Amount, &tx.Credit, &tx.Description,
			&tx.Merchant, &tx.Category, &tx.StatementID, &tx.DedupeHash,
		); err != nil {
			return nil, fmt.Errorf("storage: scan transaction: %w", err)
		}
		txns = append(txns, &tx)
	}
	return txns, rows.Err()
}

// nullable maps an empty string to SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
