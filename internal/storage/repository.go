package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"bilancio/internal/core"
)

// SQLiteRepository is the durable transaction store. Dates are stored as
// unix nanoseconds so range queries stay plain integer comparisons.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreateAccount inserts an account, minting an id when none is given.
func (r *SQLiteRepository) CreateAccount(ctx context.Context, id, name string) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (id, name, created_at) VALUES (?, ?, ?)`,
		id, name, time.Now().UTC().Unix())
	if err != nil {
		return "", fmt.Errorf("create account: %w", err)
	}
	return id, nil
}

// CreateCategory inserts a category and returns its id.
func (r *SQLiteRepository) CreateCategory(ctx context.Context, c core.Category) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, name) VALUES (?, ?)`, c.ID, c.Name)
	if err != nil {
		return "", fmt.Errorf("create category: %w", err)
	}
	return c.ID, nil
}

// DeleteCategory removes a category. Transactions referencing it keep the
// stale id and resolve to the Uncategorized bucket in reports.
func (r *SQLiteRepository) DeleteCategory(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// Append implements store.TransactionWriter.
func (r *SQLiteRepository) Append(ctx context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", err
	}
	if err := r.accountExists(ctx, tx.AccountID); err != nil {
		return "", err
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = now
	}
	if tx.UpdatedAt.IsZero() {
		tx.UpdatedAt = now
	}

	var categoryID any
	if tx.CategoryID != "" {
		categoryID = tx.CategoryID
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, account_id, category_id, amount_cents, date_ns, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.AccountID, categoryID, tx.Amount.Cents, tx.Date.UTC().UnixNano(),
		tx.Notes, tx.CreatedAt.Unix(), tx.UpdatedAt.Unix())
	if err != nil {
		return "", fmt.Errorf("create transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", tx.ID,
		"account_id", tx.AccountID,
		"amount_cents", tx.Amount.Cents)

	return tx.ID, nil
}

// QueryTransactions implements store.TransactionReader, inclusive of both
// window edges.
func (r *SQLiteRepository) QueryTransactions(ctx context.Context, accountID string, from, to time.Time) ([]core.Transaction, error) {
	if err := r.accountExists(ctx, accountID); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, account_id, COALESCE(category_id, ''), amount_cents, date_ns, notes, created_at, updated_at
		 FROM transactions
		 WHERE account_id = ? AND date_ns >= ? AND date_ns <= ?`,
		accountID, from.UTC().UnixNano(), to.UTC().UnixNano())
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var tx core.Transaction
		var dateNS, createdAt, updatedAt int64
		if err := rows.Scan(&tx.ID, &tx.AccountID, &tx.CategoryID, &tx.Amount.Cents,
			&dateNS, &tx.Notes, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Date = time.Unix(0, dateNS).UTC()
		tx.CreatedAt = time.Unix(createdAt, 0).UTC()
		tx.UpdatedAt = time.Unix(updatedAt, 0).UTC()
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

// QueryCategories implements store.CategoryReader. Unknown ids are absent
// from the result.
func (r *SQLiteRepository) QueryCategories(ctx context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name FROM categories WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) accountExists(ctx context.Context, accountID string) error {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM accounts WHERE id = ?`, accountID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return core.ErrAccountNotFound
	}
	if err != nil {
		return fmt.Errorf("check account: %w", err)
	}
	return nil
}
