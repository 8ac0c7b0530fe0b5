package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"bahtbot/internal/core"
	"bahtbot/internal/ledger"

	_ "modernc.org/sqlite"
)

// SQLiteRepository is a self-hosted ledger backend for running the bot
// without a Google spreadsheet. It implements the same append-only row
// contract: rows are inserted in order and never updated or deleted.
type SQLiteRepository struct {
	db *sql.DB
}

var _ ledger.Store = (*SQLiteRepository)(nil)

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

func (r *SQLiteRepository) Append(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (recorded_at, type, item, amount, balance, category)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.Timestamp.Format(time.RFC3339), string(t.Type), t.Item, t.Amount, t.Balance, t.CategoryOrDefault())
	if err != nil {
		return fmt.Errorf("insert transaction: %w (%v)", ledger.ErrUnavailable, err)
	}

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"item", t.Item,
		"type", string(t.Type),
		"amount", t.Amount,
		"balance", t.Balance)
	return nil
}

func (r *SQLiteRepository) ReadAll(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT recorded_at, type, item, amount, balance, category
		 FROM transactions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select transactions: %w (%v)", ledger.ErrUnavailable, err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var recordedAt, typ string
		var t core.Transaction
		if err := rows.Scan(&recordedAt, &typ, &t.Item, &t.Amount, &t.Balance, &t.Category); err != nil {
			return nil, fmt.Errorf("scan transaction: %w (%v)", ledger.ErrUnavailable, err)
		}
		// A malformed stored timestamp stays zero, matching how the
		// sheets adapter surfaces legacy rows.
		if ts, err := time.Parse(time.RFC3339, recordedAt); err == nil {
			t.Timestamp = ts
		}
		t.Type = core.TransactionType(typ)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w (%v)", ledger.ErrUnavailable, err)
	}
	return out, nil
}

func (r *SQLiteRepository) LastBalance(ctx context.Context) (int64, error) {
	var balance int64
	err := r.db.QueryRowContext(ctx,
		`SELECT balance FROM transactions ORDER BY id DESC LIMIT 1`).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("select last balance: %w (%v)", ledger.ErrUnavailable, err)
	}
	return balance, nil
}
