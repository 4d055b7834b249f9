package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"tradebook/internal/errors"
	"tradebook/internal/models"
)

// SQLiteStore implements TradeStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the journal database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Journal trades. Numeric form inputs are stored as the raw TEXT the
	-- user typed; the analytics normalizer owns coercion, so unparsable
	-- values round-trip unchanged.
	CREATE TABLE IF NOT EXISTS trades (
		id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		trade_type TEXT NOT NULL,
		date TEXT,
		entry_date TEXT,
		exit_date TEXT,
		entry TEXT,
		exit_price TEXT,
		sl TEXT,
		target TEXT,
		qty TEXT,
		charges TEXT,
		position TEXT,
		strategy TEXT,
		reason TEXT,
		exit_reason TEXT,
		confidence TEXT,
		broker TEXT,
		timeframe TEXT,
		time_range TEXT,
		underlying TEXT,
		symbol TEXT,
		expiry TEXT,
		strike TEXT,
		option_type TEXT,
		remarks TEXT,
		chart_image TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		PRIMARY KEY (user_id, id)
	);

	CREATE INDEX IF NOT EXISTS idx_trades_user_type ON trades(user_id, trade_type);
	CREATE INDEX IF NOT EXISTS idx_trades_date ON trades(date);
	CREATE INDEX IF NOT EXISTS idx_trades_entry_date ON trades(entry_date);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const tradeColumns = `id, trade_type, date, entry_date, exit_date, entry, exit_price, sl, target, qty, charges, position, strategy, reason, exit_reason, confidence, broker, timeframe, time_range, underlying, symbol, expiry, strike, option_type, remarks, chart_image, created_at, updated_at`

// SaveTrade inserts a new trade for the given user.
func (s *SQLiteStore) SaveTrade(ctx context.Context, userID string, t *models.TradeRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO trades (user_id, `+tradeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, userID, t.ID, t.TradeType, t.Date, t.EntryDate, t.ExitDate, t.Entry, t.ExitPrice, t.SL, t.Target,
		t.Qty, t.Charges, t.Position, t.Strategy, t.Reason, t.ExitReason, t.Confidence, t.Broker,
		t.Timeframe, t.TimeRange, t.Underlying, t.Symbol, t.Expiry, t.Strike, t.OptionType,
		t.Remarks, t.ChartImage, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return errors.Wrap(err, "failed to save trade")
	}
	return nil
}

// GetTrade retrieves a single trade by id.
func (s *SQLiteStore) GetTrade(ctx context.Context, userID, id string) (*models.TradeRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+tradeColumns+` FROM trades WHERE user_id = ? AND id = ?
	`, userID, id)

	t, err := scanTrade(row)
	if err == sql.ErrNoRows {
		return nil, errors.ErrTradeNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get trade")
	}
	return t, nil
}

// GetTrades retrieves trades matching the query, oldest first.
func (s *SQLiteStore) GetTrades(ctx context.Context, userID string, query TradeQuery) ([]models.TradeRecord, error) {
	q := "SELECT " + tradeColumns + " FROM trades WHERE user_id = ?"
	args := []interface{}{userID}

	if query.Type != "" {
		q += " AND trade_type = ?"
		args = append(args, query.Type)
	}
	if query.Symbol != "" {
		q += " AND (underlying = ? OR symbol = ?)"
		args = append(args, query.Symbol, query.Symbol)
	}
	if query.From != "" {
		q += " AND COALESCE(NULLIF(date, ''), entry_date) >= ?"
		args = append(args, query.From)
	}
	if query.To != "" {
		q += " AND COALESCE(NULLIF(date, ''), entry_date) <= ?"
		args = append(args, query.To)
	}

	q += " ORDER BY created_at ASC"
	if query.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, query.Limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query trades")
	}
	defer rows.Close()

	var trades []models.TradeRecord
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan trade")
		}
		trades = append(trades, *t)
	}
	return trades, rows.Err()
}

// UpdateTrade replaces the mutable fields of an existing trade. The record's
// CreatedAt is left untouched and UpdatedAt is set to now.
func (s *SQLiteStore) UpdateTrade(ctx context.Context, userID string, t *models.TradeRecord) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE trades SET
			trade_type = ?, date = ?, entry_date = ?, exit_date = ?,
			entry = ?, exit_price = ?, sl = ?, target = ?, qty = ?, charges = ?,
			position = ?, strategy = ?, reason = ?, exit_reason = ?, confidence = ?,
			broker = ?, timeframe = ?, time_range = ?, underlying = ?, symbol = ?,
			expiry = ?, strike = ?, option_type = ?, remarks = ?, chart_image = ?,
			updated_at = ?
		WHERE user_id = ? AND id = ?
	`, t.TradeType, t.Date, t.EntryDate, t.ExitDate,
		t.Entry, t.ExitPrice, t.SL, t.Target, t.Qty, t.Charges,
		t.Position, t.Strategy, t.Reason, t.ExitReason, t.Confidence,
		t.Broker, t.Timeframe, t.TimeRange, t.Underlying, t.Symbol,
		t.Expiry, t.Strike, t.OptionType, t.Remarks, t.ChartImage,
		time.Now(), userID, t.ID)
	if err != nil {
		return errors.Wrap(err, "failed to update trade")
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errors.ErrTradeNotFound
	}
	return nil
}

// DeleteTrade removes a trade by id.
func (s *SQLiteStore) DeleteTrade(ctx context.Context, userID, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM trades WHERE user_id = ? AND id = ?
	`, userID, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete trade")
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errors.ErrTradeNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTrade(row rowScanner) (*models.TradeRecord, error) {
	var t models.TradeRecord
	err := row.Scan(
		&t.ID, &t.TradeType, &t.Date, &t.EntryDate, &t.ExitDate,
		&t.Entry, &t.ExitPrice, &t.SL, &t.Target, &t.Qty, &t.Charges,
		&t.Position, &t.Strategy, &t.Reason, &t.ExitReason, &t.Confidence,
		&t.Broker, &t.Timeframe, &t.TimeRange, &t.Underlying, &t.Symbol,
		&t.Expiry, &t.Strike, &t.OptionType, &t.Remarks, &t.ChartImage,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
