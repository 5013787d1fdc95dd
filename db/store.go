// Package db persists diagnostics: raw provider API traffic and the
// history of selected quotes. Nothing in the quote path depends on it; a
// nil store disables recording.
package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/RaghavSood/swaprouter/swaps"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store wraps the SQLite connection.
type Store struct {
	conn *sql.DB
}

func Open(path string) (*Store, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.Up(conn, "migrations"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Store{conn: conn}, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

// InsertAPIRequestParams captures one provider HTTP round trip.
type InsertAPIRequestParams struct {
	Provider        string
	Method          string
	Url             string
	RequestHeaders  sql.NullString
	RequestBody     sql.NullString
	ResponseStatus  sql.NullInt64
	ResponseHeaders sql.NullString
	ResponseBody    sql.NullString
	DurationMs      sql.NullInt64
	Error           sql.NullString
}

func (s *Store) InsertAPIRequest(ctx context.Context, arg InsertAPIRequestParams) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO api_requests (
			provider, method, url, request_headers, request_body,
			response_status, response_headers, response_body, duration_ms, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.Provider, arg.Method, arg.Url, arg.RequestHeaders, arg.RequestBody,
		arg.ResponseStatus, arg.ResponseHeaders, arg.ResponseBody, arg.DurationMs, arg.Error,
	)
	return err
}

// InsertQuote records a selected quote for history/diagnostics.
func (s *Store) InsertQuote(ctx context.Context, fingerprint string, q swaps.Quote) error {
	gas := "0"
	if q.GasEstimate != nil {
		gas = q.GasEstimate.String()
	}
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO quotes (
			fingerprint, provider, from_symbol, to_symbol,
			from_chain_id, to_chain_id, from_amount, to_amount,
			gas_estimate, exchanges, valid_until
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		fingerprint, q.Provider, q.FromToken.Symbol, q.ToToken.Symbol,
		q.FromToken.ChainID, q.ToToken.ChainID,
		q.FromAmount.String(), q.ToAmount.String(),
		gas, strings.Join(q.Route.Exchanges, ","), q.ValidUntil,
	)
	return err
}

// QuoteRecord is one row of selected-quote history.
type QuoteRecord struct {
	ID          int64     `json:"id"`
	Fingerprint string    `json:"fingerprint"`
	Provider    string    `json:"provider"`
	FromSymbol  string    `json:"from_symbol"`
	ToSymbol    string    `json:"to_symbol"`
	FromChainID uint64    `json:"from_chain_id"`
	ToChainID   uint64    `json:"to_chain_id"`
	FromAmount  string    `json:"from_amount"`
	ToAmount    string    `json:"to_amount"`
	GasEstimate string    `json:"gas_estimate"`
	Exchanges   string    `json:"exchanges"`
	ValidUntil  time.Time `json:"valid_until"`
	CreatedAt   time.Time `json:"created_at"`
}

// RecentQuotes returns the most recent selected quotes, newest first.
func (s *Store) RecentQuotes(ctx context.Context, limit int) ([]QuoteRecord, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, fingerprint, provider, from_symbol, to_symbol,
		       from_chain_id, to_chain_id, from_amount, to_amount,
		       gas_estimate, exchanges, valid_until, created_at
		FROM quotes ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying quotes: %w", err)
	}
	defer rows.Close()

	var records []QuoteRecord
	for rows.Next() {
		var r QuoteRecord
		if err := rows.Scan(&r.ID, &r.Fingerprint, &r.Provider, &r.FromSymbol, &r.ToSymbol,
			&r.FromChainID, &r.ToChainID, &r.FromAmount, &r.ToAmount,
			&r.GasEstimate, &r.Exchanges, &r.ValidUntil, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning quote: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
