// Package salesagent implements a stub AdCP sales agent: an MCP server
// backed by SQLite with a deterministic delivery simulation, suitable as a
// local stand-in for a real publisher endpoint.
package salesagent

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/adcontextprotocol/buysim/internal/adcp"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

var (
	// ErrNotFound reports a missing media buy or creative.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists reports a duplicate primary key.
	ErrAlreadyExists = errors.New("already exists")
)

// MediaBuy is one persisted buy record.
type MediaBuy struct {
	MediaBuyID               string
	Status                   string
	ProductIDs               []string
	FlightStart              time.Time
	FlightEnd                time.Time
	TotalBudget              float64
	PONumber                 string
	Geography                []string
	ContentCategoriesExclude []string
	CreatedAt                time.Time
}

// Store persists sales agent state in SQLite.
type Store struct {
	sqlDB *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS products (
  product_id     TEXT PRIMARY KEY,
  name           TEXT NOT NULL,
  delivery_type  TEXT NOT NULL,
  cpm            REAL NOT NULL,
  is_fixed_price INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS media_buys (
  media_buy_id               TEXT PRIMARY KEY,
  status                     TEXT NOT NULL,
  product_ids                TEXT NOT NULL,
  flight_start               INTEGER NOT NULL,
  flight_end                 INTEGER NOT NULL,
  total_budget               REAL NOT NULL,
  po_number                  TEXT NOT NULL,
  geography                  TEXT NOT NULL,
  content_categories_exclude TEXT NOT NULL,
  created_at                 INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS creatives (
  creative_id  TEXT PRIMARY KEY,
  media_buy_id TEXT NOT NULL,
  format_id    TEXT NOT NULL,
  content_uri  TEXT NOT NULL,
  status       TEXT NOT NULL,
  checks       INTEGER NOT NULL DEFAULT 0,
  submitted_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS performance_feedback (
  media_buy_id      TEXT NOT NULL,
  product_id        TEXT NOT NULL,
  performance_index REAL NOT NULL,
  confidence_score  REAL NOT NULL,
  received_at       INTEGER NOT NULL
);
`

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite store at path and applies the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	return initStore(sqlDB)
}

// OpenInMemory opens an in-memory store. The connection pool is capped at
// one so every query sees the same memory database.
func OpenInMemory() (*Store, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return initStore(sqlDB)
}

func initStore(sqlDB *sql.DB) (*Store, error) {
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SeedProducts inserts catalog rows, skipping products already present.
func (s *Store) SeedProducts(ctx context.Context, products []adcp.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, product := range products {
		_, err := s.sqlDB.ExecContext(
			ctx,
			`INSERT OR IGNORE INTO products (product_id, name, delivery_type, cpm, is_fixed_price)
			 VALUES (?, ?, ?, ?, ?)`,
			product.ProductID,
			product.Name,
			product.DeliveryType,
			product.CPM,
			boolToInt(product.IsFixedPrice),
		)
		if err != nil {
			return fmt.Errorf("seed product %s: %w", product.ProductID, err)
		}
	}
	return nil
}

// ListProducts returns the full catalog ordered by product ID.
func (s *Store) ListProducts(ctx context.Context) ([]adcp.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT product_id, name, delivery_type, cpm, is_fixed_price
		   FROM products
		  ORDER BY product_id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []adcp.Product
	for rows.Next() {
		var product adcp.Product
		var fixed int
		if err := rows.Scan(&product.ProductID, &product.Name, &product.DeliveryType, &product.CPM, &fixed); err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		product.IsFixedPrice = fixed != 0
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// CreateMediaBuy inserts one buy record.
func (s *Store) CreateMediaBuy(ctx context.Context, buy MediaBuy) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(buy.MediaBuyID) == "" {
		return fmt.Errorf("media buy id is required")
	}
	createdAt := buy.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO media_buys (
		   media_buy_id, status, product_ids, flight_start, flight_end,
		   total_budget, po_number, geography, content_categories_exclude, created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		buy.MediaBuyID,
		buy.Status,
		encodeStrings(buy.ProductIDs),
		toMillis(buy.FlightStart),
		toMillis(buy.FlightEnd),
		buy.TotalBudget,
		buy.PONumber,
		encodeStrings(buy.Geography),
		encodeStrings(buy.ContentCategoriesExclude),
		toMillis(createdAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("create media buy: %w", err)
	}
	return nil
}

// GetMediaBuy returns one buy by ID.
func (s *Store) GetMediaBuy(ctx context.Context, mediaBuyID string) (MediaBuy, error) {
	if err := ctx.Err(); err != nil {
		return MediaBuy{}, err
	}
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT media_buy_id, status, product_ids, flight_start, flight_end,
		        total_budget, po_number, geography, content_categories_exclude, created_at
		   FROM media_buys
		  WHERE media_buy_id = ?`,
		mediaBuyID,
	)

	var buy MediaBuy
	var productIDs, geography, exclusions string
	var flightStart, flightEnd, createdAt int64
	err := row.Scan(
		&buy.MediaBuyID,
		&buy.Status,
		&productIDs,
		&flightStart,
		&flightEnd,
		&buy.TotalBudget,
		&buy.PONumber,
		&geography,
		&exclusions,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return MediaBuy{}, ErrNotFound
		}
		return MediaBuy{}, fmt.Errorf("get media buy: %w", err)
	}
	buy.ProductIDs = decodeStrings(productIDs)
	buy.Geography = decodeStrings(geography)
	buy.ContentCategoriesExclude = decodeStrings(exclusions)
	buy.FlightStart = fromMillis(flightStart)
	buy.FlightEnd = fromMillis(flightEnd)
	buy.CreatedAt = fromMillis(createdAt)
	return buy, nil
}

// UpdateMediaBuyTargeting replaces the targeting overlay of one buy.
func (s *Store) UpdateMediaBuyTargeting(ctx context.Context, mediaBuyID string, overlay adcp.TargetingOverlay) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE media_buys
		    SET geography = ?, content_categories_exclude = ?
		  WHERE media_buy_id = ?`,
		encodeStrings(overlay.Geography),
		encodeStrings(overlay.ContentCategoriesExclude),
		mediaBuyID,
	)
	if err != nil {
		return fmt.Errorf("update media buy targeting: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update media buy targeting: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddCreatives inserts submitted creatives in pending state.
func (s *Store) AddCreatives(ctx context.Context, mediaBuyID string, creatives []adcp.Creative) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	submittedAt := toMillis(time.Now().UTC())
	for _, creative := range creatives {
		_, err := s.sqlDB.ExecContext(
			ctx,
			`INSERT INTO creatives (creative_id, media_buy_id, format_id, content_uri, status, checks, submitted_at)
			 VALUES (?, ?, ?, ?, ?, 0, ?)`,
			creative.CreativeID,
			mediaBuyID,
			creative.FormatID,
			creative.ContentURI,
			adcp.CreativePending,
			submittedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyExists
			}
			return fmt.Errorf("add creative %s: %w", creative.CreativeID, err)
		}
	}
	return nil
}

// AdvanceCreativeChecks records one review pass over the given creatives.
// Each pending creative's check counter is incremented, and the creative
// flips to approved once the counter reaches approveAfter. The post-check
// statuses are returned in the order requested; unknown IDs are skipped.
func (s *Store) AdvanceCreativeChecks(ctx context.Context, creativeIDs []string, approveAfter int) ([]adcp.CreativeStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if approveAfter < 1 {
		approveAfter = 1
	}
	statuses := make([]adcp.CreativeStatus, 0, len(creativeIDs))
	for _, creativeID := range creativeIDs {
		_, err := s.sqlDB.ExecContext(
			ctx,
			`UPDATE creatives
			    SET checks = checks + 1,
			        status = CASE WHEN checks + 1 >= ? THEN ? ELSE status END
			  WHERE creative_id = ? AND status = ?`,
			approveAfter,
			adcp.CreativeApproved,
			creativeID,
			adcp.CreativePending,
		)
		if err != nil {
			return nil, fmt.Errorf("advance creative %s: %w", creativeID, err)
		}

		var status string
		err = s.sqlDB.QueryRowContext(
			ctx,
			`SELECT status FROM creatives WHERE creative_id = ?`,
			creativeID,
		).Scan(&status)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read creative %s: %w", creativeID, err)
		}
		statuses = append(statuses, adcp.CreativeStatus{CreativeID: creativeID, Status: status})
	}
	return statuses, nil
}

// CreativeStatuses returns the current statuses without advancing review.
func (s *Store) CreativeStatuses(ctx context.Context, mediaBuyID string) ([]adcp.CreativeStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT creative_id, status
		   FROM creatives
		  WHERE media_buy_id = ?
		  ORDER BY submitted_at ASC, creative_id ASC`,
		mediaBuyID,
	)
	if err != nil {
		return nil, fmt.Errorf("creative statuses: %w", err)
	}
	defer rows.Close()

	var statuses []adcp.CreativeStatus
	for rows.Next() {
		var status adcp.CreativeStatus
		if err := rows.Scan(&status.CreativeID, &status.Status); err != nil {
			return nil, fmt.Errorf("creative statuses: %w", err)
		}
		statuses = append(statuses, status)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("creative statuses: %w", err)
	}
	return statuses, nil
}

// RecordPerformanceFeedback appends buyer feedback rows for one buy.
func (s *Store) RecordPerformanceFeedback(ctx context.Context, mediaBuyID string, feedback []adcp.ProductPerformance) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	receivedAt := toMillis(time.Now().UTC())
	for _, entry := range feedback {
		_, err := s.sqlDB.ExecContext(
			ctx,
			`INSERT INTO performance_feedback (media_buy_id, product_id, performance_index, confidence_score, received_at)
			 VALUES (?, ?, ?, ?, ?)`,
			mediaBuyID,
			entry.ProductID,
			entry.PerformanceIndex,
			entry.ConfidenceScore,
			receivedAt,
		)
		if err != nil {
			return fmt.Errorf("record performance feedback: %w", err)
		}
	}
	return nil
}

func encodeStrings(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	encoded, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(encoded)
}

func decodeStrings(encoded string) []string {
	var values []string
	if err := json.Unmarshal([]byte(encoded), &values); err != nil {
		return nil
	}
	return values
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
