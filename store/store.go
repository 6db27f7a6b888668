// Package store persists the few user-facing scalars that survive a restart in SQLite
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/lixenwraith/perimeter/core"
)

// Setting keys
const (
	KeyAnchor   = "anchor"
	KeyLanguage = "language"
	KeyLivery   = "livery"
)

// Anchor is the persisted command anchor position
type Anchor struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// HubRecord is a persisted hub
type HubRecord struct {
	ID           uuid.UUID    `json:"id"`
	Kind         core.HubKind `json:"kind"`
	LoopDistance float64      `json:"loop_distance"`
	Waiting      int          `json:"waiting"`
}

type hubRow struct {
	ID           string  `db:"id"`
	Kind         string  `db:"kind"`
	LoopDistance float64 `db:"loop_distance"`
	Waiting      int     `db:"waiting"`
	Position     int     `db:"position"`
}

// Store wraps a SQLite connection
type Store struct {
	db *sqlx.DB
}

// Open opens or creates the database at path and applies the schema
func Open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// One writer; avoids SQLITE_BUSY between pooled connections
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS hubs (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		loop_distance REAL NOT NULL,
		waiting INTEGER NOT NULL DEFAULT 0,
		position INTEGER NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Set writes a setting
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Get reads a setting; ok is false when the key was never written
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.GetContext(ctx, &value, "SELECT value FROM settings WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) setJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, string(b))
}

func (s *Store) getJSON(ctx context.Context, key string, v any) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// SaveAnchor persists the command anchor
func (s *Store) SaveAnchor(ctx context.Context, a Anchor) error {
	return s.setJSON(ctx, KeyAnchor, a)
}

// LoadAnchor returns the persisted anchor, ok is false when none was saved
func (s *Store) LoadAnchor(ctx context.Context) (Anchor, bool, error) {
	var a Anchor
	ok, err := s.getJSON(ctx, KeyAnchor, &a)
	return a, ok, err
}

// SaveLanguage persists the console language code
func (s *Store) SaveLanguage(ctx context.Context, lang string) error {
	return s.Set(ctx, KeyLanguage, lang)
}

// LoadLanguage returns the persisted language code
func (s *Store) LoadLanguage(ctx context.Context) (string, bool, error) {
	return s.Get(ctx, KeyLanguage)
}

// SaveLivery persists the locomotive livery as #rrggbb
func (s *Store) SaveLivery(ctx context.Context, c core.RGB) error {
	return s.Set(ctx, KeyLivery, c.Hex())
}

// LoadLivery returns the persisted livery
func (s *Store) LoadLivery(ctx context.Context) (core.RGB, bool, error) {
	raw, ok, err := s.Get(ctx, KeyLivery)
	if err != nil || !ok {
		return core.RGB{}, false, err
	}
	c, err := core.ParseHex(raw)
	if err != nil {
		return core.RGB{}, false, fmt.Errorf("decode %s: %w", KeyLivery, err)
	}
	return c, true, nil
}

// SaveHubs replaces the persisted hub list, keeping its order
func (s *Store) SaveHubs(ctx context.Context, hubs []HubRecord) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM hubs"); err != nil {
		return fmt.Errorf("clear hubs: %w", err)
	}
	for i, h := range hubs {
		kind, err := h.Kind.MarshalText()
		if err != nil {
			return err
		}
		row := hubRow{
			ID:           h.ID.String(),
			Kind:         string(kind),
			LoopDistance: h.LoopDistance,
			Waiting:      h.Waiting,
			Position:     i,
		}
		_, err = tx.NamedExecContext(ctx,
			`INSERT INTO hubs (id, kind, loop_distance, waiting, position)
			 VALUES (:id, :kind, :loop_distance, :waiting, :position)`, row)
		if err != nil {
			return fmt.Errorf("insert hub %s: %w", row.ID, err)
		}
	}
	return tx.Commit()
}

// LoadHubs returns the persisted hubs in saved order
func (s *Store) LoadHubs(ctx context.Context) ([]HubRecord, error) {
	var rows []hubRow
	if err := s.db.SelectContext(ctx, &rows, "SELECT * FROM hubs ORDER BY position"); err != nil {
		return nil, fmt.Errorf("load hubs: %w", err)
	}

	hubs := make([]HubRecord, 0, len(rows))
	for _, r := range rows {
		id, err := uuid.Parse(r.ID)
		if err != nil {
			return nil, fmt.Errorf("hub id %q: %w", r.ID, err)
		}
		var kind core.HubKind
		if err := kind.UnmarshalText([]byte(r.Kind)); err != nil {
			return nil, err
		}
		hubs = append(hubs, HubRecord{ID: id, Kind: kind, LoopDistance: r.LoopDistance, Waiting: r.Waiting})
	}
	return hubs, nil
}
