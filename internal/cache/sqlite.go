package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/dmarakulin/learn-logbook/internal/config"
	"github.com/dmarakulin/learn-logbook/internal/logger"
)

const createKVTable = `
	CREATE TABLE IF NOT EXISTS kv (
		key        TEXT PRIMARY KEY,
		value      BLOB NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

const (
	getValue = `SELECT value FROM kv WHERE key = $1;`

	upsertValue = `
		INSERT INTO kv (key, value, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE
		SET value = excluded.value, updated_at = excluded.updated_at;`
)

type sqliteStore struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewSQLiteStore opens (creating if necessary) the SQLite file at cfg.Path
// and returns a [Store] backed by a single kv table.
func NewSQLiteStore(ctx context.Context, cfg config.ClientCache, log *logger.Logger) (Store, error) {
	if err := createCacheFileIfNotExists(cfg.Path); err != nil {
		log.Err(err).Str("func", "NewSQLiteStore").Msg("error creating cache file")
		return nil, fmt.Errorf("error creating cache file: %w", err)
	}

	conn, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		log.Err(err).Str("func", "NewSQLiteStore").Msg("error opening cache database")
		return nil, fmt.Errorf("error opening connection to cache DB: %w", err)
	}

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewSQLiteStore").Msg("error connecting cache database (ping)")
		return nil, err
	}

	if _, err = conn.ExecContext(ctx, createKVTable); err != nil {
		log.Err(err).Str("func", "NewSQLiteStore").Msg("error creating kv table")
		return nil, fmt.Errorf("error creating kv table: %w", err)
	}
	log.Debug().Str("func", "NewSQLiteStore").Msg("connected to cache database successfully")

	return &sqliteStore{db: conn, logger: log}, nil
}

func (s *sqliteStore) Load(key string) ([]byte, bool) {
	var value []byte
	err := s.db.QueryRow(getValue, key).Scan(&value)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Err(err).Str("key", key).Msg("cache read failed, treating as absent")
		}
		return nil, false
	}

	return value, true
}

func (s *sqliteStore) Save(key string, value []byte) error {
	if _, err := s.db.Exec(upsertValue, key, value); err != nil {
		s.logger.Err(err).Str("key", key).Msg("cache write failed")
		return fmt.Errorf("save cache entry %q: %w", key, err)
	}

	return nil
}

func createCacheFileIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("error creating cache dir: %w", err)
			}
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("error creating cache file: %w", err)
		}
		f.Close()
	}

	return nil
}
