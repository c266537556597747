// Package storage provides SQLite-based persistence for the reference
// board service. Uses the pure-Go modernc.org/sqlite driver to avoid CGO.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// MemoryPath keeps the database inside the process.
const MemoryPath = ":memory:"

// Store manages the SQLite connection holding the served board.
type Store struct {
	db *sql.DB
}

// BoardRecord is the persisted state of the single board.
type BoardRecord struct {
	Rows      [][]int
	Score     int
	Over      bool
	Moves     int
	UpdatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// MemoryPath (or an empty path) opens a private in-memory database.
func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		dbPath = MemoryPath
	}

	if dbPath != MemoryPath {
		if strings.HasPrefix(dbPath, "~") {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
			}
			dbPath = filepath.Join(home, dbPath[1:])
		}

		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS board (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			rows_json TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			over INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveBoard replaces the stored board.
func (s *Store) SaveBoard(rec BoardRecord) error {
	rowsJSON, err := json.Marshal(rec.Rows)
	if err != nil {
		return fmt.Errorf("storage: cannot encode board: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO board (id, rows_json, score, over, moves, updated_at)
		 VALUES (1, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(id) DO UPDATE SET
		   rows_json = excluded.rows_json,
		   score = excluded.score,
		   over = excluded.over,
		   moves = excluded.moves,
		   updated_at = excluded.updated_at`,
		string(rowsJSON), rec.Score, rec.Over, rec.Moves,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save board: %w", err)
	}
	return nil
}

// LoadBoard returns the stored board. found is false if none was saved yet.
func (s *Store) LoadBoard() (rec BoardRecord, found bool, err error) {
	var rowsJSON string
	var updatedAt any

	err = s.db.QueryRow(
		`SELECT rows_json, score, over, moves, updated_at FROM board WHERE id = 1`,
	).Scan(&rowsJSON, &rec.Score, &rec.Over, &rec.Moves, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return BoardRecord{}, false, nil
	}
	if err != nil {
		return BoardRecord{}, false, fmt.Errorf("storage: cannot query board: %w", err)
	}

	if err := json.Unmarshal([]byte(rowsJSON), &rec.Rows); err != nil {
		return BoardRecord{}, false, fmt.Errorf("storage: corrupt board rows: %w", err)
	}

	// Parse the datetime - handle both time.Time and string
	switch v := updatedAt.(type) {
	case time.Time:
		rec.UpdatedAt = v
	case string:
		if parsed, perr := time.Parse("2006-01-02 15:04:05", v); perr == nil {
			rec.UpdatedAt = parsed
		}
	}

	return rec, true, nil
}

// ClearBoard deletes the stored board.
func (s *Store) ClearBoard() error {
	if _, err := s.db.Exec("DELETE FROM board"); err != nil {
		return fmt.Errorf("storage: cannot clear board: %w", err)
	}
	return nil
}
