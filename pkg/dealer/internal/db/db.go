package db

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Smarter-Poker/Smarter-Poker-Diamond-Arena-sub003/pkg/poker"
)

// DB is a sqlite-backed snapshot store.
type DB struct {
	*sql.DB
}

// NewDB opens (or creates) the snapshot database at the given path.
func NewDB(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			table_id TEXT NOT NULL,
			hand_num INTEGER NOT NULL,
			street TEXT NOT NULL,
			pot_total INTEGER NOT NULL,
			active_seat INTEGER NOT NULL,
			state TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_snapshots_hand
		ON snapshots (table_id, hand_num)
	`)
	return err
}

// SaveSnapshot records a point-in-time table state.
func (db *DB) SaveSnapshot(state *poker.TableState) error {
	blob, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %v", err)
	}

	_, err = db.Exec(`
		INSERT INTO snapshots (table_id, hand_num, street, pot_total, active_seat, state)
		VALUES (?, ?, ?, ?, ?, ?)
	`, state.TableID, state.HandNum, state.Street.String(), state.PotTotal(), state.ActiveSeat, string(blob))
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %v", err)
	}
	return nil
}

// LatestSnapshot returns the most recent stored state for a table, or
// sql.ErrNoRows when none exists.
func (db *DB) LatestSnapshot(tableID string) (*poker.TableState, error) {
	var blob string
	err := db.QueryRow(`
		SELECT state FROM snapshots
		WHERE table_id = ?
		ORDER BY id DESC LIMIT 1
	`, tableID).Scan(&blob)
	if err != nil {
		return nil, err
	}

	var state poker.TableState
	if err := json.Unmarshal([]byte(blob), &state); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %v", err)
	}
	return &state, nil
}

// HandCount returns how many snapshots exist for a table.
func (db *DB) HandCount(tableID string) (int64, error) {
	var n int64
	err := db.QueryRow("SELECT COUNT(*) FROM snapshots WHERE table_id = ?", tableID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count snapshots: %v", err)
	}
	return n, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.DB.Close()
}
