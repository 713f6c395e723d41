package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/frontboat/death-mountain-sub001/internal/apperr"
	"github.com/frontboat/death-mountain-sub001/internal/game"
	"github.com/frontboat/death-mountain-sub001/internal/wire"
)

// DB is the confirmed event log. Only decoded receipt events are stored;
// optimistic predictions never reach it.
type DB struct {
	conn *sql.DB
	mu   sync.RWMutex
}

// Receipt describes one decoded receipt batch
type Receipt struct {
	ID           string    `json:"id"`
	AdventurerID string    `json:"adventurer_id"`
	TxHash       string    `json:"tx_hash,omitempty"`
	LogCount     int       `json:"log_count"`
	EventCount   int       `json:"event_count"`
	FailureCount int       `json:"failure_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewDB creates a new database connection
func NewDB(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		return nil, err
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS receipts (
		id TEXT PRIMARY KEY,
		adventurer_id TEXT NOT NULL,
		tx_hash TEXT,
		log_count INTEGER NOT NULL,
		event_count INTEGER NOT NULL,
		failure_count INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		receipt_id TEXT NOT NULL,
		adventurer_id TEXT NOT NULL,
		log_index INTEGER NOT NULL,
		type TEXT NOT NULL,
		action_count INTEGER NOT NULL,
		event_json TEXT NOT NULL,
		FOREIGN KEY (receipt_id) REFERENCES receipts(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS adventurer_ownership (
		adventurer_id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_receipts_adventurer_id ON receipts(adventurer_id);
	CREATE INDEX IF NOT EXISTS idx_events_adventurer_id ON events(adventurer_id, id);
	CREATE INDEX IF NOT EXISTS idx_adventurer_ownership_user_id ON adventurer_ownership(user_id);
	`

	_, err := db.conn.Exec(schema)
	return err
}

// SaveReceipt stores a receipt and its events in emission order.
// logIndexes[i] is the receipt position of events[i].
func (db *DB) SaveReceipt(r Receipt, events []game.GameEvent, logIndexes []int) error {
	if len(logIndexes) != len(events) {
		return fmt.Errorf("save receipt %s: %d events but %d log indexes", r.ID, len(events), len(logIndexes))
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	_, err = tx.Exec(`
		INSERT INTO receipts (id, adventurer_id, tx_hash, log_count, event_count, failure_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.AdventurerID, nullString(r.TxHash), r.LogCount, len(events), r.FailureCount, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert receipt: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO events (receipt_id, adventurer_id, log_index, type, action_count, event_json)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, ev := range events {
		data, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("encode event %d: %w", i, err)
		}
		if _, err := stmt.Exec(r.ID, r.AdventurerID, logIndexes[i], string(ev.Type), ev.ActionCount, string(data)); err != nil {
			return fmt.Errorf("insert event %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// ListEvents returns an adventurer's latest limit events, oldest first.
// A limit of zero or less returns the whole history.
func (db *DB) ListEvents(adventurerID string, limit int) ([]game.GameEvent, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = db.conn.Query(`
			SELECT event_json FROM (
				SELECT id, event_json FROM events WHERE adventurer_id = ? ORDER BY id DESC LIMIT ?
			) ORDER BY id ASC
		`, adventurerID, limit)
	} else {
		rows, err = db.conn.Query(`
			SELECT event_json FROM events WHERE adventurer_id = ? ORDER BY id ASC
		`, adventurerID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []game.GameEvent{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		ev, err := game.UnmarshalEvent([]byte(data))
		if err != nil {
			return nil, fmt.Errorf("decode stored event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// History adapts ListEvents to replaying a whole adventurer history
func (db *DB) History(id wire.Felt) ([]game.GameEvent, error) {
	return db.ListEvents(id.String(), 0)
}

// GetReceipt loads one receipt batch
func (db *DB) GetReceipt(id string) (Receipt, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var (
		r      Receipt
		txHash sql.NullString
	)
	err := db.conn.QueryRow(`
		SELECT id, adventurer_id, tx_hash, log_count, event_count, failure_count, created_at
		FROM receipts WHERE id = ?
	`, id).Scan(&r.ID, &r.AdventurerID, &txHash, &r.LogCount, &r.EventCount, &r.FailureCount, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Receipt{}, apperr.WithMetadata(apperr.CodeNotFound, "receipt not found", map[string]string{"receipt_id": id})
	}
	if err != nil {
		return Receipt{}, err
	}
	r.TxHash = txHash.String
	return r, nil
}

// ListReceipts returns an adventurer's receipts, newest first
func (db *DB) ListReceipts(adventurerID string) ([]Receipt, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	rows, err := db.conn.Query(`
		SELECT id, adventurer_id, tx_hash, log_count, event_count, failure_count, created_at
		FROM receipts WHERE adventurer_id = ? ORDER BY created_at DESC, rowid DESC
	`, adventurerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	receipts := []Receipt{}
	for rows.Next() {
		var (
			r      Receipt
			txHash sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.AdventurerID, &txHash, &r.LogCount, &r.EventCount, &r.FailureCount, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.TxHash = txHash.String
		receipts = append(receipts, r)
	}
	return receipts, rows.Err()
}

// ClaimAdventurer records userID as the adventurer's owner unless another
// user already owns it. It reports whether userID owns the adventurer.
func (db *DB) ClaimAdventurer(adventurerID, userID string) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.conn.Exec(`
		INSERT OR IGNORE INTO adventurer_ownership (adventurer_id, user_id)
		VALUES (?, ?)
	`, adventurerID, userID)
	if err != nil {
		return false, err
	}

	var owner string
	err = db.conn.QueryRow(`
		SELECT user_id FROM adventurer_ownership WHERE adventurer_id = ?
	`, adventurerID).Scan(&owner)
	if err != nil {
		return false, err
	}
	return owner == userID, nil
}

// GetAdventurerOwner returns the owner of an adventurer
func (db *DB) GetAdventurerOwner(adventurerID string) (string, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var userID string
	err := db.conn.QueryRow(`
		SELECT user_id FROM adventurer_ownership WHERE adventurer_id = ?
	`, adventurerID).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperr.WithMetadata(apperr.CodeNotFound, "adventurer has no owner", map[string]string{"adventurer_id": adventurerID})
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
