// internal/db/store.go
package db

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"alphaduel/internal/debate"
)

// Store archives completed debate sessions. The live reducer/controller
// core never touches it; only the app layer writes here, after a session
// reaches a terminal status.
type Store struct {
	db *sql.DB
}

// Record is one archived session row.
type Record struct {
	ID              string
	Symbol          string
	Query           string
	Status          string
	Winner          string
	ConfidenceScore int
	WagerAmount     float64
	HCSTxID         string
	WagerTxID       string
	CreatedAt       time.Time
}

// MessageRow is one archived transcript message.
type MessageRow struct {
	ID        int64
	SessionID string
	MsgType   string
	Content   string
	Round     int
	Extra     string // JSON blob of the type-specific fields
	CreatedAt time.Time
}

func Open() (*Store, error) {
	dataDir, err := dataDir()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dataDir, "sessions.db")
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func dataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "alphaduel"), nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		symbol TEXT NOT NULL,
		query TEXT NOT NULL,
		status TEXT NOT NULL,
		winner TEXT DEFAULT '',
		confidence_score INTEGER DEFAULT 0,
		wager_amount REAL DEFAULT 0,
		hcs_tx_id TEXT DEFAULT '',
		wager_tx_id TEXT DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL REFERENCES sessions(id),
		msg_type TEXT NOT NULL,
		content TEXT NOT NULL,
		round INTEGER DEFAULT 0,
		extra TEXT DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSession archives a finished session and its transcript, returning
// the new archive ID.
func (s *Store) SaveSession(sess debate.Session) (string, error) {
	id := uuid.NewString()

	var winner string
	var confidence int
	var wager float64
	var hcsTx, wagerTx string
	if sess.Summary != nil {
		winner = sess.Summary.Winner
		if sess.Summary.ConfidenceScore != nil {
			confidence = *sess.Summary.ConfidenceScore
		}
		if sess.Summary.WagerAmount != nil {
			wager = *sess.Summary.WagerAmount
		}
		if sess.Summary.HCSTx != nil {
			hcsTx = sess.Summary.HCSTx.TxID
		}
		if sess.Summary.WagerTx != nil {
			wagerTx = sess.Summary.WagerTx.TxID
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO sessions (id, symbol, query, status, winner, confidence_score, wager_amount, hcs_tx_id, wager_tx_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, sess.Symbol, sess.Query, string(sess.Status), winner, confidence, wager, hcsTx, wagerTx,
	)
	if err != nil {
		return "", err
	}

	for _, m := range sess.Messages {
		extra, _ := json.Marshal(messageExtra(m))
		_, err = tx.Exec(
			`INSERT INTO messages (session_id, msg_type, content, round, extra) VALUES (?, ?, ?, ?, ?)`,
			id, string(m.Type), m.Content, m.Round, string(extra),
		)
		if err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// messageExtra strips a message down to the fields not stored in columns.
func messageExtra(m debate.Message) map[string]any {
	extra := map[string]any{}
	if m.Confidence != nil {
		extra["confidence"] = *m.Confidence
	}
	if len(m.KeyPoints) > 0 {
		extra["key_points"] = m.KeyPoints
	}
	if m.Winner != "" {
		extra["winner"] = m.Winner
	}
	if m.ConfidenceScore != nil {
		extra["confidence_score"] = *m.ConfidenceScore
	}
	if m.WagerAmount != nil {
		extra["wager_amount"] = *m.WagerAmount
	}
	if len(m.KeyFactors) > 0 {
		extra["key_factors"] = m.KeyFactors
	}
	if m.HCSTx != nil {
		extra["hcs_tx"] = m.HCSTx
	}
	if m.WagerTx != nil {
		extra["wager_tx"] = m.WagerTx
	}
	if len(m.Data) > 0 {
		extra["data"] = m.Data
	}
	return extra
}

// GetSession retrieves an archived session by ID.
func (s *Store) GetSession(id string) (*Record, error) {
	row := s.db.QueryRow(
		`SELECT id, symbol, query, status, winner, confidence_score, wager_amount, hcs_tx_id, wager_tx_id, created_at
		 FROM sessions WHERE id = ?`, id,
	)

	var r Record
	err := row.Scan(&r.ID, &r.Symbol, &r.Query, &r.Status, &r.Winner, &r.ConfidenceScore,
		&r.WagerAmount, &r.HCSTxID, &r.WagerTxID, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListSessions returns archived sessions, newest first.
func (s *Store) ListSessions() ([]Record, error) {
	rows, err := s.db.Query(
		`SELECT id, symbol, query, status, winner, confidence_score, wager_amount, hcs_tx_id, wager_tx_id, created_at
		 FROM sessions ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Symbol, &r.Query, &r.Status, &r.Winner, &r.ConfidenceScore,
			&r.WagerAmount, &r.HCSTxID, &r.WagerTxID, &r.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// GetMessages retrieves the archived transcript for a session.
func (s *Store) GetMessages(sessionID string) ([]MessageRow, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, msg_type, content, round, extra, created_at
		 FROM messages WHERE session_id = ? ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []MessageRow
	for rows.Next() {
		var m MessageRow
		if err := rows.Scan(&m.ID, &m.SessionID, &m.MsgType, &m.Content, &m.Round, &m.Extra, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
