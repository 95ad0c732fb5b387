// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/ballotbox/election"
)

// Entry is one persisted event. Seq is assigned by the store and strictly
// increases in commit order.
type Entry struct {
	ID         string          `json:"id"`
	Seq        uint64          `json:"seq"`
	Kind       string          `json:"kind"`
	Payload    json.RawMessage `json:"payload"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// Store is the SQL-backed append-only event log. It satisfies election.Sink.
//
// The store is an observer, not a guard: a failed insert is logged and
// dropped rather than surfaced into the state machine, which has already
// committed the mutation the event describes.
type Store struct {
	db *sql.DB

	mu  sync.Mutex
	seq uint64
}

// NewStore wraps db, resuming the sequence from the highest persisted value.
// The schema must already exist (see CreateSchema).
func NewStore(db *sql.DB) (*Store, error) {
	var last sql.NullInt64
	if err := db.QueryRow(`SELECT MAX(seq) FROM event`).Scan(&last); err != nil {
		return nil, err
	}
	return &Store{db: db, seq: uint64(last.Int64)}, nil
}

// Append persists one event.
func (s *Store) Append(ev election.Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		slog.Error("failed to encode event", "kind", ev.Kind(), "error", err)
		return
	}

	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	_, err = s.db.Exec(`
		INSERT INTO event (id, seq, kind, payload, recorded_at)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.NewString(), seq, ev.Kind(), string(payload), time.Now())

	if err != nil {
		slog.Error("failed to append event", "kind", ev.Kind(), "seq", seq, "error", err)
	}
}

// List returns up to limit entries in sequence order. A limit <= 0 returns
// everything.
func (s *Store) List(limit int) ([]Entry, error) {
	query := `
		SELECT id, seq, kind, payload, recorded_at
		FROM event
		ORDER BY seq
	`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.Query(query+` LIMIT $1`, limit)
	} else {
		rows, err = s.db.Query(query)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var payload string
		if err := rows.Scan(&e.ID, &e.Seq, &e.Kind, &payload, &e.RecordedAt); err != nil {
			return nil, err
		}
		e.Payload = json.RawMessage(payload)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of persisted events.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM event`).Scan(&n)
	return n, err
}
