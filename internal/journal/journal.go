// Package journal records every bus emission into SQLite for tracing.
//
// The journal is diagnostics, not persistence: nothing is ever read back
// into application state, and a fresh session starts with an empty
// basket no matter what the journal holds. The read side exists for the
// trace command and post-mortem inspection.
package journal

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/RaimNist/web-larek/internal/bus"
	"github.com/RaimNist/web-larek/internal/event"
)

//go:embed schema.sql
var schemaSQL string

// TokenGenerator produces session tokens. Implemented by UUIDv7Generator
// (production) and testutil.FixedTokens (tests).
type TokenGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 session tokens, so
// sessions listed from the journal come out in creation order.
type UUIDv7Generator struct{}

// Generate returns a new hyphenated UUIDv7 string.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Journal is an append-only event log for one session.
type Journal struct {
	db      *sql.DB
	clock   *Clock
	session string
}

// Entry is one recorded emission.
type Entry struct {
	Session    string
	Seq        int64
	Name       string
	Payload    string
	RecordedAt time.Time
}

// Open creates or opens the journal database at path and starts a new
// session with a token from gen.
//
// The database is configured with WAL mode for concurrent reads, NORMAL
// synchronous mode and a 5-second busy timeout. Idempotent: safe to call
// against an existing journal file.
func Open(path string, gen TokenGenerator) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect journal: %w", err)
	}

	// SQLite allows one writer at a time; a single connection avoids
	// SQLITE_BUSY under steady recording.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply journal schema: %w", err)
	}

	return &Journal{
		db:      db,
		clock:   NewClock(),
		session: gen.Generate(),
	}, nil
}

// Session returns this journal's session token.
func (j *Journal) Session() string {
	return j.session
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	if j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Record appends one emission to the journal. The payload is the event's
// JSON encoding; seq comes from the logical clock.
func (j *Journal) Record(ev event.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event %q: %w", ev.Name(), err)
	}

	_, err = j.db.Exec(
		`INSERT INTO events (session, seq, name, payload) VALUES (?, ?, ?, ?)`,
		j.session, j.clock.Next(), ev.Name(), string(payload),
	)
	if err != nil {
		return fmt.Errorf("record event %q: %w", ev.Name(), err)
	}
	return nil
}

// Attach subscribes the journal to the whole event stream of the bus.
// Recording failures are logged and do not interrupt the cascade: a
// broken journal must never abort a checkout.
func (j *Journal) Attach(b *bus.Bus) bus.Subscription {
	return b.OnMatch(regexp.MustCompile(`.*`), func(ev event.Event) {
		if err := j.Record(ev); err != nil {
			slog.Error("journal record failed", "event", ev.Name(), "error", err)
		}
	})
}

// Entries returns every recorded emission of the given session in seq
// order. An empty session selects the journal's own session.
func (j *Journal) Entries(session string) ([]Entry, error) {
	if session == "" {
		session = j.session
	}

	rows, err := j.db.Query(
		`SELECT session, seq, name, payload, recorded_at
		   FROM events WHERE session = ? ORDER BY seq`,
		session,
	)
	if err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var recordedAt string
		if err := rows.Scan(&e.Session, &e.Seq, &e.Name, &e.Payload, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan journal row: %w", err)
		}
		if ts, err := time.Parse("2006-01-02T15:04:05.999Z", recordedAt); err == nil {
			e.RecordedAt = ts
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	return entries, nil
}

// Sessions lists the distinct session tokens present in the journal,
// oldest first (UUIDv7 tokens sort by creation time).
func (j *Journal) Sessions() ([]string, error) {
	rows, err := j.db.Query(`SELECT DISTINCT session FROM events ORDER BY session`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}
