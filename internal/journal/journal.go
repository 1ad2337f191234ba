// Package journal keeps a SQLite log of handled updates.
package journal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/eliseohh/demobot/internal/event"
)

const writeTimeout = 5 * time.Second

type Journal struct {
	db     *DB
	logger *slog.Logger
}

func New(db *DB, logger *slog.Logger) *Journal {
	return &Journal{db: db, logger: logger}
}

// Open is NewDB followed by New.
func Open(path string, logger *slog.Logger) (*Journal, error) {
	db, err := NewDB(path)
	if err != nil {
		return nil, err
	}
	return New(db, logger), nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

// Observe records e. Failures are logged; the update that produced e has
// already been answered.
func (j *Journal) Observe(e event.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := j.Record(ctx, e); err != nil {
		j.logger.Warn("journal write failed", "event_id", e.ID, "error", err)
	}
}

func (j *Journal) Record(ctx context.Context, e event.Event) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO events (id, update_id, chat_id, trigger, action, error, handled_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UpdateID, e.ChatID, e.Trigger, e.Action, e.Error, e.HandledAt.UTC())
	if err != nil {
		return fmt.Errorf("insert event %s: %w", e.ID, err)
	}
	return nil
}

// Recent returns up to n events, newest first.
func (j *Journal) Recent(ctx context.Context, n int) ([]event.Event, error) {
	if n <= 0 {
		return nil, nil
	}

	rows, err := j.db.QueryContext(ctx,
		`SELECT id, update_id, chat_id, trigger, action, error, handled_at FROM events ORDER BY handled_at DESC, rowid DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []event.Event
	for rows.Next() {
		var e event.Event
		if err := rows.Scan(&e.ID, &e.UpdateID, &e.ChatID, &e.Trigger, &e.Action, &e.Error, &e.HandledAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Count returns the number of recorded events.
func (j *Journal) Count(ctx context.Context) (int, error) {
	var count int
	if err := j.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM events").Scan(&count); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return count, nil
}

// Clear removes every recorded event and returns how many there were.
func (j *Journal) Clear(ctx context.Context) (int, error) {
	n, err := j.Count(ctx)
	if err != nil {
		return 0, err
	}
	if err := j.db.Nuke(); err != nil {
		return 0, fmt.Errorf("clear journal: %w", err)
	}
	return n, nil
}
