package share

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

var (
	ErrNotFound = errors.New("share: not found")
	ErrExpired  = errors.New("share: payload expired")
)

// Inbox is the durable staging area for incoming shares. Payloads sit here
// until they are consumed into an add-plan prefill or expire past the
// retention window.
type Inbox struct {
	db *sql.DB
}

func NewInbox(db *sql.DB) (*Inbox, error) {
	if db == nil {
		return nil, errors.New("share: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &Inbox{db: db}, nil
}

// OpenInbox opens (or creates) the inbox database at path and applies
// migrations.
func OpenInbox(path string) (*Inbox, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	inbox, err := NewInbox(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return inbox, nil
}

func (i *Inbox) Close() error {
	return i.db.Close()
}

// Stage inserts a payload into the inbox.
func (i *Inbox) Stage(ctx context.Context, p Payload) error {
	_, err := i.db.ExecContext(ctx, `
		INSERT INTO share_payloads (id, shared_text, shared_url, title, details, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Text, p.URL, p.Title, p.Details, p.CreatedAt.UTC().Format(sqliteTimeLayout),
	)
	return err
}

// Get reads a payload without consuming it. A payload past the retention
// window is deleted and reported as expired.
func (i *Inbox) Get(ctx context.Context, id string, now time.Time) (Payload, error) {
	row := i.db.QueryRowContext(ctx, `
		SELECT id, shared_text, shared_url, title, details, created_at
		FROM share_payloads WHERE id = ?`, id)
	p, err := scanPayload(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Payload{}, ErrNotFound
		}
		return Payload{}, err
	}
	if p.IsExpired(now) {
		_, _ = i.db.ExecContext(ctx, `DELETE FROM share_payloads WHERE id = ?`, id)
		return Payload{}, ErrExpired
	}
	return p, nil
}

// Consume reads and removes a payload in one transaction, so a payload can
// be consumed at most once. An expired payload is removed and reported as
// expired without being handed out.
func (i *Inbox) Consume(ctx context.Context, id string, now time.Time) (Payload, error) {
	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return Payload{}, err
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, `
		SELECT id, shared_text, shared_url, title, details, created_at
		FROM share_payloads WHERE id = ?`, id)
	p, err := scanPayload(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Payload{}, ErrNotFound
		}
		return Payload{}, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM share_payloads WHERE id = ?`, id); err != nil {
		return Payload{}, err
	}
	if err := tx.Commit(); err != nil {
		return Payload{}, err
	}
	if p.IsExpired(now) {
		return Payload{}, ErrExpired
	}
	return p, nil
}

// PruneExpired removes every payload past the retention window and returns
// how many were dropped.
func (i *Inbox) PruneExpired(ctx context.Context, now time.Time) (int, error) {
	cutoff := now.UTC().Add(-RetentionWindow).Format(sqliteTimeLayout)
	res, err := i.db.ExecContext(ctx, `DELETE FROM share_payloads WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	return int(affected), err
}

// RememberReplay records a payload id to consume on the next successful
// sign-in. Re-remembering the same id is a no-op.
func (i *Inbox) RememberReplay(ctx context.Context, payloadID string, now time.Time) error {
	_, err := i.db.ExecContext(ctx, `
		INSERT INTO replay_queue (payload_id, remembered_at) VALUES (?, ?)
		ON CONFLICT (payload_id) DO NOTHING`,
		payloadID, now.UTC().Format(sqliteTimeLayout),
	)
	return err
}

// TakeReplays removes and returns every remembered payload id, oldest first.
// Each id is handed out exactly once.
func (i *Inbox) TakeReplays(ctx context.Context) ([]string, error) {
	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx, `SELECT payload_id FROM replay_queue ORDER BY remembered_at ASC`)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if scanErr := rows.Scan(&id); scanErr != nil {
			rows.Close()
			return nil, scanErr
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) > 0 {
		if _, err := tx.ExecContext(ctx, `DELETE FROM replay_queue`); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return ids, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPayload(s scanner) (Payload, error) {
	var out Payload
	var created string
	if err := s.Scan(&out.ID, &out.Text, &out.URL, &out.Title, &out.Details, &created); err != nil {
		return Payload{}, err
	}
	createdAt, err := time.Parse(sqliteTimeLayout, created)
	if err != nil {
		return Payload{}, err
	}
	out.CreatedAt = createdAt
	return out, nil
}
