package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/arkadios/glossabot/models"
)

// ErrNotFound reports that no live session matched the lookup.
var ErrNotFound = errors.New("session not found")

// SessionStore is the narrow CRUD contract the game engine requires from
// session persistence.
type SessionStore interface {
	GetByID(ctx context.Context, id string) (*models.Session, error)
	GetLatestByOwner(ctx context.Context, ownerID int64) (*models.Session, error)
	Put(ctx context.Context, s *models.Session) error
	Delete(ctx context.Context, id string) error
}

// Sessions is the sqlite-backed SessionStore.
type Sessions struct {
	db  *DB
	now func() time.Time
}

// NewSessions creates a session store over an open database.
func NewSessions(db *DB) *Sessions {
	return &Sessions{db: db, now: time.Now}
}

// GetByID loads a session by id. Expired rows are deleted lazily and
// reported as ErrNotFound.
func (s *Sessions) GetByID(ctx context.Context, id string) (*models.Session, error) {
	var document string
	var expiresAt int64
	err := s.db.conn.QueryRowContext(ctx,
		"SELECT document, expires_at FROM sessions WHERE id = ?", id,
	).Scan(&document, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "query session")
	}

	if expiresAt <= s.now().Unix() {
		_ = s.Delete(ctx, id)
		return nil, ErrNotFound
	}

	return decodeSession(document)
}

// GetLatestByOwner loads the owner's latest session via the owner index.
func (s *Sessions) GetLatestByOwner(ctx context.Context, ownerID int64) (*models.Session, error) {
	var sessionID string
	err := s.db.conn.QueryRowContext(ctx,
		"SELECT session_id FROM owner_index WHERE owner_id = ?", ownerID,
	).Scan(&sessionID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "query owner index")
	}
	return s.GetByID(ctx, sessionID)
}

// Put writes a session unconditionally (last writer wins; there is no
// version check) and points the owner index at it.
func (s *Sessions) Put(ctx context.Context, sess *models.Session) error {
	document, err := json.Marshal(sess.ToRecord())
	if err != nil {
		return errors.Wrap(err, "encode session")
	}

	tx, err := s.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO sessions (id, owner_id, document, expires_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		sess.ID, sess.OwnerID, string(document), sess.ExpiresAt, sess.UpdatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "write session")
	}

	_, err = tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO owner_index (owner_id, session_id) VALUES (?, ?)",
		sess.OwnerID, sess.ID,
	)
	if err != nil {
		return errors.Wrap(err, "write owner index")
	}

	return errors.Wrap(tx.Commit(), "commit session")
}

// Delete removes a session and any owner-index entry pointing at it.
func (s *Sessions) Delete(ctx context.Context, id string) error {
	tx, err := s.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id); err != nil {
		return errors.Wrap(err, "delete session")
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM owner_index WHERE session_id = ?", id); err != nil {
		return errors.Wrap(err, "delete owner index")
	}

	return errors.Wrap(tx.Commit(), "commit delete")
}

func decodeSession(document string) (*models.Session, error) {
	var rec map[string]any
	if err := json.Unmarshal([]byte(document), &rec); err != nil {
		return nil, errors.Wrap(err, "decode session document")
	}
	sess, err := models.SessionFromRecord(rec)
	if err != nil {
		return nil, errors.Wrap(err, "rebuild session")
	}
	return sess, nil
}
