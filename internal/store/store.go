// Package store owns the whole persistent state of the platform: wallets and
// their transaction logs, the follow graph, posts and engagement, storefronts,
// purchases and commissions, and the notification feed. Every mutation that
// touches more than one row runs inside a single sql.Tx.
package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("entity not found")
	ErrAlreadyRated      = errors.New("sale already rated")
	ErrNotOwner          = errors.New("entity not owned by user")
	ErrInsufficientFunds = errors.New("insufficient balance")
	ErrInvalidInput      = errors.New("invalid input")
)

// Store is the single component owning the embedded database.
type Store struct {
	db    *sql.DB
	mysql bool
}

func New(db *sql.DB, isMySQL bool) *Store {
	return &Store{db: db, mysql: isMySQL}
}

func (s *Store) DB() *sql.DB { return s.db }

// forUpdate returns the row-lock suffix for the active dialect. SQLite
// serializes writers at the connection level, so it needs none.
func (s *Store) forUpdate() string {
	if s.mysql {
		return " FOR UPDATE"
	}
	return ""
}

func newID() string {
	return uuid.NewString()
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// execer is satisfied by both *sql.DB and *sql.Tx so notification emission and
// ledger writes can join a caller's transaction.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
	Query(query string, args ...any) (*sql.Rows, error)
}

// inTx runs fn inside a transaction, rolling back on error.
func (s *Store) inTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
