// Package sqlite provides a journal.Store backed by a SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tnwae/nuventure/internal/journal"
	"modernc.org/sqlite"
)

// sqliteConstraint is the primary result code for constraint failures.
const sqliteConstraint = 19

// Store is a journal.Store on a single SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens the database in file, creating it and its schema as needed.
func Open(file string) (*Store, error) {
	st := &Store{}

	var err error
	st.db, err = sql.Open("sqlite", file)
	if err != nil {
		return nil, wrapDBError(err)
	}

	if err := st.init(); err != nil {
		st.db.Close()
		return nil, err
	}

	return st, nil
}

func (s *Store) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS entries (
		id TEXT NOT NULL PRIMARY KEY,
		session_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		input TEXT NOT NULL,
		outcome TEXT NOT NULL,
		verb TEXT NOT NULL,
		target TEXT NOT NULL,
		implement TEXT NOT NULL,
		error_kind TEXT NOT NULL,
		created INTEGER NOT NULL,
		UNIQUE (session_id, seq)
	);`)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

func (s *Store) Record(ctx context.Context, e journal.Entry) (journal.Entry, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return journal.Entry{}, fmt.Errorf("could not generate ID: %w", err)
	}

	stmt, err := s.db.PrepareContext(ctx, `INSERT INTO entries (id, session_id, seq, input, outcome, verb, target, implement, error_kind, created) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return journal.Entry{}, wrapDBError(err)
	}
	defer stmt.Close()

	now := time.Now()

	_, err = stmt.ExecContext(
		ctx,
		newUUID.String(),
		e.Session.String(),
		e.Seq,
		e.Input,
		e.Outcome,
		e.Verb,
		e.Target,
		e.Implement,
		e.ErrorKind,
		now.Unix(),
	)
	if err != nil {
		return journal.Entry{}, wrapDBError(err)
	}

	return s.GetByID(ctx, newUUID)
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (journal.Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, session_id, seq, input, outcome, verb, target, implement, error_kind, created FROM entries WHERE id = ?;`,
		id.String(),
	)
	return scanEntry(row)
}

func (s *Store) GetAllBySession(ctx context.Context, session uuid.UUID) ([]journal.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, session_id, seq, input, outcome, verb, target, implement, error_kind, created FROM entries WHERE session_id = ? ORDER BY seq;`,
		session.String(),
	)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	all := []journal.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return all, err
		}
		all = append(all, e)
	}

	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}

	return all, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (journal.Entry, error) {
	var e journal.Entry
	var id, seshID string
	var created int64

	err := row.Scan(
		&id,
		&seshID,
		&e.Seq,
		&e.Input,
		&e.Outcome,
		&e.Verb,
		&e.Target,
		&e.Implement,
		&e.ErrorKind,
		&created,
	)
	if err != nil {
		return e, wrapDBError(err)
	}

	if e.ID, err = uuid.Parse(id); err != nil {
		return e, fmt.Errorf("stored ID %q is invalid: %w", id, journal.ErrDecodingFailure)
	}
	if e.Session, err = uuid.Parse(seshID); err != nil {
		return e, fmt.Errorf("stored session ID %q is invalid: %w", seshID, journal.ErrDecodingFailure)
	}
	e.Created = time.Unix(created, 0)

	return e, nil
}

func wrapDBError(err error) error {
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		// extended codes carry the primary code in the low byte
		if sqliteErr.Code()&0xff == sqliteConstraint {
			return journal.ErrConstraintViolation
		}
		return fmt.Errorf("%s", sqlite.ErrorCodeString[sqliteErr.Code()])
	} else if errors.Is(err, sql.ErrNoRows) {
		return journal.ErrNotFound
	}
	return err
}
