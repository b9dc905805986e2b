// Package journal records every line of player input along with what it
// resolved to, grouped by play session.
package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dekarrin/rezi"
	"github.com/google/uuid"
)

var (
	ErrConstraintViolation = errors.New("a uniqueness constraint was violated")
	ErrNotFound            = errors.New("the requested resource was not found")
	ErrDecodingFailure     = errors.New("field could not be decoded from DB storage format to model format")
)

// Store is a persistence layer for journal entries.
type Store interface {
	// Record saves e. The ID and Created fields of e are assigned by the
	// Store and the saved Entry is returned.
	Record(ctx context.Context, e Entry) (Entry, error)

	// GetByID returns the entry with the given ID.
	GetByID(ctx context.Context, id uuid.UUID) (Entry, error)

	// GetAllBySession returns every entry of a session ordered by Seq.
	GetAllBySession(ctx context.Context, session uuid.UUID) ([]Entry, error)

	Close() error
}

// Entry is one line of input and its outcome.
type Entry struct {
	ID      uuid.UUID
	Session uuid.UUID

	// Seq is the position of the entry within its session, starting at 1.
	Seq int

	// Input is the line as it was normalized for resolution.
	Input string

	// Outcome is the resolution state, such as "resolved" or "failed".
	Outcome string

	Verb      string
	Target    string
	Implement string

	// ErrorKind is the key of the error kind, if resolution or invocation
	// failed with one.
	ErrorKind string

	Created time.Time
}

// MarshalBinary converts e into a slice of bytes that can be decoded with
// UnmarshalBinary.
func (e Entry) MarshalBinary() ([]byte, error) {
	var data []byte

	data = append(data, rezi.EncString(e.ID.String())...)
	data = append(data, rezi.EncString(e.Session.String())...)
	data = append(data, rezi.EncInt(e.Seq)...)
	data = append(data, rezi.EncString(e.Input)...)
	data = append(data, rezi.EncString(e.Outcome)...)
	data = append(data, rezi.EncString(e.Verb)...)
	data = append(data, rezi.EncString(e.Target)...)
	data = append(data, rezi.EncString(e.Implement)...)
	data = append(data, rezi.EncString(e.ErrorKind)...)
	data = append(data, rezi.EncInt(int(e.Created.Unix()))...)

	return data, nil
}

// UnmarshalBinary decodes a slice of bytes created by MarshalBinary into e.
// All of e's fields will be replaced by the fields decoded from data.
func (e *Entry) UnmarshalBinary(data []byte) error {
	var decoded Entry
	var n int
	var err error

	var idStr string
	idStr, n, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("id: %w", err)
	}
	data = data[n:]
	if decoded.ID, err = uuid.Parse(idStr); err != nil {
		return fmt.Errorf("id: %w", err)
	}

	var sessionStr string
	sessionStr, n, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	data = data[n:]
	if decoded.Session, err = uuid.Parse(sessionStr); err != nil {
		return fmt.Errorf("session: %w", err)
	}

	decoded.Seq, n, err = rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("seq: %w", err)
	}
	data = data[n:]

	strFields := []struct {
		name string
		dest *string
	}{
		{"input", &decoded.Input},
		{"outcome", &decoded.Outcome},
		{"verb", &decoded.Verb},
		{"target", &decoded.Target},
		{"implement", &decoded.Implement},
		{"error kind", &decoded.ErrorKind},
	}
	for _, f := range strFields {
		*f.dest, n, err = rezi.DecString(data)
		if err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
		data = data[n:]
	}

	var created int
	created, _, err = rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("created: %w", err)
	}
	decoded.Created = time.Unix(int64(created), 0)

	*e = decoded
	return nil
}
