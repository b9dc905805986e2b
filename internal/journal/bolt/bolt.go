// Package bolt provides a journal.Store backed by a bbolt database file. Each
// session gets its own bucket of entries keyed by sequence number.
package bolt

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tnwae/nuventure/internal/journal"
	bbolt "go.etcd.io/bbolt"
)

var (
	bucketSessions = []byte("sessions")
	bucketIDs      = []byte("ids")
)

// Store is a journal.Store on a bbolt database.
type Store struct {
	db *bbolt.DB
}

// Open opens or creates the database at path and ensures the top-level
// buckets exist.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketSessions, bucketIDs} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create buckets: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Record(ctx context.Context, e journal.Entry) (journal.Entry, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return journal.Entry{}, fmt.Errorf("could not generate ID: %w", err)
	}
	e.ID = newUUID
	e.Created = time.Unix(time.Now().Unix(), 0)

	data, err := e.MarshalBinary()
	if err != nil {
		return journal.Entry{}, fmt.Errorf("encode entry: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		seshes := tx.Bucket(bucketSessions)
		b, err := seshes.CreateBucketIfNotExists(sessionKey(e.Session))
		if err != nil {
			return err
		}

		k := seqToKey(e.Seq)
		if b.Get(k) != nil {
			return journal.ErrConstraintViolation
		}
		if err := b.Put(k, data); err != nil {
			return err
		}

		ref := append(sessionKey(e.Session), k...)
		return tx.Bucket(bucketIDs).Put(e.ID[:], ref)
	})
	if err != nil {
		return journal.Entry{}, err
	}

	return e, nil
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (journal.Entry, error) {
	var e journal.Entry

	err := s.db.View(func(tx *bbolt.Tx) error {
		ref := tx.Bucket(bucketIDs).Get(id[:])
		if ref == nil {
			return journal.ErrNotFound
		}
		if len(ref) != 16+8 {
			return journal.ErrDecodingFailure
		}

		b := tx.Bucket(bucketSessions).Bucket(ref[:16])
		if b == nil {
			return journal.ErrNotFound
		}
		data := b.Get(ref[16:])
		if data == nil {
			return journal.ErrNotFound
		}

		if err := e.UnmarshalBinary(data); err != nil {
			return fmt.Errorf("%w: %s", journal.ErrDecodingFailure, err)
		}
		return nil
	})

	return e, err
}

func (s *Store) GetAllBySession(ctx context.Context, session uuid.UUID) ([]journal.Entry, error) {
	all := []journal.Entry{}

	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketSessions).Bucket(sessionKey(session))
		if b == nil {
			return nil
		}

		// keys are big-endian so cursor order is sequence order
		return b.ForEach(func(k, v []byte) error {
			var e journal.Entry
			if err := e.UnmarshalBinary(v); err != nil {
				return fmt.Errorf("%w: seq %d: %s", journal.ErrDecodingFailure, keyToSeq(k), err)
			}
			all = append(all, e)
			return nil
		})
	})

	return all, err
}

func (s *Store) Close() error {
	return s.db.Close()
}

func sessionKey(id uuid.UUID) []byte {
	k := make([]byte, 16)
	copy(k, id[:])
	return k
}

func seqToKey(n int) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(n))
	return buf
}

func keyToSeq(b []byte) int {
	return int(binary.BigEndian.Uint64(b))
}
