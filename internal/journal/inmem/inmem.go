// Package inmem provides a journal.Store that keeps entries in memory for the
// life of the process.
package inmem

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tnwae/nuventure/internal/journal"
)

type seqKey struct {
	session uuid.UUID
	seq     int
}

// Store is an in-memory journal.Store. The zero value is not ready for use;
// call New.
type Store struct {
	mtx       sync.RWMutex
	entries   map[uuid.UUID]journal.Entry
	bySession map[uuid.UUID][]uuid.UUID
	seqs      map[seqKey]struct{}
}

func New() *Store {
	return &Store{
		entries:   make(map[uuid.UUID]journal.Entry),
		bySession: make(map[uuid.UUID][]uuid.UUID),
		seqs:      make(map[seqKey]struct{}),
	}
}

func (s *Store) Record(ctx context.Context, e journal.Entry) (journal.Entry, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return journal.Entry{}, fmt.Errorf("could not generate ID: %w", err)
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	k := seqKey{session: e.Session, seq: e.Seq}
	if _, ok := s.seqs[k]; ok {
		return journal.Entry{}, journal.ErrConstraintViolation
	}

	e.ID = newUUID
	e.Created = time.Now()

	s.entries[e.ID] = e
	s.seqs[k] = struct{}{}
	s.bySession[e.Session] = append(s.bySession[e.Session], e.ID)

	return e, nil
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (journal.Entry, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		return journal.Entry{}, journal.ErrNotFound
	}
	return e, nil
}

func (s *Store) GetAllBySession(ctx context.Context, session uuid.UUID) ([]journal.Entry, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	ids := s.bySession[session]
	all := make([]journal.Entry, len(ids))
	for i := range ids {
		all[i] = s.entries[ids[i]]
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Seq < all[j].Seq
	})

	return all, nil
}

func (s *Store) Close() error {
	return nil
}
