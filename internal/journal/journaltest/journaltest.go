// Package journaltest holds checks that every journal.Store implementation
// must pass.
package journaltest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tnwae/nuventure/internal/journal"
)

// Run exercises store. The store must be empty when passed in. It is not
// closed by Run.
func Run(t *testing.T, store journal.Store) {
	ctx := context.Background()

	sessionA := uuid.MustParse("11111111-1111-4111-8111-111111111111")
	sessionB := uuid.MustParse("22222222-2222-4222-8222-222222222222")

	t.Run("record assigns ID and created time", func(t *testing.T) {
		assert := assert.New(t)

		e, err := store.Record(ctx, journal.Entry{
			Session: sessionA,
			Seq:     1,
			Input:   "take lamp",
			Outcome: "resolved",
			Verb:    "take",
			Target:  "lamp",
		})
		require.NoError(t, err)

		assert.NotEqual(uuid.Nil, e.ID)
		assert.False(e.Created.IsZero())
		assert.Equal("take lamp", e.Input)

		got, err := store.GetByID(ctx, e.ID)
		require.NoError(t, err)
		assert.Equal(e.ID, got.ID)
		assert.Equal(sessionA, got.Session)
		assert.Equal("lamp", got.Target)
		assert.Equal(e.Created.Unix(), got.Created.Unix())
	})

	t.Run("entries come back in sequence order", func(t *testing.T) {
		assert := assert.New(t)

		_, err := store.Record(ctx, journal.Entry{Session: sessionA, Seq: 3, Input: "drop lamp", Outcome: "resolved", Verb: "drop", Target: "lamp"})
		require.NoError(t, err)
		_, err = store.Record(ctx, journal.Entry{Session: sessionA, Seq: 2, Input: "take", Outcome: "failed", Verb: "take", ErrorKind: "noargs"})
		require.NoError(t, err)
		_, err = store.Record(ctx, journal.Entry{Session: sessionB, Seq: 1, Input: "look", Outcome: "resolved", Verb: "look"})
		require.NoError(t, err)

		all, err := store.GetAllBySession(ctx, sessionA)
		require.NoError(t, err)
		if !assert.Len(all, 3) {
			return
		}
		assert.Equal(1, all[0].Seq)
		assert.Equal(2, all[1].Seq)
		assert.Equal("noargs", all[1].ErrorKind)
		assert.Equal(3, all[2].Seq)

		all, err = store.GetAllBySession(ctx, sessionB)
		require.NoError(t, err)
		assert.Len(all, 1)
	})

	t.Run("duplicate sequence number is a constraint violation", func(t *testing.T) {
		_, err := store.Record(ctx, journal.Entry{Session: sessionB, Seq: 1, Input: "look again"})
		assert.ErrorIs(t, err, journal.ErrConstraintViolation)
	})

	t.Run("unknown session has no entries", func(t *testing.T) {
		all, err := store.GetAllBySession(ctx, uuid.New())
		assert.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("unknown ID is not found", func(t *testing.T) {
		_, err := store.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, journal.ErrNotFound)
	})
}
