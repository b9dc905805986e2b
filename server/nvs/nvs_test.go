package nvs

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tnwae/nuventure/internal/command"
	"github.com/tnwae/nuventure/internal/journal"
	"github.com/tnwae/nuventure/internal/journal/inmem"
	"github.com/tnwae/nuventure/server/serr"
)

func newTestService(t *testing.T, store journal.Store) *Service {
	tbl, err := LoadTable("")
	require.NoError(t, err)

	svc, err := New(Config{Table: tbl, Journal: store, Registry: prometheus.NewRegistry()})
	require.NoError(t, err)
	return svc
}

func Test_New_RequiresTable(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func Test_Resolve_NewSession(t *testing.T) {
	assert := assert.New(t)
	svc := newTestService(t, nil)

	res, err := svc.Resolve(context.Background(), uuid.Nil, "Inspect the LAMP")
	require.NoError(t, err)

	assert.NotEqual(uuid.Nil, res.Session)
	assert.Equal(1, res.Seq)
	assert.Equal("inspect the lamp", res.Input)
	assert.Equal(command.Resolved, res.Outcome.State)
	assert.Equal("lamp", res.Outcome.Action.Target())
	assert.Empty(res.Message)

	err = res.Outcome.Action.Invoke(context.Background())
	assert.ErrorIs(err, ErrNotInvocable)
}

func Test_Resolve_Messages(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "bad argument to zero-arg verb", input: "look around", expect: "Just type \"look\" by itself."},
		{name: "wrong noun count", input: "attack goblin", expect: "With what, your bare hands?"},
		{name: "too many nouns", input: "take lamp sword", expect: "There is no lamp sword here to take."},
		{name: "help for cheat verb", input: "help xyzzy", expect: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(t, nil)

			res, err := svc.Resolve(context.Background(), uuid.Nil, tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expect, res.Message)
		})
	}
}

func Test_Resolve_ContinuesJournaledSession(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	store := inmem.New()
	session := uuid.New()

	_, err := store.Record(ctx, journal.Entry{Session: session, Seq: 1, Input: "look"})
	require.NoError(t, err)
	_, err = store.Record(ctx, journal.Entry{Session: session, Seq: 2, Input: "north"})
	require.NoError(t, err)

	svc := newTestService(t, store)

	res, err := svc.Resolve(ctx, session, "south")
	require.NoError(t, err)
	assert.Equal(3, res.Seq)

	res, err = svc.Resolve(ctx, session, "east")
	require.NoError(t, err)
	assert.Equal(4, res.Seq)

	entries, err := svc.Journal(ctx, session)
	require.NoError(t, err)
	assert.Len(entries, 4)
}

func Test_Journal_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := newTestService(t, nil).Journal(ctx, uuid.New())
	assert.ErrorIs(t, err, serr.ErrNotFound)

	_, err = newTestService(t, inmem.New()).Journal(ctx, uuid.New())
	assert.ErrorIs(t, err, serr.ErrNotFound)
}
