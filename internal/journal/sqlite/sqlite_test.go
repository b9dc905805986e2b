package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tnwae/nuventure/internal/journal/journaltest"
)

func Test_Store(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	defer st.Close()

	journaltest.Run(t, st)
}

func Test_Open_Reopen(t *testing.T) {
	file := filepath.Join(t.TempDir(), "journal.db")

	st, err := Open(file)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	st, err = Open(file)
	require.NoError(t, err)
	require.NoError(t, st.Close())
}
