package inmem

import (
	"testing"

	"github.com/tnwae/nuventure/internal/journal/journaltest"
)

func Test_Store(t *testing.T) {
	journaltest.Run(t, New())
}
