package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ap-script-studio/internal/history"
	"ap-script-studio/internal/wizard"
)

func TestStoreCreateAndGet(t *testing.T) {
	s := NewStore(time.Minute)
	m := wizard.NewMachine(nil, history.NewLedger(), nil)

	id := s.Create(m)
	require.NotEmpty(t, id)

	got, ok := s.Get(id)
	require.True(t, ok)
	assert.Same(t, m, got)
}

func TestStoreUnknownID(t *testing.T) {
	s := NewStore(time.Minute)
	_, ok := s.Get("missing")
	assert.False(t, ok)
}

func TestStoreDistinctIDs(t *testing.T) {
	s := NewStore(time.Minute)
	a := s.Create(wizard.NewMachine(nil, history.NewLedger(), nil))
	b := s.Create(wizard.NewMachine(nil, history.NewLedger(), nil))
	assert.NotEqual(t, a, b)
}
