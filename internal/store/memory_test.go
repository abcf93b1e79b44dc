package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/board/internal/game"
)

type oneWord string

func (w oneWord) IsValidGuess(s string) bool     { return s == string(w) }
func (w oneWord) PickSolution() (string, error) { return string(w), nil }
func (w oneWord) WordLength() int               { return len(w) }

func newSession(t *testing.T) *game.Session {
	t.Helper()
	s := game.NewSession(oneWord("crane"))
	require.NoError(t, s.Start())
	return s
}

func TestMemory_SaveUpdateDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	s := newSession(t)

	require.NoError(t, m.Save(ctx, s))
	assert.Equal(t, 1, m.Len())

	err := m.Update(ctx, s.ID(), func(got *game.Session) error {
		assert.Same(t, s, got)
		got.InputLetter('c')
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Snapshot().Col)

	require.NoError(t, m.Delete(ctx, s.ID()))
	assert.Equal(t, 0, m.Len())
	assert.ErrorIs(t, m.Update(ctx, s.ID(), func(*game.Session) error { return nil }), ErrNotFound)
}

func TestMemory_UpdatePassesErrorThrough(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	s := newSession(t)
	require.NoError(t, m.Save(ctx, s))

	boom := errors.New("boom")
	assert.ErrorIs(t, m.Update(ctx, s.ID(), func(*game.Session) error { return boom }), boom)
}

func TestMemory_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := NewMemoryStore()

	assert.ErrorIs(t, m.Save(ctx, newSession(t)), context.Canceled)
	assert.Equal(t, 0, m.Len())
}

func TestMemory_Sweep(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := newMemory(func() time.Time { return now })

	old := newSession(t)
	require.NoError(t, m.Save(ctx, old))

	now = now.Add(time.Hour)
	fresh := newSession(t)
	require.NoError(t, m.Save(ctx, fresh))

	now = now.Add(30 * time.Minute)
	assert.Equal(t, 1, m.Sweep(time.Hour))
	assert.Equal(t, 1, m.Len())
	assert.ErrorIs(t, m.Update(ctx, old.ID(), func(*game.Session) error { return nil }), ErrNotFound)
	assert.NoError(t, m.Update(ctx, fresh.ID(), func(*game.Session) error { return nil }))
}

func TestMemory_ConcurrentUpdatesAreSerialized(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	s := newSession(t)
	require.NoError(t, m.Save(ctx, s))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Update(ctx, s.ID(), func(s *game.Session) error {
				s.InputLetter('a')
				s.InputBackspace()
				return nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, s.Snapshot().Col)
}
