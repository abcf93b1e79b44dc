package stats

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/board/assets"
	"github.com/robalobadob/wordle/apps/board/internal/database"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "wordle.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db, assets.Migrations()))
	return NewStore(db)
}

func TestGet_UnknownPlayer(t *testing.T) {
	st, err := newStore(t).Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, Stats{PlayerID: "nobody", Distribution: map[int]int{}}, st)
}

func TestRecord_Streaks(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.Record(ctx, "p1", true, 3))
	require.NoError(t, s.Record(ctx, "p1", true, 4))
	require.NoError(t, s.Record(ctx, "p1", true, 3))
	require.NoError(t, s.Record(ctx, "p1", false, 6))
	require.NoError(t, s.Record(ctx, "p1", true, 2))

	st, err := s.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, st.GamesPlayed)
	assert.Equal(t, 4, st.Wins)
	assert.Equal(t, 1, st.Streak)
	assert.Equal(t, 3, st.BestStreak)
	assert.Equal(t, map[int]int{2: 1, 3: 2, 4: 1}, st.Distribution)
}

func TestRecord_PlayersAreIndependent(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.Record(ctx, "a", true, 1))
	require.NoError(t, s.Record(ctx, "b", false, 6))

	a, err := s.Get(ctx, "a")
	require.NoError(t, err)
	b, err := s.Get(ctx, "b")
	require.NoError(t, err)

	assert.Equal(t, 1, a.Wins)
	assert.Equal(t, 0, b.Wins)
	assert.Equal(t, 1, b.GamesPlayed)
	assert.Empty(t, b.Distribution)
}

func TestRecord_EmptyPlayer(t *testing.T) {
	assert.Error(t, newStore(t).Record(context.Background(), "", true, 1))
}

func TestRecord_LongWinsShareLastBucket(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.Record(ctx, "p", true, 6))
	require.NoError(t, s.Record(ctx, "p", true, 7))
	require.NoError(t, s.Record(ctx, "p", true, 9))

	st, err := s.Get(ctx, "p")
	require.NoError(t, err)
	assert.Equal(t, map[int]int{6: 3}, st.Distribution)
}
