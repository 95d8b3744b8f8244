package daily

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-assist/assets"
	"github.com/robalobadob/wordle-assist/internal/db"
)

func TestWordIndex(t *testing.T) {
	day := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	later := time.Date(2026, 10, 19, 23, 59, 0, 0, time.UTC)

	a := WordIndex(day, "salt", 500)
	assert.Equal(t, a, WordIndex(later, "salt", 500), "same day, same index")
	assert.GreaterOrEqual(t, a, 0)
	assert.Less(t, a, 500)
	assert.Equal(t, 0, WordIndex(day, "salt", 0))

	differs := false
	for d := 1; d <= 10; d++ {
		if WordIndex(day.AddDate(0, 0, d), "salt", 500) != a {
			differs = true
		}
	}
	assert.True(t, differs, "index should move across days")
}

func TestFor(t *testing.T) {
	answers := []string{"crane", "salet", "abbey"}
	day := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	p, ok := For(day, "s", answers)
	require.True(t, ok)
	assert.Equal(t, "2026-01-02", p.Date)
	assert.Equal(t, answers[p.Index], p.Secret)

	_, ok = For(day, "s", nil)
	assert.False(t, ok)
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	conn, err := db.Open(db.Memory)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, db.Migrate(ctx, conn, assets.Migrations()))

	s := NewStore(conn)
	played, err := s.AlreadyPlayed(ctx, "u1", "2026-10-19")
	require.NoError(t, err)
	assert.False(t, played)

	require.NoError(t, s.InsertResult(ctx, Result{UserID: "u1", Date: "2026-10-19", Guesses: 4, Hints: 2, ElapsedMs: 900}))
	require.NoError(t, s.InsertResult(ctx, Result{UserID: "u2", Date: "2026-10-19", Guesses: 4, Hints: 0, ElapsedMs: 5000}))
	require.NoError(t, s.InsertResult(ctx, Result{UserID: "u3", Date: "2026-10-19", Guesses: 3, Hints: 5, ElapsedMs: 9000}))
	// duplicate is ignored
	require.NoError(t, s.InsertResult(ctx, Result{UserID: "u1", Date: "2026-10-19", Guesses: 1}))

	played, err = s.AlreadyPlayed(ctx, "u1", "2026-10-19")
	require.NoError(t, err)
	assert.True(t, played)

	rows, err := s.Leaderboard(ctx, "2026-10-19", 0)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"u3", "u2", "u1"}, []string{rows[0].UserID, rows[1].UserID, rows[2].UserID})
	assert.Equal(t, 4, rows[2].Guesses)
}
