package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jason-s-yu/hanabi/service/internal/sim"
)

func openTemp(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "hanabi.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunRoundTrip(t *testing.T) {
	db := openTemp(t)
	started := time.UnixMilli(1_700_000_000_123)
	r := Run{
		ID:        NewRunID(),
		StartedAt: started,
		Bot:       sim.BotAgent,
		Players:   4,
		Suits:     6,
		Seed:      99,
		Finesse:   true,
		Games:     10,
		Errored:   1,
		Mean:      17.25,
		Median:    18,
	}
	require.NoError(t, db.SaveRun(r))

	got, err := db.LoadRun(r.ID)
	require.NoError(t, err)
	assert.True(t, started.Equal(got.StartedAt))
	got.StartedAt = r.StartedAt
	r.Started = started.UnixMilli()
	assert.Equal(t, r, got)

	_, err = db.LoadRun("missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestListRunsNewestFirst(t *testing.T) {
	db := openTemp(t)
	base := time.UnixMilli(1_700_000_000_000)
	for i := range 3 {
		require.NoError(t, db.SaveRun(Run{ID: NewRunID(), StartedAt: base.Add(time.Duration(i) * time.Minute), Games: i}))
	}
	runs, err := db.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, []int{2, 1, 0}, []int{runs[0].Games, runs[1].Games, runs[2].Games})
}

func TestOutcomesRoundTrip(t *testing.T) {
	db := openTemp(t)
	id := NewRunID()
	require.NoError(t, db.SaveRun(Run{ID: id, StartedAt: time.Now(), Games: 3}))

	outs := []sim.Outcome{
		{Game: 2, Seed: 12, Points: 0, Reason: sim.ReasonError, Err: errors.New("seat 1 turn: boom")},
		{Game: 0, Seed: 10, Points: 22, Reason: "EmptyDrawPile", Turns: 70, Duration: 1500 * time.Millisecond},
		{Game: 1, Seed: 11, Points: 30, Reason: "PerfectGame", Turns: 66},
	}
	require.NoError(t, db.SaveOutcomes(id, outs))

	rows, err := db.LoadOutcomes(id)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, OutcomeRow{RunID: id, Game: 0, Seed: 10, Points: 22, Reason: "EmptyDrawPile", Turns: 70, DurationMS: 1500}, rows[0])
	assert.Equal(t, 30, rows[1].Points)
	assert.Equal(t, "seat 1 turn: boom", rows[2].Error)

	other, err := db.LoadOutcomes(NewRunID())
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hanabi.db")
	db, err := Open(path)
	require.NoError(t, err)
	id := NewRunID()
	require.NoError(t, db.SaveRun(Run{ID: id, StartedAt: time.Now()}))
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()
	_, err = db.LoadRun(id)
	assert.NoError(t, err)
}
