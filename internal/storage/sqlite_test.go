package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func run(gameID string, seed int64, ms int) Run {
	return Run{
		GameID:      gameID,
		Seed:        seed,
		Fingerprint: "00000000deadbeef",
		Duration:    time.Duration(ms) * time.Millisecond,
		Score:       max(1, 1000-5*ms/1000),
	}
}

func TestStoreOpenCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "runs.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dbPath)
	require.NoError(t, err, "database file should exist")
}

func TestStoreReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	_, err = store.SaveRun(run("maze", 42, 12000))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.FastestRuns("maze", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
}

func TestSaveRunAssignsIDAndTime(t *testing.T) {
	store := openTestStore(t)

	before := time.Now().Add(-time.Second)
	id, err := store.SaveRun(run("maze", 42, 15500))
	require.NoError(t, err)

	_, err = uuid.Parse(id)
	require.NoError(t, err, "generated id should be a uuid")

	best, err := store.BestRun("maze")
	require.NoError(t, err)
	require.NotNil(t, best)
	require.Equal(t, id, best.ID)
	require.Equal(t, int64(42), best.Seed)
	require.Equal(t, 15500*time.Millisecond, best.Duration)
	require.Equal(t, "00000000deadbeef", best.Fingerprint)
	require.True(t, best.CreatedAt.After(before))
}

func TestSaveRunKeepsGivenID(t *testing.T) {
	store := openTestStore(t)

	id := uuid.NewString()
	r := run("maze", 1, 1000)
	r.ID = id
	r.Player = "alice"
	r.DoorsToggled = 3

	got, err := store.SaveRun(r)
	require.NoError(t, err)
	require.Equal(t, id, got)

	_, err = store.SaveRun(r)
	require.Error(t, err, "duplicate id should be rejected")

	best, err := store.BestRun("maze")
	require.NoError(t, err)
	require.Equal(t, "alice", best.Player)
	require.Equal(t, 3, best.DoorsToggled)
}

func TestFastestRunsOrderAndLimit(t *testing.T) {
	store := openTestStore(t)

	for _, ms := range []int{30000, 12000, 45000, 9000, 20000} {
		_, err := store.SaveRun(run("maze", 7, ms))
		require.NoError(t, err)
	}
	_, err := store.SaveRun(run("maze_hard", 7, 1000))
	require.NoError(t, err)

	runs, err := store.FastestRuns("maze", 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	require.Equal(t, 9*time.Second, runs[0].Duration)
	require.Equal(t, 12*time.Second, runs[1].Duration)
	require.Equal(t, 20*time.Second, runs[2].Duration)

	for _, r := range runs {
		require.Equal(t, "maze", r.GameID)
	}
}

func TestBestRunEmpty(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestRun("maze")
	require.NoError(t, err)
	require.Nil(t, best)
}

func TestRunsForSeed(t *testing.T) {
	store := openTestStore(t)

	for _, r := range []Run{
		run("maze", 42, 20000),
		run("maze_easy", 42, 10000),
		run("maze", 43, 5000),
	} {
		_, err := store.SaveRun(r)
		require.NoError(t, err)
	}

	runs, err := store.RunsForSeed(42, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, "maze_easy", runs[0].GameID)
	require.Equal(t, "maze", runs[1].GameID)
}

func TestClearRuns(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SaveRun(run("maze", 1, 1000))
	require.NoError(t, err)
	_, err = store.SaveRun(run("maze_easy", 1, 1000))
	require.NoError(t, err)

	require.NoError(t, store.ClearRuns("maze"))

	runs, err := store.FastestRuns("maze", 10)
	require.NoError(t, err)
	require.Empty(t, runs)

	runs, err = store.FastestRuns("maze_easy", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1, "other variants are untouched")
}

func TestStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats("maze")
	require.NoError(t, err)
	require.Zero(t, empty.RunsCount)
	require.Zero(t, empty.BestTime)
	require.True(t, empty.LastPlayed.IsZero())

	for _, ms := range []int{10000, 20000, 30000} {
		_, err := store.SaveRun(run("maze", 1, ms))
		require.NoError(t, err)
	}

	stats, err := store.Stats("maze")
	require.NoError(t, err)
	require.Equal(t, 3, stats.RunsCount)
	require.Equal(t, 10*time.Second, stats.BestTime)
	require.Equal(t, 20*time.Second, stats.AverageTime)
	require.Equal(t, 950, stats.BestScore)
	require.False(t, stats.LastPlayed.IsZero())

	all, err := store.AllStats()
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, 3, all["maze"].RunsCount)
}
