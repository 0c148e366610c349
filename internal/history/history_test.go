package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempDB(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	original := dbPathFunc
	dbPathFunc = func() string { return path }
	t.Cleanup(func() { dbPathFunc = original })
}

func TestRecordAndRecent(t *testing.T) {
	useTempDB(t)

	Record(Run{
		Command:   "validate",
		Document:  "site.config.json",
		Started:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Duration:  42,
		Total:     3,
		Valid:     2,
		Failed:    1,
		FailedIDs: []string{"cups-to-grams"},
		Success:   false,
	})

	store, err := Open()
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, "validate", run.Command)
	assert.Equal(t, "site.config.json", run.Document)
	assert.Equal(t, int64(42), run.Duration)
	assert.Equal(t, 3, run.Total)
	assert.Equal(t, 2, run.Valid)
	assert.Equal(t, 1, run.Failed)
	assert.Equal(t, []string{"cups-to-grams"}, run.FailedIDs)
	assert.False(t, run.Success)
	assert.Equal(t, int64(1748779200000), run.Started.UnixMilli())
}

func TestRecentNewestFirst(t *testing.T) {
	useTempDB(t)

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i, command := range []string{"validate", "build", "validate"} {
		Record(Run{
			Command:  command,
			Document: "site.config.json",
			Started:  base.Add(time.Duration(i) * time.Minute),
			Success:  true,
		})
	}

	store, err := Open()
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.Recent(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.True(t, runs[0].Started.After(runs[1].Started))
}

func TestRecentEmptyStore(t *testing.T) {
	useTempDB(t)

	store, err := Open()
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestRecordWithoutFailedIDs(t *testing.T) {
	useTempDB(t)

	Record(Run{Command: "build", Document: "site.config.json", Started: time.Now(), Success: true})

	store, err := Open()
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.Recent(1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Empty(t, runs[0].FailedIDs)
}
