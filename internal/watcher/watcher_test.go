package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilters(t *testing.T) {
	assert.True(t, JSONFilter("site.config.json"))
	assert.False(t, JSONFilter("notes.txt"))

	assert.True(t, NoHiddenFilter("content/site.config.json"))
	assert.False(t, NoHiddenFilter("content/.site.config.json.swp"))

	filter := NoOutputFilter("public")
	assert.False(t, filter(filepath.Join("public", "index.html")))
	assert.True(t, filter(filepath.Join("content", "site.config.json")))
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "created", EventTypeCreated.String())
	assert.Equal(t, "modified", EventTypeModified.String())
	assert.Equal(t, "deleted", EventTypeDeleted.String())
	assert.Equal(t, "renamed", EventTypeRenamed.String())
	assert.Equal(t, "unknown", EventType(99).String())
}

func TestWatcherDeliversDebouncedBatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	w, err := New(50 * time.Millisecond)
	require.NoError(t, err)
	defer w.Stop()

	var mu sync.Mutex
	var batches [][]ChangeEvent
	received := make(chan struct{}, 1)

	w.AddFilter(JSONFilter)
	w.AddHandler(func(events []ChangeEvent) error {
		mu.Lock()
		batches = append(batches, events)
		mu.Unlock()
		select {
		case received <- struct{}{}:
		default:
		}
		return nil
	})
	require.NoError(t, w.AddPath(dir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	// A burst of writes to the same file collapses into one batch entry.
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte(`{"converters": []}`), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-received:
	case <-time.After(5 * time.Second):
		t.Fatal("no change batch delivered")
	}

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, batches)
	require.Len(t, batches[0], 1)
	assert.Equal(t, path, batches[0][0].Path)
}

func TestWatcherFiltersNonMatchingFiles(t *testing.T) {
	dir := t.TempDir()

	w, err := New(30 * time.Millisecond)
	require.NoError(t, err)
	defer w.Stop()

	received := make(chan []ChangeEvent, 1)
	w.AddFilter(JSONFilter)
	w.AddHandler(func(events []ChangeEvent) error {
		select {
		case received <- events:
		default:
		}
		return nil
	})
	require.NoError(t, w.AddPath(dir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case events := <-received:
		t.Fatalf("unexpected batch for filtered file: %v", events)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestAddPathMissing(t *testing.T) {
	w, err := New(time.Millisecond)
	require.NoError(t, err)
	defer w.Stop()

	err = w.AddPath(filepath.Join(t.TempDir(), "absent"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot watch")
}
