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

func TestMarkdownFilter(t *testing.T) {
	assert.True(t, MarkdownFilter("content/article.md"))
	assert.True(t, MarkdownFilter("content/ARTICLE.MD"))
	assert.False(t, MarkdownFilter("content/style.css"))
	assert.False(t, MarkdownFilter("content/article.md.bak"))
}

func TestDebouncer_GroupsBursts(t *testing.T) {
	d := &Debouncer{
		delay:   20 * time.Millisecond,
		events:  make(chan ChangeEvent, 100),
		output:  make(chan []ChangeEvent, 10),
		pending: make([]ChangeEvent, 0),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.start(ctx)

	// A burst of writes to two files
	for i := 0; i < 5; i++ {
		d.events <- ChangeEvent{Type: EventTypeModified, Path: "a.md"}
		d.events <- ChangeEvent{Type: EventTypeModified, Path: "b.md"}
	}

	select {
	case events := <-d.output:
		assert.Len(t, events, 2, "events deduplicated by path")
	case <-time.After(time.Second):
		t.Fatal("expected a debounced batch")
	}

	// No trailing batch
	select {
	case events := <-d.output:
		t.Fatalf("unexpected second batch: %v", events)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestFileWatcher_DetectsWrite(t *testing.T) {
	dir := t.TempDir()

	// The watcher only accepts paths under the working directory
	oldWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(oldWD)

	fw, err := NewFileWatcher(20 * time.Millisecond)
	require.NoError(t, err)
	defer fw.Stop()

	fw.AddFilter(MarkdownFilter)

	var mu sync.Mutex
	var got []ChangeEvent
	fw.AddHandler(func(events []ChangeEvent) error {
		mu.Lock()
		got = append(got, events...)
		mu.Unlock()
		return nil
	})

	require.NoError(t, fw.AddRecursive("."))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, fw.Start(ctx))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "note.md"), []byte("# hi\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0644))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		for _, event := range got {
			if filepath.Base(event.Path) == "note.md" {
				return true
			}
		}
		return false
	}, 2*time.Second, 20*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	for _, event := range got {
		assert.NotEqual(t, "ignored.txt", filepath.Base(event.Path), "filtered file leaked through")
	}
}

func TestFileWatcher_RejectsOutsidePaths(t *testing.T) {
	fw, err := NewFileWatcher(20 * time.Millisecond)
	require.NoError(t, err)
	defer fw.Stop()

	assert.Error(t, fw.AddRecursive("../.."))
	assert.Error(t, fw.AddRecursive("/"))
}
