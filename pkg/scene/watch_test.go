package scene

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "watched.toml")
	other := filepath.Join(dir, "other.toml")
	if err := os.WriteFile(path, []byte("# Scene: Watched\n"), 0o644); err != nil {
		t.Fatalf("Failed to write scene: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan string, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(p string) { changes <- p })
	}()

	// Rewrite slower than the debounce interval until the watcher is registered and reports it
	deadline := time.After(5 * time.Second)
	ticker := time.NewTicker(300 * time.Millisecond)
	defer ticker.Stop()

	var got string
wait:
	for {
		select {
		case got = <-changes:
			break wait
		case <-ticker.C:
			if err := os.WriteFile(other, []byte("ignored"), 0o644); err != nil {
				t.Fatalf("Failed to write other file: %v", err)
			}
			if err := os.WriteFile(path, []byte("# Scene: Watched Again\n"), 0o644); err != nil {
				t.Fatalf("Failed to rewrite scene: %v", err)
			}
		case <-deadline:
			t.Fatal("Timed out waiting for change notification")
		}
	}

	if got != path {
		t.Errorf("Expected change for %s, got %s", path, got)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch returned error after cancel: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "missing", "scene.toml"), func(string) {})
	if err == nil {
		t.Error("Expected an error when the directory does not exist")
	}
}
