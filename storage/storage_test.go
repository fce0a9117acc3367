package storage

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/promptcast/promptcast/models"
)

func TestTempStoreWriteAndRemove(t *testing.T) {
	store := NewTempStore(t.TempDir())

	path, err := store.Write([]byte("audio bytes"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read temp file: %v", err)
	}
	if !bytes.Equal(data, []byte("audio bytes")) {
		t.Fatalf("unexpected temp file content: %q", data)
	}

	if err := store.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("expected temp file to be gone")
	}
}

func TestTempStoreDistinctFiles(t *testing.T) {
	store := NewTempStore(t.TempDir())

	a, err := store.Write([]byte("a"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := store.Write([]byte("b"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == b {
		t.Fatalf("expected distinct temp files, both were %s", a)
	}
}

func TestAssetStoreURL(t *testing.T) {
	assets, err := NewAssetStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	url := assets.URL("abc.wav")
	if url != "/static/audio/abc.wav" {
		t.Fatalf("unexpected url: %s", url)
	}
}

func TestAssetStoreCreateAndRemove(t *testing.T) {
	assets, err := NewAssetStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, err := assets.Create("episode.wav")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.WriteString("riff"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !strings.HasPrefix(f.Name(), assets.Dir) {
		t.Fatalf("asset %s created outside %s", f.Name(), assets.Dir)
	}
	if err := assets.Remove("episode.wav"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(f.Name()); !os.IsNotExist(err) {
		t.Fatal("expected asset to be gone")
	}
}

func TestEpisodeStorePerSession(t *testing.T) {
	store := NewEpisodeStore()

	store.Append("session-a", models.Episode{AssetName: "one.wav", CreatedAt: time.Now()})
	store.Append("session-a", models.Episode{AssetName: "two.wav", CreatedAt: time.Now()})
	store.Append("session-b", models.Episode{AssetName: "other.wav", CreatedAt: time.Now()})

	a := store.List("session-a")
	if len(a) != 2 {
		t.Fatalf("expected 2 episodes for session-a, got %d", len(a))
	}
	if a[0].AssetName != "one.wav" || a[1].AssetName != "two.wav" {
		t.Fatalf("expected episodes in insertion order, got %+v", a)
	}
	if len(store.List("session-b")) != 1 {
		t.Fatal("expected 1 episode for session-b")
	}
	if len(store.List("session-c")) != 0 {
		t.Fatal("expected no episodes for unknown session")
	}
}
