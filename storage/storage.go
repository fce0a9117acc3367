// Package storage holds the audio stores and the in-memory per-session
// episode history.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/promptcast/promptcast/models"
)

// TempStore persists per-run audio segments to ephemeral storage. Files it
// creates are owned by the pipeline run that wrote them and are deleted
// unconditionally when the run finishes.
type TempStore struct {
	Dir string
}

func NewTempStore(dir string) *TempStore {
	if dir == "" {
		dir = os.TempDir()
	}
	return &TempStore{Dir: dir}
}

// Write stores data in a fresh temporary file and returns its path.
func (t *TempStore) Write(data []byte) (string, error) {
	f, err := os.CreateTemp(t.Dir, "segment-*.wav")
	if err != nil {
		return "", fmt.Errorf("create temp segment: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write temp segment: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close temp segment: %w", err)
	}
	return f.Name(), nil
}

// Remove deletes one temporary segment file.
func (t *TempStore) Remove(path string) error {
	return os.Remove(path)
}

// AssetStore persists final podcast assets under the served audio directory.
// Assets are write-once and never mutated after creation.
type AssetStore struct {
	Dir string
}

func NewAssetStore(dir string) (*AssetStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create asset dir: %w", err)
	}
	return &AssetStore{Dir: dir}, nil
}

// Create opens a new asset file for writing.
func (a *AssetStore) Create(name string) (*os.File, error) {
	return os.Create(filepath.Join(a.Dir, name))
}

// Remove deletes an asset, used to discard partially written output on a
// failed stitch.
func (a *AssetStore) Remove(name string) error {
	return os.Remove(filepath.Join(a.Dir, name))
}

// URL returns the serving path for a stored asset.
func (a *AssetStore) URL(name string) string {
	return "/static/audio/" + name
}

// EpisodeStore keeps completed episodes per session in memory.
type EpisodeStore struct {
	mu       sync.Mutex
	episodes map[string][]models.Episode
}

func NewEpisodeStore() *EpisodeStore {
	return &EpisodeStore{
		episodes: make(map[string][]models.Episode),
	}
}

// Append records a completed episode for the session.
func (e *EpisodeStore) Append(sessionID string, ep models.Episode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.episodes[sessionID] = append(e.episodes[sessionID], ep)
}

// List returns the episodes recorded for the session, oldest first.
func (e *EpisodeStore) List(sessionID string) []models.Episode {
	e.mu.Lock()
	defer e.mu.Unlock()
	eps := e.episodes[sessionID]
	out := make([]models.Episode, len(eps))
	copy(out, eps)
	return out
}
