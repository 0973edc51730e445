// Package staging owns the on-disk staging area for uploaded audio.
// A staged file exists exactly between a successful upload and the next
// transcription attempt against its handle.
package staging

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store writes, reads and removes staged artifacts under a single directory.
type Store struct {
	dir string
}

// Artifact describes a staged file right after it was written.
type Artifact struct {
	Handle     string
	ByteSize   int64
	MimeHint   string
	UploadedAt time.Time
}

// NewStore creates the staging directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating staging dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// NewHandle generates a collision-resistant handle for an upload:
// "audio-<unix ms>-<9 random digits><original extension>".
func NewHandle(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("audio-%d-%09d%s", time.Now().UnixMilli(), rand.IntN(1_000_000_000), ext)
}

// Save writes the uploaded bytes under a fresh handle.
func (s *Store) Save(data []byte, originalName, mimeType string) (*Artifact, error) {
	handle := NewHandle(originalName)
	if err := os.WriteFile(s.path(handle), data, 0o644); err != nil {
		return nil, fmt.Errorf("writing staged file %s: %w", handle, err)
	}
	return &Artifact{
		Handle:     handle,
		ByteSize:   int64(len(data)),
		MimeHint:   mimeType,
		UploadedAt: time.Now().UTC(),
	}, nil
}

// Read returns the full contents of a staged file.
func (s *Store) Read(handle string) ([]byte, error) {
	return os.ReadFile(s.path(handle))
}

// Exists reports whether a staged file is present for the handle.
func (s *Store) Exists(handle string) bool {
	info, err := os.Stat(s.path(handle))
	return err == nil && !info.IsDir()
}

// Remove deletes a staged file. Missing files are not an error: the contract
// is only that the file is gone afterwards.
func (s *Store) Remove(handle string) error {
	err := os.Remove(s.path(handle))
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// List returns the handles currently staged, in directory order.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	handles := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			handles = append(handles, e.Name())
		}
	}
	return handles, nil
}

// Sweep removes staged files older than maxAge. Run at startup so artifacts
// orphaned by a crash between upload and transcription do not accumulate.
// Returns the number of files removed.
func (s *Store) Sweep(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, err
	}
	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if os.Remove(s.path(e.Name())) == nil {
				removed++
			}
		}
	}
	return removed, nil
}

func (s *Store) path(handle string) string {
	// Handles are server-generated, but strip any path components anyway so
	// a crafted handle cannot escape the staging dir.
	return filepath.Join(s.dir, filepath.Base(handle))
}
