// Package source holds the parsed log collection behind the analytics
// API and keeps it current: in watch mode, OS-level file notifications
// trigger a reload so served analytics always reflect the file on disk.
package source

import (
	"context"
	"log"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/mthomas46/jirassic-pack-sub000/internal/model"
	"github.com/mthomas46/jirassic-pack-sub000/internal/parser"
)

// Source wraps one log file and its parsed entries.
type Source struct {
	path string

	mu      sync.RWMutex
	entries []model.LogEntry
	diag    string
}

// New creates a Source for the given log file and loads it once.
func New(path string) (*Source, error) {
	s := &Source{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the watched log file path.
func (s *Source) Path() string { return s.path }

// Entries returns the current parsed collection. Callers must not
// mutate the returned slice.
func (s *Source) Entries() []model.LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries
}

// Diagnostic returns the human-readable note from the last load, such
// as a missing-file message. Empty when the load was clean.
func (s *Source) Diagnostic() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.diag
}

// Reload re-parses the log file and swaps in the fresh collection.
func (s *Source) Reload() error {
	entries, diag, err := parser.ParseFile(s.path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.entries = entries
	s.diag = diag
	s.mu.Unlock()
	return nil
}

// Watch reloads the source whenever the file is written, created, or
// rotated. The parent directory is watched so a recreated file is picked
// up. Blocks until the context is cancelled.
func (s *Source) Watch(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	dir := filepath.Dir(s.path)
	if err := fsw.Add(dir); err != nil {
		return err
	}
	target, _ := filepath.Abs(s.path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			abs, _ := filepath.Abs(ev.Name)
			if abs != target {
				continue
			}
			switch {
			case ev.Op&fsnotify.Write != 0,
				ev.Op&fsnotify.Create != 0,
				ev.Op&fsnotify.Remove != 0,
				ev.Op&fsnotify.Rename != 0:
				if err := s.Reload(); err != nil {
					log.Printf("reload %s: %v", s.path, err)
				}
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Printf("watcher error: %v", err)
		}
	}
}
