// Package drafts persists in-progress wizard sessions as JSON files so
// an abandoned sell or listing flow can be resumed later. Writes go
// through a temp file plus rename so a crash mid-save never leaves a
// half-written draft, and a directory watcher lets the drafts browser
// refresh live.
package drafts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/swapcell/swapcell/internal/wizard"
)

// Store manages the drafts directory.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir, creating it if needed.
func NewStore(dir string) *Store {
	_ = os.MkdirAll(dir, 0o755)
	return &Store{dir: dir}
}

// Dir returns the drafts directory.
func (s *Store) Dir() string { return s.dir }

// Save persists a session snapshot. The caller passes detached data
// (FormState.Snapshot copies the values), never the live session: Save
// is called from command goroutines while the event loop keeps writing
// the form. A draft id of "" mints a new one; the returned draft
// carries the id for subsequent saves.
func (s *Store) Save(id string, flow wizard.Flow, step wizard.Step, values map[wizard.Field]string) (*Draft, error) {
	now := time.Now().UTC()
	d := Draft{
		ID:        id,
		Flow:      flow,
		Step:      step,
		CreatedAt: now,
		UpdatedAt: now,
		Values:    values,
	}

	if d.ID == "" {
		d.ID = uuid.NewString()
	} else if prev, err := s.Get(d.ID); err == nil {
		d.CreatedAt = prev.CreatedAt
	}

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal draft: %w", err)
	}

	// Write to a temp file in the same directory for atomic rename.
	tmp, err := os.CreateTemp(s.dir, ".tmp-*.json")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	finalPath := filepath.Join(s.dir, d.ID+".json")
	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("rename to final path: %w", err)
	}

	return &d, nil
}

// Get reads a single draft by id.
func (s *Store) Get(id string) (*Draft, error) {
	return s.readFile(filepath.Join(s.dir, id+".json"))
}

// List returns all drafts, most recently updated first. Malformed
// files are skipped.
func (s *Store) List() ([]Draft, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read drafts dir %s: %w", s.dir, err)
	}

	var out []Draft
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") || strings.HasPrefix(name, ".tmp-") {
			continue
		}
		d, err := s.readFile(filepath.Join(s.dir, name))
		if err != nil {
			continue
		}
		out = append(out, *d)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// Remove deletes a draft. Removing a missing draft is not an error.
func (s *Store) Remove(id string) error {
	err := os.Remove(filepath.Join(s.dir, id+".json"))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove draft %s: %w", id, err)
	}
	return nil
}

// ResumeSession rebuilds a wizard session from a draft.
func (d Draft) ResumeSession() *wizard.Session {
	return wizard.Resume(d.Flow, d.Step, d.Values)
}

func (s *Store) readFile(path string) (*Draft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read draft file: %w", err)
	}
	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse draft file %s: %w", path, err)
	}
	return &d, nil
}
