// Package components tracks which independently versioned workspace
// packages changed between consecutive releases. Each release persists a
// snapshot of component versions as components.json in its news
// directory; the next release diffs live workspace metadata against it.
package components

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// SnapshotFile is the per-release snapshot filename.
const SnapshotFile = "components.json"

// State records whether a component's version moved since the previous
// release.
type State string

const (
	Changed   State = "changed"
	Unchanged State = "unchanged"
)

// Component is one tracked workspace package within a snapshot.
type Component struct {
	Name    string
	Version string
	State   State
}

// Snapshot is the persisted record of component versions and states for
// one release. Iteration order is insertion order; it governs both the
// JSON key order on disk and the bullet order in rendered release notes.
type Snapshot struct {
	components []Component
	index      map[string]int
}

// NewSnapshot returns an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{index: make(map[string]int)}
}

// Add records a component. Adding an existing name updates it in place
// without disturbing its position.
func (s *Snapshot) Add(name, version string, state State) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[name]; ok {
		s.components[i].Version = version
		s.components[i].State = state
		return
	}
	s.index[name] = len(s.components)
	s.components = append(s.components, Component{Name: name, Version: version, State: state})
}

// Get returns the component recorded under name.
func (s *Snapshot) Get(name string) (Component, bool) {
	i, ok := s.index[name]
	if !ok {
		return Component{}, false
	}
	return s.components[i], true
}

// Components returns all components in insertion order.
func (s *Snapshot) Components() []Component {
	return s.components
}

// Len returns the number of recorded components.
func (s *Snapshot) Len() int {
	return len(s.components)
}

// HasChanges reports whether at least one component is marked changed.
func (s *Snapshot) HasChanges() bool {
	for _, c := range s.components {
		if c.State == Changed {
			return true
		}
	}
	return false
}

// snapshotEntry is the on-disk value for one component.
type snapshotEntry struct {
	Version string `json:"version"`
	State   State  `json:"state"`
}

// MarshalJSON renders the snapshot as a JSON object with keys in
// insertion order.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, c := range s.components {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(snapshotEntry{Version: c.Version, State: c.State})
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')
		b.Write(val)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// UnmarshalJSON reads a snapshot object preserving the file's key order.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("snapshot must be a JSON object, got %v", tok)
	}

	s.components = nil
	s.index = make(map[string]int)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("reading snapshot key: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("snapshot key must be a string, got %v", keyTok)
		}

		var entry snapshotEntry
		if err := dec.Decode(&entry); err != nil {
			return fmt.Errorf("reading snapshot entry %q: %w", name, err)
		}
		s.Add(name, entry.Version, entry.State)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads the snapshot persisted under the given release
// directory. A malformed or unreadable file is fatal.
func LoadSnapshot(releaseDir string) (*Snapshot, error) {
	path := filepath.Join(releaseDir, SnapshotFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", SnapshotFile, err)
	}

	snap := NewSnapshot()
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", SnapshotFile, err)
	}
	return snap, nil
}

// LoadPrevious reads the previous release's snapshot. A missing file
// means this is the first tracked release: it returns nil without error
// so every live component diffs as changed.
func LoadPrevious(releaseDir string) (*Snapshot, error) {
	snap, err := LoadSnapshot(releaseDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Write persists the snapshot as pretty-printed components.json under
// the given release directory, overwriting any existing file.
func (s *Snapshot) Write(releaseDir string) error {
	data, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", SnapshotFile, err)
	}
	path := filepath.Join(releaseDir, SnapshotFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", SnapshotFile, err)
	}
	return nil
}
