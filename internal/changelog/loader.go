package changelog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/raveheart1/newsgen/internal/components"
)

const (
	// releasedFile overrides a release's date instead of adding an entry.
	releasedFile = "released"
	// previousFile sits next to the release directories and holds the
	// verbatim pre-migration history.
	previousFile = "previous"
)

// Load reads every release from the immediate subdirectories of dir.
// A sibling regular file named "previous" supplies the legacy history
// blob. Fragment files with an unknown category prefix produce a warning
// on warn and are dropped; all other errors (unreadable files, malformed
// snapshots, release names that are not version triples) are fatal.
func Load(dir string, warn io.Writer) (*Changelog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading news directory: %w", err)
	}

	c := &Changelog{}
	for _, entry := range entries {
		switch {
		case entry.IsDir():
			r, err := loadRelease(filepath.Join(dir, entry.Name()), entry.Name(), warn)
			if err != nil {
				return nil, err
			}
			c.Add(r)
		case entry.Type().IsRegular() && entry.Name() == previousFile:
			data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
			if err != nil {
				return nil, fmt.Errorf("reading previous history: %w", err)
			}
			c.Previous = string(data)
		}
	}

	return c, nil
}

// loadRelease populates one Release from the files in its directory.
func loadRelease(dir, name string, warn io.Writer) (*Release, error) {
	r, err := NewRelease(name)
	if err != nil {
		return nil, err
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading release %s: %w", name, err)
	}

	for _, f := range files {
		if !f.Type().IsRegular() {
			continue
		}

		switch f.Name() {
		case releasedFile:
			content, err := readTrimmed(filepath.Join(dir, f.Name()), "release date")
			if err != nil {
				return nil, fmt.Errorf("release %s: %w", name, err)
			}
			r.Released = content
		case components.SnapshotFile:
			snap, err := components.LoadSnapshot(dir)
			if err != nil {
				return nil, fmt.Errorf("release %s: %w", name, err)
			}
			r.Components = snap
		default:
			prefix := f.Name()
			if i := strings.Index(prefix, "-"); i >= 0 {
				prefix = prefix[:i]
			}
			cat, ok := ParseCategory(prefix)
			if !ok {
				fmt.Fprintf(warn, "WARNING: unknown entry type %q in %q\n", prefix, name)
				continue
			}
			content, err := readTrimmed(filepath.Join(dir, f.Name()), "fragment")
			if err != nil {
				return nil, fmt.Errorf("release %s: %w", name, err)
			}
			r.AddEntry(cat, content)
		}
	}

	return r, nil
}

func readTrimmed(path, what string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", what, err)
	}
	return strings.TrimSpace(string(data)), nil
}
