package changelog

import (
	"github.com/raveheart1/newsgen/internal/components"
)

// DefaultReleased is the release date used until a `released` file
// records the actual date.
const DefaultReleased = "Unreleased"

// Release is one versioned set of news entries plus metadata, rendered
// as a single block of the release notes.
type Release struct {
	// Name is the version string, unique within a Changelog.
	Name string
	// Released is the date string from the release's `released` file.
	Released string
	// Components is the component snapshot for this release, if one was
	// recorded or computed.
	Components *components.Snapshot

	ver     version
	entries [numCategories][]string
}

// NewRelease creates a Release for the given version name.
// The name must parse as a dot-separated version triple.
func NewRelease(name string) (*Release, error) {
	v, err := parseVersion(name)
	if err != nil {
		return nil, err
	}
	return &Release{Name: name, Released: DefaultReleased, ver: v}, nil
}

// AddEntry records trimmed fragment text under the given category.
func (r *Release) AddEntry(c Category, text string) {
	r.entries[c] = append(r.entries[c], text)
}

// Entries returns the texts recorded under c, in discovery order.
// Rendering sorts them lexicographically; callers must not rely on
// discovery order surviving to output.
func (r *Release) Entries(c Category) []string {
	return r.entries[c]
}

// HasEntries reports whether any category holds at least one entry.
func (r *Release) HasEntries() bool {
	for _, c := range Categories() {
		if len(r.entries[c]) > 0 {
			return true
		}
	}
	return false
}

// Less orders releases by the version comparison contract, ascending.
func (r *Release) Less(other *Release) bool {
	return compareVersions(r.ver, other.ver) < 0
}
