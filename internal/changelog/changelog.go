package changelog

import "sort"

// Changelog is the aggregate of all releases loaded from a news
// directory, plus an optional static heading and the verbatim legacy
// history blob appended after the newest-first release blocks.
type Changelog struct {
	// Heading is an optional top-level title line.
	Heading string
	// Previous is pre-migration history appended verbatim to the output.
	Previous string

	releases []*Release
}

// Add inserts r keeping the release list sorted ascending by the
// version ordering contract.
func (c *Changelog) Add(r *Release) {
	i := sort.Search(len(c.releases), func(i int) bool {
		return r.Less(c.releases[i])
	})
	c.releases = append(c.releases, nil)
	copy(c.releases[i+1:], c.releases[i:])
	c.releases[i] = r
}

// Releases returns all releases sorted ascending (oldest first).
// Rendering reverses this to newest-first.
func (c *Changelog) Releases() []*Release {
	return c.releases
}

// Len returns the number of loaded releases.
func (c *Changelog) Len() int {
	return len(c.releases)
}
