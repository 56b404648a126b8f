package components

import (
	"github.com/raveheart1/newsgen/internal/workspace"
)

// Diff computes the snapshot for the release being cut. Live components
// keep their provider order, so the snapshot's insertion order (and the
// eventual render order) follows the manifest-path sort.
//
// A component is changed when it is absent from prev or its version
// differs from prev's recorded version. A nil prev means no snapshot was
// ever recorded: every live component is changed.
func Diff(live []workspace.Component, prev *Snapshot) *Snapshot {
	snap := NewSnapshot()
	for _, c := range live {
		state := Changed
		if prev != nil {
			if old, ok := prev.Get(c.Name); ok && old.Version == c.Version {
				state = Unchanged
			}
		}
		snap.Add(c.Name, c.Version, state)
	}
	return snap
}
