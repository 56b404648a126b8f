package changelog

import (
	"io"
	"sort"
	"strings"

	"github.com/raveheart1/newsgen/internal/components"
)

// wrapWidth is the fixed output column width, including the bullet indent.
const wrapWidth = 80

// componentsPreamble introduces the changed-component bullet list.
const componentsPreamble = "This release contains the following new component versions:"

// Render writes the full release notes document: the optional heading,
// one block per release newest-first separated by blank lines, then the
// verbatim previous-history blob.
//
// Rendering is a pure function of the changelog state; the same input
// always yields byte-identical output.
func Render(c *Changelog, w io.Writer) error {
	var b strings.Builder

	if c.Heading != "" {
		b.WriteString("# " + c.Heading + "\n")
	}

	for i := len(c.releases) - 1; i >= 0; i-- {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		renderRelease(c.releases[i], &b)
	}

	if c.Previous != "" {
		b.WriteString("\n")
		b.WriteString(c.Previous)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderString is a convenience wrapper that renders to a string.
func RenderString(c *Changelog) (string, error) {
	var b strings.Builder
	if err := Render(c, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// renderRelease writes one release block: the heading line, the changed
// component bullets when a snapshot with changes is attached, then each
// non-empty category section with its entries lexicographically sorted
// and wrapped to the output width.
func renderRelease(r *Release, b *strings.Builder) {
	b.WriteString("## " + r.Name + " (" + r.Released + ")\n")

	if r.Components != nil && r.Components.HasChanges() {
		b.WriteString("\n" + componentsPreamble + "\n\n")
		for _, comp := range r.Components.Components() {
			if comp.State == components.Changed {
				b.WriteString("- " + comp.Name + " " + comp.Version + "\n")
			}
		}
	}

	for _, cat := range Categories() {
		entries := r.Entries(cat)
		if len(entries) == 0 {
			continue
		}

		b.WriteString("\n### " + cat.Heading() + "\n\n")

		sorted := make([]string, len(entries))
		copy(sorted, entries)
		sort.Strings(sorted)

		for _, entry := range sorted {
			b.WriteString(wrapEntry(entry, wrapWidth))
			b.WriteString("\n")
		}
	}
}

// wrapEntry greedily fills text to the target width with a leading "- "
// bullet and a two-space continuation indent. Runs of whitespace in the
// input collapse to single spaces and the width includes the indent.
// A single word longer than the width (a URL, typically) is emitted
// unbroken on its own line rather than split mid-word.
func wrapEntry(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	line := "- " + words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) <= width {
			line += " " + word
			continue
		}
		b.WriteString(line)
		b.WriteString("\n")
		line = "  " + word
	}
	b.WriteString(line)

	return b.String()
}
