package changelog

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/raveheart1/newsgen/internal/components"
	"golang.org/x/term"
)

// categoryStyle defines the color and icon for a category heading in
// terminal previews.
type categoryStyle struct {
	color *color.Color
	icon  string
}

var categoryStyles = map[Category]categoryStyle{
	Security:   {color: color.New(color.FgMagenta), icon: "🔒"},
	Added:      {color: color.New(color.FgGreen), icon: "✓"},
	Fixed:      {color: color.New(color.FgYellow), icon: "⚡"},
	Changed:    {color: color.New(color.FgBlue), icon: "~"},
	Removed:    {color: color.New(color.FgRed), icon: "✗"},
	Deprecated: {color: color.New(color.FgRed), icon: "⚠"},
}

var previewHeader = color.New(color.FgCyan, color.Bold)

// PreviewOptions controls terminal preview formatting.
type PreviewOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// Preview writes the changelog to the writer with terminal styling,
// newest release first. The content matches Render; only headings gain
// colors and icons, so the preview stays faithful to the final artifact.
func Preview(c *Changelog, w io.Writer, opts PreviewOptions) error {
	width := resolveWidth(opts.MaxWidth)

	if c.Heading != "" {
		if err := writeHeading(w, "# "+c.Heading, opts); err != nil {
			return err
		}
	}

	rels := c.Releases()
	for i := len(rels) - 1; i >= 0; i-- {
		if i < len(rels)-1 || c.Heading != "" {
			fmt.Fprintln(w)
		}
		if err := previewRelease(rels[i], w, opts, width); err != nil {
			return fmt.Errorf("previewing release %s: %w", rels[i].Name, err)
		}
	}

	if c.Previous != "" {
		fmt.Fprintln(w)
		fmt.Fprint(w, c.Previous)
	}

	return nil
}

func previewRelease(r *Release, w io.Writer, opts PreviewOptions, width int) error {
	if err := writeHeading(w, fmt.Sprintf("## %s (%s)", r.Name, r.Released), opts); err != nil {
		return err
	}

	if r.Components != nil && r.Components.HasChanges() {
		fmt.Fprintf(w, "\n%s\n\n", componentsPreamble)
		for _, comp := range r.Components.Components() {
			if comp.State == components.Changed {
				fmt.Fprintf(w, "- %s %s\n", comp.Name, comp.Version)
			}
		}
	}

	for _, cat := range Categories() {
		entries := r.Entries(cat)
		if len(entries) == 0 {
			continue
		}

		if err := writeCategoryHeading(w, cat, opts); err != nil {
			return err
		}

		sorted := make([]string, len(entries))
		copy(sorted, entries)
		sort.Strings(sorted)

		for _, entry := range sorted {
			fmt.Fprintln(w, wrapEntry(entry, width))
		}
	}

	return nil
}

func writeHeading(w io.Writer, text string, opts PreviewOptions) error {
	if opts.Plain {
		_, err := fmt.Fprintln(w, text)
		return err
	}
	_, err := previewHeader.Fprintln(w, text)
	return err
}

func writeCategoryHeading(w io.Writer, cat Category, opts PreviewOptions) error {
	style := categoryStyles[cat]
	if opts.Plain {
		_, err := fmt.Fprintf(w, "\n### %s\n\n", cat.Heading())
		return err
	}
	if _, err := fmt.Fprint(w, "\n"); err != nil {
		return err
	}
	if _, err := style.color.Fprintf(w, "### %s %s\n", style.icon, cat.Heading()); err != nil {
		return err
	}
	_, err := fmt.Fprint(w, "\n")
	return err
}

// resolveWidth returns the effective wrap width: an explicit MaxWidth,
// else the terminal width, else the fixed output width.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		if w > wrapWidth {
			return wrapWidth
		}
		return w
	}
	return wrapWidth
}
