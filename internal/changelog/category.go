package changelog

// Category classifies a news fragment by the portion of its filename
// before the first dash. Fragments with an unrecognized prefix are
// reported as warnings and dropped rather than aborting the run.
type Category int

const (
	Security Category = iota
	Added
	Fixed
	Changed
	Removed
	Deprecated

	numCategories
)

// Categories returns all known categories in their fixed rendering order.
func Categories() []Category {
	return []Category{Security, Added, Fixed, Changed, Removed, Deprecated}
}

// ParseCategory maps a fragment filename prefix to its Category.
// The second return value is false for unrecognized prefixes.
func ParseCategory(prefix string) (Category, bool) {
	switch prefix {
	case "security":
		return Security, true
	case "added":
		return Added, true
	case "fixed":
		return Fixed, true
	case "changed":
		return Changed, true
	case "removed":
		return Removed, true
	case "deprecated":
		return Deprecated, true
	}
	return 0, false
}

// String returns the lowercase fragment prefix for the category.
func (c Category) String() string {
	switch c {
	case Security:
		return "security"
	case Added:
		return "added"
	case Fixed:
		return "fixed"
	case Changed:
		return "changed"
	case Removed:
		return "removed"
	case Deprecated:
		return "deprecated"
	default:
		return "unknown"
	}
}

// Heading returns the section heading used in rendered release notes.
func (c Category) Heading() string {
	switch c {
	case Security:
		return "Security"
	case Added:
		return "Added"
	case Fixed:
		return "Fixed"
	case Changed:
		return "Changed"
	case Removed:
		return "Removed"
	case Deprecated:
		return "Deprecated"
	default:
		return "Unknown"
	}
}
