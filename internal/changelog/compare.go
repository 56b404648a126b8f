package changelog

import (
	"fmt"
	"strings"
	"unicode"
)

// version holds the three dot-separated segments of a release name.
// The patch segment keeps everything after the second dot, so
// "1.2.beta.1" parses as {major: "1", minor: "2", patch: "beta.1"}.
type version struct {
	major string
	minor string
	patch string
}

// parseVersion splits a release name into its three segments.
// Names that do not contain at least two dots, or that have an empty
// segment, are a fatal input error.
func parseVersion(name string) (version, error) {
	parts := strings.SplitN(name, ".", 3)
	if len(parts) != 3 {
		return version{}, fmt.Errorf("release name %q is not a dot-separated version triple", name)
	}
	for _, p := range parts {
		if p == "" {
			return version{}, fmt.Errorf("release name %q has an empty version segment", name)
		}
	}
	return version{major: parts[0], minor: parts[1], patch: parts[2]}, nil
}

// Compare orders two release names, returning -1, 0, or 1 as a sorts
// before, equal to, or after b.
//
// Major and minor segments compare as plain strings, NOT numerically:
// "10" sorts before "2". This matches the ordering that historical NEWS
// files were generated with, and changing it to numeric comparison would
// silently reorder old releases, so the string behavior is kept and
// pinned by tests. Within an equal major.minor, a patch segment that
// starts with a letter (a pre-release such as "alpha") sorts strictly
// before a plain numeric patch; two patches of the same kind compare as
// strings.
func Compare(a, b string) (int, error) {
	va, err := parseVersion(a)
	if err != nil {
		return 0, err
	}
	vb, err := parseVersion(b)
	if err != nil {
		return 0, err
	}
	return compareVersions(va, vb), nil
}

func compareVersions(a, b version) int {
	if a.major != b.major {
		return strings.Compare(a.major, b.major)
	}
	if a.minor != b.minor {
		return strings.Compare(a.minor, b.minor)
	}

	aAlpha := leadsWithLetter(a.patch)
	bAlpha := leadsWithLetter(b.patch)
	if aAlpha != bAlpha {
		if aAlpha {
			return -1
		}
		return 1
	}
	return strings.Compare(a.patch, b.patch)
}

func leadsWithLetter(s string) bool {
	for _, r := range s {
		return unicode.IsLetter(r)
	}
	return false
}
