// Package changelog aggregates per-change news fragment files into
// versioned, human-readable release notes.
//
// Fragments live under a base directory (news.d by convention) with one
// subdirectory per release. Each fragment file is classified by the prefix
// of its filename before the first dash (security, added, fixed, changed,
// removed, deprecated). Releases are kept sorted ascending by a
// version-string ordering that deliberately compares major and minor
// segments as strings rather than numbers; see Compare for the rationale.
package changelog
