package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	for _, cat := range Categories() {
		parsed, ok := ParseCategory(cat.String())
		assert.True(t, ok)
		assert.Equal(t, cat, parsed)
	}

	for _, prefix := range []string{"improved", "Added", "ADDED", "", "release"} {
		_, ok := ParseCategory(prefix)
		assert.False(t, ok, "prefix %q must not parse", prefix)
	}
}

func TestCategories_RenderOrder(t *testing.T) {
	var headings []string
	for _, cat := range Categories() {
		headings = append(headings, cat.Heading())
	}
	assert.Equal(t, []string{"Security", "Added", "Fixed", "Changed", "Removed", "Deprecated"}, headings)
}
