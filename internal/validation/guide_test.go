package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionExampleKnown(t *testing.T) {
	example, ok := SectionExample("stepByStep")

	require.True(t, ok)
	assert.Contains(t, example, `"title"`)
	assert.Contains(t, example, `"steps"`)
	assert.Contains(t, example, `"description"`)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(example), &decoded))
}

func TestSectionExampleQuickReferenceItem(t *testing.T) {
	example, ok := SectionExample("quickReference")

	require.True(t, ok)
	assert.Contains(t, example, `"ingredient"`)
	assert.Contains(t, example, `"cup"`)
}

func TestSectionExampleUnknown(t *testing.T) {
	_, ok := SectionExample("nope")
	assert.False(t, ok)
}

func TestFailedSectionTypes(t *testing.T) {
	errs := []string{
		`missing required field "slug"`,
		`contentSections.quickReference.items[0] missing required key "ingredient"`,
		`contentSections.quickReference.items[1] must have at least one conversion value`,
		`contentSections.hero missing required key "title"`,
		`contentSections.madeUp must be an object`,
		"conversions.g.g is missing",
	}

	types := FailedSectionTypes(errs)

	assert.Equal(t, []string{"hero", "quickReference"}, types)
}

func TestFailedSectionTypesEmpty(t *testing.T) {
	assert.Empty(t, FailedSectionTypes([]string{`missing required field "id"`}))
	assert.Empty(t, FailedSectionTypes(nil))
}

func TestStructureGuide(t *testing.T) {
	guide := StructureGuide([]string{"hero", "tips"})

	assert.True(t, strings.HasPrefix(guide, "Expected structure:\n"))
	assert.Contains(t, guide, `"hero"`)
	assert.Contains(t, guide, `"tips"`)
	assert.Contains(t, guide, "Required top-level fields: ")
	assert.Contains(t, guide, "Optional top-level fields: ")
	assert.Contains(t, guide, "contentSequence")
	assert.Contains(t, guide, "conversionFormulas")
}
