package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSectionNotAnObject(t *testing.T) {
	errs := validateSection("hero", "not an object")

	require.Len(t, errs, 1)
	assert.Equal(t, "contentSections.hero must be an object", errs[0])
}

func TestHeroRequiresTitle(t *testing.T) {
	errs := validateSection("hero", map[string]any{"subtitle": "s"})
	assert.Contains(t, errs, `contentSections.hero missing required key "title"`)

	errs = validateSection("hero", map[string]any{"title": "Convert cups"})
	assert.Empty(t, errs)
}

func TestQuickReferenceItems(t *testing.T) {
	t.Run("valid item", func(t *testing.T) {
		section := map[string]any{
			"title": "Common Ingredients",
			"items": []any{
				map[string]any{"ingredient": "flour", "cup": 120.0, "icon": "🌾"},
			},
		}
		assert.Empty(t, validateSection("quickReference", section))
	})

	t.Run("missing ingredient", func(t *testing.T) {
		section := map[string]any{
			"title": "T",
			"items": []any{map[string]any{"cup": 120.0}},
		}
		errs := validateSection("quickReference", section)
		assert.Contains(t, errs, `contentSections.quickReference.items[0] missing required key "ingredient"`)
	})

	t.Run("no conversion value", func(t *testing.T) {
		section := map[string]any{
			"title": "T",
			"items": []any{map[string]any{"ingredient": "flour", "icon": "🌾", "tip": "sift first"}},
		}
		errs := validateSection("quickReference", section)
		require.Len(t, errs, 1)
		assert.Equal(t, "contentSections.quickReference.items[0] must have at least one conversion value", errs[0])
	})

	t.Run("nil value does not count", func(t *testing.T) {
		section := map[string]any{
			"title": "T",
			"items": []any{map[string]any{"ingredient": "flour", "cup": nil}},
		}
		errs := validateSection("quickReference", section)
		assert.Contains(t, errs, "contentSections.quickReference.items[0] must have at least one conversion value")
	})

	t.Run("item not an object", func(t *testing.T) {
		section := map[string]any{"title": "T", "items": []any{"flour"}}
		errs := validateSection("quickReference", section)
		assert.Contains(t, errs, "contentSections.quickReference.items[0] must be an object")
	})
}

func TestComparisonTablePairedColumnsRows(t *testing.T) {
	t.Run("neither is fine", func(t *testing.T) {
		assert.Empty(t, validateSection("comparisonTable", map[string]any{"title": "T"}))
	})

	t.Run("columns without rows", func(t *testing.T) {
		section := map[string]any{"title": "T", "columns": []any{"Unit"}}
		errs := validateSection("comparisonTable", section)
		assert.Contains(t, errs, `contentSections.comparisonTable must define "columns" and "rows" together`)
	})

	t.Run("both together", func(t *testing.T) {
		section := map[string]any{
			"title":   "T",
			"columns": []any{"Unit", "Grams"},
			"rows":    []any{[]any{"cup", "240"}},
		}
		assert.Empty(t, validateSection("comparisonTable", section))
	})
}

func TestTipsEitherField(t *testing.T) {
	t.Run("neither tips nor items", func(t *testing.T) {
		errs := validateSection("tips", map[string]any{"title": "T"})
		assert.Contains(t, errs, `contentSections.tips must define "tips" or "items"`)
	})

	t.Run("tips alone", func(t *testing.T) {
		section := map[string]any{"title": "T", "tips": []any{"level off the cup"}}
		assert.Empty(t, validateSection("tips", section))
	})

	t.Run("items alone", func(t *testing.T) {
		section := map[string]any{"title": "T", "items": []any{"use a scale"}}
		assert.Empty(t, validateSection("tips", section))
	})
}

func TestArrayFieldMinItems(t *testing.T) {
	section := map[string]any{"title": "T", "steps": []any{}}

	errs := validateSection("stepByStep", section)
	assert.Contains(t, errs, "contentSections.stepByStep.steps must have at least 1 item(s)")
}

func TestArrayFieldWrongType(t *testing.T) {
	section := map[string]any{"title": "T", "steps": "not an array"}

	errs := validateSection("stepByStep", section)
	assert.Contains(t, errs, "contentSections.stepByStep.steps must be an array")
}

func TestObjectItemRequiredKeys(t *testing.T) {
	section := map[string]any{
		"title":    "Mistakes",
		"mistakes": []any{map[string]any{"mistake": "packing flour"}},
	}

	errs := validateSection("commonMistakes", section)
	assert.Contains(t, errs, `contentSections.commonMistakes.mistakes[0] missing required key "solution"`)
}

func TestStringItemRejectsBlank(t *testing.T) {
	section := map[string]any{"title": "T", "tips": []any{"  "}}

	errs := validateSection("tips", section)
	assert.Contains(t, errs, "contentSections.tips.tips[0] must be a non-empty string")
}

// A rule that panics must degrade to a single diagnostic instead of
// aborting the run.
type panickyRule struct{}

func (panickyRule) check(section map[string]any, path string) []string {
	panic("boom")
}

func TestRunSectionRuleRecoversPanic(t *testing.T) {
	errs := runSectionRule(panickyRule{}, map[string]any{}, "contentSections.hero")

	require.Len(t, errs, 1)
	assert.Equal(t, "contentSections.hero validation failed: boom", errs[0])
}

func TestSectionNamesSortedAndComplete(t *testing.T) {
	names := SectionNames()

	assert.Len(t, names, len(sectionSchemas))
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "hero")
	assert.Contains(t, names, "quickReference")
}
