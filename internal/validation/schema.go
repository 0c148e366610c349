// Package validation checks converter records against a static per-section
// schema table, accumulating human-readable diagnostics instead of failing
// fast. Every error string starts with a path (for example
// "contentSections.quickReference.items[2]") so a reader can locate the
// problem without re-reading the document.
package validation

// itemStructure declares the expected shape of one element of a section
// array field.
type itemStructure struct {
	kind         string // "string" or "object"
	requiredKeys []string
}

// itemCheck validates one array element with rules too heterogeneous for
// itemStructure. path identifies the element, e.g. "...items[2]".
type itemCheck func(item any, path string) []string

// arrayField describes one array-valued field of a section.
type arrayField struct {
	name      string
	minItems  int
	item      *itemStructure
	checkItem itemCheck
}

// sectionRule is the escape hatch for cross-field section checks that do
// not fit the key/array model. Implementations must not mutate the section.
type sectionRule interface {
	check(section map[string]any, path string) []string
}

// sectionSchema combines the declarative rules for one section type with
// an optional cross-field rule.
type sectionSchema struct {
	requiredKeys []string
	optionalKeys []string
	arrays       []arrayField
	rule         sectionRule
}

// specialSequenceNames are contentSequence entries exempt from the
// "must exist in contentSections" cross-check: they are rendered from
// top-level record data, not from a content section.
var specialSequenceNames = map[string]bool{
	"converter": true,
	"faq":       true,
	"faqs":      true,
}

var stringItem = &itemStructure{kind: "string"}

func objectItem(keys ...string) *itemStructure {
	return &itemStructure{kind: "object", requiredKeys: keys}
}

// sectionSchemas is the static schema table: one entry per known content
// section type. An unknown key in contentSections is itself an error.
var sectionSchemas = map[string]sectionSchema{
	"hero": {
		requiredKeys: []string{"title"},
		optionalKeys: []string{"subtitle", "description", "icon"},
	},
	"quickReference": {
		requiredKeys: []string{"title", "items"},
		optionalKeys: []string{"description"},
		arrays: []arrayField{
			{name: "items", minItems: 1, checkItem: checkQuickReferenceItem},
		},
	},
	"comparisonTable": {
		requiredKeys: []string{"title"},
		optionalKeys: []string{"description", "columns", "rows"},
		arrays: []arrayField{
			{name: "columns", minItems: 1, item: stringItem},
			{name: "rows", minItems: 1},
		},
		rule: pairedFieldsRule{first: "columns", second: "rows"},
	},
	"visualChart": {
		requiredKeys: []string{"title", "items"},
		optionalKeys: []string{"description", "unit"},
		arrays: []arrayField{
			{name: "items", minItems: 1, item: objectItem("label", "value")},
		},
	},
	"stepByStep": {
		requiredKeys: []string{"title", "steps"},
		optionalKeys: []string{"description"},
		arrays: []arrayField{
			{name: "steps", minItems: 1, item: objectItem("title", "description")},
		},
	},
	"commonMistakes": {
		requiredKeys: []string{"title", "mistakes"},
		arrays: []arrayField{
			{name: "mistakes", minItems: 1, item: objectItem("mistake", "solution")},
		},
	},
	"equipmentGuide": {
		requiredKeys: []string{"title", "tools"},
		arrays: []arrayField{
			{name: "tools", minItems: 1, item: objectItem("name", "description")},
		},
	},
	"scientificBackground": {
		requiredKeys: []string{"title", "explanation"},
		optionalKeys: []string{"concepts"},
		arrays: []arrayField{
			{name: "concepts", minItems: 1, item: objectItem("concept", "explanation")},
		},
	},
	"regionalVariations": {
		requiredKeys: []string{"title", "regions"},
		arrays: []arrayField{
			{name: "regions", minItems: 1, item: objectItem("region", "notes")},
		},
	},
	"recipeExamples": {
		requiredKeys: []string{"title", "examples"},
		arrays: []arrayField{
			{name: "examples", minItems: 1, item: objectItem("name", "description")},
		},
	},
	"tips": {
		requiredKeys: []string{"title"},
		optionalKeys: []string{"tips", "items"},
		arrays: []arrayField{
			{name: "tips", minItems: 1, item: stringItem},
			{name: "items", minItems: 1, item: stringItem},
		},
		rule: eitherFieldRule{first: "tips", second: "items"},
	},
	"faq": {
		requiredKeys: []string{"items"},
		optionalKeys: []string{"title"},
		arrays: []arrayField{
			{name: "items", minItems: 1, item: objectItem("question", "answer")},
		},
	},
	"faqs": {
		requiredKeys: []string{"items"},
		optionalKeys: []string{"title"},
		arrays: []arrayField{
			{name: "items", minItems: 1, item: objectItem("question", "answer")},
		},
	},
	"related": {
		requiredKeys: []string{"title"},
		optionalKeys: []string{"links", "items"},
		arrays: []arrayField{
			{name: "links", minItems: 1, item: objectItem("title", "url")},
			{name: "items", minItems: 1, item: objectItem("title", "url")},
		},
		rule: eitherFieldRule{first: "links", second: "items"},
	},
}

// SectionNames returns the known section type names in sorted order.
func SectionNames() []string {
	names := make([]string, 0, len(sectionSchemas))
	for name := range sectionSchemas {
		names = append(names, name)
	}
	sortStrings(names)
	return names
}
