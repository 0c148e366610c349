package validation

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SectionExample reconstructs an example JSON body for a section type
// from its schema table entry, for the structure guide printed when a
// record fails. Returns false for unknown section names.
func SectionExample(name string) (string, bool) {
	schema, ok := sectionSchemas[name]
	if !ok {
		return "", false
	}

	arrayNames := make(map[string]arrayField, len(schema.arrays))
	for _, field := range schema.arrays {
		arrayNames[field.name] = field
	}

	example := map[string]any{}
	for _, key := range schema.requiredKeys {
		example[key] = exampleValue(key, arrayNames)
	}
	for _, key := range schema.optionalKeys {
		example[key] = exampleValue(key, arrayNames)
	}

	data, err := json.MarshalIndent(example, "  ", "  ")
	if err != nil {
		return "", false
	}
	return string(data), true
}

func exampleValue(key string, arrays map[string]arrayField) any {
	field, isArray := arrays[key]
	if !isArray {
		return "..."
	}

	if field.item != nil && field.item.kind == "object" {
		item := map[string]any{}
		for _, required := range field.item.requiredKeys {
			item[required] = "..."
		}
		return []any{item}
	}

	if field.checkItem != nil {
		// quickReference-shaped items: the only statically required key
		// is the ingredient name plus at least one value column.
		return []any{map[string]any{"ingredient": "...", "cup": 1}}
	}

	return []any{"..."}
}

// FailedSectionTypes extracts the known section types named by error
// paths, deduplicated and sorted, so the CLI can print a structure guide
// for exactly the sections that went wrong.
func FailedSectionTypes(errs []string) []string {
	seen := map[string]bool{}
	for _, err := range errs {
		rest, ok := strings.CutPrefix(err, "contentSections.")
		if !ok {
			continue
		}
		end := strings.IndexAny(rest, ". [")
		name := rest
		if end >= 0 {
			name = rest[:end]
		}
		if _, known := sectionSchemas[name]; known {
			seen[name] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sortStrings(names)
	return names
}

// StructureGuide renders the guide block for the given failed section
// types: one reconstructed example per known section, followed by the
// full required/optional top-level key lists.
func StructureGuide(sectionNames []string) string {
	var b strings.Builder

	b.WriteString("Expected structure:\n")
	for _, name := range sectionNames {
		example, ok := SectionExample(name)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "  %q: %s\n", name, example)
	}

	fmt.Fprintf(&b, "Required top-level fields: %s\n", strings.Join(RequiredTopLevelKeys(), ", "))
	fmt.Fprintf(&b, "Optional top-level fields: %s\n", strings.Join(OptionalTopLevelKeys(), ", "))

	return b.String()
}
