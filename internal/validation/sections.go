package validation

import (
	"fmt"
	"sort"
	"strings"
)

func sortStrings(s []string) { sort.Strings(s) }

// validateSection dispatches a section body to its schema table entry.
// The caller has already established that the schema exists; unknown
// section names are reported by the record validator.
func validateSection(name string, data any) []string {
	path := "contentSections." + name
	schema := sectionSchemas[name]

	section, ok := data.(map[string]any)
	if !ok {
		return []string{path + " must be an object"}
	}

	var errs []string

	for _, key := range schema.requiredKeys {
		if _, present := section[key]; !present {
			errs = append(errs, fmt.Sprintf("%s missing required key %q", path, key))
		}
	}

	for _, field := range schema.arrays {
		errs = append(errs, validateArrayField(section, field, path)...)
	}

	if schema.rule != nil {
		errs = append(errs, runSectionRule(schema.rule, section, path)...)
	}

	return errs
}

// runSectionRule invokes a cross-field rule, converting a panic into a
// single diagnostic. A misbehaving rule must never abort the whole run.
func runSectionRule(rule sectionRule, section map[string]any, path string) (errs []string) {
	defer func() {
		if r := recover(); r != nil {
			errs = []string{fmt.Sprintf("%s validation failed: %v", path, r)}
		}
	}()
	return rule.check(section, path)
}

// validateArrayField checks one array-valued field of a section. Absent
// fields are not reported here; required arrays are covered by the
// section's requiredKeys list.
func validateArrayField(section map[string]any, field arrayField, path string) []string {
	value, present := section[field.name]
	if !present {
		return nil
	}

	fieldPath := path + "." + field.name
	items, ok := value.([]any)
	if !ok {
		return []string{fieldPath + " must be an array"}
	}

	var errs []string
	if len(items) < field.minItems {
		errs = append(errs, fmt.Sprintf("%s must have at least %d item(s)", fieldPath, field.minItems))
	}

	for i, item := range items {
		itemPath := fmt.Sprintf("%s[%d]", fieldPath, i)
		switch {
		case field.checkItem != nil:
			errs = append(errs, field.checkItem(item, itemPath)...)
		case field.item != nil:
			errs = append(errs, validateItemStructure(item, field.item, itemPath)...)
		}
	}

	return errs
}

func validateItemStructure(item any, structure *itemStructure, path string) []string {
	switch structure.kind {
	case "string":
		s, ok := item.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return []string{path + " must be a non-empty string"}
		}
	case "object":
		obj, ok := item.(map[string]any)
		if !ok {
			return []string{path + " must be an object"}
		}
		var errs []string
		for _, key := range structure.requiredKeys {
			if _, present := obj[key]; !present {
				errs = append(errs, fmt.Sprintf("%s missing required key %q", path, key))
			}
		}
		return errs
	}
	return nil
}

// checkQuickReferenceItem enforces the quickReference item contract: the
// item names an ingredient and carries at least one value-bearing key
// besides ingredient/icon/tip.
func checkQuickReferenceItem(item any, path string) []string {
	obj, ok := item.(map[string]any)
	if !ok {
		return []string{path + " must be an object"}
	}

	var errs []string
	if s, ok := obj["ingredient"].(string); !ok || strings.TrimSpace(s) == "" {
		errs = append(errs, fmt.Sprintf("%s missing required key %q", path, "ingredient"))
	}

	hasValue := false
	for key, value := range obj {
		if key == "ingredient" || key == "icon" || key == "tip" {
			continue
		}
		if value != nil {
			hasValue = true
			break
		}
	}
	if !hasValue {
		errs = append(errs, path+" must have at least one conversion value")
	}

	return errs
}

// pairedFieldsRule requires two fields to be both present or both absent.
type pairedFieldsRule struct {
	first, second string
}

func (r pairedFieldsRule) check(section map[string]any, path string) []string {
	_, hasFirst := section[r.first]
	_, hasSecond := section[r.second]
	if hasFirst != hasSecond {
		return []string{fmt.Sprintf("%s must define %q and %q together", path, r.first, r.second)}
	}
	return nil
}

// eitherFieldRule requires at least one of two alternative fields.
type eitherFieldRule struct {
	first, second string
}

func (r eitherFieldRule) check(section map[string]any, path string) []string {
	_, hasFirst := section[r.first]
	_, hasSecond := section[r.second]
	if !hasFirst && !hasSecond {
		return []string{fmt.Sprintf("%s must define %q or %q", path, r.first, r.second)}
	}
	return nil
}
