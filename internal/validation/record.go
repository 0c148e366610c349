package validation

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultMinWords is the content-quality gate: records whose extracted
// word count falls below it fail validation.
const DefaultMinWords = 1000

// requiredTopLevelKeys must all be present on every record. Absence is an
// error, never a default-filled gap.
var requiredTopLevelKeys = []string{
	"id", "slug", "title", "description", "keywords", "categories",
	"manualRelatedLinks", "featured", "contentSequence", "defaults",
	"supportedUnits", "faqs", "contentSections",
}

// optionalTopLevelKeys are recognized but not required. Any other
// top-level key is tolerated with a warning.
var optionalTopLevelKeys = []string{
	"conversions", "conversionFormulas", "ingredientFormulas",
}

// arrayTypedKeys must be arrays whenever present.
var arrayTypedKeys = []string{
	"keywords", "categories", "manualRelatedLinks", "supportedUnits",
	"conversionFormulas", "ingredientFormulas", "faqs",
}

// RequiredTopLevelKeys returns a copy of the required top-level key list.
func RequiredTopLevelKeys() []string {
	return append([]string(nil), requiredTopLevelKeys...)
}

// OptionalTopLevelKeys returns a copy of the optional top-level key list.
func OptionalTopLevelKeys() []string {
	return append([]string(nil), optionalTopLevelKeys...)
}

// ValidateRecord runs every record-level check and returns all accumulated
// errors, warnings, and the computed word count in one pass. No check
// short-circuits another: a missing contentSections does not suppress the
// word-count gate, and vice versa. displayID is used only to label
// warnings; minWords <= 0 selects DefaultMinWords.
func ValidateRecord(record map[string]any, displayID string, minWords int) (errs, warnings []string, wordCount int) {
	if minWords <= 0 {
		minWords = DefaultMinWords
	}

	// 1. Required key presence; unknown extra keys warn, never fail.
	allowed := make(map[string]bool, len(requiredTopLevelKeys)+len(optionalTopLevelKeys))
	for _, key := range requiredTopLevelKeys {
		allowed[key] = true
		if _, present := record[key]; !present {
			errs = append(errs, fmt.Sprintf("missing required field %q", key))
		}
	}
	for _, key := range optionalTopLevelKeys {
		allowed[key] = true
	}
	var unknown []string
	for key := range record {
		if !allowed[key] {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		warnings = append(warnings, fmt.Sprintf("converter %q: unknown field %q", displayID, key))
	}

	// 2. Exactly one conversion representation is expected. Both present
	// is tolerated with conversions taking precedence.
	_, hasConversions := record["conversions"]
	_, hasFormulas := record["conversionFormulas"]
	switch {
	case hasConversions && hasFormulas:
		warnings = append(warnings, fmt.Sprintf("converter %q: both conversions and conversionFormulas present, using conversions", displayID))
	case !hasConversions && !hasFormulas:
		errs = append(errs, "must define either conversions or conversionFormulas")
	}

	// 3. Array-typedness of optional-or-required array fields.
	for _, key := range arrayTypedKeys {
		value, present := record[key]
		if !present {
			continue
		}
		if _, ok := value.([]any); !ok {
			errs = append(errs, fmt.Sprintf("%q must be an array", key))
		}
	}

	// 4. featured, when present, must be boolean.
	if value, present := record["featured"]; present {
		if _, ok := value.(bool); !ok {
			errs = append(errs, `"featured" must be a boolean`)
		}
	}

	// 5. contentSequence must be a non-empty array containing "hero".
	sequence, haveSequence := record["contentSequence"].([]any)
	if _, present := record["contentSequence"]; present {
		if !haveSequence || len(sequence) == 0 {
			errs = append(errs, "contentSequence must be a non-empty array")
		} else if !sequenceContains(sequence, "hero") {
			errs = append(errs, `contentSequence must include "hero"`)
		}
	}

	// 6. contentSections: cross-check the sequence, then dispatch every
	// present section to the schema table. Unknown section names are
	// errors, unlike unknown top-level keys.
	if value, present := record["contentSections"]; present {
		sections, ok := value.(map[string]any)
		if !ok {
			errs = append(errs, "contentSections must be an object")
		} else {
			for _, entry := range sequence {
				name, ok := entry.(string)
				if !ok || specialSequenceNames[name] {
					continue
				}
				if _, defined := sections[name]; !defined {
					errs = append(errs, fmt.Sprintf("contentSequence references %q but it was not found in contentSections", name))
				}
			}

			names := make([]string, 0, len(sections))
			for name := range sections {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				if _, known := sectionSchemas[name]; !known {
					errs = append(errs, fmt.Sprintf("Unknown section: %q", name))
					continue
				}
				errs = append(errs, validateSection(name, sections[name])...)
			}
		}
	}

	// 7. defaults must carry the initial UI state.
	if value, present := record["defaults"]; present {
		defaults, ok := value.(map[string]any)
		if !ok {
			errs = append(errs, "defaults must be an object")
		} else {
			for _, key := range []string{"value", "from", "to"} {
				if _, present := defaults[key]; !present {
					errs = append(errs, fmt.Sprintf("defaults missing required key %q", key))
				}
			}
		}
	}

	// 8. conversions, when chosen, must be an object regardless of the
	// state of supportedUnits; supportedUnits must be a non-empty array of
	// strings, and with both well-formed the matrix must be complete.
	var conversions map[string]any
	if hasConversions {
		var ok bool
		conversions, ok = record["conversions"].(map[string]any)
		if !ok {
			errs = append(errs, "conversions must be an object")
		}
	}
	if value, present := record["supportedUnits"]; present {
		units, ok := value.([]any)
		if !ok || len(units) == 0 {
			errs = append(errs, "supportedUnits must be a non-empty array")
		} else {
			names := make([]string, 0, len(units))
			for i, unit := range units {
				s, ok := unit.(string)
				if !ok {
					errs = append(errs, fmt.Sprintf("supportedUnits[%d] must be a string", i))
					continue
				}
				names = append(names, s)
			}
			if conversions != nil {
				errs = append(errs, checkConversionMatrix(names, conversions)...)
			}
		}
	}

	// 9. Top-level faqs entries need non-empty question and answer text.
	if faqs, ok := record["faqs"].([]any); ok {
		for i, entry := range faqs {
			obj, ok := entry.(map[string]any)
			if !ok {
				errs = append(errs, fmt.Sprintf("faqs[%d] must be an object", i))
				continue
			}
			if s, ok := obj["question"].(string); !ok || strings.TrimSpace(s) == "" {
				errs = append(errs, fmt.Sprintf("faqs[%d] must have a non-empty %q", i, "question"))
			}
			if s, ok := obj["answer"].(string); !ok || strings.TrimSpace(s) == "" {
				errs = append(errs, fmt.Sprintf("faqs[%d] must have a non-empty %q", i, "answer"))
			}
		}
	}

	// 10. Word-count gate.
	wordCount = CountWords(record)
	if wordCount < minWords {
		errs = append(errs, fmt.Sprintf("word count %d is below the minimum %d (%d more words needed)", wordCount, minWords, minWords-wordCount))
	}

	return errs, warnings, wordCount
}

func sequenceContains(sequence []any, want string) bool {
	for _, entry := range sequence {
		if s, ok := entry.(string); ok && s == want {
			return true
		}
	}
	return false
}
