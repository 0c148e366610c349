package validation

import "strings"

// CountWords computes the content word count of a record: whitespace-split
// tokens of title, description, every string leaf reachable through
// contentSections, and every faqs question/answer. Pure token count with no
// stemming or de-duplication, independent of map iteration order.
func CountWords(record map[string]any) int {
	count := 0

	if s, ok := record["title"].(string); ok {
		count += len(strings.Fields(s))
	}
	if s, ok := record["description"].(string); ok {
		count += len(strings.Fields(s))
	}

	if sections, ok := record["contentSections"].(map[string]any); ok {
		for _, section := range sections {
			count += countStringLeaves(section)
		}
	}

	if faqs, ok := record["faqs"].([]any); ok {
		for _, entry := range faqs {
			obj, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			if q, ok := obj["question"].(string); ok {
				count += len(strings.Fields(q))
			}
			if a, ok := obj["answer"].(string); ok {
				count += len(strings.Fields(a))
			}
		}
	}

	return count
}

// countStringLeaves recurses arrays element-wise and objects value-wise,
// counting tokens of every string leaf. Non-string scalars are ignored.
func countStringLeaves(value any) int {
	switch v := value.(type) {
	case string:
		return len(strings.Fields(v))
	case []any:
		count := 0
		for _, element := range v {
			count += countStringLeaves(element)
		}
		return count
	case map[string]any:
		count := 0
		for _, element := range v {
			count += countStringLeaves(element)
		}
		return count
	default:
		return 0
	}
}
