package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountWordsBasics(t *testing.T) {
	record := map[string]any{
		"title":       "Cups to Grams",
		"description": "  a   precise guide  ",
		"contentSections": map[string]any{
			"hero": map[string]any{
				"title": "Convert cups",
				"items": []any{"one two", map[string]any{"nested": "three"}},
				"count": 42.0,
				"flag":  true,
			},
		},
		"faqs": []any{
			map[string]any{"question": "How many?", "answer": "It depends entirely."},
		},
	}

	// title 3 + description 3 + hero strings (2+2+1) + faq (2+3) = 16
	assert.Equal(t, 16, CountWords(record))
}

func TestCountWordsIgnoresNonStringLeaves(t *testing.T) {
	record := map[string]any{
		"contentSections": map[string]any{
			"hero": map[string]any{"value": 3.14, "ok": false, "none": nil},
		},
	}

	assert.Equal(t, 0, CountWords(record))
}

// Word counting only sees question/answer text of faqs, not other keys.
func TestCountWordsFAQFieldsOnly(t *testing.T) {
	record := map[string]any{
		"faqs": []any{
			map[string]any{"question": "one", "answer": "two", "category": "ignored words here"},
		},
	}

	assert.Equal(t, 2, CountWords(record))
}

// The count is independent of contentSections key insertion order.
func TestCountWordsOrderIndependent(t *testing.T) {
	first := map[string]any{
		"contentSections": map[string]any{
			"hero": map[string]any{"title": "alpha beta"},
			"tips": map[string]any{"tips": []any{"gamma delta epsilon"}},
		},
	}
	second := map[string]any{
		"contentSections": map[string]any{
			"tips": map[string]any{"tips": []any{"gamma delta epsilon"}},
			"hero": map[string]any{"title": "alpha beta"},
		},
	}

	assert.Equal(t, CountWords(first), CountWords(second))
	assert.Equal(t, 5, CountWords(first))
}

func TestCountWordsIdempotent(t *testing.T) {
	record := map[string]any{"title": "one two three"}

	assert.Equal(t, CountWords(record), CountWords(record))
}
