// Package content defines the site document model and its JSON loader.
//
// A site document is a single JSON file carrying site metadata, a theme,
// a collection of converter records, and optional blog posts. Converter
// records are decoded twice: once loosely (map[string]any) for validation,
// which must be able to probe missing or mistyped fields, and once into the
// typed model below for page generation, which only ever sees records that
// already passed validation.
package content

import "time"

// Site holds site-wide metadata stamped into every generated page.
type Site struct {
	Name        string `json:"name"`
	BaseURL     string `json:"baseUrl"`
	Description string `json:"description"`
	Language    string `json:"language"`
}

// Theme holds presentation values inlined into the generated CSS.
type Theme struct {
	PrimaryColor string `json:"primaryColor"`
	AccentColor  string `json:"accentColor"`
	FontStack    string `json:"fontStack"`
}

// Defaults is the initial UI state of a converter widget.
type Defaults struct {
	Value float64 `json:"value"`
	From  string  `json:"from"`
	To    string  `json:"to"`
}

// Formula converts between a unit pair with a client-side expression.
type Formula struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Formula string `json:"formula"`
}

// FAQ is one question/answer pair.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// RelatedLink points at another page, internal or external.
type RelatedLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Converter is the typed view of one converter record. Field semantics
// match the validated document shape; the generator assumes a Converter
// obtained from a record that passed validation.
type Converter struct {
	ID                 string                        `json:"id"`
	Slug               string                        `json:"slug"`
	Title              string                        `json:"title"`
	Description        string                        `json:"description"`
	Keywords           []string                      `json:"keywords"`
	Categories         []string                      `json:"categories"`
	Featured           bool                          `json:"featured"`
	SupportedUnits     []string                      `json:"supportedUnits"`
	Conversions        map[string]map[string]float64 `json:"conversions"`
	ConversionFormulas []Formula                     `json:"conversionFormulas"`
	Defaults           Defaults                      `json:"defaults"`
	ContentSequence    []string                      `json:"contentSequence"`
	ContentSections    map[string]any                `json:"contentSections"`
	FAQs               []FAQ                         `json:"faqs"`
	ManualRelatedLinks []RelatedLink                 `json:"manualRelatedLinks"`
}

// Post is one blog entry.
type Post struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Body        string `json:"body"`
}

// PublishedAt parses the post date, accepting date-only or RFC3339 forms.
func (p Post) PublishedAt() time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, p.Date); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Document is the typed view of a whole site document.
type Document struct {
	Site       Site        `json:"site"`
	Theme      Theme       `json:"theme"`
	Converters []Converter `json:"converters"`
	Posts      []Post      `json:"posts"`
}
