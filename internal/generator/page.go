package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/calcpress/calcpress/internal/content"
)

var titleCaser = cases.Title(language.English)

// unitDisplayName renders a unit key for human-facing labels.
func unitDisplayName(unit string) string {
	return titleCaser.String(strings.ReplaceAll(unit, "_", " "))
}

// renderConverterPage assembles one converter's page: head with metadata,
// the converter widget, then the content sections in contentSequence
// order. Section names "converter", "faq" and "faqs" render from
// top-level record data; everything else renders from contentSections.
func (g *Generator) renderConverterPage(conv *content.Converter) string {
	var html strings.Builder

	lang := g.doc.Site.Language
	if lang == "" {
		lang = "en"
	}

	html.WriteString("<!DOCTYPE html>\n")
	html.WriteString(fmt.Sprintf("<html lang=\"%s\">\n", lang))
	html.WriteString("<head>\n")
	html.WriteString("  <meta charset=\"UTF-8\">\n")
	html.WriteString("  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	html.WriteString(fmt.Sprintf("  <title>%s | %s</title>\n", conv.Title, g.doc.Site.Name))
	html.WriteString(fmt.Sprintf("  <meta name=\"description\" content=\"%s\">\n", metaSummary(conv.Description)))
	if len(conv.Keywords) > 0 {
		html.WriteString(fmt.Sprintf("  <meta name=\"keywords\" content=\"%s\">\n", strings.Join(conv.Keywords, ", ")))
	}
	html.WriteString(fmt.Sprintf("  <link rel=\"canonical\" href=\"%s\">\n", g.pageURL(g.converterPagePath(conv))))
	html.WriteString("  <style>\n")
	html.WriteString(g.renderStyles())
	html.WriteString("  </style>\n")
	html.WriteString("</head>\n")
	html.WriteString("<body>\n")
	html.WriteString(g.renderSiteHeader())
	html.WriteString("  <main>\n")

	renderedWidget := false
	for _, name := range conv.ContentSequence {
		switch name {
		case "converter":
			html.WriteString(g.renderConverterWidget(conv))
			renderedWidget = true
		case "faq", "faqs":
			html.WriteString(renderTopLevelFAQs(conv))
		default:
			section, ok := conv.ContentSections[name]
			if !ok {
				continue
			}
			html.WriteString(renderSection(name, section))
			if name == "hero" && !renderedWidget {
				// The widget always follows the hero unless the sequence
				// places it explicitly.
				if !sequenceHas(conv.ContentSequence, "converter") {
					html.WriteString(g.renderConverterWidget(conv))
					renderedWidget = true
				}
			}
		}
	}

	html.WriteString(renderRelatedLinks(conv))
	html.WriteString("  </main>\n")
	html.WriteString(g.renderSiteFooter())
	html.WriteString(renderFAQJSONLD(conv))
	html.WriteString("  <script>\n")
	html.WriteString(g.renderConverterScript(conv))
	html.WriteString("  </script>\n")
	html.WriteString("</body>\n")
	html.WriteString("</html>\n")

	return html.String()
}

func sequenceHas(sequence []string, want string) bool {
	for _, name := range sequence {
		if name == want {
			return true
		}
	}
	return false
}

func metaSummary(description string) string {
	fields := strings.Fields(description)
	if len(fields) > 30 {
		return strings.Join(fields[:30], " ") + "…"
	}
	return strings.Join(fields, " ")
}

// renderConverterWidget emits the interactive converter form. Behavior
// lives in the inline script; this is just the skeleton it binds to.
func (g *Generator) renderConverterWidget(conv *content.Converter) string {
	var html strings.Builder

	html.WriteString("    <section class=\"converter-widget\" id=\"converter\">\n")
	html.WriteString(fmt.Sprintf("      <input type=\"number\" id=\"conv-value\" value=\"%g\">\n", conv.Defaults.Value))

	for _, selector := range []struct{ id, selected string }{
		{"conv-from", conv.Defaults.From},
		{"conv-to", conv.Defaults.To},
	} {
		html.WriteString(fmt.Sprintf("      <select id=\"%s\">\n", selector.id))
		for _, unit := range conv.SupportedUnits {
			attr := ""
			if unit == selector.selected {
				attr = " selected"
			}
			html.WriteString(fmt.Sprintf("        <option value=\"%s\"%s>%s</option>\n", unit, attr, unitDisplayName(unit)))
		}
		html.WriteString("      </select>\n")
	}

	html.WriteString("      <output id=\"conv-result\"></output>\n")
	html.WriteString("    </section>\n")

	return html.String()
}

// renderSection dispatches one content section body to its renderer.
// Unknown names produce nothing: the validator already flagged them, and
// a skipped section must not break the rest of the page.
func renderSection(name string, section any) string {
	body, ok := section.(map[string]any)
	if !ok {
		return ""
	}

	switch name {
	case "hero":
		return renderHero(body)
	case "quickReference":
		return renderQuickReference(body)
	case "comparisonTable":
		return renderComparisonTable(body)
	case "visualChart":
		return renderVisualChart(body)
	case "stepByStep":
		return renderSteps(body)
	case "commonMistakes":
		return renderPairList(body, "mistakes", "mistake", "solution", "common-mistakes")
	case "equipmentGuide":
		return renderPairList(body, "tools", "name", "description", "equipment-guide")
	case "scientificBackground":
		return renderScience(body)
	case "regionalVariations":
		return renderPairList(body, "regions", "region", "notes", "regional-variations")
	case "recipeExamples":
		return renderPairList(body, "examples", "name", "description", "recipe-examples")
	case "tips":
		return renderTips(body)
	case "related":
		return renderRelatedSection(body)
	default:
		return ""
	}
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func list(m map[string]any, key string) []any {
	items, _ := m[key].([]any)
	return items
}

func renderHero(body map[string]any) string {
	var html strings.Builder
	html.WriteString("    <section class=\"hero\">\n")
	html.WriteString(fmt.Sprintf("      <h1>%s</h1>\n", str(body, "title")))
	if subtitle := str(body, "subtitle"); subtitle != "" {
		html.WriteString(fmt.Sprintf("      <p class=\"subtitle\">%s</p>\n", subtitle))
	}
	if description := str(body, "description"); description != "" {
		html.WriteString(fmt.Sprintf("      <p>%s</p>\n", description))
	}
	html.WriteString("    </section>\n")
	return html.String()
}

// renderQuickReference emits the ingredient table. Columns are the union
// of value-bearing keys across items, in first-seen order.
func renderQuickReference(body map[string]any) string {
	items := list(body, "items")

	var columns []string
	seen := map[string]bool{"ingredient": true, "icon": true, "tip": true}
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		for _, key := range sortedKeys(obj) {
			if !seen[key] {
				seen[key] = true
				columns = append(columns, key)
			}
		}
	}

	var html strings.Builder
	html.WriteString("    <section class=\"quick-reference\">\n")
	html.WriteString(fmt.Sprintf("      <h2>%s</h2>\n", str(body, "title")))
	html.WriteString("      <table>\n        <thead>\n          <tr><th>Ingredient</th>")
	for _, column := range columns {
		html.WriteString(fmt.Sprintf("<th>%s</th>", unitDisplayName(column)))
	}
	html.WriteString("</tr>\n        </thead>\n        <tbody>\n")
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		html.WriteString(fmt.Sprintf("          <tr><td>%s</td>", str(obj, "ingredient")))
		for _, column := range columns {
			html.WriteString(fmt.Sprintf("<td>%s</td>", formatCell(obj[column])))
		}
		html.WriteString("</tr>\n")
	}
	html.WriteString("        </tbody>\n      </table>\n")
	html.WriteString("    </section>\n")
	return html.String()
}

func formatCell(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return fmt.Sprintf("%g", v)
	case bool:
		return fmt.Sprintf("%t", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func renderComparisonTable(body map[string]any) string {
	var html strings.Builder
	html.WriteString("    <section class=\"comparison-table\">\n")
	html.WriteString(fmt.Sprintf("      <h2>%s</h2>\n", str(body, "title")))

	columns := list(body, "columns")
	rows := list(body, "rows")
	if len(columns) > 0 && len(rows) > 0 {
		html.WriteString("      <table>\n        <thead>\n          <tr>")
		for _, column := range columns {
			html.WriteString(fmt.Sprintf("<th>%s</th>", formatCell(column)))
		}
		html.WriteString("</tr>\n        </thead>\n        <tbody>\n")
		for _, row := range rows {
			html.WriteString("          <tr>")
			if cells, ok := row.([]any); ok {
				for _, cell := range cells {
					html.WriteString(fmt.Sprintf("<td>%s</td>", formatCell(cell)))
				}
			}
			html.WriteString("</tr>\n")
		}
		html.WriteString("        </tbody>\n      </table>\n")
	}

	html.WriteString("    </section>\n")
	return html.String()
}

func renderVisualChart(body map[string]any) string {
	items := list(body, "items")

	maxValue := 0.0
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			if v, ok := obj["value"].(float64); ok && v > maxValue {
				maxValue = v
			}
		}
	}

	var html strings.Builder
	html.WriteString("    <section class=\"visual-chart\">\n")
	html.WriteString(fmt.Sprintf("      <h2>%s</h2>\n", str(body, "title")))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		value, _ := obj["value"].(float64)
		width := 0.0
		if maxValue > 0 {
			width = value / maxValue * 100
		}
		html.WriteString(fmt.Sprintf("      <div class=\"chart-row\"><span>%s</span><div class=\"chart-bar\" style=\"width:%.1f%%\"></div><span>%g</span></div>\n",
			str(obj, "label"), width, value))
	}
	html.WriteString("    </section>\n")
	return html.String()
}

func renderSteps(body map[string]any) string {
	var html strings.Builder
	html.WriteString("    <section class=\"step-by-step\">\n")
	html.WriteString(fmt.Sprintf("      <h2>%s</h2>\n", str(body, "title")))
	html.WriteString("      <ol>\n")
	for _, step := range list(body, "steps") {
		if obj, ok := step.(map[string]any); ok {
			html.WriteString(fmt.Sprintf("        <li><strong>%s</strong> %s</li>\n", str(obj, "title"), str(obj, "description")))
		}
	}
	html.WriteString("      </ol>\n")
	html.WriteString("    </section>\n")
	return html.String()
}

// renderPairList covers the sections that are a heading plus a list of
// name/detail pairs.
func renderPairList(body map[string]any, field, nameKey, detailKey, class string) string {
	var html strings.Builder
	html.WriteString(fmt.Sprintf("    <section class=\"%s\">\n", class))
	html.WriteString(fmt.Sprintf("      <h2>%s</h2>\n", str(body, "title")))
	html.WriteString("      <dl>\n")
	for _, item := range list(body, field) {
		if obj, ok := item.(map[string]any); ok {
			html.WriteString(fmt.Sprintf("        <dt>%s</dt>\n        <dd>%s</dd>\n", str(obj, nameKey), str(obj, detailKey)))
		}
	}
	html.WriteString("      </dl>\n")
	html.WriteString("    </section>\n")
	return html.String()
}

func renderScience(body map[string]any) string {
	var html strings.Builder
	html.WriteString("    <section class=\"scientific-background\">\n")
	html.WriteString(fmt.Sprintf("      <h2>%s</h2>\n", str(body, "title")))
	if explanation := str(body, "explanation"); explanation != "" {
		html.WriteString(fmt.Sprintf("      <p>%s</p>\n", explanation))
	}
	for _, concept := range list(body, "concepts") {
		if obj, ok := concept.(map[string]any); ok {
			html.WriteString(fmt.Sprintf("      <h3>%s</h3>\n      <p>%s</p>\n", str(obj, "concept"), str(obj, "explanation")))
		}
	}
	html.WriteString("    </section>\n")
	return html.String()
}

func renderTips(body map[string]any) string {
	entries := list(body, "tips")
	if len(entries) == 0 {
		entries = list(body, "items")
	}

	var html strings.Builder
	html.WriteString("    <section class=\"tips\">\n")
	html.WriteString(fmt.Sprintf("      <h2>%s</h2>\n", str(body, "title")))
	html.WriteString("      <ul>\n")
	for _, entry := range entries {
		if s, ok := entry.(string); ok {
			html.WriteString(fmt.Sprintf("        <li>%s</li>\n", s))
		}
	}
	html.WriteString("      </ul>\n")
	html.WriteString("    </section>\n")
	return html.String()
}

func renderRelatedSection(body map[string]any) string {
	entries := list(body, "links")
	if len(entries) == 0 {
		entries = list(body, "items")
	}

	var html strings.Builder
	html.WriteString("    <section class=\"related\">\n")
	html.WriteString(fmt.Sprintf("      <h2>%s</h2>\n", str(body, "title")))
	html.WriteString("      <ul>\n")
	for _, entry := range entries {
		if obj, ok := entry.(map[string]any); ok {
			html.WriteString(fmt.Sprintf("        <li><a href=\"%s\">%s</a></li>\n", str(obj, "url"), str(obj, "title")))
		}
	}
	html.WriteString("      </ul>\n")
	html.WriteString("    </section>\n")
	return html.String()
}

func renderTopLevelFAQs(conv *content.Converter) string {
	if len(conv.FAQs) == 0 {
		return ""
	}

	var html strings.Builder
	html.WriteString("    <section class=\"faqs\">\n")
	html.WriteString("      <h2>Frequently Asked Questions</h2>\n")
	for _, faq := range conv.FAQs {
		html.WriteString("      <details>\n")
		html.WriteString(fmt.Sprintf("        <summary>%s</summary>\n", faq.Question))
		html.WriteString(fmt.Sprintf("        <p>%s</p>\n", faq.Answer))
		html.WriteString("      </details>\n")
	}
	html.WriteString("    </section>\n")
	return html.String()
}

func renderRelatedLinks(conv *content.Converter) string {
	if len(conv.ManualRelatedLinks) == 0 {
		return ""
	}

	var html strings.Builder
	html.WriteString("    <nav class=\"related-links\">\n      <h2>Related Converters</h2>\n      <ul>\n")
	for _, link := range conv.ManualRelatedLinks {
		html.WriteString(fmt.Sprintf("        <li><a href=\"%s\">%s</a></li>\n", link.URL, link.Title))
	}
	html.WriteString("      </ul>\n    </nav>\n")
	return html.String()
}

// renderFAQJSONLD emits a schema.org FAQPage block for search engines.
func renderFAQJSONLD(conv *content.Converter) string {
	if len(conv.FAQs) == 0 {
		return ""
	}

	entities := make([]map[string]any, 0, len(conv.FAQs))
	for _, faq := range conv.FAQs {
		entities = append(entities, map[string]any{
			"@type": "Question",
			"name":  faq.Question,
			"acceptedAnswer": map[string]any{
				"@type": "Answer",
				"text":  faq.Answer,
			},
		})
	}

	payload := map[string]any{
		"@context":   "https://schema.org",
		"@type":      "FAQPage",
		"mainEntity": entities,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return ""
	}

	return fmt.Sprintf("  <script type=\"application/ld+json\">%s</script>\n", data)
}

func (g *Generator) renderSiteHeader() string {
	return fmt.Sprintf("  <header class=\"site-header\">\n    <a href=\"/\">%s</a>\n  </header>\n", g.doc.Site.Name)
}

func (g *Generator) renderSiteFooter() string {
	return fmt.Sprintf("  <footer class=\"site-footer\">\n    <p>%s</p>\n  </footer>\n", g.doc.Site.Description)
}

// renderIndexPage emits the home page: converter cards grouped by
// category, with uncategorized converters under "Other".
func (g *Generator) renderIndexPage() string {
	var html strings.Builder

	html.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	html.WriteString("  <meta charset=\"UTF-8\">\n")
	html.WriteString("  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	html.WriteString(fmt.Sprintf("  <title>%s</title>\n", g.doc.Site.Name))
	html.WriteString(fmt.Sprintf("  <meta name=\"description\" content=\"%s\">\n", metaSummary(g.doc.Site.Description)))
	html.WriteString("  <style>\n")
	html.WriteString(g.renderStyles())
	html.WriteString("  </style>\n</head>\n<body>\n")
	html.WriteString(g.renderSiteHeader())
	html.WriteString("  <main>\n")
	html.WriteString(fmt.Sprintf("    <h1>%s</h1>\n", g.doc.Site.Name))

	var categories []string
	grouped := map[string][]*content.Converter{}
	for i := range g.doc.Converters {
		conv := &g.doc.Converters[i]
		names := conv.Categories
		if len(names) == 0 {
			names = []string{"Other"}
		}
		for _, category := range names {
			if _, seen := grouped[category]; !seen {
				categories = append(categories, category)
			}
			grouped[category] = append(grouped[category], conv)
		}
	}

	for _, category := range categories {
		html.WriteString(fmt.Sprintf("    <h2>%s</h2>\n    <div class=\"converter-grid\">\n", titleCaser.String(category)))
		for _, conv := range grouped[category] {
			html.WriteString("      <div class=\"converter-card\">\n")
			html.WriteString(fmt.Sprintf("        <h3><a href=\"/%s/\">%s</a></h3>\n", conv.Slug, conv.Title))
			html.WriteString(fmt.Sprintf("        <p>%s</p>\n", metaSummary(conv.Description)))
			html.WriteString("      </div>\n")
		}
		html.WriteString("    </div>\n")
	}

	if len(g.doc.Posts) > 0 {
		html.WriteString("    <h2>From the Blog</h2>\n    <ul class=\"post-list\">\n")
		for i := range g.doc.Posts {
			post := &g.doc.Posts[i]
			html.WriteString(fmt.Sprintf("      <li><a href=\"/blog/%s/\">%s</a></li>\n", sanitizeFileName(post.Slug), post.Title))
		}
		html.WriteString("    </ul>\n")
	}

	html.WriteString("  </main>\n")
	html.WriteString(g.renderSiteFooter())
	html.WriteString("</body>\n</html>\n")

	return html.String()
}

func (g *Generator) renderPostPage(post *content.Post) string {
	var html strings.Builder

	html.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	html.WriteString("  <meta charset=\"UTF-8\">\n")
	html.WriteString("  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	html.WriteString(fmt.Sprintf("  <title>%s | %s</title>\n", post.Title, g.doc.Site.Name))
	html.WriteString(fmt.Sprintf("  <meta name=\"description\" content=\"%s\">\n", metaSummary(post.Description)))
	html.WriteString("  <style>\n")
	html.WriteString(g.renderStyles())
	html.WriteString("  </style>\n</head>\n<body>\n")
	html.WriteString(g.renderSiteHeader())
	html.WriteString("  <main>\n")
	html.WriteString(fmt.Sprintf("    <article>\n      <h1>%s</h1>\n", post.Title))
	if !post.PublishedAt().IsZero() {
		html.WriteString(fmt.Sprintf("      <time datetime=\"%s\">%s</time>\n",
			post.PublishedAt().Format("2006-01-02"), post.PublishedAt().Format("January 2, 2006")))
	}
	for _, paragraph := range strings.Split(post.Body, "\n\n") {
		if strings.TrimSpace(paragraph) != "" {
			html.WriteString(fmt.Sprintf("      <p>%s</p>\n", strings.TrimSpace(paragraph)))
		}
	}
	html.WriteString("    </article>\n  </main>\n")
	html.WriteString(g.renderSiteFooter())
	html.WriteString("</body>\n</html>\n")

	return html.String()
}

func (g *Generator) renderBlogIndex() string {
	var html strings.Builder

	html.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	html.WriteString("  <meta charset=\"UTF-8\">\n")
	html.WriteString(fmt.Sprintf("  <title>Blog | %s</title>\n", g.doc.Site.Name))
	html.WriteString("  <style>\n")
	html.WriteString(g.renderStyles())
	html.WriteString("  </style>\n</head>\n<body>\n")
	html.WriteString(g.renderSiteHeader())
	html.WriteString("  <main>\n    <h1>Blog</h1>\n    <ul class=\"post-list\">\n")
	for i := range g.doc.Posts {
		post := &g.doc.Posts[i]
		html.WriteString(fmt.Sprintf("      <li><a href=\"/blog/%s/\">%s</a> &middot; %s</li>\n",
			sanitizeFileName(post.Slug), post.Title, metaSummary(post.Description)))
	}
	html.WriteString("    </ul>\n  </main>\n")
	html.WriteString(g.renderSiteFooter())
	html.WriteString("</body>\n</html>\n")

	return html.String()
}
