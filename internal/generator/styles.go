package generator

import (
	"fmt"
	"sort"
	"strings"
)

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// renderStyles emits the inline stylesheet with theme values stamped in.
// Kept deliberately small: one block shared by every page so browsers
// cache nothing and pages stay self-contained.
func (g *Generator) renderStyles() string {
	primary := g.doc.Theme.PrimaryColor
	if primary == "" {
		primary = "#2c6e49"
	}
	accent := g.doc.Theme.AccentColor
	if accent == "" {
		accent = "#ffc145"
	}
	fonts := g.doc.Theme.FontStack
	if fonts == "" {
		fonts = "system-ui, sans-serif"
	}

	var css strings.Builder
	fmt.Fprintf(&css, "    :root { --primary: %s; --accent: %s; }\n", primary, accent)
	fmt.Fprintf(&css, "    body { font-family: %s; margin: 0; color: #222; line-height: 1.6; }\n", fonts)
	css.WriteString("    main { max-width: 48rem; margin: 0 auto; padding: 1rem; }\n")
	css.WriteString("    .site-header { background: var(--primary); padding: 1rem; }\n")
	css.WriteString("    .site-header a { color: #fff; text-decoration: none; font-weight: 700; }\n")
	css.WriteString("    .site-footer { border-top: 1px solid #ddd; padding: 1rem; margin-top: 2rem; font-size: .9rem; }\n")
	css.WriteString("    .hero h1 { color: var(--primary); }\n")
	css.WriteString("    .converter-widget { background: #f7f7f7; border: 1px solid #ddd; border-radius: .5rem; padding: 1rem; display: flex; gap: .5rem; align-items: center; flex-wrap: wrap; }\n")
	css.WriteString("    .converter-widget output { font-weight: 700; color: var(--primary); }\n")
	css.WriteString("    table { border-collapse: collapse; width: 100%; }\n")
	css.WriteString("    th, td { border: 1px solid #ddd; padding: .4rem .6rem; text-align: left; }\n")
	css.WriteString("    thead { background: var(--primary); color: #fff; }\n")
	css.WriteString("    .chart-row { display: flex; gap: .5rem; align-items: center; margin: .25rem 0; }\n")
	css.WriteString("    .chart-bar { background: var(--accent); height: 1rem; border-radius: .25rem; }\n")
	css.WriteString("    .converter-grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(14rem, 1fr)); gap: 1rem; }\n")
	css.WriteString("    .converter-card { border: 1px solid #ddd; border-radius: .5rem; padding: .75rem; }\n")
	css.WriteString("    details { border-bottom: 1px solid #eee; padding: .5rem 0; }\n")
	css.WriteString("    summary { cursor: pointer; font-weight: 600; }\n")

	return css.String()
}
