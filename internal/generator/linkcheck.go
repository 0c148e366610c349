package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// auditLinks parses every generated page and checks that internal hrefs
// resolve to a generated file. External links, anchors, and mailto links
// are skipped. Broken links are warnings, not build failures: a page with
// a dead link still renders.
func (g *Generator) auditLinks(pages []string) []string {
	exists := make(map[string]bool, len(pages)*2)
	for _, page := range pages {
		slash := filepath.ToSlash(page)
		exists["/"+slash] = true
		// Clean-URL form: /slug/ for /slug/index.html.
		if strings.HasSuffix(slash, "index.html") {
			dir := strings.TrimSuffix(slash, "index.html")
			exists["/"+dir] = true
			exists["/"+strings.TrimSuffix(dir, "/")] = true
		}
	}
	exists["/"] = true

	var warnings []string
	for _, page := range pages {
		path := filepath.Join(g.opts.OutputDir, page)
		file, err := os.Open(path)
		if err != nil {
			continue
		}

		doc, err := html.Parse(file)
		file.Close()
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: unparsable HTML: %v", page, err))
			continue
		}

		for _, href := range collectHrefs(doc) {
			if !isInternal(href) {
				continue
			}
			target := strings.SplitN(href, "#", 2)[0]
			if target == "" {
				continue
			}
			if !exists[target] {
				warnings = append(warnings, fmt.Sprintf("%s: broken internal link %q", page, href))
			}
		}
	}

	return warnings
}

func isInternal(href string) bool {
	return strings.HasPrefix(href, "/") && !strings.HasPrefix(href, "//")
}

func collectHrefs(node *html.Node) []string {
	var hrefs []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key == "href" {
					hrefs = append(hrefs, attr.Val)
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)

	return hrefs
}
