package generator

import (
	"fmt"
	"strings"
	"time"
)

// renderSitemap creates the XML sitemap over the generated HTML pages.
func (g *Generator) renderSitemap(pages []string) string {
	var sitemap strings.Builder
	sitemap.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	sitemap.WriteString("\n")
	sitemap.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	sitemap.WriteString("\n")

	lastmod := g.opts.BuildTime.Format("2006-01-02")
	for _, page := range pages {
		sitemap.WriteString("  <url>\n")
		sitemap.WriteString(fmt.Sprintf("    <loc>%s</loc>\n", g.pageURL(page)))
		sitemap.WriteString(fmt.Sprintf("    <lastmod>%s</lastmod>\n", lastmod))
		sitemap.WriteString("    <changefreq>weekly</changefreq>\n")
		sitemap.WriteString("  </url>\n")
	}

	sitemap.WriteString("</urlset>\n")
	return sitemap.String()
}

// renderRSS creates the RSS 2.0 feed over blog posts, newest first by
// document order.
func (g *Generator) renderRSS() string {
	var rss strings.Builder
	rss.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	rss.WriteString("\n<rss version=\"2.0\">\n<channel>\n")
	rss.WriteString(fmt.Sprintf("  <title>%s</title>\n", xmlEscape(g.doc.Site.Name)))
	rss.WriteString(fmt.Sprintf("  <link>%s/</link>\n", g.opts.BaseURL))
	rss.WriteString(fmt.Sprintf("  <description>%s</description>\n", xmlEscape(g.doc.Site.Description)))

	for i := range g.doc.Posts {
		post := &g.doc.Posts[i]
		rss.WriteString("  <item>\n")
		rss.WriteString(fmt.Sprintf("    <title>%s</title>\n", xmlEscape(post.Title)))
		rss.WriteString(fmt.Sprintf("    <link>%s</link>\n", g.pageURL(g.postPagePath(post))))
		rss.WriteString(fmt.Sprintf("    <guid>%s</guid>\n", g.pageURL(g.postPagePath(post))))
		rss.WriteString(fmt.Sprintf("    <description>%s</description>\n", xmlEscape(post.Description)))
		if published := post.PublishedAt(); !published.IsZero() {
			rss.WriteString(fmt.Sprintf("    <pubDate>%s</pubDate>\n", published.Format(time.RFC1123Z)))
		}
		rss.WriteString("  </item>\n")
	}

	rss.WriteString("</channel>\n</rss>\n")
	return rss.String()
}

// renderRobots creates robots.txt: allow everything, point at the sitemap.
func (g *Generator) renderRobots() string {
	var robots strings.Builder
	robots.WriteString("User-agent: *\n")
	robots.WriteString("Allow: /\n")
	robots.WriteString(fmt.Sprintf("Sitemap: %s/sitemap.xml\n", g.opts.BaseURL))
	return robots.String()
}

func xmlEscape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
	return replacer.Replace(s)
}
