// Package generator stamps a validated site document into a directory of
// static files: one HTML page per converter, an index page, blog post
// pages, sitemap.xml, rss.xml, and robots.txt. Pages carry inline CSS
// derived from the document theme and an inline client script holding the
// conversion data.
package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/calcpress/calcpress/internal/content"
	"github.com/calcpress/calcpress/internal/logging"
)

// Options configures one site generation run.
type Options struct {
	OutputDir  string
	StaticDir  string
	BaseURL    string
	MinifyHTML bool
	BuildTime  time.Time
}

// Result reports what one generation run produced.
type Result struct {
	Pages    []string      // output-relative paths of generated HTML files
	Files    []string      // all generated/copied files, output-relative
	Warnings []string      // non-fatal findings, e.g. broken internal links
	Duration time.Duration `json:"duration"`
}

// Generator turns a site document into static output. One Generator
// serves one run; it holds no state between runs.
type Generator struct {
	doc    *content.Document
	opts   Options
	logger logging.Logger
}

// New creates a Generator for the given document.
func New(doc *content.Document, opts Options, logger logging.Logger) *Generator {
	if opts.OutputDir == "" {
		opts.OutputDir = "public"
	}
	if opts.BaseURL == "" {
		opts.BaseURL = strings.TrimSuffix(doc.Site.BaseURL, "/")
	}
	if opts.BuildTime.IsZero() {
		opts.BuildTime = time.Now()
	}
	if logger == nil {
		logger = logging.NewLogger(nil)
	}
	return &Generator{doc: doc, opts: opts, logger: logger.WithComponent("generator")}
}

// Generate writes the whole site. Converter pages are emitted in document
// order; the caller is expected to have filtered out records that failed
// validation.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := &Result{}

	if err := os.MkdirAll(g.opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	for i := range g.doc.Converters {
		conv := &g.doc.Converters[i]
		page := g.converterPagePath(conv)
		html := g.renderConverterPage(conv)
		if err := g.writePage(page, html); err != nil {
			return nil, fmt.Errorf("failed to write page for %s: %w", conv.ID, err)
		}
		result.Pages = append(result.Pages, page)
		g.logger.Debug(ctx, "generated converter page", "slug", conv.Slug, "path", page)
	}

	for i := range g.doc.Posts {
		post := &g.doc.Posts[i]
		page := g.postPagePath(post)
		if err := g.writePage(page, g.renderPostPage(post)); err != nil {
			return nil, fmt.Errorf("failed to write post %s: %w", post.Slug, err)
		}
		result.Pages = append(result.Pages, page)
	}

	if len(g.doc.Posts) > 0 {
		if err := g.writePage("blog/index.html", g.renderBlogIndex()); err != nil {
			return nil, fmt.Errorf("failed to write blog index: %w", err)
		}
		result.Pages = append(result.Pages, "blog/index.html")
	}

	if err := g.writePage("index.html", g.renderIndexPage()); err != nil {
		return nil, fmt.Errorf("failed to write index page: %w", err)
	}
	result.Pages = append(result.Pages, "index.html")
	result.Files = append(result.Files, result.Pages...)

	sitemap := g.renderSitemap(result.Pages)
	if err := g.writeFile("sitemap.xml", sitemap); err != nil {
		return nil, fmt.Errorf("failed to write sitemap: %w", err)
	}
	result.Files = append(result.Files, "sitemap.xml")

	if err := g.writeFile("rss.xml", g.renderRSS()); err != nil {
		return nil, fmt.Errorf("failed to write rss feed: %w", err)
	}
	result.Files = append(result.Files, "rss.xml")

	if err := g.writeFile("robots.txt", g.renderRobots()); err != nil {
		return nil, fmt.Errorf("failed to write robots.txt: %w", err)
	}
	result.Files = append(result.Files, "robots.txt")

	if g.opts.StaticDir != "" {
		copied, err := g.copyStaticAssets()
		if err != nil {
			return nil, fmt.Errorf("failed to copy static assets: %w", err)
		}
		result.Files = append(result.Files, copied...)
	}

	result.Warnings = append(result.Warnings, g.auditLinks(result.Pages)...)

	result.Duration = time.Since(start)
	g.logger.Info(ctx, "site generated",
		"pages", len(result.Pages), "files", len(result.Files), "duration", result.Duration)

	return result, nil
}

// converterPagePath is the output-relative path of a converter's page.
func (g *Generator) converterPagePath(conv *content.Converter) string {
	slug := conv.Slug
	if slug == "" {
		slug = sanitizeFileName(conv.ID)
	}
	return filepath.Join(slug, "index.html")
}

func (g *Generator) postPagePath(post *content.Post) string {
	return filepath.Join("blog", sanitizeFileName(post.Slug), "index.html")
}

// pageURL converts an output-relative page path to an absolute URL,
// dropping trailing index.html for clean URLs.
func (g *Generator) pageURL(page string) string {
	url := filepath.ToSlash(page)
	url = strings.TrimSuffix(url, "index.html")
	return g.opts.BaseURL + "/" + strings.TrimPrefix(url, "/")
}

func (g *Generator) writePage(relPath, html string) error {
	if g.opts.MinifyHTML {
		html = minifyHTML(html)
	}
	return g.writeFile(relPath, html)
}

func (g *Generator) writeFile(relPath, data string) error {
	path := filepath.Join(g.opts.OutputDir, relPath)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(data), 0644)
}

// sanitizeFileName creates a safe filename from a string.
func sanitizeFileName(name string) string {
	sanitized := strings.ToLower(name)
	sanitized = strings.ReplaceAll(sanitized, " ", "-")
	sanitized = strings.ReplaceAll(sanitized, "_", "-")

	var result strings.Builder
	for _, r := range sanitized {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			result.WriteRune(r)
		}
	}

	return strings.Trim(result.String(), "-")
}

// minifyHTML performs basic HTML minification.
func minifyHTML(html string) string {
	lines := strings.Split(html, "\n")
	var minified strings.Builder

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			minified.WriteString(trimmed)
			minified.WriteString(" ")
		}
	}

	result := strings.TrimSpace(minified.String())
	result = strings.ReplaceAll(result, "> <", "><")

	return result
}
