package site

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ziadkadry99/docview/internal/config"
	"github.com/ziadkadry99/docview/internal/markup"
	"github.com/ziadkadry99/docview/internal/progress"
	"github.com/ziadkadry99/docview/internal/toggler"
	"github.com/ziadkadry99/docview/internal/walker"
)

// Generator renders a source tree into a static documentation site.
type Generator struct {
	SourceDir   string
	SiteDir     string
	ProjectName string
	Include     []string
	Exclude     []string
	Level       int // initial expansion level of files.html
	Progress    progress.Reporter
}

// NewGenerator builds a Generator from configuration.
func NewGenerator(cfg *config.Config, rep progress.Reporter) *Generator {
	if rep == nil {
		rep = progress.Discard{}
	}
	return &Generator{
		SourceDir:   cfg.SourceDir,
		SiteDir:     cfg.SiteDir,
		ProjectName: cfg.Title(),
		Include:     cfg.Include,
		Exclude:     cfg.Exclude,
		Level:       cfg.ExpansionLevel,
		Progress:    rep,
	}
}

// Stats summarises a generation run.
type Stats struct {
	Files int // source files found
	Pages int // HTML pages written
}

// pageData is passed to pageTemplate.
type pageData struct {
	Title       string
	ProjectName string
	BasePath    string
	Content     template.HTML
}

// Generate walks the source tree and writes the site. Pages are written
// in a fixed order: assets, index.html, files.html, then one listing per
// source file.
func (g *Generator) Generate(ctx context.Context) (Stats, error) {
	var stats Stats

	exclude := append([]string(nil), g.Exclude...)
	if rel, ok := within(g.SourceDir, g.SiteDir); ok {
		exclude = append(exclude, rel+"/**")
	}
	files, err := walker.Walk(walker.Options{
		Root:    g.SourceDir,
		Include: g.Include,
		Exclude: exclude,
	})
	if err != nil {
		return stats, fmt.Errorf("walking %s: %w", g.SourceDir, err)
	}
	if len(files) == 0 {
		return stats, fmt.Errorf("no source files found in %s", g.SourceDir)
	}
	stats.Files = len(files)

	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return stats, fmt.Errorf("parsing page template: %w", err)
	}
	if err := os.MkdirAll(g.SiteDir, 0o755); err != nil {
		return stats, fmt.Errorf("creating %s: %w", g.SiteDir, err)
	}
	if err := g.writeAssets(); err != nil {
		return stats, err
	}

	g.Progress.Start(len(files) + 2)

	index, err := g.indexContent(files)
	if err != nil {
		return stats, err
	}
	if err := g.writePage(tmpl, "index.html", g.ProjectName, index); err != nil {
		return stats, err
	}
	stats.Pages++
	g.Progress.Step("index.html")

	if err := g.writeFilesPage(tmpl, files); err != nil {
		return stats, err
	}
	stats.Pages++
	g.Progress.Step("files.html")

	packages := make(map[string]*goPackage)
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		content, err := g.listingContent(f, files, packages)
		if err != nil {
			return stats, fmt.Errorf("rendering %s: %w", f.RelPath, err)
		}
		if err := g.writePage(tmpl, listingPath(f.RelPath), f.RelPath, content); err != nil {
			return stats, err
		}
		stats.Pages++
		g.Progress.Step(f.RelPath)
	}

	g.Progress.Finish(fmt.Sprintf("Generated %d pages from %d files in %s", stats.Pages, stats.Files, g.SiteDir))
	return stats, nil
}

func (g *Generator) writeAssets() error {
	open, err := triggerPNG(true)
	if err != nil {
		return fmt.Errorf("drawing open.png: %w", err)
	}
	closed, err := triggerPNG(false)
	if err != nil {
		return fmt.Errorf("drawing closed.png: %w", err)
	}
	assets := map[string][]byte{
		"style.css":           []byte(cssContent),
		"script.js":           []byte(jsContent),
		"plus.svg":            []byte(plusSVG),
		"minus.svg":           []byte(minusSVG),
		toggler.TriggerOpen:   open,
		toggler.TriggerClosed: closed,
	}
	for name, data := range assets {
		if err := os.WriteFile(filepath.Join(g.SiteDir, name), data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}
	return nil
}

// indexContent renders the root README, or a pointer to the file list when
// there is none.
func (g *Generator) indexContent(files []walker.File) (string, error) {
	for _, f := range files {
		if f.Dir() == "" && strings.EqualFold(strings.TrimSuffix(path.Base(f.RelPath), path.Ext(f.RelPath)), "readme") &&
			strings.EqualFold(path.Ext(f.RelPath), ".md") {
			src, err := os.ReadFile(f.Path)
			if err != nil {
				return "", fmt.Errorf("reading %s: %w", f.RelPath, err)
			}
			return renderReadme(newMarkdown(), src)
		}
	}
	return `<p>No README found. Browse the <a href="files.html">file list</a>.</p>`, nil
}

// writeFilesPage renders the directory table and settles its rows at the
// configured expansion level.
func (g *Generator) writeFilesPage(tmpl *template.Template, files []walker.File) error {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.RelPath
	}
	tree := BuildTree(paths)

	var b strings.Builder
	b.WriteString(`<div class="levels">[detail level`)
	for l := 1; l <= tree.Depth(); l++ {
		fmt.Fprintf(&b, ` <span data-cmd="set_level" data-level="%d">%d</span>`, l, l)
	}
	b.WriteString("]</div>\n")
	b.WriteString(`<table class="directory">` + "\n")
	for _, r := range directoryRows(tree) {
		fmt.Fprintf(&b, `<tr id="%s"><td class="entry" style="padding-left:%dpx;">`, r.ID, 16*r.Indent)
		name := template.HTMLEscapeString(r.Node.Name)
		if r.Node.IsDir {
			fmt.Fprintf(&b, `<span class="arrow" data-cmd="toggle_folder" data-target="%s">%s</span><span class="%s"></span>%s`,
				r.ID, toggler.Arrow(false), toggler.FolderClass(false), name)
		} else {
			fmt.Fprintf(&b, `<span class="icondoc"></span><a href="%s">%s</a>`, r.Link, name)
		}
		b.WriteString("</td></tr>\n")
	}
	b.WriteString("</table>\n")

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, pageData{
		Title:       "File List",
		ProjectName: g.ProjectName,
		Content:     template.HTML(b.String()),
	}); err != nil {
		return fmt.Errorf("rendering files.html: %w", err)
	}

	page, err := markup.Parse(&buf)
	if err != nil {
		return err
	}
	doc := page.Document(toggler.VariantRoot)
	doc.SetExpansionLevel(max(g.Level, 1))
	page.Apply(doc)

	var out bytes.Buffer
	if err := page.Render(&out); err != nil {
		return fmt.Errorf("rendering files.html: %w", err)
	}
	return os.WriteFile(filepath.Join(g.SiteDir, "files.html"), out.Bytes(), 0o644)
}

// listingContent renders one file: its member table for Go sources, then
// the highlighted listing.
func (g *Generator) listingContent(f walker.File, files []walker.File, packages map[string]*goPackage) (string, error) {
	src, err := os.ReadFile(f.Path)
	if err != nil {
		return "", err
	}
	lines, err := highlight(path.Base(f.RelPath), string(src))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if f.Language == "Go" {
		pkg, ok := packages[f.Dir()]
		if !ok {
			pkg = loadGoPackage(f.Dir(), files)
			packages[f.Dir()] = pkg
		}
		pkg.writeMembers(&b, f.RelPath, toggler.VariantNested.Prefix())
	}
	writeListing(&b, lines)
	return b.String(), nil
}

// loadGoPackage parses the Go files sharing dir.
func loadGoPackage(dir string, files []walker.File) *goPackage {
	sources := make(map[string][]byte)
	for _, f := range files {
		if f.Language != "Go" || f.Dir() != dir {
			continue
		}
		if data, err := os.ReadFile(f.Path); err == nil {
			sources[f.RelPath] = data
		}
	}
	return parseGoPackage(sources)
}

func (g *Generator) writePage(tmpl *template.Template, rel, title, content string) error {
	out := filepath.Join(g.SiteDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(out), err)
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", rel, err)
	}
	defer f.Close()

	data := pageData{
		Title:       title,
		ProjectName: g.ProjectName,
		BasePath:    strings.Repeat("../", strings.Count(rel, "/")),
		Content:     template.HTML(content),
	}
	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("rendering %s: %w", rel, err)
	}
	return nil
}

// within reports whether target lies inside root and returns its
// slash-separated relative path.
func within(root, target string) (string, bool) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", false
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(absRoot, absTarget)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
