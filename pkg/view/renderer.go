package view

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"
	texttemplate "text/template"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// DefaultTitle is used when neither the page nor the renderer provides one.
const DefaultTitle = "No Title"

const (
	extHTML     = ".html"
	extMarkdown = ".md"
)

// Page describes a single rendering: a view, optionally wrapped in a layout.
type Page struct {
	Data   any
	View   string
	Layout string // empty renders the view alone
	Title  string
}

// LayoutData is passed to layout templates.
type LayoutData struct {
	Data    any
	Title   string
	Content template.HTML
}

// Config configures a Renderer.
type Config struct {
	ViewsDir   string // Default: "views"
	LayoutsDir string // Default: "layouts"
	Title      string // Default: DefaultTitle
}

// Renderer renders views and layouts from an fs.FS.
//
// Views are html/template files (.html) or Markdown files (.md). Markdown
// views are executed as text templates first, then converted to HTML and
// sanitized. Layouts are always html/template files.
type Renderer struct {
	fs     fs.FS
	md     goldmark.Markdown
	policy *bluemonday.Policy

	viewCache   map[string]*cachedView
	layoutCache map[string]*template.Template
	viewsDir    string
	layoutsDir  string
	title       string

	mu sync.RWMutex
}

type cachedView struct {
	html     *template.Template
	markdown *texttemplate.Template
}

// NewRenderer creates a renderer over filesystem.
func NewRenderer(filesystem fs.FS, cfg Config) *Renderer {
	if cfg.ViewsDir == "" {
		cfg.ViewsDir = "views"
	}
	if cfg.LayoutsDir == "" {
		cfg.LayoutsDir = "layouts"
	}
	if cfg.Title == "" {
		cfg.Title = DefaultTitle
	}

	return &Renderer{
		fs:          filesystem,
		md:          goldmark.New(),
		policy:      bluemonday.UGCPolicy(),
		viewsDir:    cleanDir(cfg.ViewsDir),
		layoutsDir:  cleanDir(cfg.LayoutsDir),
		title:       cfg.Title,
		viewCache:   make(map[string]*cachedView),
		layoutCache: make(map[string]*template.Template),
	}
}

// ViewExists reports whether a view file exists for name.
func (r *Renderer) ViewExists(name string) bool {
	_, ok := r.viewPath(name)
	return ok
}

// LayoutExists reports whether a layout file exists for name.
// The ".html" extension is optional.
func (r *Renderer) LayoutExists(name string) bool {
	p, ok := layoutFile(name)
	if !ok {
		return false
	}
	return fileExists(r.fs, path.Join(r.layoutsDir, p))
}

// Component resolves the page's view and layout and returns a component
// that renders them. Missing templates are reported here, not at render time.
func (r *Renderer) Component(p Page) (templ.Component, error) {
	v, err := r.getView(p.View)
	if err != nil {
		return nil, err
	}

	var layout *template.Template
	if p.Layout != "" {
		if layout, err = r.getLayout(p.Layout); err != nil {
			return nil, err
		}
	}

	title := p.Title
	if title == "" {
		title = r.title
	}

	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		content, err := r.renderView(v, p.Data)
		if err != nil {
			return err
		}
		if layout == nil {
			_, err := io.WriteString(w, string(content))
			return err
		}

		data := LayoutData{Title: title, Content: content, Data: p.Data}
		if err := layout.Execute(w, data); err != nil {
			return fmt.Errorf("%w: layout %s: %v", ErrRenderFailed, p.Layout, err)
		}
		return nil
	}), nil
}

// Render writes the page to w.
func (r *Renderer) Render(ctx context.Context, w io.Writer, p Page) error {
	c, err := r.Component(p)
	if err != nil {
		return err
	}
	return c.Render(ctx, w)
}

func (r *Renderer) renderView(v *cachedView, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if v.html != nil {
		if err := v.html.Execute(&buf, data); err != nil {
			return "", fmt.Errorf("%w: view %s: %v", ErrRenderFailed, v.html.Name(), err)
		}
		return template.HTML(buf.String()), nil
	}

	if err := v.markdown.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: view %s: %v", ErrRenderFailed, v.markdown.Name(), err)
	}
	var out bytes.Buffer
	if err := r.md.Convert(buf.Bytes(), &out); err != nil {
		return "", fmt.Errorf("%w: convert markdown: %v", ErrRenderFailed, err)
	}
	return template.HTML(r.policy.SanitizeBytes(out.Bytes())), nil
}

// viewPath finds the file backing a view name. Without an extension the
// HTML file wins over the Markdown one.
func (r *Renderer) viewPath(name string) (string, bool) {
	name = trimName(name)
	if name == "" {
		return "", false
	}

	candidates := []string{name + extHTML, name + extMarkdown}
	if ext := path.Ext(name); ext == extHTML || ext == extMarkdown {
		candidates = []string{name}
	}
	for _, c := range candidates {
		p := path.Join(r.viewsDir, c)
		if fileExists(r.fs, p) {
			return p, true
		}
	}
	return "", false
}

// getView returns a cached view or parses and caches it.
func (r *Renderer) getView(name string) (*cachedView, error) {
	p, ok := r.viewPath(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrViewNotFound, name)
	}

	r.mu.RLock()
	if cached, ok := r.viewCache[p]; ok {
		r.mu.RUnlock()
		return cached, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.viewCache[p]; ok {
		return cached, nil
	}

	content, err := fs.ReadFile(r.fs, p)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrViewNotFound, name, err)
	}

	cached := &cachedView{}
	if path.Ext(p) == extMarkdown {
		cached.markdown, err = texttemplate.New(p).Parse(string(content))
	} else {
		cached.html, err = template.New(p).Parse(string(content))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: parse view %s: %v", ErrRenderFailed, name, err)
	}

	r.viewCache[p] = cached
	return cached, nil
}

// getLayout returns a cached layout or parses and caches it.
func (r *Renderer) getLayout(name string) (*template.Template, error) {
	file, ok := layoutFile(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrLayoutNotFound, name)
	}
	p := path.Join(r.layoutsDir, file)

	r.mu.RLock()
	if cached, ok := r.layoutCache[p]; ok {
		r.mu.RUnlock()
		return cached, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.layoutCache[p]; ok {
		return cached, nil
	}

	content, err := fs.ReadFile(r.fs, p)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLayoutNotFound, name, err)
	}

	tmpl, err := template.New(p).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: parse layout %s: %v", ErrRenderFailed, name, err)
	}

	r.layoutCache[p] = tmpl
	return tmpl, nil
}

// layoutFile trims slashes and appends ".html" when missing.
func layoutFile(name string) (string, bool) {
	name = trimName(name)
	if name == "" {
		return "", false
	}
	if !strings.HasSuffix(name, extHTML) {
		name += extHTML
	}
	return name, true
}

// trimName converts backslashes and strips surrounding slashes.
func trimName(name string) string {
	return strings.Trim(strings.ReplaceAll(name, `\`, "/"), "/")
}

func cleanDir(dir string) string {
	dir = trimName(dir)
	if dir == "" {
		return "."
	}
	return path.Clean(dir)
}

func fileExists(fsys fs.FS, name string) bool {
	info, err := fs.Stat(fsys, name)
	return err == nil && !info.IsDir()
}
