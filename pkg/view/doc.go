// Package view renders views and layouts stored in an fs.FS.
//
// A view is an html/template file (name.html) or a Markdown file (name.md).
// A layout is an html/template file that wraps the rendered view and
// receives LayoutData:
//
//	<!doctype html>
//	<title>{{.Title}}</title>
//	<main>{{.Content}}</main>
//
// Rendering produces a templ.Component:
//
//	r := view.NewRenderer(os.DirFS("app"), view.Config{Title: "Demo"})
//	c, err := r.Component(view.Page{View: "home/index", Layout: "main", Data: data})
//	if err != nil {
//		return err
//	}
//	return c.Render(ctx, w)
//
// Parsed templates are cached for the life of the Renderer.
package view
