// Package templates provides project scaffolding templates.
//
// A scaffolded project renders with the domtree CLI out of the box: it
// holds a domtree.yaml, a markup file and, depending on the template, a
// data file and a stylesheet wired through the configuration.
//
// # Available Templates
//
//   - minimal: a configuration and a static page
//   - site: a page with placeholders, content data and a YAML stylesheet
//
// # Usage
//
//	tmpl, err := templates.Get("site")
//	if err != nil {
//	    return err
//	}
//	written, err := tmpl.Create(dir, templates.Config{Title: "Docs"})
//
// # Template Variables
//
//	{{.Name}}    - Name of the project
//	{{.Title}}   - Page title
//	{{.Lang}}    - Document language
//	{{.Pretty}}  - Whether output is indented
package templates
