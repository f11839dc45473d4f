package templates

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/vango-dev/domtree/internal/errors"
)

// Config contains template configuration.
type Config struct {
	// Name is the name of the project.
	Name string

	// Title is the page title.
	Title string

	// Lang is the document language.
	Lang string

	// Pretty enables indented output in the generated domtree.yaml.
	Pretty bool
}

// Template represents a project template.
type Template struct {
	// Name is the template name.
	Name string

	// Description describes the template.
	Description string

	// Files is a map of relative paths to file contents.
	Files map[string]string
}

// Available templates.
var templates = map[string]*Template{
	"minimal": minimalTemplate(),
	"site":    siteTemplate(),
}

// Get returns a template by name.
func Get(name string) (*Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return nil, errors.New("E172").
			WithDetail("Template '" + name + "' not found").
			WithSuggestion("Available templates: " + strings.Join(List(), ", "))
	}
	return tmpl, nil
}

// List returns all available template names, sorted.
func List() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Paths returns the relative paths of the template files, sorted.
func (t *Template) Paths() []string {
	paths := make([]string, 0, len(t.Files))
	for p := range t.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Create writes the template files into dir and returns their paths.
// Nothing is written when one of the files already exists.
func (t *Template) Create(dir string, cfg Config) ([]string, error) {
	cfg = cfg.withDefaults(dir)

	rendered := make(map[string][]byte, len(t.Files))
	for _, relPath := range t.Paths() {
		tmpl, err := template.New(relPath).Parse(t.Files[relPath])
		if err != nil {
			return nil, errors.Newf(errors.CategoryCLI, "invalid template %s: %v", relPath, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, cfg); err != nil {
			return nil, errors.Newf(errors.CategoryCLI, "template execute error %s: %v", relPath, err)
		}
		rendered[relPath] = buf.Bytes()

		if _, err := os.Stat(filepath.Join(dir, relPath)); err == nil {
			return nil, errors.New("E173").
				WithDetail(filepath.Join(dir, relPath)).
				WithSuggestion("Choose an empty directory")
		}
	}

	written := make([]string, 0, len(rendered))
	for _, relPath := range t.Paths() {
		fullPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return written, err
		}
		if err := os.WriteFile(fullPath, rendered[relPath], 0644); err != nil {
			return written, err
		}
		written = append(written, fullPath)
	}
	return written, nil
}

func (c Config) withDefaults(dir string) Config {
	if c.Name == "" {
		if abs, err := filepath.Abs(dir); err == nil {
			c.Name = filepath.Base(abs)
		}
	}
	if c.Title == "" {
		c.Title = c.Name
	}
	if c.Lang == "" {
		c.Lang = "en"
	}
	return c
}

// minimalTemplate returns the minimal template.
func minimalTemplate() *Template {
	return &Template{
		Name:        "minimal",
		Description: "A configuration and a static page",
		Files: map[string]string{
			"domtree.yaml": `render:
  pretty: {{.Pretty}}
  indent: "  "
log:
  level: warn
`,
			"index.html": `<main>
  <h1>{{.Title}}</h1>
  <p>Edit index.html and run: domtree render index.html --page</p>
</main>
`,
		},
	}
}

// siteTemplate returns the site template.
func siteTemplate() *Template {
	return &Template{
		Name:        "site",
		Description: "A page with placeholders, content data and a YAML stylesheet",
		Files: map[string]string{
			"domtree.yaml": `render:
  pretty: {{.Pretty}}
  indent: "  "
log:
  level: warn
css:
  file: site.yaml
data:
  file: data.yaml
`,
			"index.html": `<main lang="{{.Lang}}">
  <h1 data-content="title">Title</h1>
  <ul class="links">
    <li data-each="links"><a data-content="label"></a></li>
  </ul>
</main>
`,
			"data.yaml": `title: {{printf "%q" .Title}}
links:
  - label: Home
  - label: About
`,
			"site.yaml": `main:
  max-width: 40rem
  margin: 0 auto
  ".links":
    list-style: none
    "li + li":
      margin-top: 0.5rem
`,
		},
	}
}
