package main

import (
	"bytes"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vango-dev/domtree/pkg/css"
	"github.com/vango-dev/domtree/pkg/parse"
	"github.com/vango-dev/domtree/pkg/render"
	"github.com/vango-dev/domtree/pkg/vdom"
)

type renderOptions struct {
	data    string
	css     string
	output  string
	indent  string
	title   string
	lang    string
	pretty  bool
	minify  bool
	page    bool
	metrics bool
}

func renderCmd(a *app) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render markup with injected content",
		Long: `Parse HTML markup, inject content and write the rendered HTML.

Elements carrying data-content="key" render the content stored under
key in place of their children. Elements carrying data-each="key" are
repeated for every item of the content, with the entries of each item
available to the placeholders inside.

Examples:
  domtree render page.html --data data.yaml
  domtree render page.html --page --title Home --css site.yaml
  cat fragment.html | domtree render --pretty`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, a, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.data, "data", "d", "", "YAML file of content values (default: data.file from config)")
	cmd.Flags().StringVar(&opts.css, "css", "", "YAML stylesheet to include (default: css.file from config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&opts.indent, "indent", "", "Indentation of pretty output")
	cmd.Flags().StringVar(&opts.title, "title", "", "Document title (with --page)")
	cmd.Flags().StringVar(&opts.lang, "lang", "", "Document language (with --page)")
	cmd.Flags().BoolVarP(&opts.pretty, "pretty", "p", false, "Indent the output")
	cmd.Flags().BoolVar(&opts.minify, "minify", false, "Minify the output")
	cmd.Flags().BoolVar(&opts.page, "page", false, "Wrap the markup in a complete document")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", false, "Print render metrics to stderr")

	return cmd
}

func runRender(cmd *cobra.Command, a *app, opts *renderOptions, args []string) error {
	flags := cmd.Flags()
	if !flags.Changed("pretty") {
		opts.pretty = a.cfg.Render.Pretty
	}
	if !flags.Changed("minify") {
		opts.minify = a.cfg.Render.Minify
	}
	if !flags.Changed("indent") {
		opts.indent = a.cfg.Render.Indent
	}
	if opts.data == "" {
		opts.data = a.cfg.ResolvePath(a.cfg.Data.File)
	}
	if opts.css == "" {
		opts.css = a.cfg.ResolvePath(a.cfg.CSS.File)
	}

	input, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	nodes, err := parse.ParseWith(bytes.NewReader(input), parse.Options{Placeholders: true})
	if err != nil {
		return err
	}
	data, err := loadData(opts.data)
	if err != nil {
		return err
	}
	rules, err := loadStylesheet(opts.css)
	if err != nil {
		return err
	}

	config := render.RendererConfig{
		Pretty: opts.pretty,
		Indent: opts.indent,
		Minify: opts.minify,
		Logger: a.log,
	}
	var registry *prometheus.Registry
	if opts.metrics {
		registry = prometheus.NewRegistry()
		config.Metrics = render.NewMetrics(render.WithRegistry(registry))
	}
	r := render.NewRenderer(config)

	var out []byte
	if opts.page {
		out, err = renderDocument(r, nodes, data, rules, opts)
	} else {
		out, err = renderFragment(cmd, r, nodes, data, rules)
	}
	if err != nil {
		return err
	}

	a.log.Debug("rendered",
		zap.Int("roots", len(nodes)),
		zap.Int("bytes", len(out)),
		zap.Bool("page", opts.page))

	if err := writeOutput(cmd, opts.output, out); err != nil {
		return err
	}
	if registry != nil {
		return dumpMetrics(cmd, registry)
	}
	return nil
}

// renderFragment renders the parsed roots side by side under a view node
// that holds the content.
func renderFragment(cmd *cobra.Command, r *render.Renderer, nodes []*vdom.Node, data map[string]any, rules *css.Rules) ([]byte, error) {
	root := vdom.NewView(nil, "Document")
	if rules != nil {
		if err := root.Append(rules.Element()); err != nil {
			return nil, err
		}
	}
	if err := root.Insert(nodes); err != nil {
		return nil, err
	}
	root.Inject(data)

	out, err := r.RenderContext(cmd.Context(), root)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// renderDocument renders the parsed roots as the body of a page. The body
// of a parsed document is reused.
func renderDocument(r *render.Renderer, nodes []*vdom.Node, data map[string]any, rules *css.Rules, opts *renderOptions) ([]byte, error) {
	var body *vdom.Node
	if len(nodes) == 1 && nodes[0].Tag() == "html" {
		for _, c := range nodes[0].Children() {
			if c.Tag() == "body" {
				body = c.Remove()
				break
			}
		}
	}
	if body == nil {
		body = vdom.Body()
		if err := body.Insert(nodes); err != nil {
			return nil, err
		}
	}
	body.Inject(data)

	page := render.PageData{
		Body:  body,
		Title: opts.title,
		Lang:  opts.lang,
	}
	if rules != nil {
		page.Styles = []string{rules.Render(false)}
	}

	var b bytes.Buffer
	if err := r.RenderPage(&b, page); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// dumpMetrics writes the gathered metrics in the text exposition format.
func dumpMetrics(cmd *cobra.Command, registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return err
	}
	w := cmd.ErrOrStderr()
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
