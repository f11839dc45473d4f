package render

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/vango-dev/domtree/internal/errors"
	"github.com/vango-dev/domtree/internal/htmlesc"
	"github.com/vango-dev/domtree/pkg/vdom"
	"github.com/vango-dev/domtree/pkg/view"
)

// Default tracer name for render spans.
const defaultTracerName = "domtree"

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables indented output for debugging. Pretty output bypasses
	// the render cache and is not byte-stable.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string

	// Views selects the representation of data objects.
	// Defaults to view.Default.
	Views *view.Registry

	// Logger receives debug events. Defaults to a no-op logger.
	Logger *zap.Logger

	// Metrics records render counters. Optional.
	Metrics *Metrics

	// Tracer creates the spans of RenderContext.
	// Defaults to the global tracer provider.
	Tracer trace.Tracer

	// Minify post-processes the output with an HTML minifier.
	Minify bool
}

// Renderer turns trees into markup, memoizing the output of every node
// until it is mutated.
type Renderer struct {
	config RendererConfig
	id     uint64
}

var rendererIDs atomic.Uint64

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	if config.Views == nil {
		config.Views = view.Default
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	if config.Tracer == nil {
		config.Tracer = otel.Tracer(defaultTracerName)
	}
	return &Renderer{
		config: config,
		id:     rendererIDs.Add(1),
	}
}

// Config returns the effective configuration.
func (r *Renderer) Config() RendererConfig {
	return r.config
}

// stamp identifies caches written by this renderer for the current set of
// view definitions.
func (r *Renderer) stamp() vdom.CacheStamp {
	return vdom.CacheStamp{Renderer: r.id, Version: r.config.Views.Version()}
}

// RenderToString renders a tree to a markup string.
func (r *Renderer) RenderToString(node *vdom.Node) (string, error) {
	start := time.Now()
	out, err := r.render(node, 0, r.config.Pretty)
	if err != nil {
		r.config.Metrics.renderFailed()
		return "", err
	}
	if r.config.Minify {
		out = r.minify(out)
	}
	r.config.Metrics.rendered(time.Since(start))
	return out, nil
}

// RenderToWriter writes the markup of a tree to w.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.Node) error {
	out, err := r.RenderToString(node)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, out); err != nil {
		return errors.New("E150").WithDetail("write output").Wrap(err)
	}
	return nil
}

// RenderContext renders a tree inside a trace span.
func (r *Renderer) RenderContext(ctx context.Context, node *vdom.Node) (string, error) {
	attrs := []attribute.KeyValue{
		attribute.Bool("domtree.pretty", r.config.Pretty),
		attribute.Bool("domtree.minify", r.config.Minify),
	}
	if node != nil {
		attrs = append(attrs, attribute.String("domtree.root", node.TypeName()))
	}

	_, span := r.config.Tracer.Start(ctx, "domtree.render",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
	defer span.End()

	out, err := r.RenderToString(node)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	span.SetAttributes(attribute.Int("domtree.bytes", len(out)))
	return out, nil
}

// RenderChildren renders the children of node without its own tag.
func (r *Renderer) RenderChildren(node *vdom.Node) (string, error) {
	if node == nil {
		return "", nil
	}
	if node.Kind() == vdom.KindPlaceholder {
		return r.renderPlaceholder(node, 0, r.config.Pretty)
	}
	return r.renderChildren(node, 0, r.config.Pretty)
}

// render renders one node, serving stable nodes from their cache.
func (r *Renderer) render(n *vdom.Node, depth int, pretty bool) (string, error) {
	if n == nil {
		return "", nil
	}
	if n.Kind() == vdom.KindPlaceholder {
		return r.renderPlaceholder(n, depth, pretty)
	}

	stamp := r.stamp()
	if !pretty {
		if html, ok := n.RenderCache(stamp); ok {
			r.config.Metrics.cacheHit()
			return html, nil
		}
	}

	var (
		out string
		err error
	)
	if n.Kind() == vdom.KindView {
		// views render only their children
		out, err = r.renderChildren(n, depth, pretty)
	} else {
		out, err = r.renderElement(n, depth, pretty)
	}
	if err != nil {
		return "", err
	}
	if !pretty {
		n.SetRenderCache(stamp, out)
	}
	return out, nil
}

// renderElement renders an element with its attributes and children.
func (r *Renderer) renderElement(n *vdom.Node, depth int, pretty bool) (string, error) {
	var b strings.Builder
	tag := n.Tag()

	if pretty {
		r.writeIndent(&b, depth)
	}
	b.WriteByte('<')
	b.WriteString(tag)
	b.WriteString(n.Attrs().Render())
	b.WriteByte('>')

	if n.IsVoid() {
		if pretty {
			b.WriteByte('\n')
		}
		return b.String(), nil
	}

	block := pretty && !isCompact(n)
	if block {
		b.WriteByte('\n')
	}
	inner, err := r.renderChildren(n, depth+1, block)
	if err != nil {
		return "", err
	}
	b.WriteString(inner)
	if block {
		r.writeIndent(&b, depth)
	}

	b.WriteString("</")
	b.WriteString(tag)
	b.WriteByte('>')
	if pretty {
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// renderChildren renders the children of n in order.
func (r *Renderer) renderChildren(n *vdom.Node, depth int, pretty bool) (string, error) {
	var b strings.Builder
	for i, c := range n.Contents() {
		s, err := r.renderValue(n, i, c, depth, pretty)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

// renderValue renders the child at index of container.
func (r *Renderer) renderValue(container *vdom.Node, index int, v any, depth int, pretty bool) (string, error) {
	var text string
	switch x := v.(type) {
	case nil:
		return "", nil
	case *vdom.Node:
		return r.render(x, depth, pretty)
	case string:
		text = htmlesc.Text(x)
	case vdom.RawHTML:
		text = string(x)
	default:
		if s, ok := scalar(v); ok {
			text = s
			break
		}
		node, err := r.config.Views.Dispatch(v, container, index)
		if err != nil {
			return "", err
		}
		if node != nil {
			r.config.Metrics.dispatched(node.TypeName())
			return r.render(node, depth, pretty)
		}
		text = htmlesc.Text(fmt.Sprint(v))
	}
	if pretty && text != "" {
		return r.indent(depth) + text + "\n", nil
	}
	return text, nil
}

// renderPlaceholder renders the resolved items of a placeholder joined
// with a space. Missing content renders as nothing.
func (r *Renderer) renderPlaceholder(ph *vdom.Node, depth int, pretty bool) (string, error) {
	items := ph.Resolve()
	if len(items) == 0 {
		r.config.Metrics.placeholderMissed()
		r.config.Logger.Debug("placeholder has no content",
			zap.String("key", ph.PlaceholderKey()),
		)
		return "", nil
	}

	container, index := ph.Parent(), ph.Index()
	parts := make([]string, 0, len(items))
	for _, item := range items {
		var (
			s   string
			err error
		)
		switch node, isNode := item.(*vdom.Node); {
		case isNode:
			node.AddDependent(ph)
			s, err = r.render(node, depth, pretty)
		case ph.PlaceholderTemplate() != nil:
			ph.PlaceholderTemplate().AddDependent(ph)
			s, err = r.render(ph.Instantiate(item), depth, pretty)
		default:
			if values, ok := vdom.RecordValues(item); ok {
				for _, v := range values {
					if t := r.text(v); t != "" {
						parts = append(parts, t)
					}
				}
				continue
			}
			s, err = r.renderValue(container, index, item, depth, pretty)
		}
		if err != nil {
			return "", err
		}
		if s != "" {
			parts = append(parts, s)
		}
	}

	sep := " "
	if pretty {
		sep = ""
	}
	return strings.Join(parts, sep), nil
}

// text renders a record value as escaped text.
func (r *Renderer) text(v any) string {
	if s, ok := scalar(v); ok {
		return s
	}
	switch x := v.(type) {
	case string:
		return htmlesc.Text(x)
	case vdom.RawHTML:
		return string(x)
	}
	return htmlesc.Text(fmt.Sprint(v))
}

// scalar formats builtin booleans and numbers. They never need escaping.
func scalar(v any) (string, bool) {
	switch x := v.(type) {
	case bool:
		return strconv.FormatBool(x), true
	case int:
		return strconv.Itoa(x), true
	case int8:
		return strconv.FormatInt(int64(x), 10), true
	case int16:
		return strconv.FormatInt(int64(x), 10), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint:
		return strconv.FormatUint(uint64(x), 10), true
	case uint8:
		return strconv.FormatUint(uint64(x), 10), true
	case uint16:
		return strconv.FormatUint(uint64(x), 10), true
	case uint32:
		return strconv.FormatUint(uint64(x), 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32), true
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), true
	}
	return "", false
}

// isCompact reports whether an element stays on one line in pretty mode:
// inline tags and elements without element children.
func isCompact(n *vdom.Node) bool {
	if isInlineElement(n.Tag()) {
		return true
	}
	for _, c := range n.Contents() {
		if _, ok := c.(*vdom.Node); ok {
			return false
		}
	}
	return true
}

// writeIndent writes indentation for pretty printing.
func (r *Renderer) writeIndent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString(r.config.Indent)
	}
}

func (r *Renderer) indent(depth int) string {
	return strings.Repeat(r.config.Indent, depth)
}
