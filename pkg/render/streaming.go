package render

import (
	"io"

	"go.uber.org/zap"

	"github.com/vango-dev/domtree/internal/errors"
	"github.com/vango-dev/domtree/pkg/vdom"
)

// Flusher is implemented by writers that buffer output, such as
// bufio.Writer.
type Flusher interface {
	Flush() error
}

// StreamingRenderer writes the children of a root one at a time, flushing
// after each, so large documents start arriving before they are complete.
type StreamingRenderer struct {
	*Renderer
	w       io.Writer
	flusher Flusher
}

// NewStreamingRenderer creates a streaming renderer writing to w. If w
// implements Flusher it is flushed after each top-level child.
func NewStreamingRenderer(w io.Writer, config RendererConfig) *StreamingRenderer {
	flusher, _ := w.(Flusher)
	return &StreamingRenderer{
		Renderer: NewRenderer(config),
		w:        w,
		flusher:  flusher,
	}
}

// Stream writes the markup of root. The output equals RenderToString.
func (s *StreamingRenderer) Stream(root *vdom.Node) error {
	if root == nil {
		return nil
	}
	if root.Kind() != vdom.KindElement || s.config.Pretty || s.config.Minify {
		if err := s.RenderToWriter(s.w, root); err != nil {
			return err
		}
		return s.flush()
	}

	attrs := root.Attrs().Render()
	if err := s.write("<" + root.Tag() + attrs + ">"); err != nil {
		return err
	}
	if root.IsVoid() {
		return s.flush()
	}
	for i, c := range root.Contents() {
		out, err := s.renderValue(root, i, c, 0, false)
		if err != nil {
			return err
		}
		if err := s.write(out); err != nil {
			return err
		}
		if err := s.flush(); err != nil {
			return err
		}
	}
	if err := s.write("</" + root.Tag() + ">"); err != nil {
		return err
	}
	return s.flush()
}

// StreamPage streams the document of page, doctype first.
func (s *StreamingRenderer) StreamPage(page PageData) error {
	doc, err := Document(page)
	if err != nil {
		return err
	}
	if err := s.write(doctype); err != nil {
		return err
	}
	return s.Stream(doc)
}

func (s *StreamingRenderer) write(out string) error {
	if _, err := io.WriteString(s.w, out); err != nil {
		return errors.New("E150").WithDetail("stream output").Wrap(err)
	}
	return nil
}

// flush flushes the writer if it supports flushing.
func (s *StreamingRenderer) flush() error {
	if s.flusher == nil {
		return nil
	}
	if err := s.flusher.Flush(); err != nil {
		s.config.Logger.Warn("flush failed", zap.Error(err))
		return errors.New("E150").WithDetail("flush output").Wrap(err)
	}
	return nil
}
