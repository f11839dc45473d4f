package render

import (
	"sync"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
	"go.uber.org/zap"
)

var (
	minifier     *minify.M
	minifierOnce sync.Once
)

// getMinifier returns the shared HTML minifier. End tags, document tags
// and attribute quotes are kept so the output stays valid for any parser.
func getMinifier() *minify.M {
	minifierOnce.Do(func() {
		minifier = minify.New()
		minifier.Add("text/html", &html.Minifier{
			KeepDocumentTags: true,
			KeepEndTags:      true,
			KeepQuotes:       true,
		})
	})
	return minifier
}

// minify removes insignificant whitespace from rendered markup. On failure
// the markup is returned unchanged.
func (r *Renderer) minify(markup string) string {
	out, err := getMinifier().String("text/html", markup)
	if err != nil {
		r.config.Logger.Warn("minify failed, keeping original output", zap.Error(err))
		return markup
	}
	return out
}
