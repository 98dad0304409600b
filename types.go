package deliverance

import (
	"context"

	"github.com/joshjung/deliverance-star/internal/pipeline"
)

// ContentTreeNode describes one heading in document order. Level is the
// heading depth (1..6) and ID is unique within a single render. The list
// forms an implicitly nested outline: consumers infer nesting from Level.
type ContentTreeNode struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	ID    string `json:"id"`
}

// Footnote is a rendered footnote body. ID is derived from the definition's
// numeric label ("fn" + number); Content is inline HTML ready for a popover.
type Footnote struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// Document is the pipeline's externally visible result.
//
// HTML is the document body's inner markup with all annotations applied:
// every heading carries an id listed in ContentTree, every non-empty
// paragraph carries a sequential id, and every footnote reference element
// carries a data attribute that keys into Footnotes (references whose
// definition was missing in the source resolve to no entry; the
// presentation layer treats that as "do nothing").
type Document struct {
	HTML        string
	ContentTree []ContentTreeNode
	Footnotes   map[string]Footnote
}

// HTMLConverter abstracts Markdown to HTML conversion for callers who want
// to substitute the renderer (e.g., tests).
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithHTMLConverter replaces the default goldmark converter. The same
// converter renders both the main document and footnote definition bodies.
func WithHTMLConverter(c HTMLConverter) Option {
	return func(r *Renderer) {
		r.converter = c
	}
}

// Compile-time interface implementation checks.
var (
	_ pipeline.HTMLConverter     = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.FootnoteExtractor = (*pipeline.RegexExtractor)(nil)
	_ HTMLConverter              = (*pipeline.GoldmarkConverter)(nil)
)
