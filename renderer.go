package deliverance

import (
	"context"
	"fmt"
	"strings"

	"github.com/joshjung/deliverance-star/internal/pipeline"
)

// Renderer runs the document transformation pipeline: footnote extraction,
// Markdown conversion, heading indexing, footnote linking, and paragraph
// anchoring. One Renderer may be reused across documents; every Render call
// owns its own tree and tables, so repeated calls never leak state.
type Renderer struct {
	converter pipeline.HTMLConverter
	extractor pipeline.FootnoteExtractor
}

// NewRenderer creates a Renderer with default stages.
// Use options to customize behavior (e.g., WithHTMLConverter).
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{}

	for _, opt := range opts {
		opt(r)
	}

	if r.converter == nil {
		r.converter = pipeline.NewGoldmarkConverter()
	}
	if r.extractor == nil {
		r.extractor = pipeline.NewRegexExtractor(r.converter)
	}

	return r
}

// Render runs the full pipeline against in-memory source and returns the
// annotated document. This is the inline mode; BuildArtifact drives the
// same code for the offline mode, so both modes produce equivalent output
// by construction.
//
// Per-element oddities in the source (a reference without a definition, a
// heading with empty text, several placeholders in one text node) degrade
// silently as documented on the pipeline stages. Only fundamentally broken
// input or a cancelled context produces an error.
func (r *Renderer) Render(ctx context.Context, source string) (*Document, error) {
	if strings.TrimSpace(source) == "" {
		return nil, ErrEmptySource
	}

	stripped, notes, refs, err := r.extractor.Extract(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("extracting footnotes: %w", err)
	}

	fragment, err := r.converter.ToHTML(ctx, stripped)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	body, err := pipeline.ParseBody(fragment)
	if err != nil {
		return nil, fmt.Errorf("materializing tree: %w", err)
	}

	headings := pipeline.IndexHeadings(body)
	pipeline.LinkFootnotes(body, refs)
	pipeline.InjectParagraphAnchors(body)

	htmlContent, err := pipeline.RenderBody(body)
	if err != nil {
		return nil, fmt.Errorf("serializing tree: %w", err)
	}

	doc := &Document{
		HTML:        htmlContent,
		ContentTree: make([]ContentTreeNode, 0, len(headings)),
		Footnotes:   make(map[string]Footnote, len(notes)),
	}
	for _, h := range headings {
		doc.ContentTree = append(doc.ContentTree, ContentTreeNode{Level: h.Level, Text: h.Text, ID: h.ID})
	}
	for id, n := range notes {
		doc.Footnotes[id] = Footnote{ID: n.ID, Content: n.Content}
	}

	return doc, nil
}
