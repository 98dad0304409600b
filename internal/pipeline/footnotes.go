package pipeline

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Precompiled patterns for the footnote micro-syntax.
var (
	// Definition block: numeric label, colon, body, closing numeric label,
	// e.g. "[3]: See the appendix. [/3]". The body may not contain "[",
	// which keeps the pattern from swallowing adjacent definitions.
	// RE2 has no backreferences, so both labels are captured and compared
	// after the match; a mismatched pair is left in the text untouched.
	footnoteDefPattern = regexp.MustCompile(`\[(\d+)\]:\s*([^\[]*?)\s*\[/(\d+)\]`)

	// Reference marker: caret-prefixed numeric label in brackets, e.g. "[^3]".
	footnoteRefPattern = regexp.MustCompile(`\[\^(\d+)\]`)

	// Rendered definition bodies that are a single paragraph get unwrapped
	// so the stored content stays inline HTML.
	singleParagraph = regexp.MustCompile(`(?s)^<p>(.*)</p>\s*$`)
)

// Footnote is a rendered footnote body keyed by its derived id.
type Footnote struct {
	ID      string
	Content string // Inline HTML
}

// Ref records one occurrence of a footnote reference marker, in source order.
// Refs are transient: they exist only between extraction and linking.
// Multiple refs may share an ID when a footnote is cited more than once.
type Ref struct {
	Placeholder string
	ID          string
	Number      string
}

// FootnoteExtractor defines the contract for footnote extraction.
type FootnoteExtractor interface {
	Extract(ctx context.Context, source string) (string, map[string]Footnote, []Ref, error)
}

// RegexExtractor extracts the footnote micro-syntax from raw source text.
// Definition bodies are rendered in isolation through the injected converter.
type RegexExtractor struct {
	converter HTMLConverter
}

// NewRegexExtractor creates a RegexExtractor that renders definition bodies
// with the given converter.
func NewRegexExtractor(converter HTMLConverter) *RegexExtractor {
	return &RegexExtractor{converter: converter}
}

// Extract scans source for footnote definitions and reference markers.
// It returns the source with definitions removed and each reference marker
// replaced by its bare placeholder (the label survives Markdown conversion
// as plain text, to be matched again in the rendered tree), plus the
// footnote table and the ordered reference list.
//
// Unmatched markers are not errors: a reference without a definition still
// produces a Ref (it degrades to an inert element downstream), and a
// definition without a reference is extracted but never surfaced.
// When two definitions share a label, the last one wins.
func (e *RegexExtractor) Extract(ctx context.Context, source string) (string, map[string]Footnote, []Ref, error) {
	notes := make(map[string]Footnote)

	var renderErr error
	for _, m := range footnoteDefPattern.FindAllStringSubmatch(source, -1) {
		label, body, closing := m[1], m[2], m[3]
		if label != closing {
			continue
		}

		content, err := e.renderBody(ctx, body)
		if err != nil {
			renderErr = fmt.Errorf("rendering footnote %s: %w", label, err)
			break
		}

		id := "fn" + label
		notes[id] = Footnote{ID: id, Content: content}
	}
	if renderErr != nil {
		return "", nil, nil, renderErr
	}

	var refs []Ref
	stripped := footnoteRefPattern.ReplaceAllStringFunc(source, func(marker string) string {
		label := footnoteRefPattern.FindStringSubmatch(marker)[1]
		id := "fn" + label
		refs = append(refs, Ref{Placeholder: id, ID: id, Number: label})
		return id
	})

	// Second pass: drop the definition blocks entirely.
	stripped = footnoteDefPattern.ReplaceAllStringFunc(stripped, func(block string) string {
		m := footnoteDefPattern.FindStringSubmatch(block)
		if m[1] != m[3] {
			return block
		}
		return ""
	})

	return stripped, notes, refs, nil
}

// renderBody converts a definition body to inline HTML. Bodies are
// independently renderable Markdown; a single-paragraph result is unwrapped
// so popover content stays inline.
func (e *RegexExtractor) renderBody(ctx context.Context, body string) (string, error) {
	rendered, err := e.converter.ToHTML(ctx, body)
	if err != nil {
		return "", err
	}
	rendered = strings.TrimSpace(rendered)
	if m := singleParagraph.FindStringSubmatch(rendered); m != nil {
		return m[1], nil
	}
	return rendered, nil
}
