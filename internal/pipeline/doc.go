// Package pipeline implements the document transformation stages.
//
// This package turns raw book source plus the footnote micro-syntax into
// annotated, injectable HTML:
//   - Footnote extraction: definition blocks ("[N]: body [/N]") become a
//     rendered footnote table; reference markers ("[^N]") become plain-text
//     placeholders that survive Markdown conversion.
//   - Markdown to HTML conversion via goldmark.
//   - Tree materialization over golang.org/x/net/html.
//   - Heading indexing: unique slugged ids plus the ordered navigation tree.
//   - Footnote linking: placeholder text nodes are split around interactive
//     reference elements.
//   - Paragraph anchoring: sequential ids and deep-link controls.
//
// Orchestration, artifact serialization, and the public types live in the
// root package. Every stage here is deterministic and run-scoped: identical
// input yields identical ids and identical tree shape on every run.
package pipeline
