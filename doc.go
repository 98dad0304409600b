// Package deliverance renders long-form Markdown books into interactive,
// addressable HTML documents.
//
// The pipeline layers a footnote micro-syntax on top of Markdown: reference
// markers ("[^1]") and out-of-line definition blocks ("[1]: body [/1]").
// Rendering a document yields three things consumed by a presentation layer:
//
//   - HTML: the annotated body markup, ready for injection into a content
//     region. Headings carry unique slug ids, non-empty paragraphs carry
//     sequential ids with deep-link anchors, and footnote references are
//     focusable elements bound to the footnote table.
//   - ContentTree: the ordered heading descriptors used to render navigation.
//   - Footnotes: rendered footnote bodies keyed by id, resolved when a
//     reference element is activated.
//
// Two modes share one implementation. Offline mode (BuildArtifact) runs
// ahead of time against a source file and persists the HTML plus a JSON
// metadata artifact; inline mode (Render) produces the same structures in
// memory when no artifact is available. Open prefers the artifact and falls
// back to inline rendering.
//
// Basic usage:
//
//	r := deliverance.NewRenderer()
//	doc, err := r.Render(ctx, source)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(doc.HTML)
//
// The pipeline favors silent degradation: unmatched footnote markers, empty
// headings, and similar per-element oddities are absorbed rather than
// reported. Only malformed input at the renderer level or I/O failures
// surface as errors.
package deliverance
