package pipeline

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FootnoteRefClass marks interactive footnote reference elements. The
// presentation layer binds activation handlers against this class.
const FootnoteRefClass = "footnote-ref"

// FootnoteIDAttr carries the footnote table key on a reference element.
const FootnoteIDAttr = "data-footnote-id"

// LinkFootnotes rewrites text nodes containing reference placeholders into a
// mix of plain text and interactive reference elements. Refs are processed in
// discovery order; matching is boundary-safe (a placeholder followed by a
// digit is not a match), so "fn1" can never corrupt an occurrence of "fn10"
// and no ordering constraint applies.
//
// At most one occurrence per text node is linked: the node is split once
// around the first boundary-safe match. A second occurrence in the same node
// stays plain text unless a later ref with the same placeholder picks it up
// in the new trailing node.
func LinkFootnotes(body *html.Node, refs []Ref) {
	for _, ref := range refs {
		for _, node := range findPlaceholderNodes(body, ref.Placeholder) {
			splitAround(node, ref)
		}
	}
}

// findPlaceholderNodes collects the text nodes under body that contain a
// boundary-safe occurrence of placeholder. Collection happens before any
// mutation so the traversal never sees its own edits.
func findPlaceholderNodes(body *html.Node, placeholder string) []*html.Node {
	var nodes []*html.Node
	walk(body, func(n *html.Node) bool {
		if n.Type == html.TextNode && placeholderIndex(n.Data, placeholder) >= 0 {
			nodes = append(nodes, n)
		}
		return true
	})
	return nodes
}

// placeholderIndex returns the byte offset of the first boundary-safe
// occurrence of placeholder in text, or -1. An occurrence immediately
// followed by a digit belongs to a longer label and is not a match.
func placeholderIndex(text, placeholder string) int {
	from := 0
	for {
		i := strings.Index(text[from:], placeholder)
		if i < 0 {
			return -1
		}
		i += from
		rest := text[i+len(placeholder):]
		r, _ := utf8.DecodeRuneInString(rest)
		if rest == "" || !unicode.IsDigit(r) {
			return i
		}
		from = i + len(placeholder)
	}
}

// splitAround replaces node with up to three siblings: the text before the
// placeholder, the interactive reference element, and the text after (only
// when non-empty), preserving sibling order.
func splitAround(node *html.Node, ref Ref) {
	i := placeholderIndex(node.Data, ref.Placeholder)
	if i < 0 {
		return
	}
	before := node.Data[:i]
	after := node.Data[i+len(ref.Placeholder):]

	parent := node.Parent
	parent.InsertBefore(&html.Node{Type: html.TextNode, Data: before}, node)
	parent.InsertBefore(newRefElement(ref), node)
	if after != "" {
		parent.InsertBefore(&html.Node{Type: html.TextNode, Data: after}, node)
	}
	parent.RemoveChild(node)
}

// newRefElement builds the interactive footnote reference element: a
// focusable button-role <sup> labeled with the footnote's ordinal number
// and bound to its table id. The pipeline only guarantees structure; the
// presentation layer supplies behavior.
func newRefElement(ref Ref) *html.Node {
	el := &html.Node{
		Type:     html.ElementNode,
		Data:     "sup",
		DataAtom: atom.Sup,
		Attr: []html.Attribute{
			{Key: "class", Val: FootnoteRefClass},
			{Key: "role", Val: "button"},
			{Key: "tabindex", Val: "0"},
			{Key: "aria-label", Val: "Footnote " + ref.Number},
			{Key: FootnoteIDAttr, Val: ref.ID},
		},
	}
	el.AppendChild(&html.Node{Type: html.TextNode, Data: ref.Number})
	return el
}
