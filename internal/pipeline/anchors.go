package pipeline

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Paragraph annotation markers, consumed by the presentation layer.
const (
	// ParagraphClass marks paragraphs that carry a deep-link anchor.
	ParagraphClass = "anchored"
	// ParagraphLinkClass marks the deep-link control inside a paragraph.
	ParagraphLinkClass = "paragraph-link"
)

// InjectParagraphAnchors makes non-empty paragraphs individually addressable.
// Paragraph elements are visited in document order; those with empty trimmed
// text are skipped and do not consume a sequence number. Each remaining
// paragraph gets id "pN" (1-based), the marker class, and a deep-link anchor
// to its own id prepended as its first child. Returns the number of
// paragraphs anchored. The counter is scoped to the call.
func InjectParagraphAnchors(body *html.Node) int {
	var paragraphs []*html.Node
	walk(body, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "p" {
			if strings.TrimSpace(textContent(n)) != "" {
				paragraphs = append(paragraphs, n)
			}
			return false
		}
		return true
	})

	for i, p := range paragraphs {
		id := "p" + strconv.Itoa(i+1)
		setAttr(p, "id", id)
		addClass(p, ParagraphClass)
		if p.FirstChild != nil {
			p.InsertBefore(newAnchorElement(id), p.FirstChild)
		} else {
			p.AppendChild(newAnchorElement(id))
		}
	}

	return len(paragraphs)
}

// newAnchorElement builds the deep-link control for a paragraph id.
func newAnchorElement(id string) *html.Node {
	el := &html.Node{
		Type:     html.ElementNode,
		Data:     "a",
		DataAtom: atom.A,
		Attr: []html.Attribute{
			{Key: "class", Val: ParagraphLinkClass},
			{Key: "href", Val: "#" + id},
			{Key: "aria-label", Val: "Link to this paragraph"},
		},
	}
	el.AppendChild(&html.Node{Type: html.TextNode, Data: "¶"})
	return el
}

// addClass appends a class token to n's class attribute, keeping any
// classes the renderer already assigned.
func addClass(n *html.Node, class string) {
	existing := getAttr(n, "class")
	if existing == "" {
		setAttr(n, "class", class)
		return
	}
	for _, c := range strings.Fields(existing) {
		if c == class {
			return
		}
	}
	setAttr(n, "class", existing+" "+class)
}
