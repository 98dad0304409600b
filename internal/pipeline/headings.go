package pipeline

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Slug derivation patterns.
var (
	nonSlugChars   = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
	hyphenRuns     = regexp.MustCompile(`-{2,}`)
)

// Heading describes one heading element in document order. Level is the
// heading depth (1..6), Text its trimmed visible content, and ID the unique
// slug written back onto the element. Consumers infer nesting from Level.
type Heading struct {
	Level int
	Text  string
	ID    string
}

// IndexHeadings visits heading elements under body in document order,
// assigns each a unique id, and returns the ordered navigation tree.
//
// The id candidate is the element's existing id attribute when the renderer
// already assigned one, otherwise a slug of the heading text. Duplicate
// candidates are suffixed "-2", "-3", ... keyed on the un-suffixed candidate,
// and the final id always overwrites the attribute, so uniqueness holds even
// when the renderer's own ids collide. All state is scoped to the call:
// repeated runs over identical trees yield identical ids.
func IndexHeadings(body *html.Node) []Heading {
	var tree []Heading
	seen := make(map[string]int)

	walk(body, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		level := headingLevel(n.Data)
		if level == 0 {
			return true
		}

		text := strings.TrimSpace(textContent(n))
		candidate := getAttr(n, "id")
		if candidate == "" {
			candidate = Slugify(text)
		}

		seen[candidate]++
		id := candidate
		if count := seen[candidate]; count > 1 {
			id = candidate + "-" + strconv.Itoa(count)
		}
		setAttr(n, "id", id)

		tree = append(tree, Heading{Level: level, Text: text, ID: id})
		return false // heading content already captured
	})

	return tree
}

// Slugify derives a URL-safe identifier from heading text: lowercase,
// strip everything but word characters, whitespace, and hyphens, turn
// whitespace runs into single hyphens, collapse hyphen runs, and trim
// edge hyphens. Empty text yields an empty slug; de-duplication still
// applies to it.
func Slugify(text string) string {
	slug := strings.ToLower(text)
	slug = nonSlugChars.ReplaceAllString(slug, "")
	slug = whitespaceRuns.ReplaceAllString(slug, "-")
	slug = hyphenRuns.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
