package pipeline

import (
	"strings"
	"testing"
)

func TestLinkFootnotes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		fragment     string
		refs         []Ref
		wantContains []string
		wantNot      []string
	}{
		{
			name:     "single reference mid-text",
			fragment: "<p>See notefn1 for details.</p>",
			refs:     []Ref{{Placeholder: "fn1", ID: "fn1", Number: "1"}},
			wantContains: []string{
				"See note<sup",
				`class="footnote-ref"`,
				`role="button"`,
				`tabindex="0"`,
				`aria-label="Footnote 1"`,
				`data-footnote-id="fn1"`,
				">1</sup> for details.",
			},
			wantNot: []string{"notefn1"},
		},
		{
			name:     "reference at end of text produces no empty trailing node",
			fragment: "<p>Trailingfn2</p>",
			refs:     []Ref{{Placeholder: "fn2", ID: "fn2", Number: "2"}},
			wantContains: []string{
				"Trailing<sup",
				">2</sup></p>",
			},
		},
		{
			name:     "labels 1 and 10 in the same paragraph",
			fragment: "<p>See notefn1 and alsofn10.</p>",
			refs: []Ref{
				{Placeholder: "fn1", ID: "fn1", Number: "1"},
				{Placeholder: "fn10", ID: "fn10", Number: "10"},
			},
			wantContains: []string{
				`data-footnote-id="fn1"`,
				">1</sup>",
				`data-footnote-id="fn10"`,
				">10</sup>",
			},
			wantNot: []string{"fn10.", "fn1 "},
		},
		{
			name:     "discovery order irrelevant for 10 vs 1",
			fragment: "<p>See notefn10 and alsofn1.</p>",
			refs: []Ref{
				{Placeholder: "fn1", ID: "fn1", Number: "1"},
				{Placeholder: "fn10", ID: "fn10", Number: "10"},
			},
			wantContains: []string{
				`data-footnote-id="fn10"`,
				`data-footnote-id="fn1"`,
			},
		},
		{
			name:     "placeholder split across nested elements",
			fragment: "<p>Outer <em>innerfn3</em> tail.</p>",
			refs:     []Ref{{Placeholder: "fn3", ID: "fn3", Number: "3"}},
			wantContains: []string{
				"<em>inner<sup",
				"</sup></em>",
			},
		},
		{
			name:     "unresolved reference still becomes an element",
			fragment: "<p>Ghostfn9 here.</p>",
			refs:     []Ref{{Placeholder: "fn9", ID: "fn9", Number: "9"}},
			wantContains: []string{
				`data-footnote-id="fn9"`,
				">9</sup>",
			},
		},
		{
			name:         "no refs leaves tree untouched",
			fragment:     "<p>Plain text fn1 untouched.</p>",
			refs:         nil,
			wantContains: []string{"Plain text fn1 untouched."},
			wantNot:      []string{"<sup"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			body, err := ParseBody(tt.fragment)
			if err != nil {
				t.Fatalf("ParseBody() error = %v", err)
			}

			LinkFootnotes(body, tt.refs)

			got, err := RenderBody(body)
			if err != nil {
				t.Fatalf("RenderBody() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q\ngot: %q", want, got)
				}
			}
			for _, bad := range tt.wantNot {
				if strings.Contains(got, bad) {
					t.Errorf("output should not contain %q\ngot: %q", bad, got)
				}
			}
		})
	}
}

func TestLinkFootnotes_OnlyFirstOccurrencePerTextNode(t *testing.T) {
	t.Parallel()

	body, err := ParseBody("<p>Twicefn1 and againfn1.</p>")
	if err != nil {
		t.Fatalf("ParseBody() error = %v", err)
	}

	LinkFootnotes(body, []Ref{{Placeholder: "fn1", ID: "fn1", Number: "1"}})

	got, err := RenderBody(body)
	if err != nil {
		t.Fatalf("RenderBody() error = %v", err)
	}

	if n := strings.Count(got, "<sup"); n != 1 {
		t.Errorf("got %d reference elements, want 1 (first occurrence only)\ngot: %q", n, got)
	}
	if !strings.Contains(got, "againfn1.") {
		t.Errorf("second occurrence should stay plain text, got: %q", got)
	}
}

func TestLinkFootnotes_DuplicateRefsLinkSuccessiveOccurrences(t *testing.T) {
	t.Parallel()

	// A footnote cited twice yields two refs with the same placeholder; the
	// second ref picks up the occurrence left behind in the trailing node.
	body, err := ParseBody("<p>Onefn1 and twofn1.</p>")
	if err != nil {
		t.Fatalf("ParseBody() error = %v", err)
	}

	LinkFootnotes(body, []Ref{
		{Placeholder: "fn1", ID: "fn1", Number: "1"},
		{Placeholder: "fn1", ID: "fn1", Number: "1"},
	})

	got, err := RenderBody(body)
	if err != nil {
		t.Fatalf("RenderBody() error = %v", err)
	}

	if n := strings.Count(got, "<sup"); n != 2 {
		t.Errorf("got %d reference elements, want 2\ngot: %q", n, got)
	}
}

func TestPlaceholderIndex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		text        string
		placeholder string
		want        int
	}{
		{"simple match", "see fn1 here", "fn1", 4},
		{"no match", "nothing", "fn1", -1},
		{"prefix of longer label rejected", "see fn10 here", "fn1", -1},
		{"match after rejected prefix", "fn10 then fn1", "fn1", 10},
		{"match at end", "tail fn2", "fn2", 5},
		{"digit boundary only applies to digits", "fn1st", "fn1", 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := placeholderIndex(tt.text, tt.placeholder); got != tt.want {
				t.Errorf("placeholderIndex(%q, %q) = %d, want %d", tt.text, tt.placeholder, got, tt.want)
			}
		})
	}
}
