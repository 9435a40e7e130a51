package markup

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/distillrun/trafilatura/internal/domutil"
)

// headingRend maps h1..h6 to their rend attribute.
var headingRend = map[string]string{
	"h1": "h1", "h2": "h2", "h3": "h3", "h4": "h4", "h5": "h5", "h6": "h6",
}

// formattingRend is the fixed map from §4.7 for <hi rend=...>.
var formattingRend = map[string]string{
	"em": "#i", "i": "#i",
	"b": "#b", "strong": "#b",
	"u": "#u",
	"kbd": "#t", "samp": "#t", "tt": "#t", "var": "#t",
	"sub": "#sub",
	"sup": "#sup",
}

var hljsClassRE = regexp.MustCompile(`(?i)^hljs`)

// looksLikeCode applies the §4.7 <pre> heuristic: only child is a <span>,
// OR it has a span[class^="hljs"] descendant, OR its text contains one of a
// fixed set of code-ish substrings. The literal substring "\n    " is
// reproduced verbatim per the spec's open question: it matches a newline
// immediately followed by four spaces, nothing broader.
func looksLikeCode(sel *goquery.Selection) bool {
	children := sel.Children()
	if children.Length() == 1 && domutil.TagName(children.First()) == "span" {
		return true
	}
	hasHljs := false
	sel.Find("span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		class := domutil.Attr(s, "class")
		if strings.HasPrefix(class, "hljs") || hljsClassRE.MatchString(class) {
			hasHljs = true
			return false
		}
		return true
	})
	if hasHljs {
		return true
	}
	text := sel.Text()
	for _, marker := range []string{"{", "(\"", "('", "\n    "} {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// ResolveTarget resolves an href against a base URL, keeping absolute
// http(s) links as-is.
func ResolveTarget(href, base string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if base == "" {
		return href
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	rel, err := url.Parse(href)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(rel).String()
}

// Converted is the result of mapping one DOM element to zero-or-one
// internal tags.
type Converted struct {
	Tag     string // "" means: unwrap, keep children/text only
	Attrs   map[string]string
	Skip    bool // true means: drop the element and its subtree entirely
}

// ConvertTag maps a single cleaned DOM element to its internal-markup
// equivalent per §4.7. It does not recurse; callers walk the DOM and call
// this once per element, building the Node tree incrementally. baseURL is
// used to resolve <a href> when links=true.
func ConvertTag(sel *goquery.Selection, formatting, links, images bool, baseURL string) Converted {
	tag := domutil.TagName(sel)
	switch tag {
	case "ol", "ul", "dl":
		return Converted{Tag: List, Attrs: map[string]string{"rend": tag}}
	case "li", "dd", "dt":
		return Converted{Tag: Item}
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return Converted{Tag: Head, Attrs: map[string]string{"rend": headingRend[tag]}}
	case "br", "hr":
		return Converted{Tag: LB}
	case "blockquote", "q":
		return Converted{Tag: Quote}
	case "pre":
		if looksLikeCode(sel) {
			return Converted{Tag: Code}
		}
		return Converted{Tag: Quote}
	case "del", "s", "strike":
		return Converted{Tag: Del, Attrs: map[string]string{"rend": "overstrike"}}
	case "details":
		return Converted{Tag: Div}
	case "summary":
		return Converted{Tag: Head}
	case "img":
		if images {
			attrs := map[string]string{
				"src":   domutil.Attr(sel, "src"),
				"alt":   domutil.Attr(sel, "alt"),
				"title": domutil.Attr(sel, "title"),
			}
			return Converted{Tag: Graph, Attrs: attrs}
		}
		return Converted{Skip: true}
	case "a":
		if !links {
			return Converted{Tag: ""}
		}
		target := ResolveTarget(domutil.Attr(sel, "href"), baseURL)
		return Converted{Tag: Ref, Attrs: map[string]string{"target": target}}
	case "em", "i", "b", "strong", "u", "kbd", "samp", "tt", "var", "sub", "sup":
		if formatting {
			return Converted{Tag: Hi, Attrs: map[string]string{"rend": formattingRend[tag]}}
		}
		return Converted{Tag: ""}
	case "p":
		return Converted{Tag: P}
	case "table":
		return Converted{Tag: Table}
	case "tr":
		return Converted{Tag: Row}
	case "td":
		return Converted{Tag: Cell}
	case "th":
		return Converted{Tag: Cell, Attrs: map[string]string{"role": "head"}}
	case "div", "article", "main", "section":
		return Converted{Tag: Div}
	default:
		return Converted{Tag: ""}
	}
}
