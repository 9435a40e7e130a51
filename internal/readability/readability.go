// Package readability is a port of the arc90 "readability" algorithm
// (§4.4): class-weight plus per-tag seed scores, paragraph-driven score
// propagation to parent and grandparent, link-density scaling, best-
// candidate selection with sibling merge, and a post-selection sanitize
// pass. It is the scoring-based fallback the cascade coordinator reaches
// for when the primary (selector-based) extractor comes back thin.
package readability

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/distillrun/trafilatura/internal/domutil"
	"github.com/distillrun/trafilatura/internal/markup"
)

const minTextLength = 25

var (
	positiveRE = regexp.MustCompile(`(?i)article|body|content|entry|hentry|main|page|pagination|post|text|blog|story`)
	negativeRE = regexp.MustCompile(`(?i)button|combx|comment|com-|contact|figure|foot|footer|footnote|form|input|masthead|media|meta|outbrain|promo|related|scroll|shoutbox|sidebar|sponsor|shopping|tags|tool|widget`)

	unlikelyRE = regexp.MustCompile(`(?i)combx|comment|community|disqus|extra|foot|header|menu|remark|rss|shoutbox|sidebar|sponsor|ad-break|agegate|pagination|pager|popup|tweet|twitter`)
	maybeRE    = regexp.MustCompile(`(?i)and|article|body|column|main|shadow`)

	divToPBlockRE = regexp.MustCompile(`(?i)^(a|blockquote|dl|div|img|ol|p|pre|table|ul)$`)

	videoHostRE = regexp.MustCompile(`(?i)^https?://(?:www\.)?(youtube|vimeo)\.com`)

	sentenceEndRE = regexp.MustCompile(`\.( |$)`)
)

var seedScores = map[string]int{
	"div": 5, "article": 5,
	"pre": 3, "td": 3, "blockquote": 3,
	"address": -3, "ol": -3, "ul": -3, "dl": -3, "dd": -3, "dt": -3, "li": -3, "form": -3, "aside": -3,
	"h1": -5, "h2": -5, "h3": -5, "h4": -5, "h5": -5, "h6": -5, "th": -5, "header": -5, "footer": -5, "nav": -5,
}

// scorer holds per-node scores for one extraction attempt.
type scorer struct {
	scores map[*html.Node]int
}

func newScorer() *scorer { return &scorer{scores: map[*html.Node]int{}} }

func (s *scorer) get(n *goquery.Selection) (int, bool) {
	if n.Length() == 0 {
		return 0, false
	}
	v, ok := s.scores[n.Get(0)]
	return v, ok
}

func (s *scorer) set(n *goquery.Selection, v int) {
	if n.Length() == 0 {
		return
	}
	s.scores[n.Get(0)] = v
}

func classWeight(sel *goquery.Selection) int {
	text := domutil.ClassAndID(sel)
	score := 0
	if positiveRE.MatchString(text) {
		score += 25
	}
	if negativeRE.MatchString(text) {
		score -= 25
	}
	return score
}

func seedScore(sel *goquery.Selection) int {
	return seedScores[domutil.TagName(sel)]
}

// Result is the (body, text, length) triple the cascade coordinator
// compares across extractors.
type Result struct {
	Body   *markup.Node
	Text   string
	Length int
}

// Options configures the fallback; mirrors the subset of the public
// Options record the readability algorithm consumes.
type Options struct {
	Formatting bool
	Links      bool
	Images     bool
	Tables     bool
	BaseURL    string
	Ruthless   bool
}

// Extract runs the full scoring pipeline against doc (already cleaned) and
// returns the best candidate converted to the internal markup vocabulary.
func Extract(doc *goquery.Document, opts Options) Result {
	s := newScorer()
	if opts.Ruthless {
		removeUnlikelyCandidates(doc)
	}
	transformMisusedDivs(doc)
	scoreParagraphs(doc, s)
	candidate := findTopCandidate(doc, s)
	if candidate == nil {
		return Result{Body: markup.New(markup.Body, nil)}
	}
	output := buildOutput(candidate, s)
	sanitize(output, s)
	if output.Find("p").Length() == 0 && opts.Ruthless {
		return Extract(doc, Options{Formatting: opts.Formatting, Links: opts.Links, Images: opts.Images, Tables: opts.Tables, BaseURL: opts.BaseURL, Ruthless: false})
	}
	node := markup.FromElement(output, markup.BuildOptions{
		Formatting: opts.Formatting, Links: opts.Links, Images: opts.Images, Tables: opts.Tables, BaseURL: opts.BaseURL,
	})
	node.Tag = markup.Body
	text := node.TextContent()
	return Result{Body: node, Text: text, Length: len(domutil.NormalizeSpace(text))}
}

// removeUnlikelyCandidates is the pre-pass Extract runs when
// Options.Ruthless is set: drop elements
// whose class+id matches the blacklist but not the whitelist, unless the
// tag is body/html.
func removeUnlikelyCandidates(doc *goquery.Document) {
	var toRemove []*goquery.Selection
	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		tag := domutil.TagName(s)
		if tag == "body" || tag == "html" {
			return
		}
		text := domutil.ClassAndID(s)
		if unlikelyRE.MatchString(text) && !maybeRE.MatchString(text) {
			toRemove = append(toRemove, s)
		}
	})
	for _, s := range toRemove {
		domutil.Remove(s)
	}
}

// transformMisusedDivs converts divs whose children never include a block
// tag into <p>.
func transformMisusedDivs(doc *goquery.Document) {
	doc.Find("div").Each(func(_ int, s *goquery.Selection) {
		hasBlock := false
		s.Children().EachWithBreak(func(_ int, c *goquery.Selection) bool {
			if divToPBlockRE.MatchString(domutil.TagName(c)) {
				hasBlock = true
				return false
			}
			return true
		})
		if !hasBlock {
			domutil.RenameTag(s, "p")
		}
	})
}

func scoreParagraphs(doc *goquery.Document, s *scorer) {
	doc.Find("p, pre, td").Each(func(_ int, node *goquery.Selection) {
		text := domutil.TrimmedText(node)
		if len(text) < minTextLength {
			return
		}
		parent := node.Parent()
		if parent.Length() == 0 {
			return
		}
		if _, ok := s.get(parent); !ok {
			s.set(parent, classWeight(parent)+seedScore(parent))
		}
		grandparent := parent.Parent()
		hasGrandparent := grandparent.Length() > 0
		if hasGrandparent {
			if _, ok := s.get(grandparent); !ok {
				s.set(grandparent, classWeight(grandparent)+seedScore(grandparent))
			}
		}
		contentScore := 1 + strings.Count(text, ",")
		bonus := len(text) / 100
		if bonus > 3 {
			bonus = 3
		}
		contentScore += bonus
		pv, _ := s.get(parent)
		s.set(parent, pv+contentScore)
		if hasGrandparent {
			gv, _ := s.get(grandparent)
			s.set(grandparent, gv+contentScore/2)
		}
	})
	// Scale every candidate by (1 - link_density).
	for node := range s.scores {
		sel := goquery.NewDocumentFromNode(node).Selection
		density := domutil.LinkDensity(sel)
		v := s.scores[node]
		s.scores[node] = int(float64(v) * (1 - density))
	}
}

func findTopCandidate(doc *goquery.Document, s *scorer) *goquery.Selection {
	var best *goquery.Selection
	bestScore := 0
	for node, score := range s.scores {
		if best == nil || score > bestScore {
			sel := goquery.NewDocumentFromNode(node).Selection
			best = sel
			bestScore = score
		}
	}
	return best
}

// buildOutput collects the best candidate's parent's children per the
// retention rule of §4.4, deep-cloning siblings into a fresh <div>.
func buildOutput(candidate *goquery.Selection, s *scorer) *goquery.Selection {
	parent := candidate.Parent()
	threshold := 10
	bestScore, _ := s.get(candidate)
	if t := int(float64(bestScore) * 0.2); t > threshold {
		threshold = t
	}
	wrapperHTML := "<div></div>"
	wrapper, _ := goquery.NewDocumentFromReader(strings.NewReader(wrapperHTML))
	wrapperDiv := wrapper.Find("div")

	if parent.Length() == 0 {
		appendClone(wrapperDiv, candidate)
		return wrapperDiv
	}

	parent.Children().Each(func(_ int, sib *goquery.Selection) {
		keep := false
		if sib.Get(0) == candidate.Get(0) {
			keep = true
		} else if score, ok := s.get(sib); ok && score >= threshold {
			keep = true
		} else if domutil.TagName(sib) == "p" {
			text := domutil.TrimmedText(sib)
			density := domutil.LinkDensity(sib)
			if len(text) > 80 && density < 0.25 {
				keep = true
			} else if len(text) <= 80 && density == 0 && sentenceEndRE.MatchString(text) {
				keep = true
			}
		}
		if keep {
			appendClone(wrapperDiv, sib)
		}
	})
	return wrapperDiv
}

func appendClone(dst *goquery.Selection, src *goquery.Selection) {
	for _, n := range src.Nodes {
		dst.AppendNodes(cloneHTMLNode(n))
	}
}

func cloneHTMLNode(n *html.Node) *html.Node {
	cp := &html.Node{
		Type: n.Type, DataAtom: n.DataAtom, Data: n.Data, Namespace: n.Namespace,
	}
	cp.Attr = append([]html.Attribute{}, n.Attr...)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		cp.AppendChild(cloneHTMLNode(c))
	}
	return cp
}

// sanitize removes headings with negative weight or high link density,
// drops forms/textareas, replaces YouTube/Vimeo iframes with a "VIDEO"
// placeholder and drops other iframes, then runs the conditional-removal
// pass over table/ul/div/aside/header/footer/section in reverse document
// order.
func sanitize(root *goquery.Selection, s *scorer) {
	root.Find("h1,h2,h3,h4,h5,h6").Each(func(_ int, h *goquery.Selection) {
		if classWeight(h) < 0 || domutil.LinkDensity(h) > 0.33 {
			domutil.Remove(h)
		}
	})
	root.Find("form, textarea").Each(func(_ int, s2 *goquery.Selection) {
		domutil.Remove(s2)
	})
	root.Find("iframe").Each(func(_ int, f *goquery.Selection) {
		src := domutil.Attr(f, "src")
		if videoHostRE.MatchString(src) {
			f.ReplaceWithHtml("VIDEO")
		} else {
			domutil.Remove(f)
		}
	})

	candidates := root.Find("table, ul, div, aside, header, footer, section").Nodes
	for i := len(candidates) - 1; i >= 0; i-- {
		sel := goquery.NewDocumentFromNode(candidates[i]).Selection
		conditionalRemove(sel, s)
	}
}

func conditionalRemove(sel *goquery.Selection, s *scorer) {
	if sel.Parent().Length() == 0 {
		return
	}
	weight := classWeight(sel)
	score, _ := s.get(sel)
	combined := weight + score
	if combined < 0 {
		domutil.Remove(sel)
		return
	}
	text := domutil.TrimmedText(sel)
	commas := strings.Count(text, ",")
	if commas >= 10 {
		return
	}
	p := sel.Find("p").Length()
	img := sel.Find("img").Length()
	li := sel.Find("li").Length() - 100
	if li < 0 {
		li = 0
	}
	hiddenInputs := 0
	sel.Find("input").Each(func(_ int, in *goquery.Selection) {
		if t := domutil.Attr(in, "type"); strings.EqualFold(t, "hidden") {
			hiddenInputs++
		}
	})
	input := sel.Find("input, embed").Length() - hiddenInputs
	embeds := sel.Find("embed").Length()
	linkDensity := domutil.LinkDensity(sel)
	contentLength := len(text)

	toRemove := false
	switch {
	case img > 1 && float64(p)/float64(maxInt(img, 1)) < 0.5 && !hasAncestorFigure(sel):
		toRemove = true
	case li > p && domutil.TagName(sel) != "ul" && domutil.TagName(sel) != "ol":
		toRemove = true
	case input > p/3:
		toRemove = true
	case contentLength < 25 && (img == 0 || img > 2):
		toRemove = true
	case weight < 25 && linkDensity > 0.2:
		toRemove = true
	case weight >= 25 && linkDensity > 0.5:
		toRemove = true
	case (embeds == 1 && contentLength < 75) || embeds > 1:
		toRemove = true
	}
	if toRemove {
		domutil.Remove(sel)
	}
}

func hasAncestorFigure(sel *goquery.Selection) bool {
	return sel.Closest("figure").Length() > 0
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
