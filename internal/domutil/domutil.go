// Package domutil provides normalized-text getters, whitespace trimming,
// tag stripping and link-density helpers shared by every stage of the
// extraction pipeline. All functions operate directly on goquery
// selections so that the cleaner, scorer and extractors can share one
// notion of "the text of this node".
package domutil

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// TrimmedText returns the node's text content with surrounding whitespace
// removed and internal whitespace runs collapsed to a single space.
func TrimmedText(sel *goquery.Selection) string {
	return NormalizeSpace(sel.Text())
}

// NormalizeSpace collapses runs of whitespace into a single space and trims
// the ends, matching how the scorer and serializers compare text lengths.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TagName returns the lower-cased tag name of the selection's first node, or
// the empty string if the selection is empty.
func TagName(sel *goquery.Selection) string {
	if sel == nil || sel.Length() == 0 {
		return ""
	}
	return strings.ToLower(goquery.NodeName(sel))
}

// Attr returns an attribute value or "" if absent.
func Attr(sel *goquery.Selection, name string) string {
	v, _ := sel.Attr(name)
	return v
}

// ClassAndID returns the concatenation of class and id, the pair the
// selector catalog and scorer match substrings against.
func ClassAndID(sel *goquery.Selection) string {
	return Attr(sel, "class") + " " + Attr(sel, "id")
}

// ClassIDRoleItemprop concatenates the four attributes the selector catalog
// matches against (§4.2 of the extraction spec).
func ClassIDRoleItemprop(sel *goquery.Selection) string {
	return strings.Join([]string{
		Attr(sel, "class"),
		Attr(sel, "id"),
		Attr(sel, "role"),
		Attr(sel, "itemprop"),
	}, " ")
}

// HasInlineDisplayNone reports whether the element's inline style hides it.
func HasInlineDisplayNone(sel *goquery.Selection) bool {
	style := strings.ToLower(Attr(sel, "style"))
	return strings.Contains(style, "display:none") || strings.Contains(style, "display: none")
}

// IsAriaHidden reports aria-hidden="true".
func IsAriaHidden(sel *goquery.Selection) bool {
	return strings.ToLower(Attr(sel, "aria-hidden")) == "true"
}

// LinkDensity is the ratio of the trimmed text length of descendant <a>
// elements to the trimmed text length of the node itself. Returns 0 for an
// empty node, matching the readability algorithm's convention.
func LinkDensity(sel *goquery.Selection) float64 {
	total := len(TrimmedText(sel))
	if total == 0 {
		return 0
	}
	var linkLen int
	sel.Find("a").Each(func(_ int, a *goquery.Selection) {
		linkLen += len(TrimmedText(a))
	})
	return float64(linkLen) / float64(total)
}

// Unwrap replaces the element with its children, preserving interior text
// and child order -- the "manually-stripped" operation of §4.3 step 1.
func Unwrap(sel *goquery.Selection) {
	sel.Each(func(_ int, s *goquery.Selection) {
		node := s.Get(0)
		if node == nil || node.Parent == nil {
			return
		}
		parent := node.Parent
		children := make([]*html.Node, 0)
		for c := node.FirstChild; c != nil; {
			next := c.NextSibling
			children = append(children, c)
			c = next
		}
		for _, c := range children {
			node.RemoveChild(c)
			parent.InsertBefore(c, node)
		}
		parent.RemoveChild(node)
	})
}

// Remove detaches the element (and its subtree) from the tree entirely --
// the "manually-cleaned" operation of §4.3 step 2.
func Remove(sel *goquery.Selection) {
	sel.Each(func(_ int, s *goquery.Selection) {
		node := s.Get(0)
		if node == nil || node.Parent == nil {
			return
		}
		node.Parent.RemoveChild(node)
	})
}

// ReplaceWithDiv converts the element into a plain <div>, keeping children,
// used for the <figure><table>...</table></figure> rewrite of §4.3 step 2
// and the <details> -> <div> rewrite of §4.7.
func ReplaceWithDiv(sel *goquery.Selection) {
	sel.Each(func(_ int, s *goquery.Selection) {
		RenameTag(s, "div")
	})
}

// RenameTag changes the element's tag name in place, leaving children and
// attributes untouched.
func RenameTag(sel *goquery.Selection, tag string) {
	node := sel.Get(0)
	if node == nil || node.Type != html.ElementNode {
		return
	}
	node.Data = tag
	node.DataAtom = 0
}

// HasNonEmptyText reports whether the node (not its descendants) carries
// any non-whitespace direct text, used by the empty-element prune (§4.3
// step 4).
func HasNonEmptyText(sel *goquery.Selection) bool {
	for _, n := range sel.Nodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode && strings.TrimSpace(c.Data) != "" {
				return true
			}
		}
	}
	return false
}

// HasElementChildren reports whether the node has at least one element
// child.
func HasElementChildren(sel *goquery.Selection) bool {
	return sel.Children().Length() > 0
}

// CountChar counts occurrences of r in s.
func CountChar(s string, r rune) int {
	return strings.Count(s, string(r))
}

// IsWhitespace reports whether s is empty once trimmed.
func IsWhitespace(s string) bool {
	return strings.TrimSpace(s) == ""
}
