package markup

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/distillrun/trafilatura/internal/domutil"
)

// BuildOptions configures how a DOM subtree is walked into a Node tree.
type BuildOptions struct {
	Formatting bool
	Links      bool
	Images     bool
	Tables     bool
	BaseURL    string
	// Potential is the set of internal tags the caller is allowed to emit
	// (the primary extractor's potential-tag-set, §4.8 step 3). A nil map
	// means "anything ConvertTag returns is allowed" -- used by the
	// readability/baseline/paragraph fallbacks, which are not potential-tag
	// gated in the spec.
	Potential map[string]bool
}

// FromElement recursively converts a cleaned DOM element into an internal
// Node, applying ConvertTag at every level. Elements ConvertTag resolves to
// "" (unwrap) contribute their text/children directly to the parent; "Skip"
// elements and their subtree are dropped. This single shared walker backs
// the primary extractor's per-element dispatch (§4.8 step 4) and is reused
// (with a permissive Potential) by the readability and paragraph fallbacks
// when they need to emit structured output instead of flat <p> text.
func FromElement(sel *goquery.Selection, opts BuildOptions) *Node {
	root := &Node{Tag: Div}
	appendChildren(root, sel, opts)
	return root
}

func appendChildren(parent *Node, sel *goquery.Selection, opts BuildOptions) {
	for _, n := range sel.Nodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			appendNode(parent, c, opts)
		}
	}
}

func appendNode(parent *Node, n *html.Node, opts BuildOptions) {
	switch n.Type {
	case html.TextNode:
		parent.AppendText(n.Data)
		return
	case html.ElementNode:
		// fallthrough below
	default:
		return
	}
	sel := wrap(n)
	if !opts.Tables {
		if tag := domutil.TagName(sel); tag == "table" || tag == "td" || tag == "th" || tag == "tr" {
			return
		}
	}
	conv := ConvertTag(sel, opts.Formatting, opts.Links, opts.Images, opts.BaseURL)
	if conv.Skip {
		return
	}
	if conv.Tag == "" || (opts.Potential != nil && !opts.Potential[conv.Tag]) {
		// Unwrap: contribute children/text straight into parent.
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			appendNode(parent, c, opts)
		}
		return
	}
	child := New(conv.Tag, conv.Attrs)
	parent.Append(child)
	appendChildren(child, sel, opts)
}

// wrap builds a throwaway single-node goquery.Selection so the rest of the
// pipeline (which is written against *goquery.Selection) can inspect a
// single *html.Node encountered mid-walk.
func wrap(n *html.Node) *goquery.Selection {
	return goquery.NewDocumentFromNode(n).Selection
}

// StripUnwrapEmpty removes nodes that are empty (no text, no children)
// except graphic and anything inside code, applied as a serializer
// pre-pass (§4.12). An empty node whose tail carries text is kept, so the
// text that follows it is not lost.
func StripUnwrapEmpty(n *Node) {
	if n == nil {
		return
	}
	kept := n.Children[:0]
	for _, c := range n.Children {
		StripUnwrapEmpty(c)
		if c.Tag == Graph || n.Tag == Code {
			kept = append(kept, c)
			continue
		}
		if c.IsEmpty() && normalizeSpace(c.Tail) == "" {
			continue
		}
		kept = append(kept, c)
	}
	n.Children = kept
}

// MergeDoubleNested collapses a head/code/p whose only child is the same
// tag, except when the parent is cell/figure/item/note/quote (§4.12).
func MergeDoubleNested(n *Node) {
	if n == nil {
		return
	}
	for _, c := range n.Children {
		MergeDoubleNested(c)
	}
	noMerge := map[string]bool{"cell": true, "figure": true, "item": true, "note": true, "quote": true}
	if noMerge[n.Tag] {
		return
	}
	newChildren := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if (c.Tag == Head || c.Tag == Code || c.Tag == P) && len(c.Children) == 1 && c.Children[0].Tag == c.Tag {
			inner := c.Children[0]
			merged := &Node{Tag: c.Tag, Attrs: c.Attrs, Text: c.Text + inner.Text, Tail: c.Tail, Children: inner.Children}
			newChildren = append(newChildren, merged)
			continue
		}
		newChildren = append(newChildren, c)
	}
	n.Children = newChildren
}

// normalizeAttrsFor clears every attribute on tags not in keepSet and keeps
// only the closed set on tags in keepSet (§4.12's attribute cleanup pass).
func normalizeAttrsFor(n *Node, keepSet map[string]bool) {
	n.Walk(func(c *Node) {
		if !keepSet[c.Tag] {
			c.Attrs = map[string]string{}
			return
		}
		kept := map[string]string{}
		for k, v := range c.Attrs {
			if k == "rend" || k == "rendition" || k == "role" || k == "target" || k == "type" {
				kept[k] = v
			}
		}
		c.Attrs = kept
	})
}

// NormalizeAttrs is the exported entry point for the §4.12 attribute
// cleanup pass, restricting surviving attributes to
// {rend, rendition, role, target, type} on
// {cell, row, del, graphic, head, hi, item, list, ref} only.
func NormalizeAttrs(n *Node) {
	normalizeAttrsFor(n, map[string]bool{
		Cell: true, Row: true, Del: true, Graph: true, Head: true,
		Hi: true, Item: true, List: true, Ref: true,
	})
}

// trimAll trims leading spaces, tabs and newlines from every node's Text --
// a small cosmetic pass so the txt serializer doesn't emit ragged spacing.
// Trailing whitespace and Tail fields are left as they are.
func trimAll(n *Node) {
	n.Walk(func(c *Node) {
		c.Text = strings.TrimLeft(c.Text, " \t\n")
	})
}
