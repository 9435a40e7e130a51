// Package markup implements the closed internal-markup vocabulary that
// every extractor emits into, the DOM-tag-to-internal-tag conversion rules,
// and the serializers (txt, markdown, json, xml, xmltei, csv) that turn a
// Node tree back into bytes.
//
// A Node mirrors the lxml-style text/tail model rather than a DOM Text
// node list: Text is the string immediately inside the element before its
// first child, Tail is the string immediately after the element's closing
// tag and before its next sibling. This is the natural shape for the mixed
// inline content ("a paragraph with <hi> and <ref> children") the
// vocabulary allows, and keeps serialization a single recursive walk.
package markup

import "strings"

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Tag is the closed vocabulary from the extraction spec: only these tags
// may appear in a Document's body or commentsbody after conversion.
const (
	Body  = "body"
	P     = "p"
	Head  = "head"
	Hi    = "hi"
	List  = "list"
	Item  = "item"
	Quote = "quote"
	Code  = "code"
	Del   = "del"
	Table = "table"
	Row   = "row"
	Cell  = "cell"
	Graph = "graphic"
	Ref   = "ref"
	LB    = "lb"
	Div   = "div"
)

// ValidTags is the closed vocabulary as a set. The xml serializer unwraps
// any tag outside it instead of emitting it; the txt, markdown and html
// serializers do not consult it.
var ValidTags = map[string]bool{
	Body: true, P: true, Head: true, Hi: true, List: true, Item: true,
	Quote: true, Code: true, Del: true, Table: true, Row: true, Cell: true,
	Graph: true, Ref: true, LB: true, Div: true,
}

// AllowedAttrs is the restricted attribute set surviving conversion.
var AllowedAttrs = map[string]bool{
	"rend": true, "rendition": true, "role": true, "target": true,
	"type": true, "src": true, "alt": true, "title": true, "lang": true,
}

// BlockTags get a trailing newline from the txt/markdown serializers.
var BlockTags = map[string]bool{
	Graph: true, Head: true, LB: true, List: true, P: true, Quote: true,
	Row: true, Table: true,
}

// Node is one element of the internal markup tree.
type Node struct {
	Tag      string
	Attrs    map[string]string
	Text     string
	Tail     string
	Children []*Node
}

// New creates a Node with only the allowed attributes from attrs kept.
func New(tag string, attrs map[string]string) *Node {
	n := &Node{Tag: tag, Attrs: map[string]string{}}
	for k, v := range attrs {
		if AllowedAttrs[k] && v != "" {
			n.Attrs[k] = v
		}
	}
	return n
}

// Append adds a child node and returns it for chaining.
func (n *Node) Append(child *Node) *Node {
	n.Children = append(n.Children, child)
	return child
}

// AppendText adds s to n.Text when n has no children yet, otherwise to the
// Tail of its last child, keeping the text/tail model intact; exposed for
// callers that build nodes incrementally, such as FromElement's walker.
func (n *Node) AppendText(s string) {
	if len(n.Children) == 0 {
		n.Text += s
	} else {
		last := n.Children[len(n.Children)-1]
		last.Tail += s
	}
}

// Clone deep-copies the subtree.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	cp := &Node{Tag: n.Tag, Text: n.Text, Tail: n.Tail, Attrs: map[string]string{}}
	for k, v := range n.Attrs {
		cp.Attrs[k] = v
	}
	for _, c := range n.Children {
		cp.Children = append(cp.Children, c.Clone())
	}
	return cp
}

// TextContent concatenates all text in the subtree in document order,
// ignoring markup -- used for length checks, fingerprinting and the
// round-trip invariant.
func (n *Node) TextContent() string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	n.collectText(&sb)
	return sb.String()
}

func (n *Node) collectText(sb *strings.Builder) {
	sb.WriteString(n.Text)
	for _, c := range n.Children {
		c.collectText(sb)
		sb.WriteString(c.Tail)
	}
}

// Walk visits n and every descendant in document order.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Len is the length of the node's trimmed text content, the quantity the
// cascade coordinator compares across extractors.
func (n *Node) Len() int {
	return len(normalizeSpace(n.TextContent()))
}

// IsEmpty reports whether the node has neither text nor element children.
func (n *Node) IsEmpty() bool {
	if n == nil {
		return true
	}
	if len(n.Children) > 0 {
		return false
	}
	return normalizeSpace(n.Text) == ""
}

// CountTag counts descendants (inclusive) with the given tag.
func (n *Node) CountTag(tag string) int {
	count := 0
	n.Walk(func(c *Node) {
		if c.Tag == tag {
			count++
		}
	})
	return count
}

// RemoveTrailing drops trailing children whose tag is in tags, used by the
// primary extractor's post-walk trim (§4.8 step 5).
func (n *Node) RemoveTrailing(tags map[string]bool) {
	for len(n.Children) > 0 {
		last := n.Children[len(n.Children)-1]
		if tags[last.Tag] {
			n.Children = n.Children[:len(n.Children)-1]
			continue
		}
		break
	}
}
