package markup

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var htmlSanitizePolicy = newHTMLPolicy()

func newHTMLPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("lang").Globally()
	p.AllowAttrs("target").OnElements("a")
	return p
}

// ToHTML renders n as an HTML fragment, then runs it through bluemonday's
// UGC policy (the teacher's sanitization dependency) as a final safety net
// -- the internal markup vocabulary is already closed, but this guarantees
// the output format is always safe to embed even if a caller feeds a
// hand-built Node tree through the serializer directly.
func ToHTML(n *Node) string {
	var sb strings.Builder
	writeFragmentHTML(n, &sb)
	return htmlSanitizePolicy.Sanitize(sb.String())
}
