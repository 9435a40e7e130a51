package markup

import (
	"fmt"
	"html"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// ToMarkdown renders n to Markdown. Rather than hand-rolling Markdown
// escaping rules, it renders the Node tree to a minimal HTML fragment (the
// internal tags have an obvious HTML analogue) and hands that fragment to
// html-to-markdown, the same converter the teacher repo already uses for
// its own HTML-to-Markdown path -- this keeps escaping, list nesting and
// fenced-code detection consistent with everything else this module
// converts to Markdown.
func ToMarkdown(n *Node) string {
	var sb strings.Builder
	writeFragmentHTML(n, &sb)
	converter := md.NewConverter("", true, nil)
	out, err := converter.ConvertString(sb.String())
	if err != nil {
		return ToTXT(n)
	}
	return strings.TrimSpace(out)
}

var tagToHTML = map[string]string{
	P: "p", Div: "div", Quote: "blockquote", List: "", Item: "li",
	Del: "del", Table: "table", Row: "tr", Cell: "td", Graph: "img",
	Ref: "a", LB: "br",
}

func writeFragmentHTML(n *Node, sb *strings.Builder) {
	sb.WriteString(html.EscapeString(n.Text))
	for _, c := range n.Children {
		writeNodeHTML(c, sb)
		sb.WriteString(html.EscapeString(c.Tail))
	}
}

func writeNodeHTML(n *Node, sb *strings.Builder) {
	switch n.Tag {
	case Head:
		depth := headingDepth(n.Attrs["rend"])
		tag := fmt.Sprintf("h%d", depth)
		sb.WriteString("<" + tag + ">")
		writeFragmentHTML(n, sb)
		sb.WriteString("</" + tag + ">")
		return
	case Hi:
		tag := hiHTMLTag[n.Attrs["rend"]]
		if tag == "" {
			tag = "span"
		}
		sb.WriteString("<" + tag + ">")
		writeFragmentHTML(n, sb)
		sb.WriteString("</" + tag + ">")
		return
	case LB:
		sb.WriteString("<br>")
		return
	case Graph:
		sb.WriteString(fmt.Sprintf(`<img src="%s" alt="%s" title="%s">`,
			html.EscapeString(n.Attrs["src"]), html.EscapeString(n.Attrs["alt"]), html.EscapeString(n.Attrs["title"])))
		return
	case Ref:
		sb.WriteString(`<a href="` + html.EscapeString(n.Attrs["target"]) + `">`)
		writeFragmentHTML(n, sb)
		sb.WriteString("</a>")
		return
	case Code:
		text := n.TextContent()
		if strings.Contains(text, "\n") || n.CountTag(LB) > 0 {
			sb.WriteString("<pre><code>" + html.EscapeString(text) + "</code></pre>")
		} else {
			sb.WriteString("<code>" + html.EscapeString(text) + "</code>")
		}
		return
	case List:
		tag := "ul"
		if n.Attrs["rend"] == "ol" {
			tag = "ol"
		}
		sb.WriteString("<" + tag + ">")
		writeFragmentHTML(n, sb)
		sb.WriteString("</" + tag + ">")
		return
	case Cell:
		tag := "td"
		if n.Attrs["role"] == "head" {
			tag = "th"
		}
		sb.WriteString("<" + tag + ">")
		writeFragmentHTML(n, sb)
		sb.WriteString("</" + tag + ">")
		return
	}
	tag := tagToHTML[n.Tag]
	if tag == "" {
		tag = "div"
	}
	sb.WriteString("<" + tag + ">")
	writeFragmentHTML(n, sb)
	sb.WriteString("</" + tag + ">")
}

var hiHTMLTag = map[string]string{
	"#b": "strong", "#i": "em", "#u": "u", "#t": "code",
	"#sub": "sub", "#sup": "sup",
}

func headingDepth(rend string) int {
	switch rend {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	default:
		return 2
	}
}
