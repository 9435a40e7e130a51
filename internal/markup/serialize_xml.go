package markup

import (
	"fmt"
	"strings"
)

// ToXML renders a <doc> root with metadata as attributes, a <main> child
// holding the body, and an optional <comments> sibling (§4.12 xml format).
func ToXML(body, comments *Node, meta Meta) string {
	var sb strings.Builder
	sb.WriteString("<doc")
	writeXMLAttr(&sb, "title", meta.Title)
	writeXMLAttr(&sb, "author", meta.Author)
	writeXMLAttr(&sb, "url", meta.URL)
	writeXMLAttr(&sb, "hostname", meta.Hostname)
	writeXMLAttr(&sb, "description", meta.Description)
	writeXMLAttr(&sb, "sitename", meta.Sitename)
	writeXMLAttr(&sb, "date", meta.Date)
	writeXMLAttr(&sb, "categories", strings.Join(meta.Categories, ","))
	writeXMLAttr(&sb, "tags", strings.Join(meta.Tags, ","))
	writeXMLAttr(&sb, "fingerprint", meta.Fingerprint)
	writeXMLAttr(&sb, "id", meta.ID)
	writeXMLAttr(&sb, "license", meta.License)
	writeXMLAttr(&sb, "language", meta.Language)
	writeXMLAttr(&sb, "image", meta.Image)
	writeXMLAttr(&sb, "pagetype", meta.Pagetype)
	sb.WriteString(">\n")
	sb.WriteString("<main>\n")
	writeXMLNode(body, &sb)
	sb.WriteString("</main>\n")
	if comments != nil && !comments.IsEmpty() {
		sb.WriteString("<comments>\n")
		writeXMLNode(comments, &sb)
		sb.WriteString("</comments>\n")
	}
	sb.WriteString("</doc>\n")
	return sb.String()
}

func writeXMLAttr(sb *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(sb, " %s=%q", name, xmlEscape(value))
}

func writeXMLNode(n *Node, sb *strings.Builder) {
	if n == nil {
		return
	}
	if !ValidTags[n.Tag] {
		sb.WriteString(xmlEscape(n.Text))
	} else {
		sb.WriteString("<" + n.Tag)
		for k, v := range n.Attrs {
			if AllowedAttrs[k] {
				fmt.Fprintf(sb, " %s=%q", k, xmlEscape(v))
			}
		}
		if len(n.Children) == 0 && n.Text == "" {
			sb.WriteString("/>")
			sb.WriteString(xmlEscape(n.Tail))
			return
		}
		sb.WriteString(">")
		sb.WriteString(xmlEscape(n.Text))
	}
	for _, c := range n.Children {
		writeXMLNode(c, sb)
	}
	if ValidTags[n.Tag] {
		sb.WriteString("</" + n.Tag + ">")
	}
	sb.WriteString(xmlEscape(n.Tail))
}

func xmlEscape(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return r.Replace(s)
}
