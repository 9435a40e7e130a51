package markup

import (
	"fmt"
	"strings"
)

// teiAllowedTags is the closed tag set xmltei output validates against;
// anything else is merged into its parent (§4.12).
var teiAllowedTags = map[string]bool{
	"ab": true, Body: true, Cell: true, Code: true, Del: true, Div: true,
	Graph: true, Head: true, Hi: true, Item: true, LB: true, List: true,
	P: true, Quote: true, Ref: true, Row: true, Table: true,
}

// ToTEI renders the full TEI-XML document described in §4.12: a
// <teiHeader> with fileDesc/titleStmt, publicationStmt (license in
// availability), notesStmt (id, fingerprint), sourceDesc, profileDesc
// (abstract, textClass/keywords, creation date), encodingDesc/appInfo, and
// a <text><body><div type="entry"> holding the converted content, with an
// optional <div type="comments">. <head> elements are retagged
// <ab type="header">; tags outside the TEI-safe set are merged into their
// parent rather than dropped.
func ToTEI(body, comments *Node, meta Meta) string {
	var sb strings.Builder
	sb.WriteString(`<TEI xmlns="http://www.tei-c.org/ns/1.0">` + "\n")
	sb.WriteString("<teiHeader>\n<fileDesc>\n<titleStmt>\n")
	fmt.Fprintf(&sb, "<title>%s</title>\n", xmlEscape(meta.Title))
	if meta.Author != "" {
		fmt.Fprintf(&sb, "<author>%s</author>\n", xmlEscape(meta.Author))
	}
	sb.WriteString("</titleStmt>\n<publicationStmt>\n")
	if meta.License != "" {
		fmt.Fprintf(&sb, "<availability><licence>%s</licence></availability>\n", xmlEscape(meta.License))
	} else {
		sb.WriteString("<p>Information not available</p>\n")
	}
	sb.WriteString("</publicationStmt>\n<notesStmt>\n")
	if meta.ID != "" {
		fmt.Fprintf(&sb, `<note type="id">%s</note>`+"\n", xmlEscape(meta.ID))
	}
	if meta.Fingerprint != "" {
		fmt.Fprintf(&sb, `<note type="fingerprint">%s</note>`+"\n", xmlEscape(meta.Fingerprint))
	}
	sb.WriteString("</notesStmt>\n<sourceDesc>\n")
	fmt.Fprintf(&sb, `<bibl>%s</bibl>`+"\n", xmlEscape(meta.Title))
	sb.WriteString("<biblFull>\n<titleStmt>\n")
	fmt.Fprintf(&sb, "<title>%s</title>\n", xmlEscape(meta.Title))
	sb.WriteString("</titleStmt>\n<publicationStmt>\n")
	if meta.Sitename != "" {
		fmt.Fprintf(&sb, "<publisher>%s</publisher>\n", xmlEscape(meta.Sitename))
	}
	if meta.URL != "" {
		fmt.Fprintf(&sb, `<ptr target="%s"/>`+"\n", xmlEscape(meta.URL))
	}
	if meta.Date != "" {
		fmt.Fprintf(&sb, `<date>%s</date>`+"\n", xmlEscape(meta.Date))
	}
	sb.WriteString("</publicationStmt>\n</biblFull>\n</sourceDesc>\n</fileDesc>\n")
	sb.WriteString("<profileDesc>\n")
	if meta.Description != "" {
		fmt.Fprintf(&sb, "<abstract><p>%s</p></abstract>\n", xmlEscape(meta.Description))
	}
	sb.WriteString("<textClass>\n<keywords>\n")
	for _, c := range meta.Categories {
		fmt.Fprintf(&sb, `<term type="category">%s</term>`+"\n", xmlEscape(c))
	}
	for _, tg := range meta.Tags {
		fmt.Fprintf(&sb, `<term type="tag">%s</term>`+"\n", xmlEscape(tg))
	}
	sb.WriteString("</keywords>\n</textClass>\n")
	fmt.Fprintf(&sb, `<creation><date type="download">%s</date></creation>`+"\n", xmlEscape(meta.Filedate))
	sb.WriteString("</profileDesc>\n<encodingDesc>\n<appInfo>\n")
	sb.WriteString(`<application ident="Trafilatura"/>` + "\n")
	sb.WriteString("</appInfo>\n</encodingDesc>\n</teiHeader>\n")
	sb.WriteString("<text>\n<body>\n")
	sb.WriteString(`<div type="entry">` + "\n")
	writeTEINode(body, &sb)
	sb.WriteString("</div>\n")
	if comments != nil && !comments.IsEmpty() {
		sb.WriteString(`<div type="comments">` + "\n")
		writeTEINode(comments, &sb)
		sb.WriteString("</div>\n")
	}
	sb.WriteString("</body>\n</text>\n</TEI>\n")
	return sb.String()
}

func writeTEINode(n *Node, sb *strings.Builder) {
	if n == nil {
		return
	}
	tag := n.Tag
	if tag == Head {
		tag = "ab"
	}
	if !teiAllowedTags[n.Tag] {
		// Merge into parent: emit children only, no wrapping element.
		sb.WriteString(xmlEscape(n.Text))
		for _, c := range n.Children {
			writeTEINode(c, sb)
			sb.WriteString(xmlEscape(c.Tail))
		}
		return
	}
	sb.WriteString("<" + tag)
	if n.Tag == Head {
		sb.WriteString(` type="header"`)
	}
	for k, v := range n.Attrs {
		if AllowedAttrs[k] && k != "rend" {
			fmt.Fprintf(sb, " %s=%q", k, xmlEscape(v))
		}
	}
	sb.WriteString(">")
	sb.WriteString(xmlEscape(n.Text))
	for _, c := range n.Children {
		writeTEINode(c, sb)
		sb.WriteString(xmlEscape(c.Tail))
	}
	sb.WriteString("</" + tag + ">\n")
}
