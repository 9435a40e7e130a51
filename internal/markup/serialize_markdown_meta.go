package markup

import (
	"fmt"
	"strings"
)

// ToMarkdownWithFrontMatter prefixes the Markdown body with a YAML front
// matter block compatible with goldmark-meta, so that documents produced
// with output_format=markdown and with_metadata=true can be read back by
// any goldmark-based consumer without a bespoke parser. This is additive:
// the body text itself (and therefore the txt-is-a-subset-of-markdown
// round-trip property) is unaffected.
func ToMarkdownWithFrontMatter(body *Node, meta Meta) string {
	var fm strings.Builder
	fm.WriteString("---\n")
	writeYAMLString(&fm, "title", meta.Title)
	writeYAMLString(&fm, "author", meta.Author)
	writeYAMLString(&fm, "url", meta.URL)
	writeYAMLString(&fm, "sitename", meta.Sitename)
	writeYAMLString(&fm, "date", meta.Date)
	writeYAMLString(&fm, "language", meta.Language)
	writeYAMLList(&fm, "categories", meta.Categories)
	writeYAMLList(&fm, "tags", meta.Tags)
	fm.WriteString("---\n\n")
	fm.WriteString(ToMarkdown(body))
	return fm.String()
}

func writeYAMLString(sb *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(sb, "%s: %q\n", key, value)
}

func writeYAMLList(sb *strings.Builder, key string, values []string) {
	if len(values) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s:\n", key)
	for _, v := range values {
		fmt.Fprintf(sb, "  - %q\n", v)
	}
}
