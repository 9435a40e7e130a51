package markup

import "strings"

// ToTXT walks n in document order and produces the plain-text rendering of
// §4.12: block tags emit a trailing newline, table rows join cells with
// " | " and pad missing cells, a head-row that is the table's first child is
// followed by a "|---|---|..." separator, and <graphic> without direct text becomes a
// markdown-ish "![title alt](src)" placeholder even in txt output (the
// spec's format is lossy by design; this keeps image provenance visible).
func ToTXT(n *Node) string {
	var sb strings.Builder
	writeTXT(n, &sb)
	return strings.TrimSpace(collapseBlankLines(sb.String()))
}

func writeTXT(n *Node, sb *strings.Builder) {
	if n.Tag == Table {
		writeTable(n, sb)
		return
	}
	if n.Tag == Graph && strings.TrimSpace(n.TextContent()) == "" {
		sb.WriteString("![")
		sb.WriteString(n.Attrs["title"])
		sb.WriteString(" ")
		sb.WriteString(n.Attrs["alt"])
		sb.WriteString("](")
		sb.WriteString(n.Attrs["src"])
		sb.WriteString(")\n")
		return
	}
	sb.WriteString(n.Text)
	for _, c := range n.Children {
		writeTXT(c, sb)
		sb.WriteString(c.Tail)
	}
	if BlockTags[n.Tag] {
		sb.WriteString("\n")
	} else {
		sb.WriteString(" ")
	}
}

func writeTable(n *Node, sb *strings.Builder) {
	maxCols := 0
	for _, row := range n.Children {
		if row.Tag != Row {
			continue
		}
		if c := len(row.Children); c > maxCols {
			maxCols = c
		}
	}
	for ri, row := range n.Children {
		if row.Tag != Row {
			continue
		}
		cells := make([]string, 0, maxCols)
		headRow := false
		for _, cell := range row.Children {
			if cell.Tag != Cell {
				continue
			}
			if cell.Attrs["role"] == "head" {
				headRow = true
			}
			cells = append(cells, strings.TrimSpace(cell.TextContent()))
		}
		for len(cells) < maxCols {
			cells = append(cells, "")
		}
		sb.WriteString("| ")
		sb.WriteString(strings.Join(cells, " | "))
		sb.WriteString("\n")
		if ri == 0 && headRow {
			sep := make([]string, maxCols)
			for i := range sep {
				sep[i] = "---"
			}
			sb.WriteString("|")
			sb.WriteString(strings.Join(sep, "|"))
			sb.WriteString("|\n")
		}
	}
}

func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, l := range lines {
		trimmed := strings.TrimRight(l, " \t")
		if strings.TrimSpace(trimmed) == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		out = append(out, trimmed)
	}
	return strings.Join(out, "\n")
}
