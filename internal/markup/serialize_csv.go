package markup

import "strings"

// csvColumns is the fixed column order from §4.12.
var csvColumns = []string{
	"url", "id", "fingerprint", "hostname", "title", "image", "date",
	"text", "comments", "license", "pagetype",
}

// ToCSV renders one tab-separated row (default delimiter) with the §4.12
// column order; fields containing the delimiter, a quote, or a newline are
// double-quote-escaped with doubled inner quotes.
func ToCSV(body, comments *Node, meta Meta, delim rune) string {
	commentsText := ""
	if comments != nil {
		commentsText = ToTXT(comments)
	}
	values := map[string]string{
		"url":         meta.URL,
		"id":          meta.ID,
		"fingerprint": meta.Fingerprint,
		"hostname":    meta.Hostname,
		"title":       meta.Title,
		"image":       meta.Image,
		"date":        meta.Date,
		"text":        ToTXT(body),
		"comments":    commentsText,
		"license":     meta.License,
		"pagetype":    meta.Pagetype,
	}
	fields := make([]string, len(csvColumns))
	for i, col := range csvColumns {
		fields[i] = escapeCSVField(values[col], delim)
	}
	sep := string(delim)
	return strings.Join(fields, sep)
}

func escapeCSVField(s string, delim rune) string {
	needsQuoting := strings.ContainsRune(s, delim) || strings.Contains(s, `"`) || strings.Contains(s, "\n")
	if !needsQuoting {
		return s
	}
	escaped := strings.ReplaceAll(s, `"`, `""`)
	return `"` + escaped + `"`
}
