package markup

import "fmt"

// Format is the output_format enum from Options.
type Format string

const (
	FormatTXT       Format = "txt"
	FormatMarkdown  Format = "markdown"
	FormatJSON      Format = "json"
	FormatXML       Format = "xml"
	FormatXMLTEI    Format = "xmltei"
	FormatCSV       Format = "csv"
	FormatHTML      Format = "html"
	FormatStructured Format = "structured"
)

// Prepare runs the §4.12 pre-passes (double-nested collapse, empty-element
// drop, attribute cleanup) that every serializer except "structured"
// expects to have already happened.
func Prepare(n *Node) {
	if n == nil {
		return
	}
	MergeDoubleNested(n)
	StripUnwrapEmpty(n)
	NormalizeAttrs(n)
	trimAll(n)
}

// Serialize renders body/comments/meta in the requested format.
func Serialize(body, comments *Node, meta Meta, format Format, withMetadata bool) (string, error) {
	switch format {
	case FormatTXT:
		return ToTXT(body), nil
	case FormatMarkdown:
		if withMetadata {
			return ToMarkdownWithFrontMatter(body, meta), nil
		}
		return ToMarkdown(body), nil
	case FormatJSON:
		return ToJSON(body, comments, meta)
	case FormatXML:
		return ToXML(body, comments, meta), nil
	case FormatXMLTEI:
		return ToTEI(body, comments, meta), nil
	case FormatCSV:
		return ToCSV(body, comments, meta, '\t'), nil
	case FormatHTML:
		return ToHTML(body), nil
	default:
		return "", fmt.Errorf("markup: unknown output format %q", format)
	}
}
