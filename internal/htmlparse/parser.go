// Package htmlparse is the parser adapter (§4.1): it wraps goquery/x-net's
// HTML5 parser, handles gzip/zlib decompression, encoding sniffing, a
// small textual repair pass, and a post-parse sanity check.
package htmlparse

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
)

// MaxFileSize is the default max_file_size threshold (20 MB); inputs
// larger than this are rejected before parsing.
const MaxFileSize = 20 * 1000 * 1000

var (
	gzipMagic = []byte{0x1F, 0x8B, 0x08}
	zlibMagic = []byte{0x78}

	doctypeRE     = regexp.MustCompile(`(?is)<\s*!\s*DOCTYPE[^>]*/[^<]*>`)
	selfCloseHTML = regexp.MustCompile(`(?i)<html([^>]*)/>`)
)

// ErrRejected is returned when the input fails the parser's sanity check.
var ErrRejected = fmt.Errorf("htmlparse: input rejected")

// ErrTooLarge is returned when input exceeds maxFileSize.
var ErrTooLarge = fmt.Errorf("htmlparse: input exceeds max file size")

// Parse accepts raw bytes (possibly gzip/zlib compressed, in an unknown
// encoding) and returns a parsed DOM rooted at <html>. maxFileSize <= 0
// means "use MaxFileSize".
func Parse(content []byte, maxFileSize int) (*goquery.Document, error) {
	if maxFileSize <= 0 {
		maxFileSize = MaxFileSize
	}
	if len(content) > maxFileSize {
		return nil, ErrTooLarge
	}
	content = decompress(content)
	text := decode(content)
	text = repair(text)
	if !sane(text) {
		return nil, ErrRejected
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("htmlparse: %w", err)
	}
	return doc, nil
}

// ParseString parses an already-decoded HTML string.
func ParseString(s string) (*goquery.Document, error) {
	s = repair(s)
	if !sane(s) {
		return nil, ErrRejected
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return nil, fmt.Errorf("htmlparse: %w", err)
	}
	return doc, nil
}

func decompress(content []byte) []byte {
	if bytes.HasPrefix(content, gzipMagic) {
		r, err := gzip.NewReader(bytes.NewReader(content))
		if err == nil {
			if out, err := io.ReadAll(r); err == nil {
				return out
			}
		}
		return content
	}
	if len(content) > 1 && bytes.HasPrefix(content, zlibMagic) {
		r, err := zlib.NewReader(bytes.NewReader(content))
		if err == nil {
			if out, err := io.ReadAll(r); err == nil {
				return out
			}
		}
	}
	return content
}

// decode attempts UTF-8 first, then Latin-1, then UTF-8 with replacement as
// a last resort. Valid UTF-8 is returned as-is; chardet is consulted only
// for input that is not valid UTF-8.
func decode(content []byte) string {
	if isValidUTF8(content) {
		return string(content)
	}
	det := chardet.NewTextDetector()
	if result, err := det.DetectBest(content); err == nil {
		if strings.EqualFold(result.Charset, "ISO-8859-1") || strings.EqualFold(result.Charset, "Latin1") {
			if out, err := charmap.ISO8859_1.NewDecoder().Bytes(content); err == nil {
				return string(out)
			}
		}
	}
	if out, err := charmap.ISO8859_1.NewDecoder().Bytes(content); err == nil {
		return string(out)
	}
	return strings.ToValidUTF8(string(content), "�")
}

func isValidUTF8(b []byte) bool {
	return utf8.Valid(b)
}

// repair strips a malformed leading DOCTYPE and rewrites a self-closing
// <html .../> occurring in the first three lines into <html ...>.
func repair(s string) string {
	s = doctypeRE.ReplaceAllString(s, "")
	lines := strings.SplitN(s, "\n", 4)
	limit := len(lines)
	if limit > 3 {
		limit = 3
	}
	for i := 0; i < limit; i++ {
		lines[i] = selfCloseHTML.ReplaceAllString(lines[i], "<html$1>")
	}
	return strings.Join(lines, "\n")
}

// sane rejects input whose first 50 characters don't mention "html" and
// whose parsed body would have fewer than two children -- approximated
// here without a parse by requiring at least two '<' characters anywhere
// in the input.
func sane(s string) bool {
	head := s
	if len(head) > 50 {
		head = head[:50]
	}
	if strings.Contains(strings.ToLower(head), "html") {
		return true
	}
	// No "html" substring in the head: still accept if there appear to be
	// at least two element-looking tags, mirroring the body-children check.
	return strings.Count(s, "<") >= 2
}
