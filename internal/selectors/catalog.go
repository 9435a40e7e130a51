// Package selectors is the declarative catalog of class/id/role/itemprop
// substring patterns the rest of the pipeline matches elements against,
// grouped by intent: body, comments, discard, teaser, author, title,
// category, tag. Every family is compiled once into a predicate over a
// goquery selection, the same "substring list -> case-insensitive regex"
// shape the teacher repo uses for its POSITIVE/NEGATIVE score hints.
package selectors

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/distillrun/trafilatura/internal/domutil"
)

// Family is a named, ordered list of substrings plus its compiled matcher.
type Family struct {
	Name     string
	Patterns []string
	re       *regexp.Regexp
}

func newFamily(name string, patterns []string) *Family {
	return &Family{Name: name, Patterns: patterns, re: compile(patterns)}
}

func compile(patterns []string) *regexp.Regexp {
	quoted := make([]string, len(patterns))
	for i, p := range patterns {
		quoted[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile(`(?i)(` + strings.Join(quoted, "|") + `)`)
}

// Match reports whether any pattern in the family occurs in the element's
// class, id, role or itemprop attributes.
func (f *Family) Match(sel *goquery.Selection) bool {
	return f.re.MatchString(domutil.ClassIDRoleItemprop(sel))
}

// MatchString reports whether any pattern occurs in an arbitrary string,
// used by metadata extraction for title-tag/meta-name style checks that
// don't have a DOM node handy.
func (f *Family) MatchString(s string) bool {
	return f.re.MatchString(s)
}

// --- Body selectors: primary families tried in order, first non-empty wins.

var BodyPrimary = newFamily("body-primary", []string{
	"post-text", "post-body", "entry-content", "article-content", "article-body",
	"articlebody", "article__content", "article__body", "page-content",
	"text-content", "body-text", "art-content",
})

var BodySecondary = newFamily("body-secondary", []string{
	"storycontent", "postarea", "story-body", "fulltext", "story-content",
	"zn-body__paragraph", "articletext", "entrytext", "postbody", "blog-content",
})

var BodyTertiary = newFamily("body-tertiary", []string{
	"content-main", "main-content",
})

var BodyFamilies = []*Family{BodyPrimary, BodySecondary, BodyTertiary}

// --- Comments.

var Comments = newFamily("comments", []string{
	"commentlist", "comment-list", "comments-content", "post-comments",
	"disqus_thread", "dsq-comments", "comol", "comment-",
})

var CommentsDiscard = newFamily("comments-discard", []string{
	"comment-form", "comment-respond", "akismet", "reply-to", "comment-reply",
})

// --- Overall discard: union removed regardless of focus mode.

var OverallDiscard = newFamily("overall-discard", []string{
	"footer", "related", "shar", "share", "social", "syndication", "embed",
	"newsletter", "subnav", "cookie", "tags", "sidebar", "banner", "meta",
	"menu", "nav", "navbar", "breadcrumb", "author", "byline", "rating",
	"widget", "outbrain", "taboola", "criteo", "consent", "modal-content",
	"permission", "most-popular", "premium", "paid-content", "blurred",
	"subscription", "paywall", "newsticker", "disclaimer", "advert",
	"sponsor", "promo", "recommend", "teaser-list", "trending",
})

// --- Teasers / promos, skipped in recall mode.

var Teaser = newFamily("teaser", []string{
	"teaser", "also-read", "read-more", "more-on", "see-also", "related-articles",
	"recommended", "you-might-like", "popup", "overlay",
})

// --- Precision-extra: sidebars/widgets removed only in precision mode.

var PrecisionExtra = newFamily("precision-extra", []string{
	"sidebar", "widget", "aside", "infobox", "toc", "table-of-contents",
})

// --- Hidden.

var Hidden = newFamily("hidden", []string{"hidden", "hide-", "noprint"})

// --- Author.

var Author = newFamily("author", []string{
	"byline", "author", "writer", "dateline", "journalist", "reporter",
})

var AuthorDiscard = newFamily("author-discard", []string{
	"comment", "share", "social", "tag", "category",
})

// --- Title.

var Title = newFamily("title", []string{
	"headline", "entry-title", "article-title", "post-title", "story-title",
	"page-title",
})

// --- Category / Tag.

var Category = newFamily("category", []string{
	"category", "cat-links", "article-category", "post-category", "section-label",
})

var Tag = newFamily("tag", []string{
	"tag-links", "article-tags", "post-tags", "tags-list", "entry-tags",
})

// MatchAny returns true if sel matches any of the given families.
func MatchAny(sel *goquery.Selection, families ...*Family) bool {
	for _, f := range families {
		if f.Match(sel) {
			return true
		}
	}
	return false
}

// FirstMatch runs each family against doc.Find("*") candidates in priority
// order and returns the first family whose selector matches at least one
// element, along with the matched selection -- "first family to match
// wins for selection operations" (body, title, author).
func FirstMatch(doc *goquery.Document, families []*Family) (*goquery.Selection, *Family) {
	for _, fam := range families {
		var found *goquery.Selection
		doc.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if fam.Match(s) {
				found = s
				return false
			}
			return true
		})
		if found != nil {
			return found, fam
		}
	}
	return nil, nil
}
