// Package cleaner implements the Options-driven multi-pass cleaner (§4.3):
// strip/unwrap a fixed tag set, delete another fixed tag set (gated by the
// images/tables flags), a recall-mode safeguard against emptying the tree,
// and an empty-element prune.
package cleaner

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/distillrun/trafilatura/internal/domutil"
)

// Config is the subset of Options the cleaner needs; kept narrow so this
// package doesn't import the root package (which would be a cycle).
type Config struct {
	Images bool
	Tables bool
	Focus  string // "balanced", "precision", "recall"
}

// manuallyStripped is unwrapped (children kept, tag dropped) rather than
// deleted outright.
var manuallyStripped = map[string]bool{
	"abbr": true, "acronym": true, "address": true, "bdi": true, "bdo": true,
	"big": true, "cite": true, "data": true, "dfn": true, "font": true,
	"hgroup": true, "img": true, "ins": true, "mark": true, "meta": true,
	"ruby": true, "small": true, "tbody": true, "template": true, "tfoot": true,
	"thead": true,
}

// manuallyCleaned is deleted outright (subtree and all).
var manuallyCleaned = map[string]bool{
	"aside": true, "embed": true, "footer": true, "form": true, "head": true,
	"iframe": true, "menu": true, "object": true, "script": true, "applet": true,
	"audio": true, "canvas": true, "figure": true, "map": true, "picture": true,
	"svg": true, "video": true, "area": true, "blink": true, "button": true,
	"datalist": true, "dialog": true, "frame": true, "frameset": true,
	"fieldset": true, "link": true, "input": true, "ins": true, "label": true,
	"legend": true, "marquee": true, "math": true, "menuitem": true, "nav": true,
	"noindex": true, "noscript": true, "optgroup": true, "option": true,
	"output": true, "param": true, "progress": true, "rp": true, "rt": true,
	"rtc": true, "select": true, "source": true, "style": true, "track": true,
	"textarea": true, "time": true, "use": true,
}

// emptyPrunable is the tag set the empty-element prune (§4.3 step 4)
// considers.
var emptyPrunable = map[string]bool{
	"article": true, "b": true, "blockquote": true, "dd": true, "div": true,
	"dt": true, "em": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "i": true, "li": true, "main": true, "p": true,
	"pre": true, "q": true, "section": true, "span": true, "strong": true,
}

// Clean mutates doc in place per §4.3 and returns it for chaining. When the
// recall safeguard fires, the returned document is a fresh parse of the
// pre-deletion snapshot rather than doc itself.
func Clean(doc *goquery.Document, cfg Config) *goquery.Document {
	stripSet(doc.Selection, cfg)
	var snapshot string
	hasP := doc.Find("p").Length() > 0
	if cfg.Focus == "recall" && hasP {
		snapshot, _ = doc.Html()
	}
	cleanSet(doc.Selection, cfg)
	if cfg.Focus == "recall" && hasP && doc.Find("p").Length() == 0 && snapshot != "" {
		restored, err := goquery.NewDocumentFromReader(strings.NewReader(snapshot))
		if err == nil {
			pruneEmpty(restored.Selection)
			return restored
		}
	}
	pruneEmpty(doc.Selection)
	return doc
}

func stripSet(root *goquery.Selection, cfg Config) {
	for tag := range manuallyStripped {
		if tag == "img" && cfg.Images {
			continue
		}
		root.Find(tag).Each(func(_ int, s *goquery.Selection) {
			domutil.Unwrap(s)
		})
	}
}

func cleanSet(root *goquery.Selection, cfg Config) {
	for tag := range manuallyCleaned {
		if cfg.Images && (tag == "figure" || tag == "picture" || tag == "source") {
			continue
		}
		root.Find(tag).Each(func(_ int, s *goquery.Selection) {
			domutil.Remove(s)
		})
	}
	if !cfg.Tables {
		for _, tag := range []string{"table", "td", "th", "tr"} {
			root.Find(tag).Each(func(_ int, s *goquery.Selection) {
				domutil.Remove(s)
			})
		}
	} else {
		root.Find("figure").Each(func(_ int, fig *goquery.Selection) {
			if fig.Find("table").Length() > 0 {
				domutil.ReplaceWithDiv(fig)
			}
		})
	}
}

func pruneEmpty(root *goquery.Selection) {
	changed := true
	for changed {
		changed = false
		root.Find("*").Each(func(_ int, s *goquery.Selection) {
			tag := domutil.TagName(s)
			if !emptyPrunable[tag] {
				return
			}
			if domutil.HasElementChildren(s) || domutil.HasNonEmptyText(s) {
				return
			}
			domutil.Remove(s)
			changed = true
		})
	}
}
