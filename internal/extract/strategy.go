package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// Strategy is one way of locating a field in a parsed document: a CSS
// selector (the default) or an XPath expression for markup that defeats
// CSS selection.
type Strategy struct {
	Type      string // "css" (default) or "xpath"
	Selector  string
	Attribute string // empty means element text
}

// CSS builds a CSS selector strategy.
func CSS(selector string) Strategy {
	return Strategy{Type: "css", Selector: selector}
}

// CSSAttr builds a CSS strategy that reads an attribute instead of text.
func CSSAttr(selector, attribute string) Strategy {
	return Strategy{Type: "css", Selector: selector, Attribute: attribute}
}

// XPath builds an XPath strategy.
func XPath(expr string) Strategy {
	return Strategy{Type: "xpath", Selector: expr}
}

// Text returns the trimmed text (or attribute value) of the strategy's
// first match, or "" when nothing matches.
func (s Strategy) Text(doc *goquery.Document) string {
	if s.Type == "xpath" {
		if len(doc.Nodes) == 0 {
			return ""
		}
		node, err := htmlquery.Query(doc.Nodes[0], s.Selector)
		if err != nil || node == nil {
			return ""
		}
		if s.Attribute != "" {
			return strings.TrimSpace(htmlquery.SelectAttr(node, s.Attribute))
		}
		return strings.TrimSpace(htmlquery.InnerText(node))
	}

	sel := doc.Find(s.Selector).First()
	if sel.Length() == 0 {
		return ""
	}
	if s.Attribute != "" {
		v, _ := sel.Attr(s.Attribute)
		return strings.TrimSpace(v)
	}
	return strings.TrimSpace(sel.Text())
}

// Container returns the first matching selection, for callers that need
// the element subtree rather than its text. Returns nil when nothing
// matches.
func (s Strategy) Container(doc *goquery.Document) *goquery.Selection {
	if s.Type == "xpath" {
		if len(doc.Nodes) == 0 {
			return nil
		}
		node, err := htmlquery.Query(doc.Nodes[0], s.Selector)
		if err != nil || node == nil {
			return nil
		}
		return wrapNode(node)
	}

	sel := doc.Find(s.Selector).First()
	if sel.Length() == 0 {
		return nil
	}
	return sel
}

// wrapNode lifts an x/net/html node back into a goquery selection so both
// selector dialects hand containers to the same extraction code.
func wrapNode(n *html.Node) *goquery.Selection {
	return goquery.NewDocumentFromNode(n).Selection
}

// Chain is an ordered fallback list of strategies. The first strategy that
// yields a result wins; later tiers are never consulted after a hit.
type Chain []Strategy

// Text returns the first non-empty text produced by the chain.
func (c Chain) Text(doc *goquery.Document) string {
	for _, s := range c {
		if s.Selector == "" {
			continue
		}
		if v := s.Text(doc); v != "" {
			return v
		}
	}
	return ""
}

// Container returns the first matching selection produced by the chain.
func (c Chain) Container(doc *goquery.Document) *goquery.Selection {
	for _, s := range c {
		if s.Selector == "" {
			continue
		}
		if sel := s.Container(doc); sel != nil {
			return sel
		}
	}
	return nil
}
