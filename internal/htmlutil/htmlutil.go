package htmlutil

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// TrimmedText returns the whitespace trimmed text content of the first node
// in the selection, or "" if the selection is empty.
func TrimmedText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(GetText(sel.Nodes[0]))
}

// NodeMatcher decides whether a single element should be kept.
type NodeMatcher func(sel *goquery.Selection) bool

// ClassMatches returns a NodeMatcher that searches the element's class tokens
// joined by single spaces with re.
func ClassMatches(re *regexp.Regexp) NodeMatcher {
	return func(sel *goquery.Selection) bool {
		class, ok := sel.Attr("class")
		if !ok {
			return false
		}
		return re.MatchString(strings.Join(strings.Fields(class), " "))
	}
}

// Filter keeps the elements of sel for which match returns true, in document order.
func Filter(sel *goquery.Selection, match NodeMatcher) *goquery.Selection {
	return sel.FilterFunction(func(_ int, s *goquery.Selection) bool {
		return match(s)
	})
}
