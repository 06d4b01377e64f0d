package renderer

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// classAssignments is the fixed mapping of structural selectors to the
// presentational classes the stylesheet expects. Elements absent from a
// document are silently skipped; assigning a class twice is a no-op, so
// re-annotating annotated HTML changes nothing.
var classAssignments = []struct {
	selector string
	class    string
}{
	{"table", "article-table"},
	{"img", "article-image"},
	{"pre", "article-code"},
	{"blockquote", "titlenote"},
	{"h2, h3", "article-heading"},
	{"a[href^='http']", "external-link"},
}

// AnnotateLayout parses a rendered article body and assigns the site's
// presentational classes to its structural elements. The input is an HTML
// fragment; the output is the same fragment with classes applied.
func AnnotateLayout(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("parsing article body: %w", err)
	}

	for _, assignment := range classAssignments {
		doc.Find(assignment.selector).AddClass(assignment.class)
	}

	annotated, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("serializing article body: %w", err)
	}
	return annotated, nil
}
