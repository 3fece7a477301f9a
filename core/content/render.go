// ABOUTME: Renders reintegrated documents to HTML and to a Markdown preview
// ABOUTME: Paragraph text is escaped; media markup is replayed verbatim

package content

import (
	"html"
	"strings"

	"commonplace-api/core/domain"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// RenderHTML renders the document as a flat sequence of <p> elements and media markup
func RenderHTML(doc domain.Document) string {
	parts := make([]string, 0, len(doc.Nodes))
	for _, n := range doc.Nodes {
		switch n.Kind {
		case domain.NodeParagraph:
			text := html.EscapeString(n.Text)
			text = strings.ReplaceAll(text, "\n", "<br>")
			parts = append(parts, "<p>"+text+"</p>")
		case domain.NodeMedia:
			if n.Media != nil {
				parts = append(parts, n.Media.HTML)
			}
		}
	}
	return strings.Join(parts, "\n")
}

// RenderMarkdown converts rendered HTML into Markdown for review screens
func RenderMarkdown(markup string) (string, error) {
	if strings.TrimSpace(markup) == "" {
		return "", nil
	}

	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(markup)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(markdown), nil
}
