// ABOUTME: Parses authored HTML into top-level content blocks and classifies each one
// ABOUTME: Classification is a tagged dispatch with an explicit unknown kind that is always dropped

package content

import (
	"fmt"
	"regexp"
	"strings"

	"commonplace-api/core/domain"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// CaptionMarker is the prefix of emphasised text that marks an image caption
const CaptionMarker = "Photo:"

// embedClasses are class names the editor puts on video and link-card wrappers
var embedClasses = []string{"video-embed", "link-card", "embed", "video-wrapper", "link-preview"}

// embedAttrs are attributes that mark an element as an embed container
var embedAttrs = []string{"data-embed", "data-youtube-video", "data-video", "data-link-card"}

var whitespaceRun = regexp.MustCompile(`\s+`)

// ParseBlocks parses an HTML fragment and returns its classified top-level blocks
func ParseBlocks(markup string) ([]domain.ContentBlock, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse content: %w", err)
	}

	var blocks []domain.ContentBlock
	doc.Find("body").Children().Each(func(_ int, sel *goquery.Selection) {
		blocks = append(blocks, Classify(sel))
	})

	return blocks, nil
}

// Classify turns one top-level element into a content block.
// Embeds are checked before images so a link card with a preview image stays a video embed.
func Classify(sel *goquery.Selection) domain.ContentBlock {
	raw, err := goquery.OuterHtml(sel)
	if err != nil {
		return domain.ContentBlock{Kind: domain.BlockUnknown}
	}

	block := domain.ContentBlock{Kind: domain.BlockUnknown, RawMarkup: raw}
	tag := goquery.NodeName(sel)

	switch {
	case tag == "p" && isCaption(sel) && sel.Find("img, iframe, video").Length() == 0:
		block.Kind = domain.BlockCaption
	case isEmbed(sel):
		block.Kind = domain.BlockVideoEmbed
	case tag == "img" || sel.Find("img").Length() > 0:
		block.Kind = domain.BlockImage
	case tag == "p":
		block.TextContent = flattenText(sel)
		if block.TextContent != "" {
			block.Kind = domain.BlockParagraph
		}
	case isHeading(tag):
		block.TextContent = flattenText(sel)
		if block.TextContent != "" {
			block.Kind = domain.BlockHeading
		}
	case tag == "ul" || tag == "ol":
		block.TextContent = flattenList(sel)
		if block.TextContent != "" {
			block.Kind = domain.BlockList
		}
	}

	if !block.Kind.IsText() {
		block.TextContent = ""
	}
	return block
}

// isCaption reports whether a paragraph opens with emphasised text starting with
// the caption marker. Emphasis later in the paragraph does not count.
func isCaption(sel *goquery.Selection) bool {
	lead := leadingNode(sel.Get(0))
	if lead == nil || lead.Type != html.ElementNode || (lead.Data != "em" && lead.Data != "i") {
		return false
	}
	em := goquery.NewDocumentFromNode(lead).Selection
	return strings.HasPrefix(strings.TrimSpace(em.Text()), CaptionMarker)
}

// leadingNode returns the first child of n that is not blank text or a comment
func leadingNode(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.CommentNode:
			continue
		case html.TextNode:
			if strings.TrimSpace(c.Data) == "" {
				continue
			}
		}
		return c
	}
	return nil
}

func isEmbed(sel *goquery.Selection) bool {
	switch goquery.NodeName(sel) {
	case "iframe", "video":
		return true
	}

	for _, attr := range embedAttrs {
		if _, ok := sel.Attr(attr); ok {
			return true
		}
	}

	if classes, ok := sel.Attr("class"); ok {
		for _, c := range strings.Fields(classes) {
			for _, marker := range embedClasses {
				if c == marker {
					return true
				}
			}
		}
	}

	return sel.Find("iframe, video").Length() > 0
}

func isHeading(tag string) bool {
	return len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6'
}

// flattenText returns the element's text with whitespace runs collapsed.
// <br> elements become line breaks.
func flattenText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		collectText(n, &b)
	}

	lines := strings.Split(b.String(), "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(whitespaceRun.ReplaceAllString(line, " "))
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func collectText(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(strings.ReplaceAll(n.Data, "\n", " "))
		return
	case html.ElementNode:
		if n.Data == "br" {
			b.WriteString("\n")
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

// flattenList returns one line per list item
func flattenList(sel *goquery.Selection) string {
	var items []string
	sel.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		if text := flattenText(li); text != "" {
			items = append(items, text)
		}
	})
	return strings.Join(items, "\n")
}
