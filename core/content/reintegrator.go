// ABOUTME: Reintegrator reinserts media into rewritten text at proportionally equivalent positions
// ABOUTME: Conserves every media item regardless of how many paragraphs the rewrite produced

package content

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"commonplace-api/core/domain"
)

var blankLine = regexp.MustCompile(`\n[ \t]*\n`)

// SplitParagraphs splits text on blank lines into trimmed, non-empty paragraphs
func SplitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var paragraphs []string
	for _, part := range blankLine.Split(text, -1) {
		if p := strings.TrimSpace(part); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// TargetIndex rescales an original position onto the rewritten paragraph count.
// groups is the number of distinct position groups, n the new paragraph count.
func TargetIndex(position, groups, n int) int {
	if groups < 1 {
		groups = 1
	}
	return int(math.Round(float64(position) / float64(groups) * float64(n)))
}

// positionGroup is the media sharing one original position, in source order
type positionGroup struct {
	position int
	target   int
	items    []domain.MediaItem
	placed   bool
}

// groupByPosition groups media by position in ascending order, keeping source order within a group
func groupByPosition(media []domain.MediaItem) []*positionGroup {
	byPosition := make(map[int]*positionGroup)
	for _, item := range media {
		g, ok := byPosition[item.Position]
		if !ok {
			g = &positionGroup{position: item.Position}
			byPosition[item.Position] = g
		}
		g.items = append(g.items, item)
	}

	groups := make([]*positionGroup, 0, len(byPosition))
	for _, g := range byPosition {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].position < groups[j].position
	})
	return groups
}

// Reintegrate builds a document from rewritten text and the media extracted from the original.
// Groups whose target is the last paragraph or beyond land after it; groups never
// placed during the walk (no paragraphs at all) are appended at the end.
func Reintegrate(enhancedText string, media []domain.MediaItem) domain.Document {
	paragraphs := SplitParagraphs(enhancedText)
	nodes := make([]domain.Node, 0, len(paragraphs)+len(media))

	if len(media) == 0 {
		for _, p := range paragraphs {
			nodes = append(nodes, domain.Node{Kind: domain.NodeParagraph, Text: p})
		}
		return domain.Document{Nodes: nodes}
	}

	groups := groupByPosition(media)
	n := len(paragraphs)
	for _, g := range groups {
		g.target = TargetIndex(g.position, len(groups), n)
	}

	last := n - 1
	for i, p := range paragraphs {
		nodes = append(nodes, domain.Node{Kind: domain.NodeParagraph, Text: p})
		for _, g := range groups {
			if g.placed {
				continue
			}
			if g.target == i || (i == last && g.target >= i) {
				nodes = appendGroup(nodes, g)
			}
		}
	}

	for _, g := range groups {
		if !g.placed {
			nodes = appendGroup(nodes, g)
		}
	}

	return domain.Document{Nodes: nodes}
}

func appendGroup(nodes []domain.Node, g *positionGroup) []domain.Node {
	for i := range g.items {
		item := g.items[i]
		nodes = append(nodes, domain.Node{Kind: domain.NodeMedia, Media: &item})
	}
	g.placed = true
	return nodes
}
