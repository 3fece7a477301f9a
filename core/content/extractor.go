// ABOUTME: Extractor splits a block-structured document into plain text and positioned media
// ABOUTME: Pure function of its input; unknown blocks and captions are dropped

package content

import (
	"strings"

	"commonplace-api/core/domain"
)

// ParagraphSeparator joins text blocks in the text-only view
const ParagraphSeparator = "\n\n"

// Extract walks the blocks in order and returns the text-only view plus media.
// Each media item's position is the number of text blocks seen before it.
func Extract(blocks []domain.ContentBlock) domain.ExtractedDocument {
	var paragraphs []string
	media := []domain.MediaItem{}
	dropped := 0

	for _, block := range blocks {
		switch {
		case block.Kind.IsText():
			text := strings.TrimSpace(block.TextContent)
			if text == "" {
				dropped++
				continue
			}
			paragraphs = append(paragraphs, text)
		case block.Kind.IsMedia():
			media = append(media, domain.MediaItem{
				Type:     mediaType(block.Kind),
				HTML:     block.RawMarkup,
				Position: len(paragraphs),
			})
		case block.Kind == domain.BlockCaption:
			// regenerated by the editor next to the reinserted image
		default:
			dropped++
		}
	}

	return domain.ExtractedDocument{
		TextOnly:       strings.Join(paragraphs, ParagraphSeparator),
		Media:          media,
		TextBlockCount: len(paragraphs),
		Dropped:        dropped,
	}
}

// ExtractHTML parses markup and extracts it in one step
func ExtractHTML(markup string) (domain.ExtractedDocument, error) {
	blocks, err := ParseBlocks(markup)
	if err != nil {
		return domain.ExtractedDocument{}, err
	}
	return Extract(blocks), nil
}

func mediaType(kind domain.BlockKind) domain.MediaType {
	if kind == domain.BlockVideoEmbed {
		return domain.MediaVideo
	}
	return domain.MediaImage
}
