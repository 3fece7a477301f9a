// ABOUTME: Domain models for rich content documents and their extracted text/media split
// ABOUTME: Defines block kinds, media items and the reintegrated document shape

package domain

// BlockKind classifies a top-level block of a rich-content document
type BlockKind int

const (
	// BlockUnknown is any block the extractor does not recognise; always dropped
	BlockUnknown BlockKind = iota

	// BlockParagraph is a plain text paragraph
	BlockParagraph

	// BlockHeading is a section heading
	BlockHeading

	// BlockList is an ordered or unordered list
	BlockList

	// BlockImage is an image, bare or wrapped in a container
	BlockImage

	// BlockVideoEmbed is a video or link-card embed container
	BlockVideoEmbed

	// BlockCaption is a "Photo:" caption paragraph following an image
	BlockCaption
)

var blockKindNames = map[BlockKind]string{
	BlockUnknown:    "unknown",
	BlockParagraph:  "text-paragraph",
	BlockHeading:    "heading",
	BlockList:       "list",
	BlockImage:      "image",
	BlockVideoEmbed: "video-embed",
	BlockCaption:    "caption",
}

// String returns the wire name of the kind
func (k BlockKind) String() string {
	if name, ok := blockKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsText reports whether blocks of this kind carry text for the transformer
func (k BlockKind) IsText() bool {
	return k == BlockParagraph || k == BlockHeading || k == BlockList
}

// IsMedia reports whether blocks of this kind are carried verbatim as media
func (k BlockKind) IsMedia() bool {
	return k == BlockImage || k == BlockVideoEmbed
}

// ContentBlock is one paragraph-level unit of the original document
type ContentBlock struct {
	// Kind is the classification of the block
	Kind BlockKind `json:"kind"`

	// RawMarkup is the exact outer HTML of the block
	RawMarkup string `json:"raw_markup"`

	// TextContent is the flattened inner text, set for text-bearing kinds only
	TextContent string `json:"text_content,omitempty"`
}

// MediaType is the type of a media item carried through transformation
type MediaType string

const (
	// MediaImage is an image element
	MediaImage MediaType = "image"

	// MediaVideo is a video or link embed
	MediaVideo MediaType = "video"
)

// MediaItem is a non-text block removed before transformation and reinserted after
type MediaItem struct {
	// Type is image or video
	Type MediaType `json:"type"`

	// HTML is the verbatim embeddable markup
	HTML string `json:"html"`

	// Position is the number of text-bearing blocks preceding the item
	Position int `json:"position"`
}

// ExtractedDocument is the text-only view of a document plus its media
type ExtractedDocument struct {
	// TextOnly holds the text of all text-bearing blocks joined by blank lines
	TextOnly string `json:"text_only"`

	// Media lists media items in source order
	Media []MediaItem `json:"media"`

	// TextBlockCount is the number of text-bearing blocks found
	TextBlockCount int `json:"text_block_count"`

	// Dropped is the number of blocks omitted from both views (unknown kinds)
	Dropped int `json:"dropped"`
}

// NodeKind distinguishes the two kinds of node in a reintegrated document
type NodeKind string

const (
	// NodeParagraph is a paragraph of transformed text
	NodeParagraph NodeKind = "paragraph"

	// NodeMedia is a media item replayed verbatim
	NodeMedia NodeKind = "media"
)

// Node is one element of a reintegrated document
type Node struct {
	Kind  NodeKind   `json:"kind"`
	Text  string     `json:"text,omitempty"`
	Media *MediaItem `json:"media,omitempty"`
}

// Document is a flat sequence of paragraphs interleaved with media
type Document struct {
	Nodes []Node `json:"nodes"`
}

// MediaCount returns the number of media nodes in the document
func (d Document) MediaCount() int {
	count := 0
	for _, n := range d.Nodes {
		if n.Kind == NodeMedia {
			count++
		}
	}
	return count
}

// ParagraphCount returns the number of paragraph nodes in the document
func (d Document) ParagraphCount() int {
	return len(d.Nodes) - d.MediaCount()
}

// Media returns the media items of the document in output order
func (d Document) Media() []MediaItem {
	items := make([]MediaItem, 0, len(d.Nodes))
	for _, n := range d.Nodes {
		if n.Kind == NodeMedia && n.Media != nil {
			items = append(items, *n.Media)
		}
	}
	return items
}
