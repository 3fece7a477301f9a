// ABOUTME: Response DTOs for the content extraction and reintegration endpoints
// ABOUTME: Provides structured responses with JSON serialization

package responses

// MediaItemResponse is one media item in API responses
type MediaItemResponse struct {
	Type     string `json:"type" doc:"Media type (image or video)"`
	HTML     string `json:"html" doc:"Verbatim embeddable markup"`
	Position int    `json:"position" doc:"Number of text blocks preceding the item in the original"`
}

// ExtractResponse is the text-only view of a document plus its media
type ExtractResponse struct {
	TextOnly       string              `json:"text_only" doc:"Text of all text blocks joined by blank lines"`
	Media          []MediaItemResponse `json:"media" doc:"Media items in source order"`
	TextBlockCount int                 `json:"text_block_count" doc:"Number of text blocks found"`
	Dropped        int                 `json:"dropped" doc:"Number of blocks dropped from both views"`
}

// ReintegrateResponse is a rebuilt document
type ReintegrateResponse struct {
	HTML       string `json:"html" doc:"Reintegrated document"`
	Markdown   string `json:"markdown,omitempty" doc:"Markdown preview, when enabled"`
	Paragraphs int    `json:"paragraphs" doc:"Number of paragraphs"`
	MediaCount int    `json:"media_count" doc:"Number of media items placed"`
}
