// ABOUTME: Request DTOs for the content extraction and reintegration endpoints
// ABOUTME: Field tags drive Huma's request validation and OpenAPI schema

package requests

// ExtractRequest is the body for splitting a document into text and media
type ExtractRequest struct {
	// HTML is the rich-content document
	HTML string `json:"html" minLength:"1" doc:"Rich-content HTML document"`
}

// MediaItemRequest is one media item to reinsert
type MediaItemRequest struct {
	Type     string `json:"type" enum:"image,video" doc:"Media type"`
	HTML     string `json:"html" minLength:"1" doc:"Verbatim embeddable markup"`
	Position int    `json:"position" minimum:"0" doc:"Number of text blocks preceding the item in the original"`
}

// ReintegrateRequest is the body for rebuilding a document from rewritten text
type ReintegrateRequest struct {
	// EnhancedText is the transformer output, paragraphs separated by blank lines
	EnhancedText string `json:"enhanced_text" doc:"Rewritten text, paragraphs separated by blank lines"`

	// Media is the media list returned by extraction
	Media []MediaItemRequest `json:"media,omitempty" maxItems:"500" doc:"Media items from extraction"`
}
