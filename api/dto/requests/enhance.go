// ABOUTME: Request DTOs for the enhancement endpoints
// ABOUTME: Provides validation and default values for incoming requests

package requests

// EnhanceRequest is the body for enhancing one document
type EnhanceRequest struct {
	// DocumentID identifies the document for the busy gate
	DocumentID string `json:"document_id" minLength:"1" maxLength:"255" doc:"Document identifier"`

	// Title is passed to the transformer as context
	Title string `json:"title,omitempty" maxLength:"500" doc:"Document title"`

	// HTML is the rich-content document
	HTML string `json:"html" minLength:"1" doc:"Rich-content HTML document"`

	// Mode selects the kind of rewrite
	Mode string `json:"mode,omitempty" enum:"polish,expand,simplify" default:"polish" doc:"Enhancement mode"`

	// Replace abandons an outstanding enhancement for the same document
	Replace bool `json:"replace,omitempty" doc:"Abandon any enhancement already in progress for this document"`
}

// ApplyDefaults sets default values for optional fields
func (r *EnhanceRequest) ApplyDefaults() {
	if r.Mode == "" {
		r.Mode = "polish"
	}
}

// CancelEnhanceRequest is the body for abandoning an outstanding enhancement
type CancelEnhanceRequest struct {
	DocumentID string `json:"document_id" minLength:"1" maxLength:"255" doc:"Document identifier"`
}

// BatchEnhanceRequest is the body for enhancing several documents at once
type BatchEnhanceRequest struct {
	Documents []EnhanceRequest `json:"documents" minItems:"1" maxItems:"50" doc:"Documents to enhance"`
}

// ApplyDefaults sets default values on every document
func (r *BatchEnhanceRequest) ApplyDefaults() {
	for i := range r.Documents {
		r.Documents[i].ApplyDefaults()
	}
}
