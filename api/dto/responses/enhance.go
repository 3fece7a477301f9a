// ABOUTME: Response DTOs for the enhancement and proposal endpoints
// ABOUTME: Provides structured responses with JSON serialization

package responses

import "time"

// ProposalResponse is an enhanced document awaiting review
type ProposalResponse struct {
	ID         string     `json:"id" doc:"Proposal identifier"`
	DocumentID string     `json:"document_id" doc:"Document the proposal was made for"`
	Title      string     `json:"title,omitempty" doc:"Document title"`
	Mode       string     `json:"mode" doc:"Enhancement mode used"`
	HTML       string     `json:"html" doc:"Reintegrated document"`
	Markdown   string     `json:"markdown,omitempty" doc:"Markdown preview, when enabled"`
	MediaCount int        `json:"media_count" doc:"Number of media items in html"`
	Accepted   bool       `json:"accepted" doc:"Whether the proposal has been accepted"`
	CreatedAt  time.Time  `json:"created_at" doc:"When the proposal was created"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty" doc:"When the proposal expires"`
}

// EnhanceResponse is the outcome of enhancing one document
type EnhanceResponse struct {
	Proposal     ProposalResponse `json:"proposal" doc:"Proposal to accept or discard"`
	EnhancedText string           `json:"enhanced_text" doc:"Transformer output"`
	MediaFound   int              `json:"media_found" doc:"Number of media items extracted from the original"`
	Cached       bool             `json:"cached" doc:"Whether the transformer output came from cache"`
}

// CancelEnhanceResponse reports whether an outstanding enhancement was abandoned
type CancelEnhanceResponse struct {
	DocumentID string `json:"document_id" doc:"Document identifier"`
	Cancelled  bool   `json:"cancelled" doc:"True when an enhancement was in progress and has been abandoned"`
}

// EnhanceStatusResponse reports whether a document is busy
type EnhanceStatusResponse struct {
	DocumentID string `json:"document_id" doc:"Document identifier"`
	Busy       bool   `json:"busy" doc:"True while an enhancement is in progress"`
}

// BatchItemResponse is the outcome for one document of a batch
type BatchItemResponse struct {
	DocumentID string            `json:"document_id" doc:"Document identifier"`
	Status     int               `json:"status" doc:"HTTP status the document would have received on its own"`
	Proposal   *ProposalResponse `json:"proposal,omitempty" doc:"Proposal, on success"`
	Error      string            `json:"error,omitempty" doc:"Error message, on failure"`
}

// BatchEnhanceResponse is the outcome of a batch
type BatchEnhanceResponse struct {
	Results   []BatchItemResponse `json:"results" doc:"One result per document, in request order"`
	Succeeded int                 `json:"succeeded" doc:"Number of documents enhanced"`
	Failed    int                 `json:"failed" doc:"Number of documents that failed"`
}
