// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Defines contracts for services used throughout the application

package interfaces

import (
	"context"

	"commonplace-api/core/domain"
)

// Transformer is the external text rewriting capability.
// It knows nothing about media and may return any number of paragraphs.
type Transformer interface {
	Transform(ctx context.Context, text, title string, mode domain.EnhanceMode) (string, error)
}

// TransformerFunc adapts a plain function to the Transformer interface
type TransformerFunc func(ctx context.Context, text, title string, mode domain.EnhanceMode) (string, error)

// Transform calls f
func (f TransformerFunc) Transform(ctx context.Context, text, title string, mode domain.EnhanceMode) (string, error) {
	return f(ctx, text, title, mode)
}

// EnhanceRequest is one document to run through the pipeline
type EnhanceRequest struct {
	DocumentID string
	Title      string
	HTML       string
	Mode       domain.EnhanceMode

	// Replace abandons an outstanding transformation for the same document
	// instead of failing with a conflict
	Replace bool
}

// EnhancementService runs the extract → transform → reintegrate pipeline
type EnhancementService interface {
	// Extract splits a document into text and positioned media
	Extract(ctx context.Context, html string) (domain.ExtractedDocument, error)

	// Reintegrate rebuilds a document from rewritten text and media
	Reintegrate(ctx context.Context, enhancedText string, media []domain.MediaItem) domain.Document

	// Render serialises a reintegrated document to HTML and, when enabled, Markdown
	Render(ctx context.Context, doc domain.Document) (html string, markdown string, err error)

	// Enhance runs the full pipeline and stores the result as a proposal
	Enhance(ctx context.Context, req EnhanceRequest) (*domain.EnhancementResult, error)

	// Cancel abandons the outstanding transformation for a document
	Cancel(documentID string) bool

	// Busy reports whether a document has a transformation outstanding
	Busy(documentID string) bool
}

// ProposalService manages the review step between enhancement and replacement
type ProposalService interface {
	CreateProposal(ctx context.Context, proposal *domain.Proposal) error
	GetProposal(ctx context.Context, id string) (*domain.Proposal, error)
	AcceptProposal(ctx context.Context, id string) (*domain.Proposal, error)
	DiscardProposal(ctx context.Context, id string) error
}
