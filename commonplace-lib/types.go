// ABOUTME: Public types for the Commonplace library API
// ABOUTME: Provides user-friendly types that wrap internal domain models

package commonplace

import (
	"time"

	"commonplace-api/core/domain"
)

// Mode selects the kind of rewrite
type Mode string

const (
	ModePolish   Mode = "polish"
	ModeExpand   Mode = "expand"
	ModeSimplify Mode = "simplify"
)

// Media is an image or embed carried through a rewrite unchanged
type Media struct {
	Type     string `json:"type"`
	HTML     string `json:"html"`
	Position int    `json:"position"`
}

// Extracted is the text-only view of a document plus its media
type Extracted struct {
	TextOnly   string  `json:"text_only"`
	Media      []Media `json:"media"`
	TextBlocks int     `json:"text_blocks"`
	Dropped    int     `json:"dropped"`
}

// Rendered is a document rebuilt from rewritten text and media
type Rendered struct {
	HTML       string `json:"html"`
	Markdown   string `json:"markdown,omitempty"`
	Paragraphs int    `json:"paragraphs"`
	MediaCount int    `json:"media_count"`
}

// EnhanceInput is one document to enhance
type EnhanceInput struct {
	DocumentID string
	Title      string
	HTML       string
	Mode       Mode

	// Replace abandons an enhancement already in progress for the document
	Replace bool
}

// Proposal is an enhanced document awaiting acceptance
type Proposal struct {
	ID         string     `json:"id"`
	DocumentID string     `json:"document_id"`
	Title      string     `json:"title,omitempty"`
	Mode       Mode       `json:"mode"`
	HTML       string     `json:"html"`
	Markdown   string     `json:"markdown,omitempty"`
	MediaCount int        `json:"media_count"`
	Accepted   bool       `json:"accepted"`
	CreatedAt  time.Time  `json:"created_at"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

// BatchResult is the outcome for one document of a batch
type BatchResult struct {
	DocumentID string
	Proposal   *Proposal
	Err        error
}

func mediaToDomain(items []Media) []domain.MediaItem {
	out := make([]domain.MediaItem, len(items))
	for i, m := range items {
		out[i] = domain.MediaItem{Type: domain.MediaType(m.Type), HTML: m.HTML, Position: m.Position}
	}
	return out
}

func mediaFromDomain(items []domain.MediaItem) []Media {
	out := make([]Media, len(items))
	for i, m := range items {
		out[i] = Media{Type: string(m.Type), HTML: m.HTML, Position: m.Position}
	}
	return out
}

func proposalFromDomain(p *domain.Proposal) *Proposal {
	if p == nil {
		return nil
	}
	return &Proposal{
		ID:         p.ID,
		DocumentID: p.DocumentID,
		Title:      p.Title,
		Mode:       Mode(p.Mode),
		HTML:       p.HTML,
		Markdown:   p.Markdown,
		MediaCount: p.MediaCount,
		Accepted:   p.Accepted,
		CreatedAt:  p.CreatedAt,
		ExpiresAt:  p.ExpiresAt,
	}
}
