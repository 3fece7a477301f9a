// ABOUTME: Proposal domain model holds an enhanced document awaiting explicit acceptance
// ABOUTME: Provides validation, enhancement modes and expiration checking

package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EnhanceMode selects the kind of rewrite the transformer performs
type EnhanceMode string

const (
	// ModePolish fixes grammar and flow without changing meaning
	ModePolish EnhanceMode = "polish"

	// ModeExpand adds detail and elaboration
	ModeExpand EnhanceMode = "expand"

	// ModeSimplify shortens and simplifies the wording
	ModeSimplify EnhanceMode = "simplify"
)

// Modes lists every supported enhancement mode
var Modes = []EnhanceMode{ModePolish, ModeExpand, ModeSimplify}

// ParseEnhanceMode validates a mode name
func ParseEnhanceMode(s string) (EnhanceMode, error) {
	mode := EnhanceMode(strings.ToLower(strings.TrimSpace(s)))
	for _, m := range Modes {
		if m == mode {
			return mode, nil
		}
	}
	return "", errors.New("mode must be one of polish, expand, simplify")
}

// Proposal is a reintegrated document offered for review before it replaces the original
type Proposal struct {
	// ID is the unique identifier (UUID) for the proposal
	ID string `json:"id"`

	// DocumentID identifies the document the proposal was made for
	DocumentID string `json:"document_id"`

	// Title is the document title passed to the transformer
	Title string `json:"title"`

	// Mode is the enhancement mode used
	Mode EnhanceMode `json:"mode"`

	// HTML is the reintegrated document
	HTML string `json:"html"`

	// Markdown is a preview rendering of HTML
	Markdown string `json:"markdown,omitempty"`

	// MediaCount is the number of media items in HTML
	MediaCount int `json:"media_count"`

	// Accepted is set once the proposal has been accepted
	Accepted bool `json:"accepted"`

	// CreatedAt is when the proposal was created
	CreatedAt time.Time `json:"created_at"`

	// ExpiresAt is when the proposal expires (nil means no expiration)
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// NewProposal creates a new Proposal instance with validation
func NewProposal(documentID string, mode EnhanceMode, html string, ttl time.Duration) (*Proposal, error) {
	if strings.TrimSpace(documentID) == "" {
		return nil, errors.New("document id cannot be empty")
	}

	if _, err := ParseEnhanceMode(string(mode)); err != nil {
		return nil, err
	}

	proposal := &Proposal{
		ID:         uuid.New().String(),
		DocumentID: documentID,
		Mode:       mode,
		HTML:       html,
		CreatedAt:  time.Now(),
	}

	if ttl > 0 {
		expires := proposal.CreatedAt.Add(ttl)
		proposal.ExpiresAt = &expires
	}

	return proposal, nil
}

// IsExpired checks if the proposal has expired
func (p *Proposal) IsExpired() bool {
	if p.ExpiresAt == nil {
		return false
	}

	return time.Now().After(*p.ExpiresAt)
}

// EnhancementResult is the outcome of one pass through the pipeline
type EnhancementResult struct {
	// Proposal is the stored proposal for review
	Proposal *Proposal

	// Extracted is the text/media split of the original document
	Extracted ExtractedDocument

	// EnhancedText is the raw transformer output after sanitising
	EnhancedText string

	// Cached is true when the transformer output came from the result cache
	Cached bool
}
