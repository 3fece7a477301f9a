// ABOUTME: Storage interfaces for persisting domain entities
// ABOUTME: Defines contracts for data persistence operations

package interfaces

import (
	"context"

	"commonplace-api/core/domain"
)

// ProposalStorage defines the interface for proposal persistence
type ProposalStorage interface {
	// Save persists a proposal
	Save(ctx context.Context, proposal *domain.Proposal) error

	// Get retrieves a proposal by ID; returns nil, nil when it does not exist
	Get(ctx context.Context, id string) (*domain.Proposal, error)

	// Delete removes a proposal by ID
	Delete(ctx context.Context, id string) error
}
