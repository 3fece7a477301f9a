// ABOUTME: Proposal service handles the review step for enhanced documents
// ABOUTME: Provides business logic for storing, accepting and discarding proposals

package proposal

import (
	"context"
	"errors"

	"commonplace-api/core/domain"
	coreerrors "commonplace-api/core/errors"
	"commonplace-api/core/interfaces"

	"github.com/google/uuid"
)

// ProposalService handles proposal operations
type ProposalService struct {
	storage interfaces.ProposalStorage
	logger  interfaces.Logger
}

// NewProposalService creates a new proposal service instance
func NewProposalService(storage interfaces.ProposalStorage, logger interfaces.Logger) *ProposalService {
	return &ProposalService{
		storage: storage,
		logger:  logger,
	}
}

// CreateProposal stores a new proposal
func (s *ProposalService) CreateProposal(ctx context.Context, p *domain.Proposal) error {
	if p == nil {
		return errors.New("proposal cannot be nil")
	}
	if p.ID == "" {
		return &coreerrors.ValidationError{Field: "id", Message: "proposal id cannot be empty"}
	}

	return s.storage.Save(ctx, p)
}

// GetProposal retrieves a proposal by ID
func (s *ProposalService) GetProposal(ctx context.Context, id string) (*domain.Proposal, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	p, err := s.storage.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &coreerrors.NotFoundError{Resource: "proposal", ID: id}
	}

	if p.IsExpired() {
		if err := s.storage.Delete(ctx, id); err != nil && s.logger != nil {
			s.logger.Warn("Failed to delete expired proposal", map[string]interface{}{
				"id":    id,
				"error": err.Error(),
			})
		}
		return nil, &coreerrors.NotFoundError{Resource: "proposal", ID: id}
	}

	return p, nil
}

// AcceptProposal marks a proposal accepted. Accepting twice is not an error.
func (s *ProposalService) AcceptProposal(ctx context.Context, id string) (*domain.Proposal, error) {
	p, err := s.GetProposal(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Accepted {
		return p, nil
	}

	p.Accepted = true
	if err := s.storage.Save(ctx, p); err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("Proposal accepted", map[string]interface{}{
			"id":          p.ID,
			"document_id": p.DocumentID,
			"mode":        string(p.Mode),
		})
	}
	return p, nil
}

// DiscardProposal removes a proposal so it can no longer be accepted
func (s *ProposalService) DiscardProposal(ctx context.Context, id string) error {
	if _, err := s.GetProposal(ctx, id); err != nil {
		return err
	}
	return s.storage.Delete(ctx, id)
}

func validateID(id string) error {
	if id == "" {
		return &coreerrors.ValidationError{Field: "id", Message: "proposal ID cannot be empty"}
	}
	if _, err := uuid.Parse(id); err != nil {
		return &coreerrors.ValidationError{Field: "id", Message: "invalid proposal ID format"}
	}
	return nil
}
