// ABOUTME: Proposal handler for the Huma API
// ABOUTME: Lets a client review, accept or discard an enhanced document

package handlers

import (
	"context"
	"net/http"

	"commonplace-api/api/dto/mappers"
	"commonplace-api/api/dto/responses"
	"commonplace-api/core/interfaces"
	"github.com/danielgtaylor/huma/v2"
)

// ProposalHandler handles proposal review requests
type ProposalHandler struct {
	proposals interfaces.ProposalService
}

// NewProposalHandler creates a new proposal handler
func NewProposalHandler(proposals interfaces.ProposalService) *ProposalHandler {
	return &ProposalHandler{
		proposals: proposals,
	}
}

// RegisterRoutes registers all proposal-related routes
func (h *ProposalHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getProposal",
		Method:      http.MethodGet,
		Path:        "/proposals/{id}",
		Summary:     "Get a proposal",
		Tags:        []string{"Proposals"},
	}, h.GetProposal)

	huma.Register(api, huma.Operation{
		OperationID: "acceptProposal",
		Method:      http.MethodPost,
		Path:        "/proposals/{id}/accept",
		Summary:     "Accept a proposal",
		Description: "Marks the proposal accepted; the caller replaces its document with the returned html",
		Tags:        []string{"Proposals"},
	}, h.AcceptProposal)

	huma.Register(api, huma.Operation{
		OperationID:   "discardProposal",
		Method:        http.MethodDelete,
		Path:          "/proposals/{id}",
		Summary:       "Discard a proposal",
		Tags:          []string{"Proposals"},
		DefaultStatus: http.StatusNoContent,
	}, h.DiscardProposal)
}

// ProposalIDInput identifies a proposal
type ProposalIDInput struct {
	ID string `path:"id" doc:"Proposal identifier"`
}

// ProposalOutput defines the output for proposal operations
type ProposalOutput struct {
	Body responses.ProposalResponse
}

// GetProposal returns a proposal by id
func (h *ProposalHandler) GetProposal(ctx context.Context, input *ProposalIDInput) (*ProposalOutput, error) {
	proposal, err := h.proposals.GetProposal(ctx, input.ID)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &ProposalOutput{Body: *mappers.ToProposalResponse(proposal)}, nil
}

// AcceptProposal marks a proposal accepted
func (h *ProposalHandler) AcceptProposal(ctx context.Context, input *ProposalIDInput) (*ProposalOutput, error) {
	proposal, err := h.proposals.AcceptProposal(ctx, input.ID)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &ProposalOutput{Body: *mappers.ToProposalResponse(proposal)}, nil
}

// DiscardProposal deletes a proposal
func (h *ProposalHandler) DiscardProposal(ctx context.Context, input *ProposalIDInput) (*struct{}, error) {
	if err := h.proposals.DiscardProposal(ctx, input.ID); err != nil {
		return nil, toHumaError(err)
	}
	return nil, nil
}
