// ABOUTME: Enhancement handler for the Huma API
// ABOUTME: Runs the full pipeline for single documents and batches, and manages the busy gate

package handlers

import (
	"context"
	"net/http"
	"strings"

	"commonplace-api/api/dto/mappers"
	"commonplace-api/api/dto/requests"
	"commonplace-api/api/dto/responses"
	"commonplace-api/core/interfaces"
	"commonplace-api/core/workers"
	"commonplace-api/pkg/featureflags"
	"github.com/danielgtaylor/huma/v2"
)

// BatchEnhancer runs many enhancement requests and reports one result per request
type BatchEnhancer interface {
	EnhanceBatch(ctx context.Context, reqs []interfaces.EnhanceRequest) ([]workers.JobResult, error)
}

// EnhanceHandler handles enhancement requests
type EnhanceHandler struct {
	service interfaces.EnhancementService
	batch   BatchEnhancer
	flags   featureflags.Manager
}

// NewEnhanceHandler creates a new enhancement handler. When flags is nil the
// manager attached to the request context is consulted.
func NewEnhanceHandler(service interfaces.EnhancementService, batch BatchEnhancer, flags featureflags.Manager) *EnhanceHandler {
	return &EnhanceHandler{
		service: service,
		batch:   batch,
		flags:   flags,
	}
}

func (h *EnhanceHandler) enabled(ctx context.Context, flag featureflags.FeatureFlag) bool {
	if h.flags != nil {
		return h.flags.IsEnabled(ctx, flag)
	}
	return featureflags.IsEnabled(ctx, flag)
}

// RegisterRoutes registers all enhancement-related routes
func (h *EnhanceHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "enhanceDocument",
		Method:      http.MethodPost,
		Path:        "/enhance",
		Summary:     "Enhance a document",
		Description: "Rewrites the text of a document while keeping its images and embeds, and stores the result as a proposal",
		Tags:        []string{"Enhance"},
	}, h.Enhance)

	huma.Register(api, huma.Operation{
		OperationID: "cancelEnhancement",
		Method:      http.MethodPost,
		Path:        "/enhance/cancel",
		Summary:     "Abandon an enhancement in progress",
		Description: "Frees the document immediately; the abandoned result is discarded when it arrives",
		Tags:        []string{"Enhance"},
	}, h.Cancel)

	huma.Register(api, huma.Operation{
		OperationID: "getEnhancementStatus",
		Method:      http.MethodGet,
		Path:        "/enhance/status/{document_id}",
		Summary:     "Check whether a document is busy",
		Tags:        []string{"Enhance"},
	}, h.Status)

	huma.Register(api, huma.Operation{
		OperationID: "enhanceBatch",
		Method:      http.MethodPost,
		Path:        "/enhance/batch",
		Summary:     "Enhance several documents",
		Description: "Runs documents through the worker pool; each document succeeds or fails on its own",
		Tags:        []string{"Enhance"},
	}, h.EnhanceBatch)
}

// EnhanceInput defines the input for the Enhance operation
type EnhanceInput struct {
	Body requests.EnhanceRequest
}

// EnhanceOutput defines the output for the Enhance operation
type EnhanceOutput struct {
	Body responses.EnhanceResponse
}

// Enhance handles single-document enhancement
func (h *EnhanceHandler) Enhance(ctx context.Context, input *EnhanceInput) (*EnhanceOutput, error) {
	if !h.enabled(ctx, featureflags.EnhanceEnabled) {
		return nil, huma.Error503ServiceUnavailable("Enhancement is disabled")
	}

	input.Body.ApplyDefaults()
	result, err := h.service.Enhance(ctx, mappers.ToEnhanceRequest(input.Body))
	if err != nil {
		return nil, toHumaError(err)
	}

	return &EnhanceOutput{
		Body: *mappers.ToEnhanceResponse(result),
	}, nil
}

// CancelInput defines the input for the Cancel operation
type CancelInput struct {
	Body requests.CancelEnhanceRequest
}

// CancelOutput defines the output for the Cancel operation
type CancelOutput struct {
	Body responses.CancelEnhanceResponse
}

// Cancel abandons the outstanding enhancement for a document
func (h *EnhanceHandler) Cancel(ctx context.Context, input *CancelInput) (*CancelOutput, error) {
	docID := strings.TrimSpace(input.Body.DocumentID)
	if docID == "" {
		return nil, huma.Error400BadRequest("document_id is required")
	}

	return &CancelOutput{
		Body: responses.CancelEnhanceResponse{
			DocumentID: docID,
			Cancelled:  h.service.Cancel(docID),
		},
	}, nil
}

// StatusInput defines the input for the Status operation
type StatusInput struct {
	DocumentID string `path:"document_id" maxLength:"255" doc:"Document identifier"`
}

// StatusOutput defines the output for the Status operation
type StatusOutput struct {
	Body responses.EnhanceStatusResponse
}

// Status reports whether a document is busy
func (h *EnhanceHandler) Status(ctx context.Context, input *StatusInput) (*StatusOutput, error) {
	return &StatusOutput{
		Body: responses.EnhanceStatusResponse{
			DocumentID: input.DocumentID,
			Busy:       h.service.Busy(input.DocumentID),
		},
	}, nil
}

// BatchInput defines the input for the EnhanceBatch operation
type BatchInput struct {
	Body requests.BatchEnhanceRequest
}

// BatchOutput defines the output for the EnhanceBatch operation
type BatchOutput struct {
	Body responses.BatchEnhanceResponse
}

// EnhanceBatch handles multi-document enhancement
func (h *EnhanceHandler) EnhanceBatch(ctx context.Context, input *BatchInput) (*BatchOutput, error) {
	if !h.enabled(ctx, featureflags.EnhanceEnabled) || !h.enabled(ctx, featureflags.BatchEnabled) || h.batch == nil {
		return nil, huma.Error503ServiceUnavailable("Batch enhancement is disabled")
	}

	input.Body.ApplyDefaults()
	results, err := h.batch.EnhanceBatch(ctx, mappers.ToEnhanceRequests(input.Body.Documents))
	if err != nil {
		return nil, huma.Error503ServiceUnavailable("Worker pool unavailable", err)
	}

	out := responses.BatchEnhanceResponse{
		Results: make([]responses.BatchItemResponse, 0, len(results)),
	}
	for _, res := range results {
		item := responses.BatchItemResponse{DocumentID: res.DocumentID}
		if res.Err != nil {
			item.Status, item.Error = errorStatus(res.Err)
			out.Failed++
		} else {
			item.Status = http.StatusOK
			item.Proposal = mappers.ToProposalResponse(res.Result.Proposal)
			out.Succeeded++
		}
		out.Results = append(out.Results, item)
	}

	return &BatchOutput{Body: out}, nil
}

// errorStatus reports the status and message a single request would have returned for err
func errorStatus(err error) (int, string) {
	if se, ok := toHumaError(err).(huma.StatusError); ok {
		return se.GetStatus(), err.Error()
	}
	return http.StatusInternalServerError, err.Error()
}
