// ABOUTME: Content handler for the Huma API
// ABOUTME: Exposes extraction and reintegration as standalone pipeline steps

package handlers

import (
	"context"
	"net/http"

	"commonplace-api/api/dto/mappers"
	"commonplace-api/api/dto/requests"
	"commonplace-api/api/dto/responses"
	"commonplace-api/core/interfaces"
	"github.com/danielgtaylor/huma/v2"
)

// ContentHandler handles extraction and reintegration requests
type ContentHandler struct {
	service interfaces.EnhancementService
}

// NewContentHandler creates a new content handler
func NewContentHandler(service interfaces.EnhancementService) *ContentHandler {
	return &ContentHandler{
		service: service,
	}
}

// RegisterRoutes registers all content-related routes
func (h *ContentHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "extractContent",
		Method:      http.MethodPost,
		Path:        "/content/extract",
		Summary:     "Split a document into text and media",
		Description: "Returns the text-only view sent to a transformer plus every image and embed with its position",
		Tags:        []string{"Content"},
	}, h.Extract)

	huma.Register(api, huma.Operation{
		OperationID: "reintegrateContent",
		Method:      http.MethodPost,
		Path:        "/content/reintegrate",
		Summary:     "Reinsert media into rewritten text",
		Description: "Places each media item at the paragraph proportional to its original position; items that cannot be placed are appended",
		Tags:        []string{"Content"},
	}, h.Reintegrate)
}

// ExtractInput defines the input for the Extract operation
type ExtractInput struct {
	Body requests.ExtractRequest
}

// ExtractOutput defines the output for the Extract operation
type ExtractOutput struct {
	Body responses.ExtractResponse
}

// Extract handles document extraction
func (h *ContentHandler) Extract(ctx context.Context, input *ExtractInput) (*ExtractOutput, error) {
	extracted, err := h.service.Extract(ctx, input.Body.HTML)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &ExtractOutput{
		Body: *mappers.ToExtractResponse(extracted),
	}, nil
}

// ReintegrateInput defines the input for the Reintegrate operation
type ReintegrateInput struct {
	Body requests.ReintegrateRequest
}

// ReintegrateOutput defines the output for the Reintegrate operation
type ReintegrateOutput struct {
	Body responses.ReintegrateResponse
}

// Reintegrate handles rebuilding a document from rewritten text and media
func (h *ContentHandler) Reintegrate(ctx context.Context, input *ReintegrateInput) (*ReintegrateOutput, error) {
	doc := h.service.Reintegrate(ctx, input.Body.EnhancedText, mappers.ToMediaItems(input.Body.Media))

	markup, markdown, err := h.service.Render(ctx, doc)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &ReintegrateOutput{
		Body: *mappers.ToReintegrateResponse(doc, markup, markdown),
	}, nil
}
