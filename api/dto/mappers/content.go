// ABOUTME: Mappers for converting between domain models and API DTOs
// ABOUTME: Provides clean separation between business logic and API layer

package mappers

import (
	"commonplace-api/api/dto/requests"
	"commonplace-api/api/dto/responses"
	"commonplace-api/core/domain"
	"commonplace-api/core/interfaces"
)

// ToMediaItems converts media request DTOs to domain media items
func ToMediaItems(items []requests.MediaItemRequest) []domain.MediaItem {
	media := make([]domain.MediaItem, 0, len(items))
	for _, item := range items {
		media = append(media, domain.MediaItem{
			Type:     domain.MediaType(item.Type),
			HTML:     item.HTML,
			Position: item.Position,
		})
	}
	return media
}

// ToMediaItemResponses converts domain media items to response DTOs
func ToMediaItemResponses(items []domain.MediaItem) []responses.MediaItemResponse {
	out := make([]responses.MediaItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, responses.MediaItemResponse{
			Type:     string(item.Type),
			HTML:     item.HTML,
			Position: item.Position,
		})
	}
	return out
}

// ToExtractResponse converts an extracted document to its response DTO
func ToExtractResponse(doc domain.ExtractedDocument) *responses.ExtractResponse {
	return &responses.ExtractResponse{
		TextOnly:       doc.TextOnly,
		Media:          ToMediaItemResponses(doc.Media),
		TextBlockCount: doc.TextBlockCount,
		Dropped:        doc.Dropped,
	}
}

// ToReintegrateResponse converts a rendered document to its response DTO
func ToReintegrateResponse(doc domain.Document, html, markdown string) *responses.ReintegrateResponse {
	return &responses.ReintegrateResponse{
		HTML:       html,
		Markdown:   markdown,
		Paragraphs: doc.ParagraphCount(),
		MediaCount: doc.MediaCount(),
	}
}

// ToProposalResponse converts a domain proposal to its response DTO
func ToProposalResponse(p *domain.Proposal) *responses.ProposalResponse {
	if p == nil {
		return nil
	}
	return &responses.ProposalResponse{
		ID:         p.ID,
		DocumentID: p.DocumentID,
		Title:      p.Title,
		Mode:       string(p.Mode),
		HTML:       p.HTML,
		Markdown:   p.Markdown,
		MediaCount: p.MediaCount,
		Accepted:   p.Accepted,
		CreatedAt:  p.CreatedAt,
		ExpiresAt:  p.ExpiresAt,
	}
}

// ToEnhanceRequest converts an enhance request DTO to the service request
func ToEnhanceRequest(req requests.EnhanceRequest) interfaces.EnhanceRequest {
	return interfaces.EnhanceRequest{
		DocumentID: req.DocumentID,
		Title:      req.Title,
		HTML:       req.HTML,
		Mode:       domain.EnhanceMode(req.Mode),
		Replace:    req.Replace,
	}
}

// ToEnhanceRequests converts a batch of enhance request DTOs
func ToEnhanceRequests(reqs []requests.EnhanceRequest) []interfaces.EnhanceRequest {
	out := make([]interfaces.EnhanceRequest, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, ToEnhanceRequest(req))
	}
	return out
}

// ToEnhanceResponse converts an enhancement result to its response DTO
func ToEnhanceResponse(result *domain.EnhancementResult) *responses.EnhanceResponse {
	if result == nil {
		return nil
	}
	resp := &responses.EnhanceResponse{
		EnhancedText: result.EnhancedText,
		MediaFound:   len(result.Extracted.Media),
		Cached:       result.Cached,
	}
	if p := ToProposalResponse(result.Proposal); p != nil {
		resp.Proposal = *p
	}
	return resp
}
