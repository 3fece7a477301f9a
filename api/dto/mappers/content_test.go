package mappers

import (
	"testing"
	"time"

	"commonplace-api/api/dto/requests"
	"commonplace-api/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMediaItems(t *testing.T) {
	got := ToMediaItems([]requests.MediaItemRequest{
		{Type: "image", HTML: `<img src="a.jpg">`, Position: 0},
		{Type: "video", HTML: `<iframe></iframe>`, Position: 3},
	})

	require.Len(t, got, 2)
	assert.Equal(t, domain.MediaImage, got[0].Type)
	assert.Equal(t, domain.MediaVideo, got[1].Type)
	assert.Equal(t, 3, got[1].Position)
}

func TestToMediaItems_Empty(t *testing.T) {
	assert.Empty(t, ToMediaItems(nil))
	assert.NotNil(t, ToMediaItemResponses(nil), "responses serialise as [] not null")
}

func TestToExtractResponse(t *testing.T) {
	resp := ToExtractResponse(domain.ExtractedDocument{
		TextOnly:       "One.\n\nTwo.",
		Media:          []domain.MediaItem{{Type: domain.MediaImage, HTML: "<img>", Position: 1}},
		TextBlockCount: 2,
		Dropped:        1,
	})

	assert.Equal(t, "One.\n\nTwo.", resp.TextOnly)
	assert.Equal(t, 2, resp.TextBlockCount)
	assert.Equal(t, 1, resp.Dropped)
	require.Len(t, resp.Media, 1)
	assert.Equal(t, "image", resp.Media[0].Type)
}

func TestToProposalResponse(t *testing.T) {
	assert.Nil(t, ToProposalResponse(nil))

	expires := time.Now().Add(time.Hour)
	p := &domain.Proposal{
		ID:         "id-1",
		DocumentID: "doc-1",
		Mode:       domain.ModeExpand,
		HTML:       "<p>x</p>",
		MediaCount: 2,
		ExpiresAt:  &expires,
	}

	resp := ToProposalResponse(p)
	assert.Equal(t, "id-1", resp.ID)
	assert.Equal(t, "expand", resp.Mode)
	assert.Equal(t, 2, resp.MediaCount)
	assert.Equal(t, &expires, resp.ExpiresAt)
}

func TestToEnhanceRequest(t *testing.T) {
	got := ToEnhanceRequest(requests.EnhanceRequest{
		DocumentID: "doc-1",
		Title:      "T",
		HTML:       "<p>x</p>",
		Mode:       "simplify",
		Replace:    true,
	})

	assert.Equal(t, "doc-1", got.DocumentID)
	assert.Equal(t, domain.ModeSimplify, got.Mode)
	assert.True(t, got.Replace)
}

func TestToEnhanceResponse(t *testing.T) {
	assert.Nil(t, ToEnhanceResponse(nil))

	resp := ToEnhanceResponse(&domain.EnhancementResult{
		Proposal:     &domain.Proposal{ID: "id-1", Mode: domain.ModePolish},
		Extracted:    domain.ExtractedDocument{Media: make([]domain.MediaItem, 3)},
		EnhancedText: "Better.",
		Cached:       true,
	})

	assert.Equal(t, "id-1", resp.Proposal.ID)
	assert.Equal(t, 3, resp.MediaFound)
	assert.True(t, resp.Cached)
}
