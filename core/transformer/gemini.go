// ABOUTME: Gemini transformer rewrites text with Google's generative AI models
// ABOUTME: Uses the mode prompt as user input and a fixed system instruction

package transformer

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"commonplace-api/core/domain"
	coreerrors "commonplace-api/core/errors"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiAPIName = "gemini"

// DefaultGeminiModel is used when no model name is configured
const DefaultGeminiModel = "gemini-1.5-flash"

// Gemini is a Transformer backed by the Gemini API
type Gemini struct {
	client    *genai.Client
	modelName string
}

// NewGemini creates a Gemini transformer
func NewGemini(ctx context.Context, apiKey, modelName string) (*Gemini, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini api key cannot be empty")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	return &Gemini{client: client, modelName: modelName}, nil
}

// Close releases the underlying client
func (g *Gemini) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// Transform rewrites text according to mode
func (g *Gemini) Transform(ctx context.Context, text, title string, mode domain.EnhanceMode) (string, error) {
	system, user, err := BuildPrompt(text, title, mode)
	if err != nil {
		return "", err
	}

	model := g.client.GenerativeModel(g.modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(system)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", &coreerrors.ExternalAPIError{
			StatusCode: http.StatusServiceUnavailable,
			Message:    "generate content failed",
			API:        geminiAPIName,
			Cause:      err,
		}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String(), nil
}
