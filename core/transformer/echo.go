package transformer

import (
	"context"

	"commonplace-api/core/domain"
)

// Echo returns its input unchanged. Used for local development and smoke tests.
type Echo struct{}

// Transform returns text as is
func (Echo) Transform(ctx context.Context, text, title string, mode domain.EnhanceMode) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return text, nil
}
