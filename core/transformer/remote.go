// ABOUTME: Remote transformer calls a rewriting endpoint over HTTP with a JSON contract
// ABOUTME: Request {content, title, mode}; response {enhanced} or {error}

package transformer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"commonplace-api/core/domain"
	coreerrors "commonplace-api/core/errors"
	"commonplace-api/core/interfaces"
)

const remoteAPIName = "transformer"

// maxResponseBytes bounds how much of a response body is read
const maxResponseBytes = 4 << 20

// RemoteRequest is the body posted to the rewriting endpoint
type RemoteRequest struct {
	Content string `json:"content"`
	Title   string `json:"title"`
	Mode    string `json:"mode"`
}

// RemoteResponse is the body returned by the rewriting endpoint
type RemoteResponse struct {
	Enhanced string `json:"enhanced"`
	Error    string `json:"error,omitempty"`
}

// Remote is a Transformer backed by an HTTP endpoint
type Remote struct {
	client   interfaces.HTTPClient
	endpoint string
	logger   interfaces.Logger
}

// NewRemote creates a remote transformer posting to endpoint
func NewRemote(client interfaces.HTTPClient, endpoint string, logger interfaces.Logger) (*Remote, error) {
	if client == nil {
		return nil, errors.New("http client is required")
	}
	if strings.TrimSpace(endpoint) == "" {
		return nil, errors.New("transformer endpoint cannot be empty")
	}
	return &Remote{client: client, endpoint: endpoint, logger: logger}, nil
}

// Transform posts the text and returns the rewritten text
func (r *Remote) Transform(ctx context.Context, text, title string, mode domain.EnhanceMode) (string, error) {
	payload, err := json.Marshal(RemoteRequest{Content: text, Title: title, Mode: string(mode)})
	if err != nil {
		return "", fmt.Errorf("failed to encode transformer request: %w", err)
	}

	resp, err := r.client.Post(ctx, r.endpoint, bytes.NewReader(payload))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		r.log("Transformer request failed", map[string]interface{}{
			"endpoint": r.endpoint,
			"error":    err.Error(),
		})
		return "", &coreerrors.ExternalAPIError{
			StatusCode: http.StatusServiceUnavailable,
			Message:    "transformer unavailable",
			API:        remoteAPIName,
			Cause:      err,
		}
	}
	defer resp.Body().Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body(), maxResponseBytes))
	if err != nil {
		return "", &coreerrors.ExternalAPIError{
			StatusCode: http.StatusBadGateway,
			Message:    "failed to read transformer response",
			API:        remoteAPIName,
			Cause:      err,
		}
	}

	var decoded RemoteResponse
	decodeErr := json.Unmarshal(body, &decoded)

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		message := http.StatusText(resp.StatusCode())
		if decodeErr == nil && decoded.Error != "" {
			message = decoded.Error
		}
		r.log("Transformer returned error status", map[string]interface{}{
			"endpoint": r.endpoint,
			"status":   resp.StatusCode(),
			"message":  message,
		})
		return "", &coreerrors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    message,
			API:        remoteAPIName,
		}
	}

	if decodeErr != nil {
		return "", &coreerrors.ExternalAPIError{
			StatusCode: http.StatusBadGateway,
			Message:    "invalid transformer response",
			API:        remoteAPIName,
			Cause:      decodeErr,
		}
	}

	if decoded.Error != "" {
		return "", &coreerrors.ExternalAPIError{
			StatusCode: http.StatusBadGateway,
			Message:    decoded.Error,
			API:        remoteAPIName,
		}
	}

	return decoded.Enhanced, nil
}

func (r *Remote) log(msg string, fields map[string]interface{}) {
	if r.logger != nil {
		r.logger.Warn(msg, fields)
	}
}
