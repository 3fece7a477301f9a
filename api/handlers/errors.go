// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to appropriate HTTP responses

package handlers

import (
	"context"
	stderrors "errors"

	"commonplace-api/core/errors"
	"github.com/danielgtaylor/huma/v2"
)

// statusClientClosedRequest is reported when the caller went away mid-request
const statusClientClosedRequest = 499

// toHumaError converts domain errors to appropriate Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.IsNotFound(err):
		return huma.Error404NotFound(err.Error())
	case errors.IsValidation(err):
		return huma.Error400BadRequest(err.Error())
	case errors.IsConflict(err):
		return huma.Error409Conflict(err.Error())
	case errors.IsStaleResult(err):
		return huma.Error409Conflict(err.Error())
	}

	var apiErr *errors.ExternalAPIError
	if stderrors.As(err, &apiErr) {
		// Map external API status codes to our API status codes
		switch {
		case apiErr.StatusCode == 502:
			return huma.Error502BadGateway(apiErr.Message, err)
		case apiErr.StatusCode == 504:
			return huma.Error504GatewayTimeout(apiErr.Message, err)
		case apiErr.StatusCode >= 500:
			return huma.Error503ServiceUnavailable("External service error", err)
		case apiErr.StatusCode == 429:
			return huma.Error429TooManyRequests("Rate limited by external service")
		case apiErr.StatusCode >= 400:
			return huma.Error400BadRequest("External service request error", err)
		default:
			return huma.Error500InternalServerError("Unexpected external service response", err)
		}
	}

	if stderrors.Is(err, context.Canceled) {
		return huma.NewError(statusClientClosedRequest, "Request cancelled")
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return huma.Error504GatewayTimeout("Request timed out")
	}

	// Default to internal server error for unknown errors
	return huma.Error500InternalServerError("Internal server error", err)
}
