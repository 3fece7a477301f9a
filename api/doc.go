// Package api provides the HTTP API layer for the Commonplace application.
// It uses the Huma framework to provide automatic OpenAPI documentation,
// request/response validation, and a clean handler interface.
//
// # Architecture
//
// The API package is structured as follows:
//
// - server.go: Huma API configuration and setup
// - handlers/: HTTP request handlers
// - dto/: Data Transfer Objects for requests and responses
// - middleware/: HTTP middleware for cross-cutting concerns
//
// # Key Features
//
// 1. Automatic OpenAPI Generation
//
// The API automatically generates OpenAPI 3.0 documentation:
// - OpenAPI JSON available at /openapi.json
// - Interactive Swagger UI at /docs
//
// 2. Request/Response Validation
//
// Huma provides automatic validation based on struct tags:
//
//	type EnhanceRequest struct {
//	    DocumentID string `json:"document_id" minLength:"1" maxLength:"255"`
//	    HTML       string `json:"html" minLength:"1"`
//	    Mode       string `json:"mode,omitempty" enum:"polish,expand,simplify" default:"polish"`
//	}
//
// 3. Middleware Support
//
// The API includes middleware for:
// - Request logging with unique request IDs
// - Feature flags attached to each request context
// - Rate limiting per IP address
// - CORS handling
//
// # Usage Example
//
//	// Create API with middleware
//	server := api.NewServer(api.APIConfig{
//	    Logger:     logger,
//	    Flags:      flags,
//	    RateLimit:  100,
//	    RateWindow: time.Minute,
//	})
//	defer server.Close()
//
//	// Register handlers
//	handlers.NewEnhanceHandler(enhanceService, worker, flags).RegisterRoutes(server.API)
//
//	// Start server
//	http.ListenAndServe(":8080", server.Router)
//
// # Error Handling
//
// The API uses a consistent error format based on RFC 7807:
//
//	{
//	    "status": 400,
//	    "title": "Bad Request",
//	    "detail": "validation error on field 'html': html cannot be empty",
//	    "instance": "/enhance"
//	}
//
// Domain errors are automatically mapped to appropriate HTTP status codes.
// A busy document or an abandoned enhancement yields 409; transformer
// failures yield 502 and transformer timeouts 504.
//
package api