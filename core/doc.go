// Package core contains the business logic for the Commonplace API.
// It is designed to be framework-agnostic and can be used independently
// of any web framework or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Pure domain models (blocks, media items, documents, proposals)
// - content: Extraction of text and media from HTML, and their reintegration
// - transformer: Text rewriting backends (remote HTTP service, Gemini, echo)
// - enhance: The enhancement pipeline and the per-document busy gate
// - proposal: Review step between enhancement and replacement
// - workers: Worker pool for batch enhancement
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (cache, HTTP, logger, transformer)
//
// # Design Principles
//
// The core package follows clean architecture principles:
// - No external framework dependencies
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
// - Domain models are free from persistence concerns
//
// # Usage Example
//
//	import (
//	    "commonplace-api/core/enhance"
//	    "commonplace-api/core/interfaces"
//	)
//
//	// Create dependencies
//	deps := interfaces.Dependencies{
//	    Cache:       myCache,       // implements interfaces.Cache
//	    Logger:      myLogger,      // implements interfaces.Logger
//	    Transformer: myTransformer, // implements interfaces.Transformer
//	}
//
//	// Create service
//	svc := enhance.NewEnhancementService(deps, proposals, enhance.DefaultOptions())
//
//	// Enhance a document
//	result, err := svc.Enhance(ctx, interfaces.EnhanceRequest{
//	    DocumentID: "note-42",
//	    HTML:       "<p>Some text</p><img src=\"a.png\">",
//	    Mode:       domain.ModePolish,
//	})
//
package core
