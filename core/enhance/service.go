// ABOUTME: Enhancement service runs the extract, transform and reintegrate pipeline
// ABOUTME: Guards each document with the busy gate and stores results as proposals

package enhance

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"commonplace-api/core/content"
	"commonplace-api/core/domain"
	coreerrors "commonplace-api/core/errors"
	"commonplace-api/core/interfaces"
	"commonplace-api/pkg/featureflags"
	htmlutil "commonplace-api/pkg/utils/html"
)

const resultKeyPrefix = "enhanced:"

// Options tunes the pipeline
type Options struct {
	// MaxContentBytes caps submitted HTML; zero disables the check
	MaxContentBytes int

	// CacheTTL is how long transformer output is reused
	CacheTTL time.Duration

	// ProposalTTL is how long a proposal waits for acceptance
	ProposalTTL time.Duration

	// Timeout bounds one transformer call; zero means no limit beyond the caller's context
	Timeout time.Duration

	// Flags overrides the manager found on the request context
	Flags featureflags.Manager
}

// DefaultOptions returns the options used when none are configured
func DefaultOptions() Options {
	return Options{
		MaxContentBytes: 512 * 1024,
		CacheTTL:        time.Hour,
		ProposalTTL:     24 * time.Hour,
		Timeout:         time.Minute,
	}
}

// EnhancementService implements interfaces.EnhancementService
type EnhancementService struct {
	deps      interfaces.Dependencies
	proposals interfaces.ProposalService
	gate      *Gate
	opts      Options
}

// NewEnhancementService creates a new enhancement service instance
func NewEnhancementService(deps interfaces.Dependencies, proposals interfaces.ProposalService, opts Options) *EnhancementService {
	if deps.Logger == nil {
		deps.Logger = nopLogger{}
	}
	return &EnhancementService{
		deps:      deps,
		proposals: proposals,
		gate:      NewGate(),
		opts:      opts,
	}
}

func (s *EnhancementService) enabled(ctx context.Context, flag featureflags.FeatureFlag) bool {
	if s.opts.Flags != nil {
		return s.opts.Flags.IsEnabled(ctx, flag)
	}
	return featureflags.IsEnabled(ctx, flag)
}

// Extract splits a document into text and positioned media
func (s *EnhancementService) Extract(ctx context.Context, markup string) (domain.ExtractedDocument, error) {
	if err := s.validateMarkup(markup); err != nil {
		return domain.ExtractedDocument{}, err
	}

	extracted, err := content.ExtractHTML(markup)
	if err != nil {
		return domain.ExtractedDocument{}, &coreerrors.ValidationError{Field: "html", Message: "document could not be parsed"}
	}

	s.deps.Logger.Debug("Extracted document", map[string]interface{}{
		"media":          len(extracted.Media),
		"text_blocks":    extracted.TextBlockCount,
		"blocks_dropped": extracted.Dropped,
	})
	return extracted, nil
}

// Reintegrate rebuilds a document from rewritten text and media
func (s *EnhancementService) Reintegrate(ctx context.Context, enhancedText string, media []domain.MediaItem) domain.Document {
	return content.Reintegrate(enhancedText, media)
}

// Render serialises a document to HTML plus an optional Markdown preview
func (s *EnhancementService) Render(ctx context.Context, doc domain.Document) (string, string, error) {
	markup := content.RenderHTML(doc)
	if !s.enabled(ctx, featureflags.MarkdownPreview) {
		return markup, "", nil
	}

	markdown, err := content.RenderMarkdown(markup)
	if err != nil {
		return "", "", fmt.Errorf("render markdown: %w", err)
	}
	return markup, markdown, nil
}

// Enhance runs the full pipeline for one document. The original document is
// never modified; the result is stored as a proposal awaiting acceptance.
func (s *EnhancementService) Enhance(ctx context.Context, req interfaces.EnhanceRequest) (*domain.EnhancementResult, error) {
	docID := strings.TrimSpace(req.DocumentID)
	if docID == "" {
		return nil, &coreerrors.ValidationError{Field: "document_id", Message: "document id cannot be empty"}
	}
	mode, err := domain.ParseEnhanceMode(string(req.Mode))
	if err != nil {
		return nil, &coreerrors.ValidationError{Field: "mode", Message: err.Error()}
	}

	extracted, err := s.Extract(ctx, req.HTML)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(extracted.TextOnly) == "" {
		return nil, &coreerrors.ValidationError{Field: "html", Message: "document has no text to enhance"}
	}

	var ticket *Ticket
	var runCtx context.Context
	if req.Replace {
		ticket, runCtx, err = s.gate.Supersede(ctx, docID)
	} else {
		ticket, runCtx, err = s.gate.Acquire(ctx, docID)
	}
	if err != nil {
		s.deps.Logger.Info("Enhancement rejected, document busy", map[string]interface{}{
			"document_id": docID,
		})
		return nil, err
	}

	s.deps.Logger.Info("Enhancement started", map[string]interface{}{
		"document_id": docID,
		"mode":        string(mode),
		"media":       len(extracted.Media),
		"replace":     req.Replace,
		"outstanding": s.gate.Outstanding(),
	})

	enhanced, cached, err := s.transform(runCtx, extracted.TextOnly, req.Title, mode)

	if !s.gate.Release(ticket) {
		s.deps.Logger.Info("Discarding abandoned enhancement result", map[string]interface{}{
			"document_id": docID,
		})
		return nil, &coreerrors.StaleResultError{ID: docID}
	}
	if err != nil {
		return nil, s.classifyTransformError(ctx, docID, err)
	}

	enhanced = htmlutil.NormalizeText(htmlutil.StripMarkup(enhanced))
	if enhanced == "" {
		return nil, &coreerrors.ExternalAPIError{
			StatusCode: http.StatusBadGateway,
			Message:    "transformer returned empty text",
			API:        "transformer",
		}
	}

	if !cached {
		s.storeResult(ctx, extracted.TextOnly, req.Title, mode, enhanced)
	}

	doc := s.Reintegrate(ctx, enhanced, extracted.Media)
	markup, markdown, err := s.Render(ctx, doc)
	if err != nil {
		return nil, err
	}

	proposal, err := domain.NewProposal(docID, mode, markup, s.opts.ProposalTTL)
	if err != nil {
		return nil, &coreerrors.ValidationError{Field: "proposal", Message: err.Error()}
	}
	proposal.Title = req.Title
	proposal.Markdown = markdown
	proposal.MediaCount = doc.MediaCount()

	if s.proposals != nil {
		if err := s.proposals.CreateProposal(ctx, proposal); err != nil {
			return nil, fmt.Errorf("store proposal: %w", err)
		}
	}

	s.deps.Logger.Info("Enhancement completed", map[string]interface{}{
		"document_id": docID,
		"proposal_id": proposal.ID,
		"paragraphs":  doc.ParagraphCount(),
		"media":       proposal.MediaCount,
		"cached":      cached,
	})

	return &domain.EnhancementResult{
		Proposal:     proposal,
		Extracted:    extracted,
		EnhancedText: enhanced,
		Cached:       cached,
	}, nil
}

// Cancel abandons the outstanding transformation for a document
func (s *EnhancementService) Cancel(documentID string) bool {
	documentID = strings.TrimSpace(documentID)
	cancelled := s.gate.Cancel(documentID)
	if cancelled {
		s.deps.Logger.Info("Enhancement cancelled", map[string]interface{}{
			"document_id": documentID,
		})
	}
	return cancelled
}

// Busy reports whether a document has a transformation outstanding
func (s *EnhancementService) Busy(documentID string) bool {
	return s.gate.Busy(strings.TrimSpace(documentID))
}

func (s *EnhancementService) validateMarkup(markup string) error {
	if strings.TrimSpace(markup) == "" {
		return &coreerrors.ValidationError{Field: "html", Message: "html cannot be empty"}
	}
	if s.opts.MaxContentBytes > 0 && len(markup) > s.opts.MaxContentBytes {
		return &coreerrors.ValidationError{
			Field:   "html",
			Message: fmt.Sprintf("html exceeds %d bytes", s.opts.MaxContentBytes),
		}
	}
	return nil
}

// transform returns the rewritten text, consulting the result cache first
func (s *EnhancementService) transform(ctx context.Context, text, title string, mode domain.EnhanceMode) (string, bool, error) {
	if s.deps.Cache != nil && s.enabled(ctx, featureflags.ResultCacheEnabled) {
		if data, err := s.deps.Cache.Get(ctx, ResultKey(text, title, mode)); err == nil && len(data) > 0 {
			return string(data), true, nil
		}
	}

	if s.deps.Transformer == nil {
		return "", false, &coreerrors.ExternalAPIError{
			StatusCode: http.StatusServiceUnavailable,
			Message:    "no transformer configured",
			API:        "transformer",
		}
	}

	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	out, err := s.deps.Transformer.Transform(ctx, text, title, mode)
	return out, false, err
}

func (s *EnhancementService) storeResult(ctx context.Context, text, title string, mode domain.EnhanceMode, enhanced string) {
	if s.deps.Cache == nil || !s.enabled(ctx, featureflags.ResultCacheEnabled) {
		return
	}
	if err := s.deps.Cache.Set(ctx, ResultKey(text, title, mode), []byte(enhanced), s.opts.CacheTTL); err != nil {
		s.deps.Logger.Warn("Failed to cache enhancement result", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// classifyTransformError maps a transformer failure to a domain error.
// The caller's own cancellation is passed through unchanged.
func (s *EnhancementService) classifyTransformError(ctx context.Context, docID string, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	s.deps.Logger.Error("Transformer failed", map[string]interface{}{
		"document_id": docID,
		"error":       err.Error(),
	})

	if coreerrors.IsExternalAPI(err) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &coreerrors.ExternalAPIError{
			StatusCode: http.StatusGatewayTimeout,
			Message:    "transformer timed out",
			API:        "transformer",
			Cause:      err,
		}
	}
	return &coreerrors.ExternalAPIError{
		StatusCode: http.StatusBadGateway,
		Message:    "transformer failed",
		API:        "transformer",
		Cause:      err,
	}
}

// ResultKey is the cache key for a transformer result
func ResultKey(text, title string, mode domain.EnhanceMode) string {
	sum := sha256.Sum256([]byte(string(mode) + "|" + title + "|" + text))
	return resultKeyPrefix + hex.EncodeToString(sum[:])
}

type nopLogger struct{}

func (nopLogger) Debug(msg string, fields map[string]interface{}) {}
func (nopLogger) Info(msg string, fields map[string]interface{})  {}
func (nopLogger) Warn(msg string, fields map[string]interface{})  {}
func (nopLogger) Error(msg string, fields map[string]interface{}) {}
