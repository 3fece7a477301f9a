// ABOUTME: Main client for the Commonplace library providing media-preserving enhancement
// ABOUTME: Offers a clean API for using core functionality without HTTP dependencies

package commonplace

import (
	"context"
	"sync"

	"commonplace-api/core/domain"
	"commonplace-api/core/enhance"
	"commonplace-api/core/interfaces"
	"commonplace-api/core/proposal"
	"commonplace-api/core/workers"
	"commonplace-api/infrastructure/storage/cached"
	"commonplace-api/pkg/featureflags"
)

// Client is the main entry point for the Commonplace library
type Client struct {
	enhanceService  *enhance.EnhancementService
	proposalService *proposal.ProposalService

	// Worker for batch processing
	worker *workers.EnhancementWorker

	config Config

	mu     sync.Mutex
	closed bool
}

// Config holds the configuration for the client
type Config struct {
	// Cache stores transformer results and, by default, proposals
	Cache interfaces.Cache

	// Logger configuration
	Logger interfaces.Logger

	// Transformer rewrites plain text; required
	Transformer interfaces.Transformer

	// ProposalStorage overrides the cache-backed proposal store
	ProposalStorage interfaces.ProposalStorage

	// Enhance tunes the pipeline
	Enhance enhance.Options

	// Flags toggles optional pipeline features
	Flags featureflags.Manager

	// Worker configuration
	WorkerConfig workers.WorkerConfig

	// EnableBackgroundProcessing starts the worker pool used by EnhanceBatch
	EnableBackgroundProcessing bool

	closers []func() error
}

// NewClient creates a new Commonplace client with the given options
func NewClient(options ...Option) (*Client, error) {
	config := defaultConfig()

	for _, opt := range options {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	deps := interfaces.Dependencies{
		Cache:       config.Cache,
		Logger:      config.Logger,
		Transformer: config.Transformer,
	}

	storage := config.ProposalStorage
	if storage == nil {
		storage = cached.NewProposalStorage(config.Cache)
	}

	opts := config.Enhance
	opts.Flags = config.Flags

	proposalService := proposal.NewProposalService(storage, config.Logger)
	client := &Client{
		proposalService: proposalService,
		enhanceService:  enhance.NewEnhancementService(deps, proposalService, opts),
		config:          config,
	}

	if config.EnableBackgroundProcessing {
		client.worker = workers.NewEnhancementWorker(client.enhanceService, config.Logger, config.WorkerConfig)
		if err := client.worker.Start(); err != nil {
			return nil, wrapError(err)
		}
	}

	return client, nil
}

// Close gracefully shuts down the client
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	var firstErr error
	if c.worker != nil {
		firstErr = c.worker.Stop()
	}
	for _, closeFn := range c.config.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (c *Client) checkOpen() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClientClosed
	}
	return nil
}

// Extract splits a document into the text a transformer sees and its media
func (c *Client) Extract(ctx context.Context, html string) (*Extracted, error) {
	extracted, err := c.enhanceService.Extract(ctx, html)
	if err != nil {
		return nil, wrapError(err)
	}

	return &Extracted{
		TextOnly:   extracted.TextOnly,
		Media:      mediaFromDomain(extracted.Media),
		TextBlocks: extracted.TextBlockCount,
		Dropped:    extracted.Dropped,
	}, nil
}

// Reintegrate places media back into rewritten text and renders the result
func (c *Client) Reintegrate(ctx context.Context, enhancedText string, media []Media) (*Rendered, error) {
	doc := c.enhanceService.Reintegrate(ctx, enhancedText, mediaToDomain(media))

	html, markdown, err := c.enhanceService.Render(ctx, doc)
	if err != nil {
		return nil, wrapError(err)
	}

	return &Rendered{
		HTML:       html,
		Markdown:   markdown,
		Paragraphs: doc.ParagraphCount(),
		MediaCount: doc.MediaCount(),
	}, nil
}

// Enhance rewrites a document and returns a proposal awaiting acceptance
func (c *Client) Enhance(ctx context.Context, input EnhanceInput) (*Proposal, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	result, err := c.enhanceService.Enhance(ctx, toRequest(input))
	if err != nil {
		return nil, wrapError(err)
	}
	return proposalFromDomain(result.Proposal), nil
}

// EnhanceBatch enhances several documents on the worker pool. Each result
// carries its own error; the returned error reports only pool failures.
func (c *Client) EnhanceBatch(ctx context.Context, inputs []EnhanceInput) ([]BatchResult, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	if c.worker == nil {
		return nil, ErrNoBackgroundProcessing
	}

	reqs := make([]interfaces.EnhanceRequest, len(inputs))
	for i, in := range inputs {
		reqs[i] = toRequest(in)
	}

	jobResults, err := c.worker.EnhanceBatch(ctx, reqs)
	if err != nil {
		return nil, wrapError(err)
	}

	results := make([]BatchResult, len(jobResults))
	for i, jr := range jobResults {
		results[i] = BatchResult{DocumentID: jr.DocumentID, Err: wrapError(jr.Err)}
		if jr.Result != nil {
			results[i].Proposal = proposalFromDomain(jr.Result.Proposal)
		}
	}
	return results, nil
}

// Cancel abandons the enhancement in progress for a document
func (c *Client) Cancel(documentID string) bool {
	return c.enhanceService.Cancel(documentID)
}

// Busy reports whether a document has an enhancement in progress
func (c *Client) Busy(documentID string) bool {
	return c.enhanceService.Busy(documentID)
}

// GetProposal retrieves a proposal by ID
func (c *Client) GetProposal(ctx context.Context, id string) (*Proposal, error) {
	p, err := c.proposalService.GetProposal(ctx, id)
	if err != nil {
		return nil, wrapError(err)
	}
	return proposalFromDomain(p), nil
}

// AcceptProposal marks a proposal accepted and returns it
func (c *Client) AcceptProposal(ctx context.Context, id string) (*Proposal, error) {
	p, err := c.proposalService.AcceptProposal(ctx, id)
	if err != nil {
		return nil, wrapError(err)
	}
	return proposalFromDomain(p), nil
}

// DiscardProposal deletes a proposal
func (c *Client) DiscardProposal(ctx context.Context, id string) error {
	return wrapError(c.proposalService.DiscardProposal(ctx, id))
}

func toRequest(in EnhanceInput) interfaces.EnhanceRequest {
	mode := in.Mode
	if mode == "" {
		mode = ModePolish
	}
	return interfaces.EnhanceRequest{
		DocumentID: in.DocumentID,
		Title:      in.Title,
		HTML:       in.HTML,
		Mode:       domain.EnhanceMode(mode),
		Replace:    in.Replace,
	}
}

// validateConfig validates the client configuration
func validateConfig(config *Config) error {
	if config.Transformer == nil {
		return NewError(ErrorTypeConfiguration, "transformer is required")
	}

	if config.Cache == nil {
		return NewError(ErrorTypeConfiguration, "cache is required")
	}

	if config.Logger == nil {
		return NewError(ErrorTypeConfiguration, "logger is required")
	}

	if config.Flags == nil {
		return NewError(ErrorTypeConfiguration, "feature flags are required")
	}

	return nil
}
