// ABOUTME: Proposal storage persisted through any Cache backend
// ABOUTME: Proposals are JSON encoded and expire with the cache entry

package cached

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"commonplace-api/core/domain"
	"commonplace-api/core/interfaces"
)

const proposalKeyPrefix = "proposal:"

// ProposalStorage implements interfaces.ProposalStorage on top of a Cache
type ProposalStorage struct {
	cache interfaces.Cache
}

// NewProposalStorage creates a storage backed by cache
func NewProposalStorage(cache interfaces.Cache) *ProposalStorage {
	return &ProposalStorage{cache: cache}
}

func proposalKey(id string) string {
	return proposalKeyPrefix + id
}

// Save persists a proposal until its expiry time
func (s *ProposalStorage) Save(ctx context.Context, p *domain.Proposal) error {
	if p == nil {
		return errors.New("proposal cannot be nil")
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode proposal: %w", err)
	}

	var ttl time.Duration
	if p.ExpiresAt != nil {
		ttl = time.Until(*p.ExpiresAt)
		if ttl <= 0 {
			return nil
		}
	}

	return s.cache.Set(ctx, proposalKey(p.ID), data, ttl)
}

// Get retrieves a proposal; returns nil, nil when it does not exist
func (s *ProposalStorage) Get(ctx context.Context, id string) (*domain.Proposal, error) {
	data, err := s.cache.Get(ctx, proposalKey(id))
	if err != nil {
		if errors.Is(err, interfaces.ErrCacheMiss) {
			return nil, nil
		}
		return nil, err
	}

	var p domain.Proposal
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode proposal: %w", err)
	}
	return &p, nil
}

// Delete removes a proposal
func (s *ProposalStorage) Delete(ctx context.Context, id string) error {
	return s.cache.Delete(ctx, proposalKey(id))
}
