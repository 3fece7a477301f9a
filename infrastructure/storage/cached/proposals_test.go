package cached

import (
	"context"
	"errors"
	"testing"
	"time"

	"commonplace-api/core/domain"
	"commonplace-api/core/interfaces"
	"commonplace-api/infrastructure/cache/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ interfaces.ProposalStorage = (*ProposalStorage)(nil)

func TestProposalStorage_RoundTrip(t *testing.T) {
	storage := NewProposalStorage(memory.NewMemoryCache())
	ctx := context.Background()

	p, err := domain.NewProposal("doc-1", domain.ModeExpand, "<p>Hi</p>\n<img src=\"a.jpg\">", time.Hour)
	require.NoError(t, err)
	p.Title = "Picnic"
	p.MediaCount = 1

	require.NoError(t, storage.Save(ctx, p))

	got, err := storage.Get(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, p.HTML, got.HTML)
	assert.Equal(t, domain.ModeExpand, got.Mode)
	assert.Equal(t, 1, got.MediaCount)
	require.NotNil(t, got.ExpiresAt)
	assert.WithinDuration(t, *p.ExpiresAt, *got.ExpiresAt, time.Second)
}

func TestProposalStorage_MissingReturnsNil(t *testing.T) {
	storage := NewProposalStorage(memory.NewMemoryCache())

	got, err := storage.Get(context.Background(), "nope")

	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestProposalStorage_Delete(t *testing.T) {
	storage := NewProposalStorage(memory.NewMemoryCache())
	ctx := context.Background()

	p, err := domain.NewProposal("doc-1", domain.ModePolish, "<p>x</p>", 0)
	require.NoError(t, err)
	require.NoError(t, storage.Save(ctx, p))

	require.NoError(t, storage.Delete(ctx, p.ID))

	got, err := storage.Get(ctx, p.ID)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestProposalStorage_ExpiredIsNotSaved(t *testing.T) {
	cache := memory.NewMemoryCache()
	storage := NewProposalStorage(cache)

	p, err := domain.NewProposal("doc-1", domain.ModePolish, "<p>x</p>", time.Hour)
	require.NoError(t, err)
	past := time.Now().Add(-time.Minute)
	p.ExpiresAt = &past

	require.NoError(t, storage.Save(context.Background(), p))
	assert.Equal(t, 0, cache.Len())
}

type failingCache struct{}

func (failingCache) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("connection reset")
}
func (failingCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return errors.New("connection reset")
}
func (failingCache) Delete(ctx context.Context, key string) error { return nil }

func TestProposalStorage_BackendErrors(t *testing.T) {
	storage := NewProposalStorage(failingCache{})

	_, err := storage.Get(context.Background(), "x")
	assert.Error(t, err)

	p, _ := domain.NewProposal("doc-1", domain.ModePolish, "", 0)
	assert.Error(t, storage.Save(context.Background(), p))
	assert.Error(t, storage.Save(context.Background(), nil))
}

func TestProposalStorage_CorruptEntry(t *testing.T) {
	cache := memory.NewMemoryCache()
	storage := NewProposalStorage(cache)
	require.NoError(t, cache.Set(context.Background(), "proposal:bad", []byte("{not json"), 0))

	_, err := storage.Get(context.Background(), "bad")
	assert.Error(t, err)
}
