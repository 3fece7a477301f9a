package commonplace

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"commonplace-api/core/domain"
	"commonplace-api/core/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const article = `<p>Intro</p><img src="A.png"><p>Middle</p><img src="B.png"><p>End</p>`

func upper() interfaces.Transformer {
	return interfaces.TransformerFunc(func(ctx context.Context, text, title string, mode domain.EnhanceMode) (string, error) {
		return strings.ToUpper(text), nil
	})
}

func TestNewClient_RequiresTransformer(t *testing.T) {
	_, err := NewClient()
	require.Error(t, err)

	var libErr *Error
	require.True(t, errors.As(err, &libErr))
	assert.Equal(t, ErrorTypeConfiguration, libErr.Type)
}

func TestNewClient_InvalidOptions(t *testing.T) {
	_, err := NewClient(WithEchoTransformer(), WithTimeout(-1))
	assert.Error(t, err)

	_, err = NewClient(WithEchoTransformer(), WithCacheOption(CacheOption{Type: "disk"}))
	assert.Error(t, err)

	_, err = NewClient(WithRemoteTransformer("", "", 0))
	assert.Error(t, err)
}

func TestClient_ExtractAndReintegrate(t *testing.T) {
	client, err := NewClient(WithEchoTransformer())
	require.NoError(t, err)
	defer client.Close()

	extracted, err := client.Extract(context.Background(), article)
	require.NoError(t, err)
	assert.Equal(t, "Intro\n\nMiddle\n\nEnd", extracted.TextOnly)
	require.Len(t, extracted.Media, 2)
	assert.Equal(t, 3, extracted.TextBlocks)

	rendered, err := client.Reintegrate(context.Background(), "One\n\nTwo\n\nThree", extracted.Media)
	require.NoError(t, err)
	assert.Equal(t, 3, rendered.Paragraphs)
	assert.Equal(t, 2, rendered.MediaCount)
	assert.Contains(t, rendered.HTML, "A.png")
	assert.Contains(t, rendered.HTML, "B.png")
	assert.NotEmpty(t, rendered.Markdown, "markdown preview is on by default")
}

func TestClient_Extract_Validation(t *testing.T) {
	client, err := NewClient(WithEchoTransformer())
	require.NoError(t, err)
	defer client.Close()

	_, err = client.Extract(context.Background(), "   ")
	assert.True(t, IsValidationError(err))
}

func TestClient_EnhanceAndAccept(t *testing.T) {
	client, err := NewClient(WithTransformer(upper()), WithMarkdownPreview(false))
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()
	p, err := client.Enhance(ctx, EnhanceInput{DocumentID: "doc-1", Title: "Notes", HTML: article})
	require.NoError(t, err)

	assert.Equal(t, ModePolish, p.Mode, "mode defaults to polish")
	assert.Equal(t, 2, p.MediaCount)
	assert.Contains(t, p.HTML, "INTRO")
	assert.Empty(t, p.Markdown)
	assert.False(t, p.Accepted)

	got, err := client.GetProposal(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.HTML, got.HTML)

	accepted, err := client.AcceptProposal(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, accepted.Accepted)

	require.NoError(t, client.DiscardProposal(ctx, p.ID))
	_, err = client.GetProposal(ctx, p.ID)
	assert.True(t, IsNotFoundError(err))
}

func TestClient_Enhance_BusyAndCancel(t *testing.T) {
	started := make(chan struct{})
	blocking := interfaces.TransformerFunc(func(ctx context.Context, text, title string, mode domain.EnhanceMode) (string, error) {
		close(started)
		<-ctx.Done()
		return "", ctx.Err()
	})

	client, err := NewClient(WithTransformer(blocking))
	require.NoError(t, err)
	defer client.Close()

	done := make(chan error, 1)
	go func() {
		_, err := client.Enhance(context.Background(), EnhanceInput{DocumentID: "doc-1", HTML: article})
		done <- err
	}()
	<-started

	assert.True(t, client.Busy("doc-1"))
	_, err = client.Enhance(context.Background(), EnhanceInput{DocumentID: "doc-1", HTML: article})
	assert.True(t, IsBusyError(err))

	assert.True(t, client.Cancel("doc-1"))
	assert.True(t, IsStaleError(<-done))
	assert.False(t, client.Busy("doc-1"))
}

func TestClient_Enhance_TransformerError(t *testing.T) {
	failing := interfaces.TransformerFunc(func(ctx context.Context, text, title string, mode domain.EnhanceMode) (string, error) {
		return "", errors.New("model offline")
	})
	client, err := NewClient(WithTransformer(failing))
	require.NoError(t, err)
	defer client.Close()

	_, err = client.Enhance(context.Background(), EnhanceInput{DocumentID: "doc-1", HTML: article})
	assert.True(t, IsTransformerError(err))
}

func TestClient_EnhanceBatch(t *testing.T) {
	client, err := NewClient(WithTransformer(upper()), WithBackgroundProcessing(true))
	require.NoError(t, err)
	defer client.Close()

	results, err := client.EnhanceBatch(context.Background(), []EnhanceInput{
		{DocumentID: "doc-1", HTML: article},
		{DocumentID: "doc-2", HTML: ""},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.NoError(t, results[0].Err)
	require.NotNil(t, results[0].Proposal)
	assert.Equal(t, "doc-1", results[0].Proposal.DocumentID)

	assert.True(t, IsValidationError(results[1].Err))
	assert.Nil(t, results[1].Proposal)
}

func TestClient_EnhanceBatch_RequiresBackgroundProcessing(t *testing.T) {
	client, err := NewClient(WithEchoTransformer())
	require.NoError(t, err)
	defer client.Close()

	_, err = client.EnhanceBatch(context.Background(), []EnhanceInput{{DocumentID: "d", HTML: article}})
	assert.Equal(t, ErrNoBackgroundProcessing, err)
}

func TestClient_Close(t *testing.T) {
	client, err := NewClient(
		WithEchoTransformer(),
		WithBackgroundProcessing(true),
		WithCacheOption(CacheOption{Type: CacheTypeSQLite, FilePath: filepath.Join(t.TempDir(), "c.db")}),
	)
	require.NoError(t, err)

	require.NoError(t, client.Close())
	require.NoError(t, client.Close(), "close is idempotent")

	_, err = client.Enhance(context.Background(), EnhanceInput{DocumentID: "d", HTML: article})
	assert.Equal(t, ErrClientClosed, err)
}

func TestWrapError(t *testing.T) {
	assert.Nil(t, wrapError(nil))

	err := wrapError(context.Canceled)
	assert.True(t, isType(err, ErrorTypeCancelled))
	assert.ErrorIs(t, err, context.Canceled)

	err = wrapError(errors.New("boom"))
	assert.True(t, isType(err, ErrorTypeInternal))

	assert.Same(t, ErrClientClosed, wrapError(ErrClientClosed))
}
