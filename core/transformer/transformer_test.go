package transformer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"commonplace-api/core/domain"
	coreerrors "commonplace-api/core/errors"
	"commonplace-api/core/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockHTTPClient is a mock implementation of interfaces.HTTPClient
type mockHTTPClient struct {
	postFunc func(ctx context.Context, url string, body io.Reader) (interfaces.Response, error)
}

func (m *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	return nil, errors.New("not implemented")
}

func (m *mockHTTPClient) Post(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	return m.postFunc(ctx, url, body)
}

type mockResponse struct {
	status int
	body   string
}

func (r *mockResponse) StatusCode() int          { return r.status }
func (r *mockResponse) Body() io.ReadCloser      { return io.NopCloser(strings.NewReader(r.body)) }
func (r *mockResponse) Header(key string) string { return "" }

func respond(status int, body string) *mockHTTPClient {
	return &mockHTTPClient{
		postFunc: func(ctx context.Context, url string, b io.Reader) (interfaces.Response, error) {
			return &mockResponse{status: status, body: body}, nil
		},
	}
}

func TestNewRemote_Validation(t *testing.T) {
	_, err := NewRemote(nil, "http://x", nil)
	assert.Error(t, err)

	_, err = NewRemote(respond(200, "{}"), "  ", nil)
	assert.Error(t, err)

	r, err := NewRemote(respond(200, "{}"), "http://x", nil)
	require.NoError(t, err)
	assert.NotNil(t, r)
}

func TestRemote_Transform_SendsContract(t *testing.T) {
	var captured RemoteRequest
	var capturedURL string
	client := &mockHTTPClient{
		postFunc: func(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
			capturedURL = url
			require.NoError(t, json.NewDecoder(body).Decode(&captured))
			return &mockResponse{status: http.StatusOK, body: `{"enhanced":"Better text."}`}, nil
		},
	}
	r, err := NewRemote(client, "https://rewrite.example.com/enhance", nil)
	require.NoError(t, err)

	got, err := r.Transform(context.Background(), "Some text.", "Picnic", domain.ModeExpand)

	require.NoError(t, err)
	assert.Equal(t, "Better text.", got)
	assert.Equal(t, "https://rewrite.example.com/enhance", capturedURL)
	assert.Equal(t, RemoteRequest{Content: "Some text.", Title: "Picnic", Mode: "expand"}, captured)
}

func TestRemote_Transform_Errors(t *testing.T) {
	tests := []struct {
		name       string
		client     *mockHTTPClient
		wantStatus int
		wantMsg    string
	}{
		{
			name: "transport failure",
			client: &mockHTTPClient{postFunc: func(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
				return nil, errors.New("connection refused")
			}},
			wantStatus: http.StatusServiceUnavailable,
			wantMsg:    "transformer unavailable",
		},
		{
			name:       "error status with payload",
			client:     respond(http.StatusTooManyRequests, `{"error":"quota exceeded"}`),
			wantStatus: http.StatusTooManyRequests,
			wantMsg:    "quota exceeded",
		},
		{
			name:       "error status without payload",
			client:     respond(http.StatusInternalServerError, "oops"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Internal Server Error",
		},
		{
			name:       "invalid json",
			client:     respond(http.StatusOK, "not json"),
			wantStatus: http.StatusBadGateway,
			wantMsg:    "invalid transformer response",
		},
		{
			name:       "error payload on 200",
			client:     respond(http.StatusOK, `{"error":"model overloaded"}`),
			wantStatus: http.StatusBadGateway,
			wantMsg:    "model overloaded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRemote(tt.client, "http://x", nil)
			require.NoError(t, err)

			got, err := r.Transform(context.Background(), "text", "", domain.ModePolish)

			assert.Empty(t, got)
			var apiErr *coreerrors.ExternalAPIError
			require.True(t, errors.As(err, &apiErr), "expected ExternalAPIError, got %v", err)
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			assert.Equal(t, "transformer", apiErr.API)
		})
	}
}

func TestRemote_Transform_CancelledContext(t *testing.T) {
	client := &mockHTTPClient{postFunc: func(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
		return nil, ctx.Err()
	}}
	r, err := NewRemote(client, "http://x", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = r.Transform(ctx, "text", "", domain.ModePolish)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, coreerrors.IsExternalAPI(err))
}

func TestBuildPrompt(t *testing.T) {
	system, user, err := BuildPrompt("Body text.", " Bake sale ", domain.ModeSimplify)
	require.NoError(t, err)

	assert.Contains(t, system, "plain text only")
	assert.True(t, strings.HasPrefix(user, "Simplify the text"))
	assert.Contains(t, user, "Title: Bake sale\n\n")
	assert.True(t, strings.HasSuffix(user, "Text:\nBody text."))
}

func TestBuildPrompt_NoTitle(t *testing.T) {
	_, user, err := BuildPrompt("Body.", "", domain.ModePolish)
	require.NoError(t, err)

	assert.NotContains(t, user, "Title:")
}

func TestInstructions_EveryMode(t *testing.T) {
	for _, mode := range domain.Modes {
		instructions, err := Instructions(mode)
		assert.NoError(t, err)
		assert.NotEmpty(t, instructions)
	}

	_, err := Instructions("summarize")
	assert.Error(t, err)
}

func TestNewGemini_RequiresAPIKey(t *testing.T) {
	g, err := NewGemini(context.Background(), "", "")
	assert.Error(t, err)
	assert.Nil(t, g)
}

func TestEcho(t *testing.T) {
	got, err := Echo{}.Transform(context.Background(), "same", "t", domain.ModeExpand)
	require.NoError(t, err)
	assert.Equal(t, "same", got)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Echo{}.Transform(ctx, "same", "t", domain.ModeExpand)
	assert.ErrorIs(t, err, context.Canceled)
}

var _ interfaces.Transformer = (*Remote)(nil)
var _ interfaces.Transformer = (*Gemini)(nil)
var _ interfaces.Transformer = Echo{}
