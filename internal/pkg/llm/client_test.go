package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planora/planora/internal/pkg/apperrors"
)

func testConfig(batchURL, streamURL string) Config {
	return Config{
		APIKey:         "test-key",
		BatchEndpoint:  batchURL,
		BatchModel:     "gemini-2.0-flash",
		StreamEndpoint: streamURL,
		StreamModel:    "gpt-4o-mini",
	}
}

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := NewClient(Config{BatchEndpoint: "x", BatchModel: "m", StreamEndpoint: "y", StreamModel: "n"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)

	_, err = NewClient(Config{APIKey: "k", StreamEndpoint: "y", StreamModel: "n"})
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
}

func TestGenerateReturnsCandidateText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "gemini-2.0-flash:generateContent")
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Hello "},{"text":"world"}]}}]}`))
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL, srv.URL))
	require.NoError(t, err)

	text, err := client.Generate(context.Background(), "say hello")
	require.NoError(t, err)
	assert.Equal(t, "Hello world", text)
}

func TestGenerateSurfacesUpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("overloaded"))
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL, srv.URL))
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)

	var upstream *apperrors.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusServiceUnavailable, upstream.Status)
	assert.Contains(t, upstream.Body, "overloaded")
}

func TestGenerateEmptyContentIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL, srv.URL))
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}
