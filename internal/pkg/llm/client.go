// Package llm is the client for the external generative-language endpoints.
// Batch generation talks to a Gemini-style generateContent API; streaming chat
// talks to an OpenAI-style chat-completions API over server-sent events.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/planora/planora/internal/pkg/apperrors"
	"github.com/planora/planora/internal/pkg/logger"
)

const defaultTimeout = 90 * time.Second

// Config holds credentials and endpoint selection for the generation client.
type Config struct {
	APIKey         string
	BatchEndpoint  string // base URL of the generateContent API
	BatchModel     string
	StreamEndpoint string // full URL of the chat-completions API
	StreamModel    string
	Timeout        time.Duration // bound on batch calls; streaming is open-ended
}

// Client sends prompts to the generative-language endpoints.
type Client struct {
	cfg    Config
	batch  *http.Client
	stream *http.Client
}

// NewClient validates the configuration and builds a client. A missing key or
// endpoint aborts here, before any network call is made.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, apperrors.NewConfigurationError("generation API key is not set")
	}
	if cfg.BatchEndpoint == "" || cfg.BatchModel == "" {
		return nil, apperrors.NewConfigurationError("batch generation endpoint or model is not set")
	}
	if cfg.StreamEndpoint == "" || cfg.StreamModel == "" {
		return nil, apperrors.NewConfigurationError("streaming chat endpoint or model is not set")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		cfg:   cfg,
		batch: &http.Client{Timeout: timeout},
		// The streaming call is long-lived and read to completion; no
		// client-level timeout, the request context governs it.
		stream: &http.Client{},
	}, nil
}

// generateContent request/response shapes (Gemini REST API).

type generateRequest struct {
	Contents []generateContent `json:"contents"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generatePart struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []generatePart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate sends a single prompt in batch mode and returns the full generated
// text. Non-2xx statuses and empty content are both surfaced as upstream
// failures, never as an empty success.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode generation request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent", strings.TrimRight(c.cfg.BatchEndpoint, "/"), c.cfg.BatchModel)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.batch.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read generation response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn().Int("status", resp.StatusCode).Str("model", c.cfg.BatchModel).Msg("Generation endpoint returned non-success status")
		return "", apperrors.NewUpstreamError(resp.StatusCode, string(respBody))
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", apperrors.NewUpstreamError(resp.StatusCode, "malformed generation response: "+err.Error())
	}

	var text strings.Builder
	for _, cand := range parsed.Candidates {
		for _, part := range cand.Content.Parts {
			text.WriteString(part.Text)
		}
	}

	if strings.TrimSpace(text.String()) == "" {
		return "", apperrors.NewUpstreamError(resp.StatusCode, "generation response contained no text content")
	}

	return text.String(), nil
}
