package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/planora/planora/internal/pkg/apperrors"
	"github.com/planora/planora/internal/pkg/logger"
)

// doneSentinel terminates an event stream early.
const doneSentinel = "[DONE]"

// Message is one turn of a chat conversation. The full transcript is resent
// with every request; no server-side session state exists.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chat message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type chatChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// StreamChat relays a conversation to the chat-completions endpoint and feeds
// decoded content deltas to onDelta as they arrive. The response body is read
// incrementally; it is never buffered whole. The stream ends on the [DONE]
// sentinel or on body close. A non-nil error from onDelta aborts the stream.
func (c *Client) StreamChat(ctx context.Context, messages []Message, onDelta func(string) error) error {
	body, err := json.Marshal(chatRequest{
		Model:    c.cfg.StreamModel,
		Messages: messages,
		Stream:   true,
	})
	if err != nil {
		return fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.StreamEndpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.stream.Do(req)
	if err != nil {
		return fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		logger.Warn().Int("status", resp.StatusCode).Msg("Chat endpoint returned non-success status")
		return apperrors.NewUpstreamError(resp.StatusCode, string(errBody))
	}

	return decodeEventStream(resp.Body, onDelta)
}

// decodeEventStream incrementally decodes server-sent-event frames into
// content deltas. Raw bytes are accumulated and only split on newline
// boundaries, so a multi-byte UTF-8 character split across read chunks is
// reassembled before the line is decoded. A data line whose JSON payload does
// not parse is re-buffered and joined with the next line, which covers frames
// the transport split mid-line.
func decodeEventStream(body io.Reader, onDelta func(string) error) error {
	var pending []byte // bytes read but not yet terminated by a newline
	var carry string   // data line that failed to parse, awaiting its tail
	chunk := make([]byte, 4096)

	for {
		n, readErr := body.Read(chunk)
		if n > 0 {
			pending = append(pending, chunk[:n]...)

			for {
				idx := bytes.IndexByte(pending, '\n')
				if idx < 0 {
					break
				}
				line := string(pending[:idx])
				pending = pending[idx+1:]

				done, err := processEventLine(line, &carry, onDelta)
				if err != nil {
					return err
				}
				if done {
					return nil
				}
			}
		}

		if readErr != nil {
			if readErr == io.EOF {
				// Body close ends the stream like the sentinel does.
				return nil
			}
			return fmt.Errorf("reading event stream: %w", readErr)
		}
	}
}

// processEventLine handles one newline-terminated line of the event stream.
// It reports done=true when the termination sentinel was seen.
func processEventLine(line string, carry *string, onDelta func(string) error) (bool, error) {
	line = strings.TrimRight(line, "\r")

	if *carry != "" {
		line = *carry + line
		*carry = ""
	}

	// Blank keep-alives and comment lines are ignored.
	if strings.TrimSpace(line) == "" || strings.HasPrefix(line, ":") {
		return false, nil
	}
	if !strings.HasPrefix(line, "data:") {
		return false, nil
	}

	payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
	if payload == doneSentinel {
		return true, nil
	}

	var chunk chatChunk
	if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
		// The frame was likely split mid-line by the transport; keep the
		// fragment and wait for the rest.
		*carry = line
		return false, nil
	}

	for _, choice := range chunk.Choices {
		if choice.Delta.Content == "" {
			continue
		}
		if err := onDelta(choice.Delta.Content); err != nil {
			return false, err
		}
	}
	return false, nil
}
