package services

import (
	"context"
	"strings"
	"sync"

	"github.com/planora/planora/internal/app/models"
	"github.com/planora/planora/internal/pkg/apperrors"
	"github.com/planora/planora/internal/pkg/llm"
	"github.com/planora/planora/internal/pkg/logger"
)

// ChatStreamer relays a transcript to the model and emits content deltas
type ChatStreamer interface {
	StreamChat(ctx context.Context, messages []llm.Message, onDelta func(string) error) error
}

// streamState is the lifecycle of one in-flight chat turn
type streamState int

const (
	stateIdle streamState = iota
	stateSending
	stateStreaming
	stateErrored
)

// ChatService drives assistant conversations. Transcripts are transient;
// the client resends the full history with every turn, and the service
// holds no per-session storage. One stream per user may be in flight.
type ChatService interface {
	StreamReply(ctx context.Context, userID int64, history []models.ChatMessage, message string, onDelta func(string) error) ([]models.ChatMessage, error)
}

type chatServiceImpl struct {
	streamer ChatStreamer

	mu     sync.Mutex
	active map[int64]streamState
}

// NewChatService creates a new ChatService
func NewChatService(streamer ChatStreamer) ChatService {
	return &chatServiceImpl{
		streamer: streamer,
		active:   make(map[int64]streamState),
	}
}

// StreamReply appends the user message to the transcript, streams the
// assistant reply delta by delta, and returns the updated transcript.
// On failure the submitted user turn is rolled back so the caller's
// transcript is unchanged.
func (s *chatServiceImpl) StreamReply(
	ctx context.Context,
	userID int64,
	history []models.ChatMessage,
	message string,
	onDelta func(string) error,
) ([]models.ChatMessage, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return history, apperrors.ErrEmptyMessage
	}

	if err := s.begin(userID); err != nil {
		return history, err
	}
	defer s.end(userID)

	transcript := make([]models.ChatMessage, 0, len(history)+2)
	transcript = append(transcript, history...)
	transcript = append(transcript, models.ChatMessage{Role: models.ChatRoleUser, Content: message})

	outbound := make([]llm.Message, 0, len(transcript))
	for _, turn := range transcript {
		outbound = append(outbound, llm.Message{Role: string(turn.Role), Content: turn.Content})
	}

	var reply strings.Builder
	err := s.streamer.StreamChat(ctx, outbound, func(delta string) error {
		if reply.Len() == 0 {
			s.setState(userID, stateStreaming)
		}
		reply.WriteString(delta)
		return onDelta(delta)
	})
	if err != nil {
		s.setState(userID, stateErrored)
		logger.Warn().Err(err).Int64("userId", userID).Msg("Chat stream failed")
		// The failed turn is not part of the conversation
		return history, err
	}

	if reply.Len() > 0 {
		transcript = append(transcript, models.ChatMessage{
			Role:    models.ChatRoleAssistant,
			Content: reply.String(),
		})
	}

	return transcript, nil
}

// begin transitions a user's stream from idle to sending
func (s *chatServiceImpl) begin(userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state, ok := s.active[userID]; ok && (state == stateSending || state == stateStreaming) {
		return apperrors.ErrStreamAlreadyActive
	}
	s.active[userID] = stateSending
	return nil
}

func (s *chatServiceImpl) setState(userID int64, state streamState) {
	s.mu.Lock()
	s.active[userID] = state
	s.mu.Unlock()
}

// end returns a user's stream to idle regardless of outcome
func (s *chatServiceImpl) end(userID int64) {
	s.mu.Lock()
	delete(s.active, userID)
	s.mu.Unlock()
}
