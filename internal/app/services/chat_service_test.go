package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planora/planora/internal/app/models"
	"github.com/planora/planora/internal/pkg/apperrors"
	"github.com/planora/planora/internal/pkg/llm"
)

type stubStreamer struct {
	deltas  []string
	err     error
	started chan struct{}
	release chan struct{}

	mu       sync.Mutex
	received []llm.Message
}

func (s *stubStreamer) StreamChat(ctx context.Context, messages []llm.Message, onDelta func(string) error) error {
	s.mu.Lock()
	s.received = messages
	s.mu.Unlock()

	if s.started != nil {
		close(s.started)
	}
	if s.release != nil {
		<-s.release
	}

	for _, delta := range s.deltas {
		if err := onDelta(delta); err != nil {
			return err
		}
	}
	return s.err
}

func TestStreamReplyAppendsBothTurns(t *testing.T) {
	streamer := &stubStreamer{deltas: []string{"Hel", "lo"}}
	service := NewChatService(streamer)

	var got []string
	transcript, err := service.StreamReply(context.Background(), 1, nil, "hi", func(delta string) error {
		got = append(got, delta)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Hel", "lo"}, got)
	require.Len(t, transcript, 2)
	assert.Equal(t, models.ChatRoleUser, transcript[0].Role)
	assert.Equal(t, "hi", transcript[0].Content)
	assert.Equal(t, models.ChatRoleAssistant, transcript[1].Role)
	assert.Equal(t, "Hello", transcript[1].Content)
}

func TestStreamReplySendsFullHistory(t *testing.T) {
	streamer := &stubStreamer{deltas: []string{"ok"}}
	service := NewChatService(streamer)

	history := []models.ChatMessage{
		{Role: models.ChatRoleUser, Content: "first"},
		{Role: models.ChatRoleAssistant, Content: "answer"},
	}

	_, err := service.StreamReply(context.Background(), 1, history, "second", func(string) error { return nil })
	require.NoError(t, err)

	require.Len(t, streamer.received, 3)
	assert.Equal(t, "first", streamer.received[0].Content)
	assert.Equal(t, "answer", streamer.received[1].Content)
	assert.Equal(t, "second", streamer.received[2].Content)
}

func TestStreamReplyRejectsEmptyMessage(t *testing.T) {
	service := NewChatService(&stubStreamer{})

	_, err := service.StreamReply(context.Background(), 1, nil, "   ", func(string) error { return nil })
	assert.ErrorIs(t, err, apperrors.ErrEmptyMessage)
}

func TestStreamReplyRollsBackUserTurnOnFailure(t *testing.T) {
	streamer := &stubStreamer{deltas: []string{"par"}, err: errors.New("upstream broke")}
	service := NewChatService(streamer)

	history := []models.ChatMessage{{Role: models.ChatRoleUser, Content: "earlier"}}

	transcript, err := service.StreamReply(context.Background(), 1, history, "doomed", func(string) error { return nil })
	require.Error(t, err)

	// The failed turn must not appear in the returned transcript
	require.Len(t, transcript, 1)
	assert.Equal(t, "earlier", transcript[0].Content)
}

func TestStreamReplyRejectsConcurrentSend(t *testing.T) {
	streamer := &stubStreamer{
		deltas:  []string{"slow"},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	service := NewChatService(streamer)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := service.StreamReply(context.Background(), 1, nil, "first", func(string) error { return nil })
		assert.NoError(t, err)
	}()

	<-streamer.started
	_, err := service.StreamReply(context.Background(), 1, nil, "second", func(string) error { return nil })
	assert.ErrorIs(t, err, apperrors.ErrStreamAlreadyActive)

	close(streamer.release)
	<-done

	// Once the first stream finishes the user may send again
	streamer2 := &stubStreamer{deltas: []string{"ok"}}
	service2 := NewChatService(streamer2)
	_, err = service2.StreamReply(context.Background(), 1, nil, "third", func(string) error { return nil })
	assert.NoError(t, err)
}

func TestStreamReplyOtherUsersUnaffected(t *testing.T) {
	streamer := &stubStreamer{
		deltas:  []string{"a"},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	service := NewChatService(streamer)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = service.StreamReply(context.Background(), 1, nil, "busy", func(string) error { return nil })
	}()

	<-streamer.started

	// A different user's stream shares the streamer stub but not the lock;
	// the stub would block on release, so only check the admission decision.
	err := func() error {
		impl := service.(*chatServiceImpl)
		return impl.begin(2)
	}()
	assert.NoError(t, err)
	service.(*chatServiceImpl).end(2)

	close(streamer.release)
	<-done
}
