package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planora/planora/internal/pkg/apperrors"
)

func collectDeltas(t *testing.T, frames ...string) string {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher, ok := w.(http.Flusher)
		require.True(t, ok)
		for _, frame := range frames {
			_, _ = w.Write([]byte(frame))
			flusher.Flush()
		}
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL, srv.URL))
	require.NoError(t, err)

	var got strings.Builder
	err = client.StreamChat(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}, func(delta string) error {
		got.WriteString(delta)
		return nil
	})
	require.NoError(t, err)
	return got.String()
}

func TestStreamChatAssemblesDeltas(t *testing.T) {
	got := collectDeltas(t,
		"data: {\"choices\":[{\"delta\":{\"content\":\"Hel\"}}]}\n\n",
		"data: {\"choices\":[{\"delta\":{\"content\":\"lo\"}}]}\n\n",
		"data: [DONE]\n\n",
	)
	assert.Equal(t, "Hello", got)
}

func TestStreamChatIgnoresCommentsAndUnknownLines(t *testing.T) {
	got := collectDeltas(t,
		": keep-alive\n",
		"event: message\n",
		"data: {\"choices\":[{\"delta\":{\"content\":\"ok\"}}]}\n",
		"\n",
		"data: [DONE]\n",
	)
	assert.Equal(t, "ok", got)
}

func TestStreamChatRebuffersFrameSplitMidLine(t *testing.T) {
	// One data line whose JSON arrives in two pieces separated by a newline.
	got := collectDeltas(t,
		"data: {\"choices\":[{\"delta\":{\"cont\n",
		"ent\":\"patched\"}}]}\n",
		"data: [DONE]\n",
	)
	assert.Equal(t, "patched", got)
}

func TestStreamChatMultiByteRuneSplitAcrossChunks(t *testing.T) {
	// "é" is 0xC3 0xA9; split the frame between the two bytes.
	payload := "data: {\"choices\":[{\"delta\":{\"content\":\"café\"}}]}\n"
	raw := []byte(payload)
	cut := strings.Index(payload, "caf") + 4 // inside the two-byte rune

	got := collectDeltas(t, string(raw[:cut]), string(raw[cut:]), "data: [DONE]\n")
	assert.Equal(t, "café", got)
}

func TestStreamChatEndsOnBodyCloseWithoutSentinel(t *testing.T) {
	got := collectDeltas(t, "data: {\"choices\":[{\"delta\":{\"content\":\"partial\"}}]}\n")
	assert.Equal(t, "partial", got)
}

func TestStreamChatDistinguishesRateLimitAndPayment(t *testing.T) {
	for status, sentinel := range map[int]error{
		http.StatusTooManyRequests: apperrors.ErrRateLimited,
		http.StatusPaymentRequired: apperrors.ErrPaymentRequired,
	} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte("denied"))
		}))

		client, err := NewClient(testConfig(srv.URL, srv.URL))
		require.NoError(t, err)

		err = client.StreamChat(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}, func(string) error { return nil })
		require.Error(t, err)
		assert.ErrorIs(t, err, sentinel)

		var upstream *apperrors.UpstreamError
		require.ErrorAs(t, err, &upstream)
		assert.Equal(t, status, upstream.Status)

		srv.Close()
	}
}
