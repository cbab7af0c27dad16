package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planora/planora/internal/app/models"
	"github.com/planora/planora/internal/pkg/apperrors"
)

type stubSource struct {
	file *models.File
	data []byte
	err  error
}

func (s *stubSource) GetFile(ctx context.Context, fileID, userID int64) (*models.File, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.file, nil
}

func (s *stubSource) ReadContent(ctx context.Context, file *models.File) ([]byte, error) {
	return s.data, nil
}

type stubGenerator struct {
	output string
	err    error
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.output, nil
}

type recordingWriter struct {
	mu         sync.Mutex
	flashcards []ParsedFlashcard
	questions  []ParsedQuizQuestion
	summary    string
	calls      int
}

func (w *recordingWriter) WriteFlashcards(ctx context.Context, userID, fileID int64, cards []ParsedFlashcard) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.flashcards = cards
	w.calls++
	return nil
}

func (w *recordingWriter) WriteQuiz(ctx context.Context, userID, fileID int64, title string, questions []ParsedQuizQuestion) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.questions = questions
	w.calls++
	return nil
}

func (w *recordingWriter) WriteSummary(ctx context.Context, userID, fileID int64, variant models.SummaryType, content string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.summary = content
	w.calls++
	return nil
}

func (w *recordingWriter) callCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.calls
}

type passthroughExtractor struct{}

func (passthroughExtractor) Extract(data []byte, mimeType, fileName string) (string, error) {
	return string(data), nil
}

func newTestService(generator TextGenerator, writer ArtifactWriter) (GenerationService, *GenerationTracker) {
	tracker := NewGenerationTracker()
	source := &stubSource{
		file: &models.File{ID: 7, UserID: 1, FileName: "notes.txt", MimeType: "text/plain"},
		data: []byte("lecture content"),
	}
	service := NewGenerationService(
		source,
		passthroughExtractor{},
		NewPromptBuilder(DefaultPromptBudgets()),
		generator,
		NewResponseParser(),
		writer,
		tracker,
		time.Second,
	)
	return service, tracker
}

func waitForStatus(t *testing.T, service GenerationService, id uuid.UUID, userID int64, want models.GenerationStatus) *models.GenerationRequest {
	t.Helper()

	var request *models.GenerationRequest
	require.Eventually(t, func() bool {
		got, err := service.GetRequest(id, userID)
		if err != nil {
			return false
		}
		request = got
		return got.Status == want
	}, 2*time.Second, 10*time.Millisecond)
	return request
}

func TestGenerateFlashcardsEndToEnd(t *testing.T) {
	writer := &recordingWriter{}
	generator := &stubGenerator{output: "```json\n[" +
		`{"question":"Q1","answer":"A1","difficulty_level":"easy"},` +
		`{"question":"Q2","answer":"A2","difficulty_level":"medium"},` +
		`{"question":"Q3","answer":"A3","difficulty_level":"hard"},` +
		`{"question":"Q4","answer":"A4","difficulty_level":"easy"},` +
		`{"question":"Q5","answer":"A5","difficulty_level":"medium"}` +
		"]\n```"}

	service, _ := newTestService(generator, writer)

	request, err := service.GenerateFlashcards(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, models.GenerationPending, request.Status)

	final := waitForStatus(t, service, request.ID, 1, models.GenerationCompleted)
	assert.NotNil(t, final.FinishedAt)
	assert.Len(t, writer.flashcards, 5)
	assert.Equal(t, "easy", writer.flashcards[0].DifficultyLevel)
}

func TestGenerateFlashcardsParseFailureNeverWrites(t *testing.T) {
	writer := &recordingWriter{}
	generator := &stubGenerator{output: "Sorry, I cannot help with that."}

	service, _ := newTestService(generator, writer)

	request, err := service.GenerateFlashcards(context.Background(), 1, 7)
	require.NoError(t, err)

	final := waitForStatus(t, service, request.ID, 1, models.GenerationFailed)
	assert.NotEmpty(t, final.Error)
	assert.Zero(t, writer.callCount())
}

func TestGenerateQuizWritesValidatedQuestions(t *testing.T) {
	writer := &recordingWriter{}
	generator := &stubGenerator{output: `[
		{"question":"2+2?","options":{"A":"3","B":"4","C":"5","D":"6"},"correct_answer":"B","explanation":"math"},
		{"question":"bad","options":{"A":"x"},"correct_answer":"Z","explanation":""}
	]`}

	service, _ := newTestService(generator, writer)

	request, err := service.GenerateQuiz(context.Background(), 1, 7)
	require.NoError(t, err)

	waitForStatus(t, service, request.ID, 1, models.GenerationCompleted)
	require.Len(t, writer.questions, 1)
	assert.Equal(t, "B", writer.questions[0].CorrectAnswer)
}

func TestGenerateSummaryDefaultsToConcise(t *testing.T) {
	writer := &recordingWriter{}
	generator := &stubGenerator{output: "A short summary of the material."}

	service, _ := newTestService(generator, writer)

	request, err := service.GenerateSummary(context.Background(), 1, 7, "")
	require.NoError(t, err)

	waitForStatus(t, service, request.ID, 1, models.GenerationCompleted)
	assert.Equal(t, "A short summary of the material.", writer.summary)
}

func TestGenerateSummaryRejectsUnknownVariant(t *testing.T) {
	service, _ := newTestService(&stubGenerator{}, &recordingWriter{})

	_, err := service.GenerateSummary(context.Background(), 1, 7, "haiku")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestGenerateRequiresOwnedFile(t *testing.T) {
	tracker := NewGenerationTracker()
	source := &stubSource{err: apperrors.ErrFileNotFound}
	service := NewGenerationService(
		source, passthroughExtractor{}, NewPromptBuilder(DefaultPromptBudgets()),
		&stubGenerator{}, NewResponseParser(), &recordingWriter{}, tracker, time.Second,
	)

	_, err := service.GenerateFlashcards(context.Background(), 1, 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrFileNotFound)
}

func TestReturnedRequestNotMutatedByBackgroundRun(t *testing.T) {
	writer := &recordingWriter{}
	generator := &stubGenerator{err: apperrors.NewUpstreamError(503, "service unavailable")}

	service, _ := newTestService(generator, writer)

	request, err := service.GenerateFlashcards(context.Background(), 1, 7)
	require.NoError(t, err)

	waitForStatus(t, service, request.ID, 1, models.GenerationFailed)

	// The request handed back at start is a snapshot; the run's status
	// transitions are only visible through GetRequest.
	assert.Equal(t, models.GenerationPending, request.Status)
	assert.Empty(t, request.Error)
	assert.Nil(t, request.FinishedAt)
}

func TestGetRequestScopedToOwner(t *testing.T) {
	writer := &recordingWriter{}
	generator := &stubGenerator{output: "summary text"}

	service, _ := newTestService(generator, writer)

	request, err := service.GenerateSummary(context.Background(), 1, 7, models.SummaryConcise)
	require.NoError(t, err)

	_, err = service.GetRequest(request.ID, 99)
	assert.ErrorIs(t, err, apperrors.ErrGenerationNotFound)

	_, err = service.GetRequest(uuid.New(), 1)
	assert.ErrorIs(t, err, apperrors.ErrGenerationNotFound)
}
