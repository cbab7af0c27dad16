package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/planora/planora/internal/app/models"
	"github.com/planora/planora/internal/pkg/apperrors"
	"github.com/planora/planora/internal/pkg/logger"
)

// TextGenerator produces model output for a single prompt
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// FileContentSource resolves an owned file record and its stored bytes
type FileContentSource interface {
	GetFile(ctx context.Context, fileID, userID int64) (*models.File, error)
	ReadContent(ctx context.Context, file *models.File) ([]byte, error)
}

// GenerationService runs the content-generation pipeline: extract, prompt,
// generate, parse, persist. Requests run in the background; callers poll
// the returned request ID for completion.
type GenerationService interface {
	GenerateFlashcards(ctx context.Context, userID, fileID int64) (*models.GenerationRequest, error)
	GenerateQuiz(ctx context.Context, userID, fileID int64) (*models.GenerationRequest, error)
	GenerateSummary(ctx context.Context, userID, fileID int64, variant models.SummaryType) (*models.GenerationRequest, error)
	GetRequest(id uuid.UUID, userID int64) (*models.GenerationRequest, error)
}

// ContentExtractor reduces stored bytes to prompt text
type ContentExtractor interface {
	Extract(data []byte, mimeType, fileName string) (string, error)
}

type generationServiceImpl struct {
	source    FileContentSource
	extractor ContentExtractor
	prompts   *PromptBuilder
	generator TextGenerator
	parser    *ResponseParser
	writer    ArtifactWriter
	tracker   *GenerationTracker
	timeout   time.Duration
}

// NewGenerationService creates a new GenerationService
func NewGenerationService(
	source FileContentSource,
	extractor ContentExtractor,
	prompts *PromptBuilder,
	generator TextGenerator,
	parser *ResponseParser,
	writer ArtifactWriter,
	tracker *GenerationTracker,
	timeout time.Duration,
) GenerationService {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &generationServiceImpl{
		source:    source,
		extractor: extractor,
		prompts:   prompts,
		generator: generator,
		parser:    parser,
		writer:    writer,
		tracker:   tracker,
		timeout:   timeout,
	}
}

// GenerateFlashcards starts a flashcard generation run for the given file
func (s *generationServiceImpl) GenerateFlashcards(ctx context.Context, userID, fileID int64) (*models.GenerationRequest, error) {
	return s.start(ctx, userID, fileID, models.GenerationFlashcards, func(ctx context.Context, file *models.File, content string) error {
		prompt := s.prompts.BuildFlashcardPrompt(content)

		raw, err := s.generator.Generate(ctx, prompt)
		if err != nil {
			return err
		}

		cards, err := s.parser.ParseFlashcards(raw)
		if err != nil {
			return err
		}

		return s.writer.WriteFlashcards(ctx, userID, fileID, cards)
	})
}

// GenerateQuiz starts a quiz generation run for the given file
func (s *generationServiceImpl) GenerateQuiz(ctx context.Context, userID, fileID int64) (*models.GenerationRequest, error) {
	return s.start(ctx, userID, fileID, models.GenerationQuiz, func(ctx context.Context, file *models.File, content string) error {
		prompt := s.prompts.BuildQuizPrompt(content)

		raw, err := s.generator.Generate(ctx, prompt)
		if err != nil {
			return err
		}

		questions, err := s.parser.ParseQuizQuestions(raw)
		if err != nil {
			return err
		}

		title := fmt.Sprintf("Quiz: %s", file.FileName)
		return s.writer.WriteQuiz(ctx, userID, fileID, title, questions)
	})
}

// GenerateSummary starts a summary generation run for the given file.
// An empty variant defaults to concise.
func (s *generationServiceImpl) GenerateSummary(ctx context.Context, userID, fileID int64, variant models.SummaryType) (*models.GenerationRequest, error) {
	if variant == "" {
		variant = models.SummaryConcise
	}
	if !variant.IsValid() {
		return nil, apperrors.NewBadRequestError("unknown summary variant")
	}

	return s.start(ctx, userID, fileID, models.GenerationSummary, func(ctx context.Context, file *models.File, content string) error {
		prompt := s.prompts.BuildSummaryPrompt(content, variant)

		raw, err := s.generator.Generate(ctx, prompt)
		if err != nil {
			return err
		}

		text, err := s.parser.ParseSummary(raw)
		if err != nil {
			return err
		}

		return s.writer.WriteSummary(ctx, userID, fileID, variant, text)
	})
}

// GetRequest returns the status of a generation request owned by the user
func (s *generationServiceImpl) GetRequest(id uuid.UUID, userID int64) (*models.GenerationRequest, error) {
	return s.tracker.Get(id, userID)
}

// start validates ownership, registers the request, and runs the pipeline
// in the background. Ownership failures surface before a request exists.
func (s *generationServiceImpl) start(
	ctx context.Context,
	userID, fileID int64,
	kind models.GenerationKind,
	run func(ctx context.Context, file *models.File, content string) error,
) (*models.GenerationRequest, error) {
	file, err := s.source.GetFile(ctx, fileID, userID)
	if err != nil {
		return nil, err
	}

	request := s.tracker.Start(userID, fileID, kind)

	go func() {
		runCtx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if err := s.execute(runCtx, file, run); err != nil {
			logger.Warn().
				Err(err).
				Str("requestId", request.ID.String()).
				Int64("fileId", fileID).
				Str("kind", string(kind)).
				Msg("Generation request failed")
			s.tracker.Fail(request.ID, err.Error())
			return
		}

		logger.Info().
			Str("requestId", request.ID.String()).
			Int64("fileId", fileID).
			Str("kind", string(kind)).
			Msg("Generation request completed")
		s.tracker.Complete(request.ID)
	}()

	return request, nil
}

func (s *generationServiceImpl) execute(
	ctx context.Context,
	file *models.File,
	run func(ctx context.Context, file *models.File, content string) error,
) error {
	data, err := s.source.ReadContent(ctx, file)
	if err != nil {
		return fmt.Errorf("reading stored file: %w", err)
	}

	content, err := s.extractor.Extract(data, file.MimeType, file.FileName)
	if err != nil {
		return fmt.Errorf("extracting file content: %w", err)
	}

	return run(ctx, file, content)
}
