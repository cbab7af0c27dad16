package services

import (
	"encoding/json"
	"strings"

	"github.com/planora/planora/internal/app/models"
	"github.com/planora/planora/internal/pkg/apperrors"
)

// ParsedFlashcard is one flashcard as emitted by the model
type ParsedFlashcard struct {
	Question        string `json:"question"`
	Answer          string `json:"answer"`
	DifficultyLevel string `json:"difficulty_level"`
}

// ParsedQuizQuestion is one quiz question as emitted by the model
type ParsedQuizQuestion struct {
	Question      string            `json:"question"`
	Options       map[string]string `json:"options"`
	CorrectAnswer string            `json:"correct_answer"`
	Explanation   string            `json:"explanation"`
}

// ResponseParser turns raw model output into validated artifact items.
// Models wrap payloads in code fences or prose often enough that a strict
// parse is tried first and a bracket-span recovery second.
type ResponseParser struct{}

// NewResponseParser creates a new ResponseParser
func NewResponseParser() *ResponseParser {
	return &ResponseParser{}
}

// ParseFlashcards extracts a non-empty list of flashcards from raw model
// output. Items without both a question and an answer are dropped; unknown
// difficulty values degrade to medium.
func (p *ResponseParser) ParseFlashcards(raw string) ([]ParsedFlashcard, error) {
	var items []ParsedFlashcard
	if err := unmarshalWithRecovery(raw, '[', ']', &items); err != nil {
		return nil, err
	}

	valid := make([]ParsedFlashcard, 0, len(items))
	for _, item := range items {
		item.Question = strings.TrimSpace(item.Question)
		item.Answer = strings.TrimSpace(item.Answer)
		if item.Question == "" || item.Answer == "" {
			continue
		}
		if !models.DifficultyLevel(item.DifficultyLevel).IsValid() {
			item.DifficultyLevel = string(models.DifficultyMedium)
		}
		valid = append(valid, item)
	}

	if len(valid) == 0 {
		return nil, apperrors.NewParseError("model output contained no usable flashcards")
	}
	return valid, nil
}

// ParseQuizQuestions extracts a non-empty list of quiz questions from raw
// model output. A question whose correct_answer is not one of its own
// option labels is rejected.
func (p *ResponseParser) ParseQuizQuestions(raw string) ([]ParsedQuizQuestion, error) {
	var items []ParsedQuizQuestion
	if err := unmarshalWithRecovery(raw, '[', ']', &items); err != nil {
		return nil, err
	}

	valid := make([]ParsedQuizQuestion, 0, len(items))
	for _, item := range items {
		item.Question = strings.TrimSpace(item.Question)
		if item.Question == "" || len(item.Options) == 0 {
			continue
		}
		if _, ok := item.Options[item.CorrectAnswer]; !ok {
			continue
		}
		valid = append(valid, item)
	}

	if len(valid) == 0 {
		return nil, apperrors.NewParseError("model output contained no usable quiz questions")
	}
	return valid, nil
}

// ParseSummary returns the summary text. Summaries are free text; only
// code fences are stripped and emptiness rejected.
func (p *ResponseParser) ParseSummary(raw string) (string, error) {
	text := strings.TrimSpace(stripCodeFences(raw))
	if text == "" {
		return "", apperrors.NewParseError("model output contained no summary text")
	}
	return text, nil
}

// unmarshalWithRecovery tries a strict parse of raw, then retries on the
// span between the first open and last close bracket after stripping code
// fences. No valid span means a parse error.
func unmarshalWithRecovery(raw string, open, close byte, out interface{}) error {
	cleaned := strings.TrimSpace(stripCodeFences(raw))

	if err := json.Unmarshal([]byte(cleaned), out); err == nil {
		return nil
	}

	start := strings.IndexByte(cleaned, open)
	end := strings.LastIndexByte(cleaned, close)
	if start < 0 || end <= start {
		return apperrors.NewParseError("model output contained no JSON payload")
	}

	if err := json.Unmarshal([]byte(cleaned[start:end+1]), out); err != nil {
		return apperrors.NewParseError("model output JSON payload is malformed")
	}
	return nil
}

// stripCodeFences removes a leading ```lang fence and a trailing ``` fence
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	// Drop the language tag on the fence line
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
