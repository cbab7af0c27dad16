package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planora/planora/internal/pkg/apperrors"
)

func TestParseFlashcardsStrictJSON(t *testing.T) {
	parser := NewResponseParser()

	cards, err := parser.ParseFlashcards(`[
		{"question": "What is Go?", "answer": "A programming language", "difficulty_level": "easy"},
		{"question": "What is a goroutine?", "answer": "A lightweight thread", "difficulty_level": "hard"}
	]`)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "What is Go?", cards[0].Question)
	assert.Equal(t, "hard", cards[1].DifficultyLevel)
}

func TestParseFlashcardsInsideCodeFence(t *testing.T) {
	parser := NewResponseParser()

	raw := "```json\n[{\"question\": \"Q\", \"answer\": \"A\", \"difficulty_level\": \"medium\"}]\n```"
	cards, err := parser.ParseFlashcards(raw)
	require.NoError(t, err)
	require.Len(t, cards, 1)
}

func TestParseFlashcardsEmbeddedInProse(t *testing.T) {
	parser := NewResponseParser()

	raw := `Here are your flashcards:
[{"question": "Q", "answer": "A", "difficulty_level": "easy"}]
Hope this helps!`

	cards, err := parser.ParseFlashcards(raw)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Q", cards[0].Question)
}

func TestParseFlashcardsNoBracketsIsParseError(t *testing.T) {
	parser := NewResponseParser()

	_, err := parser.ParseFlashcards("I cannot generate flashcards for this content.")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnparseableOutput)
}

func TestParseFlashcardsEmptyArrayIsParseError(t *testing.T) {
	parser := NewResponseParser()

	_, err := parser.ParseFlashcards("[]")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnparseableOutput)
}

func TestParseFlashcardsNormalizesUnknownDifficulty(t *testing.T) {
	parser := NewResponseParser()

	cards, err := parser.ParseFlashcards(`[{"question": "Q", "answer": "A", "difficulty_level": "brutal"}]`)
	require.NoError(t, err)
	assert.Equal(t, "medium", cards[0].DifficultyLevel)
}

func TestParseFlashcardsDropsIncompleteItems(t *testing.T) {
	parser := NewResponseParser()

	cards, err := parser.ParseFlashcards(`[
		{"question": "", "answer": "A"},
		{"question": "Q", "answer": "A", "difficulty_level": "easy"}
	]`)
	require.NoError(t, err)
	require.Len(t, cards, 1)
}

func TestParseQuizQuestionsValid(t *testing.T) {
	parser := NewResponseParser()

	questions, err := parser.ParseQuizQuestions(`[{
		"question": "2+2?",
		"options": {"A": "3", "B": "4", "C": "5", "D": "6"},
		"correct_answer": "B",
		"explanation": "Basic arithmetic"
	}]`)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "B", questions[0].CorrectAnswer)
}

func TestParseQuizRejectsAnswerOutsideOptions(t *testing.T) {
	parser := NewResponseParser()

	_, err := parser.ParseQuizQuestions(`[{
		"question": "2+2?",
		"options": {"A": "3", "B": "4"},
		"correct_answer": "E",
		"explanation": "oops"
	}]`)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnparseableOutput)
}

func TestParseQuizKeepsValidQuestionsAmongInvalid(t *testing.T) {
	parser := NewResponseParser()

	questions, err := parser.ParseQuizQuestions(`[
		{"question": "bad", "options": {"A": "x"}, "correct_answer": "Z"},
		{"question": "good", "options": {"A": "x", "B": "y"}, "correct_answer": "A"}
	]`)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "good", questions[0].Question)
}

func TestParseSummaryStripsFences(t *testing.T) {
	parser := NewResponseParser()

	text, err := parser.ParseSummary("```\nThe course covers linear algebra.\n```")
	require.NoError(t, err)
	assert.Equal(t, "The course covers linear algebra.", text)
}

func TestParseSummaryEmptyIsParseError(t *testing.T) {
	parser := NewResponseParser()

	_, err := parser.ParseSummary("   \n  ")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnparseableOutput)
}
