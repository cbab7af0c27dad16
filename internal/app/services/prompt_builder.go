package services

import (
	"fmt"
	"strings"

	"github.com/planora/planora/internal/app/models"
)

// PromptBudgets caps how much extracted content each artifact kind may carry.
// Values are character counts.
type PromptBudgets struct {
	Flashcards int
	Quiz       int
	Summary    int
}

// DefaultPromptBudgets returns the stock budget configuration
func DefaultPromptBudgets() PromptBudgets {
	return PromptBudgets{
		Flashcards: 8000,
		Quiz:       8000,
		Summary:    50000,
	}
}

// PromptBuilder assembles model instructions from extracted file content
type PromptBuilder struct {
	budgets PromptBudgets
}

// NewPromptBuilder creates a prompt builder with the given budgets.
// Non-positive budget values fall back to the defaults.
func NewPromptBuilder(budgets PromptBudgets) *PromptBuilder {
	defaults := DefaultPromptBudgets()
	if budgets.Flashcards <= 0 {
		budgets.Flashcards = defaults.Flashcards
	}
	if budgets.Quiz <= 0 {
		budgets.Quiz = defaults.Quiz
	}
	if budgets.Summary <= 0 {
		budgets.Summary = defaults.Summary
	}
	return &PromptBuilder{budgets: budgets}
}

const flashcardInstructions = `You are generating study flashcards from course material.
Create between 5 and 10 flashcards covering the most important concepts.
Respond with a JSON array only, no prose before or after it.
Each element must have exactly these fields:
  "question": string,
  "answer": string,
  "difficulty_level": one of "easy", "medium", "hard"

Course material:
`

const quizInstructions = `You are generating a multiple-choice quiz from course material.
Create between 5 and 10 questions covering the most important concepts.
Respond with a JSON array only, no prose before or after it.
Each element must have exactly these fields:
  "question": string,
  "options": object with exactly four keys "A", "B", "C", "D" mapping to answer texts,
  "correct_answer": one of "A", "B", "C", "D" that identifies the right option,
  "explanation": string explaining why the correct option is right

Course material:
`

// summaryInstructions are parameterized by variant; %s receives the
// variant-specific directive.
const summaryInstructions = `You are summarizing course material for a student.
%s
Respond with the summary text only, no preamble and no closing remarks.

Course material:
`

var summaryDirectives = map[models.SummaryType]string{
	models.SummaryConcise:        "Write a concise prose summary of two to four paragraphs.",
	models.SummaryBulletPoints:   "Write the summary as a flat list of bullet points, one key fact per bullet.",
	models.SummaryKeyDefinitions: "List the key terms of the material, each with a one-sentence definition.",
}

// BuildFlashcardPrompt returns the flashcard instruction block followed by
// the content, truncated to the flashcard budget.
func (b *PromptBuilder) BuildFlashcardPrompt(content string) string {
	return flashcardInstructions + truncate(content, b.budgets.Flashcards)
}

// BuildQuizPrompt returns the quiz instruction block followed by the
// content, truncated to the quiz budget.
func (b *PromptBuilder) BuildQuizPrompt(content string) string {
	return quizInstructions + truncate(content, b.budgets.Quiz)
}

// BuildSummaryPrompt returns variant-specific summary instructions followed
// by the content, truncated to the summary budget. Unknown variants fall
// back to the concise directive.
func (b *PromptBuilder) BuildSummaryPrompt(content string, variant models.SummaryType) string {
	directive, ok := summaryDirectives[variant]
	if !ok {
		directive = summaryDirectives[models.SummaryConcise]
	}
	return fmt.Sprintf(summaryInstructions, directive) + truncate(content, b.budgets.Summary)
}

// truncate cuts s to at most limit characters, never splitting a rune
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimSpace(string(runes[:limit]))
}
