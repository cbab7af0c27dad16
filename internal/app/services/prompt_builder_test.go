package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/planora/planora/internal/app/models"
)

func TestBuildFlashcardPromptContainsContentAndSchema(t *testing.T) {
	builder := NewPromptBuilder(DefaultPromptBudgets())

	prompt := builder.BuildFlashcardPrompt("The mitochondria is the powerhouse of the cell.")

	assert.Contains(t, prompt, "difficulty_level")
	assert.Contains(t, prompt, "mitochondria")
	assert.Contains(t, prompt, "JSON array only")
}

func TestBuildQuizPromptNamesAllFourOptions(t *testing.T) {
	builder := NewPromptBuilder(DefaultPromptBudgets())

	prompt := builder.BuildQuizPrompt("Newton's laws of motion.")

	assert.Contains(t, prompt, `"A", "B", "C", "D"`)
	assert.Contains(t, prompt, "correct_answer")
	assert.Contains(t, prompt, "explanation")
}

func TestBuildSummaryPromptVariantDirectives(t *testing.T) {
	builder := NewPromptBuilder(DefaultPromptBudgets())

	concise := builder.BuildSummaryPrompt("content", models.SummaryConcise)
	bullets := builder.BuildSummaryPrompt("content", models.SummaryBulletPoints)
	definitions := builder.BuildSummaryPrompt("content", models.SummaryKeyDefinitions)

	assert.Contains(t, concise, "concise prose summary")
	assert.Contains(t, bullets, "bullet points")
	assert.Contains(t, definitions, "key terms")

	// Unknown variants degrade to the concise directive
	fallback := builder.BuildSummaryPrompt("content", models.SummaryType("weird"))
	assert.Contains(t, fallback, "concise prose summary")
}

func TestPromptContentRespectsBudget(t *testing.T) {
	builder := NewPromptBuilder(PromptBudgets{Flashcards: 100, Quiz: 100, Summary: 100})

	long := strings.Repeat("abcdefghij", 50) // 500 chars
	prompt := builder.BuildFlashcardPrompt(long)

	content := strings.TrimPrefix(prompt, flashcardInstructions)
	assert.LessOrEqual(t, len(content), 100)
	assert.True(t, strings.HasPrefix(content, "abcdefghij"))
}

func TestTruncateDoesNotSplitRunes(t *testing.T) {
	s := strings.Repeat("é", 50)
	got := truncate(s, 10)

	assert.Equal(t, strings.Repeat("é", 10), got)
}

func TestShortContentIsKeptVerbatim(t *testing.T) {
	builder := NewPromptBuilder(DefaultPromptBudgets())

	prompt := builder.BuildQuizPrompt("short text")
	assert.True(t, strings.HasSuffix(prompt, "short text"))
}
