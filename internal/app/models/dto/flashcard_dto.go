package dto

// FlashcardReviewRequest carries study feedback for a single card
type FlashcardReviewRequest struct {
	Remembered *bool `json:"remembered" binding:"required"`
}
