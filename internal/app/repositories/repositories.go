package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository      *UserRepository
	FileRepository      *FileRepository
	FlashcardRepository *FlashcardRepository
	QuizRepository      *QuizRepository
	SummaryRepository   *SummaryRepository
	ScheduleRepository  *ScheduleRepository
	NoteRepository      *NoteRepository
	GradeRepository     *GradeRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:      NewUserRepository(db),
		FileRepository:      NewFileRepository(db),
		FlashcardRepository: NewFlashcardRepository(db),
		QuizRepository:      NewQuizRepository(db),
		SummaryRepository:   NewSummaryRepository(db),
		ScheduleRepository:  NewScheduleRepository(db),
		NoteRepository:      NewNoteRepository(db),
		GradeRepository:     NewGradeRepository(db),
	}
}
