package services

import (
	"context"
	"time"

	"github.com/planora/planora/internal/app/models"
	"github.com/planora/planora/internal/app/models/dto"
	"github.com/planora/planora/internal/app/repositories"
)

// PlannerService defines the interface for schedule, note, and grade operations
type PlannerService interface {
	ListSchedules(ctx context.Context, userID int64) ([]*models.Schedule, error)
	GetSchedule(ctx context.Context, id, userID int64) (*models.Schedule, error)
	CreateSchedule(ctx context.Context, userID int64, req *dto.ScheduleRequest) (*models.Schedule, error)
	UpdateSchedule(ctx context.Context, id, userID int64, req *dto.ScheduleRequest) (*models.Schedule, error)
	DeleteSchedule(ctx context.Context, id, userID int64) error

	ListNotes(ctx context.Context, userID int64, page dto.PaginationQuery) ([]*models.PlannerNote, int64, error)
	GetNote(ctx context.Context, id, userID int64) (*models.PlannerNote, error)
	CreateNote(ctx context.Context, userID int64, req *dto.PlannerNoteRequest) (*models.PlannerNote, error)
	UpdateNote(ctx context.Context, id, userID int64, req *dto.PlannerNoteRequest) (*models.PlannerNote, error)
	DeleteNote(ctx context.Context, id, userID int64) error

	ListGrades(ctx context.Context, userID int64, courseCode string) ([]*models.Grade, error)
	GetGrade(ctx context.Context, id, userID int64) (*models.Grade, error)
	CreateGrade(ctx context.Context, userID int64, req *dto.GradeRequest) (*models.Grade, error)
	UpdateGrade(ctx context.Context, id, userID int64, req *dto.GradeRequest) (*models.Grade, error)
	DeleteGrade(ctx context.Context, id, userID int64) error
}

type plannerServiceImpl struct {
	scheduleRepo *repositories.ScheduleRepository
	noteRepo     *repositories.NoteRepository
	gradeRepo    *repositories.GradeRepository
}

// NewPlannerService creates a new PlannerService
func NewPlannerService(
	scheduleRepo *repositories.ScheduleRepository,
	noteRepo *repositories.NoteRepository,
	gradeRepo *repositories.GradeRepository,
) PlannerService {
	return &plannerServiceImpl{
		scheduleRepo: scheduleRepo,
		noteRepo:     noteRepo,
		gradeRepo:    gradeRepo,
	}
}

func (s *plannerServiceImpl) ListSchedules(ctx context.Context, userID int64) ([]*models.Schedule, error) {
	return s.scheduleRepo.ListByUser(ctx, userID)
}

func (s *plannerServiceImpl) GetSchedule(ctx context.Context, id, userID int64) (*models.Schedule, error) {
	return s.scheduleRepo.GetByID(ctx, id, userID)
}

func (s *plannerServiceImpl) CreateSchedule(ctx context.Context, userID int64, req *dto.ScheduleRequest) (*models.Schedule, error) {
	schedule := scheduleFromRequest(userID, req)

	id, err := s.scheduleRepo.Create(ctx, schedule)
	if err != nil {
		return nil, err
	}

	return s.scheduleRepo.GetByID(ctx, id, userID)
}

func (s *plannerServiceImpl) UpdateSchedule(ctx context.Context, id, userID int64, req *dto.ScheduleRequest) (*models.Schedule, error) {
	schedule := scheduleFromRequest(userID, req)
	schedule.ID = id

	if err := s.scheduleRepo.Update(ctx, schedule); err != nil {
		return nil, err
	}

	return s.scheduleRepo.GetByID(ctx, id, userID)
}

func (s *plannerServiceImpl) DeleteSchedule(ctx context.Context, id, userID int64) error {
	return s.scheduleRepo.Delete(ctx, id, userID)
}

func scheduleFromRequest(userID int64, req *dto.ScheduleRequest) *models.Schedule {
	dayOfWeek := 0
	if req.DayOfWeek != nil {
		dayOfWeek = *req.DayOfWeek
	}
	return &models.Schedule{
		UserID:     userID,
		Title:      req.Title,
		DayOfWeek:  dayOfWeek,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Location:   req.Location,
		CourseCode: req.CourseCode,
	}
}

func (s *plannerServiceImpl) ListNotes(ctx context.Context, userID int64, page dto.PaginationQuery) ([]*models.PlannerNote, int64, error) {
	return s.noteRepo.ListByUser(ctx, userID, page.Size, page.Offset())
}

func (s *plannerServiceImpl) GetNote(ctx context.Context, id, userID int64) (*models.PlannerNote, error) {
	return s.noteRepo.GetByID(ctx, id, userID)
}

func (s *plannerServiceImpl) CreateNote(ctx context.Context, userID int64, req *dto.PlannerNoteRequest) (*models.PlannerNote, error) {
	note := &models.PlannerNote{
		UserID:     userID,
		Title:      req.Title,
		Content:    req.Content,
		CourseCode: req.CourseCode,
	}

	id, err := s.noteRepo.Create(ctx, note)
	if err != nil {
		return nil, err
	}

	return s.noteRepo.GetByID(ctx, id, userID)
}

func (s *plannerServiceImpl) UpdateNote(ctx context.Context, id, userID int64, req *dto.PlannerNoteRequest) (*models.PlannerNote, error) {
	note := &models.PlannerNote{
		ID:         id,
		UserID:     userID,
		Title:      req.Title,
		Content:    req.Content,
		CourseCode: req.CourseCode,
	}

	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, err
	}

	return s.noteRepo.GetByID(ctx, id, userID)
}

func (s *plannerServiceImpl) DeleteNote(ctx context.Context, id, userID int64) error {
	return s.noteRepo.Delete(ctx, id, userID)
}

func (s *plannerServiceImpl) ListGrades(ctx context.Context, userID int64, courseCode string) ([]*models.Grade, error) {
	return s.gradeRepo.ListByUser(ctx, userID, courseCode)
}

func (s *plannerServiceImpl) GetGrade(ctx context.Context, id, userID int64) (*models.Grade, error) {
	return s.gradeRepo.GetByID(ctx, id, userID)
}

func (s *plannerServiceImpl) CreateGrade(ctx context.Context, userID int64, req *dto.GradeRequest) (*models.Grade, error) {
	grade := gradeFromRequest(userID, req)

	id, err := s.gradeRepo.Create(ctx, grade)
	if err != nil {
		return nil, err
	}

	return s.gradeRepo.GetByID(ctx, id, userID)
}

func (s *plannerServiceImpl) UpdateGrade(ctx context.Context, id, userID int64, req *dto.GradeRequest) (*models.Grade, error) {
	grade := gradeFromRequest(userID, req)
	grade.ID = id

	if err := s.gradeRepo.Update(ctx, grade); err != nil {
		return nil, err
	}

	return s.gradeRepo.GetByID(ctx, id, userID)
}

func (s *plannerServiceImpl) DeleteGrade(ctx context.Context, id, userID int64) error {
	return s.gradeRepo.Delete(ctx, id, userID)
}

func gradeFromRequest(userID int64, req *dto.GradeRequest) *models.Grade {
	score := 0.0
	if req.Score != nil {
		score = *req.Score
	}
	gradedAt := time.Now()
	if req.GradedAt != nil {
		gradedAt = *req.GradedAt
	}
	return &models.Grade{
		UserID:     userID,
		CourseCode: req.CourseCode,
		Assessment: req.Assessment,
		Score:      score,
		Weight:     req.Weight,
		GradedAt:   gradedAt,
	}
}
