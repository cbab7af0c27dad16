package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/planora/planora/internal/app/controllers"
	"github.com/planora/planora/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	fileController *controllers.FileController,
	generationController *controllers.GenerationController,
	studyController *controllers.StudyController,
	chatController *controllers.ChatController,
	plannerController *controllers.PlannerController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	files := authenticated.Group("/files")
	{
		files.POST("", fileController.Upload)
		files.GET("", fileController.List)
		files.GET("/:id", fileController.Get)
		files.DELETE("/:id", fileController.Delete)

		// Generation runs per file
		files.POST("/:id/flashcards", generationController.GenerateFlashcards)
		files.POST("/:id/quiz", generationController.GenerateQuiz)
		files.POST("/:id/summary", generationController.GenerateSummary)

		// Generated artifacts per file
		files.GET("/:id/flashcards", studyController.ListFlashcards)
		files.GET("/:id/quiz", studyController.ListQuizzes)
		files.GET("/:id/summaries", studyController.ListSummaries)
	}

	authenticated.GET("/generations/:requestId", generationController.GetStatus)

	authenticated.POST("/flashcards/:id/review", studyController.ReviewFlashcard)

	authenticated.POST("/chat/stream", chatController.Stream)

	schedules := authenticated.Group("/schedules")
	{
		schedules.GET("", plannerController.ListSchedules)
		schedules.POST("", plannerController.CreateSchedule)
		schedules.GET("/:id", plannerController.GetSchedule)
		schedules.PUT("/:id", plannerController.UpdateSchedule)
		schedules.DELETE("/:id", plannerController.DeleteSchedule)
	}

	notes := authenticated.Group("/notes")
	{
		notes.GET("", plannerController.ListNotes)
		notes.POST("", plannerController.CreateNote)
		notes.GET("/:id", plannerController.GetNote)
		notes.PUT("/:id", plannerController.UpdateNote)
		notes.DELETE("/:id", plannerController.DeleteNote)
	}

	grades := authenticated.Group("/grades")
	{
		grades.GET("", plannerController.ListGrades)
		grades.POST("", plannerController.CreateGrade)
		grades.GET("/:id", plannerController.GetGrade)
		grades.PUT("/:id", plannerController.UpdateGrade)
		grades.DELETE("/:id", plannerController.DeleteGrade)
	}
}
