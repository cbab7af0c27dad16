package bootstrap

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	appControllers "github.com/planora/planora/internal/app/controllers"
	appMigrations "github.com/planora/planora/internal/app/migrations"
	appRepos "github.com/planora/planora/internal/app/repositories"
	appRoutes "github.com/planora/planora/internal/app/routes"
	appServices "github.com/planora/planora/internal/app/services"
	"github.com/planora/planora/internal/config"
	"github.com/planora/planora/internal/db"
	appMiddleware "github.com/planora/planora/internal/middleware"
	pkgAuth "github.com/planora/planora/internal/pkg/auth"
	"github.com/planora/planora/internal/pkg/extractor"
	"github.com/planora/planora/internal/pkg/filestorage"
	"github.com/planora/planora/internal/pkg/helpers"
	"github.com/planora/planora/internal/pkg/llm"
	"github.com/planora/planora/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos *appRepos.Repositories

	JWTService  *pkgAuth.JWTService
	FileStorage *filestorage.LocalStorage
	LLMClient   *llm.Client

	AuthService       appServices.AuthService
	FileService       appServices.FileService
	GenerationService appServices.GenerationService
	FlashcardService  appServices.FlashcardService
	QuizService       appServices.QuizService
	SummaryService    appServices.SummaryService
	ChatService       appServices.ChatService
	PlannerService    appServices.PlannerService

	AuthController       *appControllers.AuthController
	FileController       *appControllers.FileController
	GenerationController *appControllers.GenerationController
	StudyController      *appControllers.StudyController
	ChatController       *appControllers.ChatController
	PlannerController    *appControllers.PlannerController

	AuthMiddleware *appMiddleware.AuthMiddleware
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger
func LoadConfigAndSetupLogger() (*config.Config, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	logger.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, nil
}

// SetupDatabase establishes the database connection and runs migrations
func SetupDatabase(cfg *config.Config) (*db.PostgresDB, error) {
	logger.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	logger.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	logger.Info().Msg("Database migrations successfully applied.")
	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers
func BuildDependencies(cfg *config.Config, database *db.PostgresDB) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.LLMClient, err = llm.NewClient(llm.Config{
		APIKey:         cfg.AI.APIKey,
		BatchEndpoint:  cfg.AI.BatchEndpoint,
		BatchModel:     cfg.AI.BatchModel,
		StreamEndpoint: cfg.AI.StreamEndpoint,
		StreamModel:    cfg.AI.StreamModel,
		Timeout:        helpers.ParseDuration(cfg.AI.RequestTimeout, 90*time.Second),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize generation client: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService)
	deps.FileService = appServices.NewFileService(deps.Repos.FileRepository, deps.FileStorage)

	writer := appServices.NewArtifactWriter(
		database,
		deps.Repos.FlashcardRepository,
		deps.Repos.QuizRepository,
		deps.Repos.SummaryRepository,
	)

	deps.GenerationService = appServices.NewGenerationService(
		deps.FileService,
		extractor.New(),
		appServices.NewPromptBuilder(appServices.PromptBudgets{
			Flashcards: cfg.AI.FlashcardCharBudget,
			Quiz:       cfg.AI.QuizCharBudget,
			Summary:    cfg.AI.SummaryCharBudget,
		}),
		deps.LLMClient,
		appServices.NewResponseParser(),
		writer,
		appServices.NewGenerationTracker(),
		helpers.ParseDuration(cfg.AI.RequestTimeout, 90*time.Second)+time.Minute,
	)

	deps.FlashcardService = appServices.NewFlashcardService(deps.Repos.FlashcardRepository, appServices.MasteryConfig{
		Min:  cfg.Study.MasteryMin,
		Max:  cfg.Study.MasteryMax,
		Step: cfg.Study.MasteryStep,
	})
	deps.QuizService = appServices.NewQuizService(deps.Repos.QuizRepository)
	deps.SummaryService = appServices.NewSummaryService(deps.Repos.SummaryRepository)
	deps.ChatService = appServices.NewChatService(deps.LLMClient)
	deps.PlannerService = appServices.NewPlannerService(
		deps.Repos.ScheduleRepository,
		deps.Repos.NoteRepository,
		deps.Repos.GradeRepository,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.FileController = appControllers.NewFileController(deps.FileService)
	deps.GenerationController = appControllers.NewGenerationController(deps.GenerationService)
	deps.StudyController = appControllers.NewStudyController(deps.FlashcardService, deps.QuizService, deps.SummaryService)
	deps.ChatController = appControllers.NewChatController(deps.ChatService)
	deps.PlannerController = appControllers.NewPlannerController(deps.PlannerService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())
	router.Use(appMiddleware.CORS())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.FileController,
		deps.GenerationController,
		deps.StudyController,
		deps.ChatController,
		deps.PlannerController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
