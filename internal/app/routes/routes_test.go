package routes

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/planora/planora/internal/app/controllers"
	"github.com/planora/planora/internal/middleware"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	// Handlers are never invoked here, only registered
	SetupRouter(
		router,
		controllers.NewAuthController(nil),
		controllers.NewFileController(nil),
		controllers.NewGenerationController(nil),
		controllers.NewStudyController(nil, nil, nil),
		controllers.NewChatController(nil),
		controllers.NewPlannerController(nil),
		middleware.NewAuthMiddleware(nil),
	)
	return router
}

func registeredRoutes(router *gin.Engine) map[string]bool {
	routes := make(map[string]bool)
	for _, route := range router.Routes() {
		routes[route.Method+" "+route.Path] = true
	}
	return routes
}

func TestGradeRoutesRegistered(t *testing.T) {
	routes := registeredRoutes(newTestRouter())

	for _, want := range []string{
		"GET /api/v1/grades",
		"POST /api/v1/grades",
		"GET /api/v1/grades/:id",
		"PUT /api/v1/grades/:id",
		"DELETE /api/v1/grades/:id",
	} {
		assert.True(t, routes[want], want)
	}
}

func TestPipelineRoutesRegistered(t *testing.T) {
	routes := registeredRoutes(newTestRouter())

	for _, want := range []string{
		"POST /api/v1/files/:id/flashcards",
		"POST /api/v1/files/:id/quiz",
		"POST /api/v1/files/:id/summary",
		"GET /api/v1/generations/:requestId",
		"POST /api/v1/flashcards/:id/review",
		"POST /api/v1/chat/stream",
	} {
		assert.True(t, routes[want], want)
	}
}
