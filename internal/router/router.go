package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/schoolcrm-backend/internal/config"
	"github.com/stemsi/schoolcrm-backend/internal/handler"
	"github.com/stemsi/schoolcrm-backend/internal/middleware"
	"github.com/stemsi/schoolcrm-backend/internal/response"
	"github.com/stemsi/schoolcrm-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth      *handler.AuthHandler
	Teachers  *handler.UserHandler
	Students  *handler.UserHandler
	Class     *handler.ClassHandler
	Financial *handler.FinancialHandler
	Health    *handler.HealthHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	cfg *config.Config,
	log zerolog.Logger,
	authService *service.AuthService,
	users middleware.UserFinder,
	handlers *Handlers,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// ─── CORS ──────────────────────────────────────────────────────────
	// Credentialed requests are only accepted from the allow-list.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowOriginFunc = func(string) bool { return false }
	}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour

	router.Use(
		response.RequestIDMiddleware(),
		middleware.RequestLogger(log),
		middleware.Recovery(log),
		cors.New(corsConfig),
		middleware.Brotli(cfg.CompressionMinBytes),
		middleware.ErrorHandler(log),
	)

	router.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	})

	router.GET("/health", handlers.Health.Health)

	api := router.Group("/api")
	api.Use(middleware.NoStore())

	protect := middleware.Protect(cfg.SessionCookieName, authService, users, log)
	secure := func(g *gin.RouterGroup, method, path string, h gin.HandlerFunc) {
		g.Handle(method, path, protect, middleware.AuthorizeRoute(method, g.BasePath()+path), h)
	}

	// Rate limiter for credential routes (per IP, per minute).
	authLimiter := middleware.NewRateLimiter(cfg.AuthRateLimit, time.Minute)

	// ─── 1. Auth ───────────────────────────────────────────────────────
	auth := api.Group("/auth")
	{
		auth.POST("/signup", authLimiter.Middleware(), handlers.Auth.Signup)
		auth.POST("/login", authLimiter.Middleware(), handlers.Auth.Login)
		secure(auth, http.MethodPost, "/logout", handlers.Auth.Logout)
		secure(auth, http.MethodGet, "/me", handlers.Auth.Me)
	}

	// ─── 2. Teachers & Students ────────────────────────────────────────
	for _, res := range []struct {
		path string
		h    *handler.UserHandler
	}{
		{"/teachers", handlers.Teachers},
		{"/students", handlers.Students},
	} {
		g := api.Group(res.path)
		secure(g, http.MethodPost, "", res.h.Create)
		secure(g, http.MethodGet, "", res.h.List)
		secure(g, http.MethodGet, "/:id", res.h.Get)
		secure(g, http.MethodPut, "/:id", res.h.Update)
		secure(g, http.MethodDelete, "/:id", res.h.Delete)
	}

	// ─── 3. Classes ────────────────────────────────────────────────────
	classes := api.Group("/classes")
	{
		secure(classes, http.MethodPost, "", handlers.Class.CreateClass)
		secure(classes, http.MethodGet, "", handlers.Class.ListClasses)
		secure(classes, http.MethodGet, "/:id", handlers.Class.GetClass)
		secure(classes, http.MethodPut, "/:id", handlers.Class.UpdateClass)
		secure(classes, http.MethodDelete, "/:id", handlers.Class.DeleteClass)
	}

	// ─── 4. Financial ──────────────────────────────────────────────────
	financial := api.Group("/financial")
	{
		secure(financial, http.MethodGet, "/analytics", handlers.Financial.Analytics)
		secure(financial, http.MethodGet, "/expenses/teacher-salaries", handlers.Financial.TeacherSalaries)
		secure(financial, http.MethodGet, "/income/student-fees", handlers.Financial.StudentFees)
	}

	return router
}
